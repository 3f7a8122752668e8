// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	"github.com/bitmark-inc/carbonmarkd/fault"
)

const (
	saltSize = 32
)

// Salt - random argon2 salt
type Salt [saltSize]byte

// MakeSalt - a fresh random salt
func MakeSalt() (*Salt, error) {
	salt := new(Salt)
	if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
		return nil, err
	}
	return salt, nil
}

// Bytes - salt as a byte slice
func (salt Salt) Bytes() []byte {
	return salt[:]
}

// String - salt as hex
func (salt Salt) String() string {
	return hex.EncodeToString(salt.Bytes())
}

// MarshalText - salt as hex text
func (salt Salt) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(saltSize))
	hex.Encode(buffer, salt.Bytes())
	return buffer, nil
}

// UnmarshalText - salt from hex text
func (salt *Salt) UnmarshalText(s []byte) error {
	if hex.DecodedLen(len(s)) != saltSize {
		return fault.CryptoFailed
	}
	_, err := hex.Decode(salt[:], s)
	return err
}
