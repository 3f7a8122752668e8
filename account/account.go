// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/carbonmarkd/fault"
)

// AddressLength - number of bytes in an address
const AddressLength = common.AddressLength

// Address - identity of a ledger participant
type Address common.Address

// Zero - the unset address
var Zero Address

// AddressFromBytes - convert exactly AddressLength bytes to an address
func AddressFromBytes(buffer []byte) (Address, error) {
	var a Address
	if AddressLength != len(buffer) {
		return a, fault.InvalidAddress
	}
	copy(a[:], buffer)
	return a, nil
}

// AddressFromHex - parse a 0x prefixed (or bare) hex address
func AddressFromHex(s string) (Address, error) {
	var a Address
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return a, fault.InvalidAddress
	}
	return Address(common.HexToAddress(s)), nil
}

// Derive - a system address that has no private key
//
// the address is the tail of Keccak-256(label) so the same label
// always produces the same address
func Derive(label string) Address {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(label))
	digest := h.Sum(nil)
	var a Address
	copy(a[:], digest[len(digest)-AddressLength:])
	return a
}

// Bytes - the raw address bytes
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero - true for the unset address
func (a Address) IsZero() bool {
	return Zero == a
}

// Compare - byte order comparison for sorting
func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}

// String - checksummed hex form
func (a Address) String() string {
	return common.Address(a).Hex()
}

// GoString - for %#v
func (a Address) GoString() string {
	return "<address:" + hex.EncodeToString(a[:]) + ">"
}

// MarshalText - convert an address to its JSON form
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert JSON text into an address
func (a *Address) UnmarshalText(s []byte) error {
	parsed, err := AddressFromHex(string(s))
	if nil != err {
		return err
	}
	*a = parsed
	return nil
}
