// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/bitmark-inc/carbonmarkd/fault"
)

// PrivateKeyLength - bytes in a raw secp256k1 private key
const PrivateKeyLength = 32

// PrivateKey - a signing key
type PrivateKey struct {
	key *ecdsa.PrivateKey
}

// NewPrivateKey - generate a random key
func NewPrivateKey() (*PrivateKey, error) {
	key, err := crypto.GenerateKey()
	if nil != err {
		return nil, err
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes - from the 32 byte scalar
func PrivateKeyFromBytes(buffer []byte) (*PrivateKey, error) {
	if PrivateKeyLength != len(buffer) {
		return nil, fault.InvalidPrivateKey
	}
	key, err := crypto.ToECDSA(buffer)
	if nil != err {
		return nil, fault.InvalidPrivateKey
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromHex - from hex text with optional 0x prefix
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	buffer, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.InvalidPrivateKey
	}
	return PrivateKeyFromBytes(buffer)
}

// Bytes - the raw 32 byte scalar
func (p *PrivateKey) Bytes() []byte {
	return crypto.FromECDSA(p.key)
}

// Address - the address corresponding to this key
func (p *PrivateKey) Address() Address {
	return Address(crypto.PubkeyToAddress(p.key.PublicKey))
}

// Sign - produce a recoverable signature over a 32 byte digest
func (p *PrivateKey) Sign(digest []byte) (Signature, error) {
	if DigestLength != len(digest) {
		return nil, fault.InvalidSignature
	}
	sig, err := crypto.Sign(digest, p.key)
	if nil != err {
		return nil, err
	}
	return Signature(sig), nil
}
