// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/bitmark-inc/carbonmarkd/fault"
)

// SignatureLength - r ++ s ++ v
const SignatureLength = crypto.SignatureLength

// DigestLength - signatures are always over a 32 byte digest
const DigestLength = crypto.DigestLength

// Signature - the type for a recoverable signature
type Signature []byte

// convert a binary signature to hex string for use by the fmt package (for %s)
func (signature Signature) String() string {
	return hex.EncodeToString(signature)
}

// convert a binary signature to hex string for use by the fmt package (for %#v)
func (signature Signature) GoString() string {
	return "<signature:" + hex.EncodeToString(signature) + ">"
}

// SignatureFromHex - accepts an optional 0x prefix
func SignatureFromHex(s string) (Signature, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.InvalidSignature
	}
	return Signature(b), nil
}

// convert a text representation to a signature for use by the format package scan routines
func (signature *Signature) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		return c >= '0' && c <= '9' || c >= 'A' && c <= 'F' || c >= 'a' && c <= 'f' || 'x' == c
	})
	if nil != err {
		return err
	}
	sig, err := SignatureFromHex(string(token))
	if nil != err {
		return err
	}
	*signature = sig
	return nil
}

// MarshalText - convert signature to 0x prefixed hex text
func (signature Signature) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(signature)), nil
}

// UnmarshalText - convert hex text into a signature
func (signature *Signature) UnmarshalText(s []byte) error {
	sig, err := SignatureFromHex(string(s))
	if nil != err {
		return err
	}
	*signature = sig
	return nil
}

// normalised - copy of the signature with v as 0 or 1
//
// wallets commonly produce v as 27 or 28
func (signature Signature) normalised() (Signature, error) {
	if SignatureLength != len(signature) {
		return nil, fault.InvalidSignature
	}
	sig := make(Signature, SignatureLength)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	if sig[64] > 1 {
		return nil, fault.InvalidSignature
	}
	return sig, nil
}

// Recover - determine the address that signed a digest
//
// signatures with a high s value are rejected so that a signature has
// exactly one valid encoding
func Recover(digest []byte, signature Signature) (Address, error) {
	if DigestLength != len(digest) {
		return Zero, fault.InvalidSignature
	}
	sig, err := signature.normalised()
	if nil != err {
		return Zero, err
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(sig[64], r, s, true) {
		return Zero, fault.InvalidSignature
	}

	publicKey, err := crypto.SigToPub(digest, sig)
	if nil != err {
		return Zero, fault.InvalidSignature
	}
	return Address(crypto.PubkeyToAddress(*publicKey)), nil
}
