// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package attestation

import (
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/carbonmarkd/account"
)

// DigestLength - size of all hashes
const DigestLength = 32

// Digest - a Keccak-256 hash
type Digest [DigestLength]byte

// Bytes - slice form for signing
func (d Digest) Bytes() []byte {
	return d[:]
}

// keccak - Keccak-256 of the concatenation of all parts
func keccak(parts ...[]byte) Digest {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

// typed data field encoders
func encodeString(s string) []byte {
	d := keccak([]byte(s))
	return d[:]
}

func encodeBytes(b []byte) []byte {
	d := keccak(b)
	return d[:]
}

func encodeUint(n uint64) []byte {
	b := uint256.NewInt(n).Bytes32()
	return b[:]
}

func encodeAddress(a account.Address) []byte {
	b := make([]byte, 32)
	copy(b[32-account.AddressLength:], a[:])
	return b
}

// final typed data digest
func typedDigest(domainSeparator Digest, structHash Digest) Digest {
	return keccak([]byte{0x19, 0x01}, domainSeparator[:], structHash[:])
}
