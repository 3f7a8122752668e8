// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ledger identities
//
// An address is the 20 byte tail of the Keccak-256 hash of a
// secp256k1 public key.  Addresses are written as checksummed hex
// (0x prefixed) in all text forms.  Signatures are 65 bytes r ++ s ++ v
// and allow the signing address to be recovered from a digest.
package account
