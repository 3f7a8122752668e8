// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package attestation - typed structured data digests
//
// An attestation is an offline statement by a verifier that a recipient
// may be issued a quantity of credits for some evidence.  The digest
// follows the EIP-712 typed data layout so that ordinary wallets can
// produce the signature:
//
//   digest = keccak256(0x19 ++ 0x01 ++ domainSeparator ++ structHash)
//
// Strings are hashed, integers are 32 byte big endian and addresses
// are left padded to 32 bytes.
//
// The same scheme with a different domain authenticates ledger calls
// made over RPC.
package attestation
