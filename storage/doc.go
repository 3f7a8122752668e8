// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger state
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All writes are buffered in a single batch between Begin and
// Commit.  Reads through a pool handle see the buffered writes first,
// then the database.  Abort discards both.  Cursors only see
// committed data.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++      = concatenation of byte data
// 3. id      = big endian uint64 (8 bytes)
// 4. count   = big endian uint64 (8 bytes)
// 5. address = 20 byte account address
// 6. value   = 32 byte big endian unsigned integer
// 7. packed  = sequence of varint / length prefixed fields
//
// Verifiers:
//
//   V ++ address               - current verifier set
//                                data: 0x01
//
// Documents:
//
//   D ++ id                    - document record
//                                data: packed document
//   C ++ cid                   - content identifier index
//                                data: id
//   U ++ uploader ++ id        - documents registered by an uploader
//                                data: empty
//
// Credits:
//
//   K ++ classId               - class provenance and total supply
//                                data: packed class
//   B ++ holder ++ classId     - balance
//                                data: count
//   O ++ holder                - attestation nonce
//                                data: count
//   A ++ holder ++ operator    - standing delegation
//                                data: 0x01
//
// Marketplace:
//
//   L ++ listingId             - listing
//                                data: packed listing
//
// Certificates:
//
//   R ++ certificateId         - certificate
//                                data: packed certificate
//   W ++ owner ++ index        - certificates of an owner in mint order
//                                data: certificateId
//   Q ++ owner                 - certificate count of an owner
//                                data: count
//
// Funds:
//
//   F ++ address               - native value balance
//                                data: value
//
// Engine:
//
//   N ++ name                  - id counters (document, class, listing, certificate, event)
//                                data: count
//   S ++ address               - signed call sequence
//                                data: count
//   E ++ sequence              - committed event history
//                                data: packed event
//
// Testing:
//   Z ++ key                   - testing data
package storage
