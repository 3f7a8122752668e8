// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/util"
)

// Listing - an offer to sell credits of one class
//
// Amount is the remaining quantity and a listing is active while it is
// above zero, listings are never deleted
type Listing struct {
	ListingID    uint64          `json:"listingId"`
	Seller       account.Address `json:"seller"`
	ClassID      uint64          `json:"classId"`
	Amount       uint64          `json:"amount"`
	PricePerUnit *uint256.Int    `json:"pricePerUnit"`
}

// IsActive - true while some amount remains
func (l *Listing) IsActive() bool {
	return l.Amount > 0
}

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func (l *Listing) pack() []byte {
	price := l.PricePerUnit.Bytes32()
	return util.Packed{}.
		AppendBytes(l.Seller[:]).
		AppendUint64(l.ClassID).
		AppendUint64(l.Amount).
		AppendBytes(price[:])
}

func unpackListing(id uint64, buffer []byte) (*Listing, error) {
	u := util.NewUnpacker(buffer)
	l := &Listing{
		ListingID: id,
	}
	copy(l.Seller[:], u.BytesN(account.AddressLength))
	l.ClassID = u.Uint64()
	l.Amount = u.Uint64()
	l.PricePerUnit = new(uint256.Int).SetBytes(u.BytesN(32))
	if nil != u.Err() {
		return nil, u.Err()
	}
	return l, nil
}
