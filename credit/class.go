// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package credit

import (
	"encoding/binary"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/util"
)

// Class - a batch of fungible credits created by one mint
type Class struct {
	ClassID     uint64          `json:"classId"`
	GsProjectID string          `json:"gsProjectId"`
	GsSerial    string          `json:"gsSerial"`
	CID         string          `json:"cid"`
	Verifier    account.Address `json:"verifier"`
	Issued      uint64          `json:"issued"`
	TotalSupply uint64          `json:"totalSupply"`
}

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// holder ++ classId
func balanceKey(holder account.Address, classID uint64) []byte {
	key := make([]byte, 0, account.AddressLength+8)
	key = append(key, holder[:]...)
	return binary.BigEndian.AppendUint64(key, classID)
}

// holder ++ operator
func delegationKey(holder account.Address, operator account.Address) []byte {
	key := make([]byte, 0, 2*account.AddressLength)
	key = append(key, holder[:]...)
	return append(key, operator[:]...)
}

func (c *Class) pack() []byte {
	return util.Packed{}.
		AppendString(c.GsProjectID).
		AppendString(c.GsSerial).
		AppendString(c.CID).
		AppendBytes(c.Verifier[:]).
		AppendUint64(c.Issued).
		AppendUint64(c.TotalSupply)
}

func unpackClass(id uint64, buffer []byte) (*Class, error) {
	u := util.NewUnpacker(buffer)
	c := &Class{
		ClassID:     id,
		GsProjectID: u.String(),
		GsSerial:    u.String(),
		CID:         u.String(),
	}
	copy(c.Verifier[:], u.BytesN(account.AddressLength))
	c.Issued = u.Uint64()
	c.TotalSupply = u.Uint64()
	if nil != u.Err() {
		return nil, u.Err()
	}
	return c, nil
}
