// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package document

import (
	"encoding/binary"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/util"
)

// Document - uploaded evidence and its attestation status
//
// Verifier is the zero address and AttestedAt is zero until attested
type Document struct {
	ID               uint64          `json:"id"`
	CID              string          `json:"cid"`
	Uploader         account.Address `json:"uploader"`
	ProjectName      string          `json:"projectName"`
	ProjectType      string          `json:"projectType"`
	Description      string          `json:"description"`
	Location         string          `json:"location"`
	EstimatedCredits uint64          `json:"estimatedCredits"`
	SubmittedAt      int64           `json:"submittedAt"`
	IsAttested       bool            `json:"isAttested"`
	Verifier         account.Address `json:"verifier"`
	AttestedAt       int64           `json:"attestedAt"`
}

// Registration - the uploader supplied fields of a document
type Registration struct {
	CID              string `json:"cid"`
	ProjectName      string `json:"projectName"`
	ProjectType      string `json:"projectType"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	EstimatedCredits uint64 `json:"estimatedCredits"`
}

// Status - attestation state as text
func (d *Document) Status() string {
	if d.IsAttested {
		return "attested"
	}
	return "pending"
}

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func uploaderKey(uploader account.Address, id uint64) []byte {
	key := make([]byte, 0, account.AddressLength+8)
	key = append(key, uploader[:]...)
	return binary.BigEndian.AppendUint64(key, id)
}

func (d *Document) pack() []byte {
	return util.Packed{}.
		AppendString(d.CID).
		AppendBytes(d.Uploader[:]).
		AppendString(d.ProjectName).
		AppendString(d.ProjectType).
		AppendString(d.Description).
		AppendString(d.Location).
		AppendUint64(d.EstimatedCredits).
		AppendUint64(uint64(d.SubmittedAt)).
		AppendBool(d.IsAttested).
		AppendBytes(d.Verifier[:]).
		AppendUint64(uint64(d.AttestedAt))
}

func unpack(id uint64, buffer []byte) (*Document, error) {
	u := util.NewUnpacker(buffer)
	d := &Document{
		ID:               id,
		CID:              u.String(),
		Uploader:         unpackAddress(u),
		ProjectName:      u.String(),
		ProjectType:      u.String(),
		Description:      u.String(),
		Location:         u.String(),
		EstimatedCredits: u.Uint64(),
		SubmittedAt:      int64(u.Uint64()),
		IsAttested:       u.Bool(),
		Verifier:         unpackAddress(u),
		AttestedAt:       int64(u.Uint64()),
	}
	if nil != u.Err() {
		return nil, u.Err()
	}
	return d, nil
}

func unpackAddress(u *util.Unpacker) account.Address {
	var a account.Address
	copy(a[:], u.BytesN(account.AddressLength))
	return a
}
