// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/certificate"
	"github.com/bitmark-inc/carbonmarkd/event"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/storage"
)

var minter = account.Derive("carbonmark:marketplace")

func newRegistry() (*certificate.Registry, *event.Buffer) {
	buffer := &event.Buffer{}
	r := certificate.New(minter, certificate.Handles{
		Certificates: storage.Pool.Certificates,
		OwnerIndex:   storage.Pool.OwnerCertificates,
		OwnerCount:   storage.Pool.CertificateCount,
		Counters:     storage.Pool.Counters,
	}, buffer)
	return r, buffer
}

func mint(t *testing.T, r *certificate.Registry, caller account.Address, owner account.Address, pointer string) (uint64, error) {
	var id uint64
	err := fixtures.Transact(t, func() error {
		var err error
		id, err = r.Mint(caller, owner, pointer)
		return err
	})
	return id, err
}

func TestMint(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	r, buffer := newRegistry()
	assert.Equal(t, minter, r.Minter(), "minter")

	id, err := mint(t, r, minter, fixtures.Buyer, "ipfs://retire-1")
	assert.Nil(t, err, "mint")
	assert.Equal(t, uint64(1), id, "first id")
	assert.Equal(t, event.CertificateMinted, buffer.Pending()[0].Kind, "event")

	owner, err := r.OwnerOf(id)
	assert.Nil(t, err, "owner")
	assert.Equal(t, fixtures.Buyer, owner, "owner value")

	pointer, err := r.MetadataPointer(id)
	assert.Nil(t, err, "pointer")
	assert.Equal(t, "ipfs://retire-1", pointer, "pointer value")

	id2, err := mint(t, r, minter, fixtures.Uploader, "ipfs://retire-2")
	assert.Nil(t, err, "second mint")
	id3, err := mint(t, r, minter, fixtures.Buyer, "ipfs://retire-3")
	assert.Nil(t, err, "third mint")
	assert.Equal(t, uint64(2), id2, "second id")
	assert.Equal(t, uint64(3), id3, "third id")
	assert.Equal(t, uint64(3), r.Total(), "total")

	assert.Equal(t, uint64(2), r.BalanceOf(fixtures.Buyer), "buyer count")
	assert.Equal(t, uint64(1), r.BalanceOf(fixtures.Uploader), "uploader count")

	first, err := r.OfOwnerByIndex(fixtures.Buyer, 0)
	assert.Nil(t, err, "index 0")
	assert.Equal(t, id, first, "index 0 id")
	second, err := r.OfOwnerByIndex(fixtures.Buyer, 1)
	assert.Nil(t, err, "index 1")
	assert.Equal(t, id3, second, "index 1 id")

	_, err = r.OfOwnerByIndex(fixtures.Buyer, 2)
	assert.Equal(t, fault.NotFound, err, "index out of range")
	_, err = r.OwnerOf(99)
	assert.Equal(t, fault.NotFound, err, "missing certificate")
}

func TestMintUnauthorised(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	r, buffer := newRegistry()

	_, err := mint(t, r, fixtures.Buyer, fixtures.Buyer, "ipfs://self")
	assert.Equal(t, fault.NotAuthorised, err, "not minter")
	assert.Equal(t, uint64(0), r.Total(), "nothing minted")
	assert.Equal(t, uint64(0), r.BalanceOf(fixtures.Buyer), "no balance")
	assert.Equal(t, 0, len(buffer.Pending()), "no event")

	_, err = mint(t, r, minter, account.Zero, "ipfs://nobody")
	assert.Equal(t, fault.InvalidAddress, err, "zero owner")
}
