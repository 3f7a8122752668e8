// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package certificate - non-fungible retirement receipts
//
// only the minter fixed at construction can create certificates
package certificate

import (
	"encoding/binary"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/event"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/storage"
	"github.com/bitmark-inc/carbonmarkd/util"
)

const counterName = "certificate"

// Certificate - a single retirement receipt
type Certificate struct {
	CertificateID   uint64          `json:"certificateId"`
	Owner           account.Address `json:"owner"`
	MetadataPointer string          `json:"metadataPointer"`
}

// Handles - pools used by the registry
type Handles struct {
	Certificates storage.Handle
	OwnerIndex   storage.Handle
	OwnerCount   storage.Handle
	Counters     storage.Handle
}

// Registry - certificate store
type Registry struct {
	minter account.Address
	pools  Handles
	sink   event.Sink
}

// New - registry with a single privileged minter
func New(minter account.Address, pools Handles, sink event.Sink) *Registry {
	return &Registry{
		minter: minter,
		pools:  pools,
		sink:   sink,
	}
}

// Minter - the only address allowed to mint
func (r *Registry) Minter() account.Address {
	return r.minter
}

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func ownerIndexKey(owner account.Address, index uint64) []byte {
	key := make([]byte, 0, account.AddressLength+8)
	key = append(key, owner[:]...)
	return binary.BigEndian.AppendUint64(key, index)
}

// Mint - issue the next certificate to owner
func (r *Registry) Mint(caller account.Address, owner account.Address, metadataPointer string) (uint64, error) {
	if caller != r.minter {
		return 0, fault.NotAuthorised
	}
	if owner.IsZero() {
		return 0, fault.InvalidAddress
	}

	id := storage.NextCount(r.pools.Counters, counterName)
	packed := util.Packed{}.
		AppendBytes(owner[:]).
		AppendString(metadataPointer)
	r.pools.Certificates.Put(idKey(id), packed)

	index := r.BalanceOf(owner)
	r.pools.OwnerIndex.PutN(ownerIndexKey(owner, index), id)
	r.pools.OwnerCount.PutN(owner[:], index+1)

	r.sink.Emit(event.CertificateMinted, event.Certificate{
		CertificateID:   id,
		Owner:           owner,
		MetadataPointer: metadataPointer,
	})
	return id, nil
}

// Get - a single certificate
func (r *Registry) Get(id uint64) (*Certificate, error) {
	buffer := r.pools.Certificates.Get(idKey(id))
	if nil == buffer {
		return nil, fault.NotFound
	}
	u := util.NewUnpacker(buffer)
	c := &Certificate{
		CertificateID: id,
	}
	copy(c.Owner[:], u.BytesN(account.AddressLength))
	c.MetadataPointer = u.String()
	if nil != u.Err() {
		return nil, u.Err()
	}
	return c, nil
}

// OwnerOf - owner of a certificate
func (r *Registry) OwnerOf(id uint64) (account.Address, error) {
	c, err := r.Get(id)
	if nil != err {
		return account.Zero, err
	}
	return c.Owner, nil
}

// MetadataPointer - the pointer recorded at retirement
func (r *Registry) MetadataPointer(id uint64) (string, error) {
	c, err := r.Get(id)
	if nil != err {
		return "", err
	}
	return c.MetadataPointer, nil
}

// BalanceOf - number of certificates held by owner
func (r *Registry) BalanceOf(owner account.Address) uint64 {
	n, _ := r.pools.OwnerCount.GetN(owner[:])
	return n
}

// OfOwnerByIndex - the index'th certificate of owner in mint order
func (r *Registry) OfOwnerByIndex(owner account.Address, index uint64) (uint64, error) {
	id, found := r.pools.OwnerIndex.GetN(ownerIndexKey(owner, index))
	if !found {
		return 0, fault.NotFound
	}
	return id, nil
}

// Total - number of certificates ever minted
func (r *Registry) Total() uint64 {
	return storage.CurrentCount(r.pools.Counters, counterName)
}
