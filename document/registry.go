// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package document - registry of uploaded evidence
//
// a document is created pending and may be attested exactly once by a
// registered verifier, documents are never deleted
package document

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/event"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/storage"
	"github.com/bitmark-inc/carbonmarkd/verifier"
)

const counterName = "document"

// Handles - pools used by the registry
type Handles struct {
	Documents storage.Handle
	CIDs      storage.Handle
	Uploaders storage.Handle
	Counters  storage.Handle
}

// Registry - document store
type Registry struct {
	pools     Handles
	verifiers verifier.Checker
	sink      event.Sink
}

// New - create a registry
func New(pools Handles, verifiers verifier.Checker, sink event.Sink) *Registry {
	return &Registry{
		pools:     pools,
		verifiers: verifiers,
		sink:      sink,
	}
}

// Register - store a new pending document
func (r *Registry) Register(uploader account.Address, now time.Time, registration Registration) (uint64, error) {
	if "" == registration.CID {
		return 0, fault.EmptyCID
	}
	if "" == registration.ProjectName {
		return 0, fault.EmptyProjectName
	}
	if r.pools.CIDs.Has([]byte(registration.CID)) {
		return 0, fault.DuplicateCID
	}

	id := storage.NextCount(r.pools.Counters, counterName)
	d := &Document{
		ID:               id,
		CID:              registration.CID,
		Uploader:         uploader,
		ProjectName:      registration.ProjectName,
		ProjectType:      registration.ProjectType,
		Description:      registration.Description,
		Location:         registration.Location,
		EstimatedCredits: registration.EstimatedCredits,
		SubmittedAt:      now.Unix(),
	}

	r.pools.Documents.Put(idKey(id), d.pack())
	r.pools.CIDs.PutN([]byte(d.CID), id)
	r.pools.Uploaders.Put(uploaderKey(uploader, id), []byte{})

	r.sink.Emit(event.DocumentRegistered, event.Document{
		ID:          id,
		CID:         d.CID,
		Uploader:    uploader,
		ProjectName: d.ProjectName,
	})
	return id, nil
}

// Attest - mark a document as verified
//
// only the attestation fields change
func (r *Registry) Attest(caller account.Address, id uint64, now time.Time) error {
	if !r.verifiers.IsVerifier(caller) {
		return fault.NotVerifier
	}
	d, err := r.Get(id)
	if nil != err {
		return err
	}
	if d.IsAttested {
		return fault.DocumentAlreadyAttested
	}

	d.IsAttested = true
	d.Verifier = caller
	d.AttestedAt = now.Unix()
	r.pools.Documents.Put(idKey(id), d.pack())

	r.sink.Emit(event.DocumentAttested, event.Attested{
		ID:         id,
		Verifier:   caller,
		AttestedAt: d.AttestedAt,
	})
	return nil
}

// Get - a single document
func (r *Registry) Get(id uint64) (*Document, error) {
	buffer := r.pools.Documents.Get(idKey(id))
	if nil == buffer {
		return nil, fault.DocumentNotFound
	}
	return unpack(id, buffer)
}

// ByCID - the document registered with a content identifier
func (r *Registry) ByCID(cid string) (*Document, error) {
	id, found := r.pools.CIDs.GetN([]byte(cid))
	if !found {
		return nil, fault.DocumentNotFound
	}
	return r.Get(id)
}

// Total - number of documents ever registered
func (r *Registry) Total() uint64 {
	return storage.CurrentCount(r.pools.Counters, counterName)
}

// All - every document in registration order
func (r *Registry) All() ([]Document, error) {
	return r.filter(func(*Document) bool { return true })
}

// ByStatus - documents with the given attestation state in registration order
func (r *Registry) ByStatus(attested bool) ([]Document, error) {
	return r.filter(func(d *Document) bool { return attested == d.IsAttested })
}

func (r *Registry) filter(accept func(*Document) bool) ([]Document, error) {
	documents := make([]Document, 0, 16)
	err := r.pools.Documents.NewFetchCursor().Map(func(key []byte, value []byte) error {
		d, err := unpack(binary.BigEndian.Uint64(key), value)
		if nil != err {
			return err
		}
		if accept(d) {
			documents = append(documents, *d)
		}
		return nil
	})
	return documents, err
}

// UserDocuments - ids registered by an uploader in registration order
func (r *Registry) UserDocuments(uploader account.Address) ([]uint64, error) {
	ids := make([]uint64, 0, 8)
	err := r.pools.Uploaders.NewFetchCursor().Prefix(uploader[:]).Map(func(key []byte, _ []byte) error {
		ids = append(ids, binary.BigEndian.Uint64(key[account.AddressLength:]))
		return nil
	})
	return ids, err
}

// UserDocumentsWithDetails - documents registered by an uploader in registration order
func (r *Registry) UserDocumentsWithDetails(uploader account.Address) ([]Document, error) {
	ids, err := r.UserDocuments(uploader)
	if nil != err {
		return nil, err
	}
	documents := make([]Document, 0, len(ids))
	for _, id := range ids {
		d, err := r.Get(id)
		if nil != err {
			return nil, err
		}
		documents = append(documents, *d)
	}
	return documents, nil
}
