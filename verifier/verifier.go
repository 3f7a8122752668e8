// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package verifier - the authoritative set of verifier addresses
//
// only the authority fixed at construction may change the set
package verifier

import (
	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/event"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/storage"
)

var member = []byte{0x01}

// Checker - membership test used by other components
type Checker interface {
	IsVerifier(account.Address) bool
}

// Registry - verifier set
type Registry struct {
	authority account.Address
	pool      storage.Handle
	sink      event.Sink
}

// New - registry controlled by authority
func New(authority account.Address, pool storage.Handle, sink event.Sink) *Registry {
	return &Registry{
		authority: authority,
		pool:      pool,
		sink:      sink,
	}
}

// Authority - the only address allowed to change the set
func (r *Registry) Authority() account.Address {
	return r.authority
}

// IsVerifier - membership test
func (r *Registry) IsVerifier(address account.Address) bool {
	return r.pool.Has(address[:])
}

// Add - insert a verifier, no change if already present
func (r *Registry) Add(caller account.Address, address account.Address) error {
	if caller != r.authority {
		return fault.NotAuthorised
	}
	if address.IsZero() {
		return fault.InvalidAddress
	}
	if r.IsVerifier(address) {
		return nil
	}
	r.pool.Put(address[:], member)
	r.sink.Emit(event.VerifierAdded, event.Verifier{
		Verifier:  address,
		Authority: caller,
	})
	return nil
}

// Remove - delete a verifier, no change if not present
func (r *Registry) Remove(caller account.Address, address account.Address) error {
	if caller != r.authority {
		return fault.NotAuthorised
	}
	if !r.IsVerifier(address) {
		return nil
	}
	r.pool.Delete(address[:])
	r.sink.Emit(event.VerifierRemoved, event.Verifier{
		Verifier:  address,
		Authority: caller,
	})
	return nil
}

// List - committed verifiers in address order
func (r *Registry) List() ([]account.Address, error) {
	verifiers := make([]account.Address, 0, 8)
	err := r.pool.NewFetchCursor().Map(func(key []byte, _ []byte) error {
		a, err := account.AddressFromBytes(key)
		if nil != err {
			return err
		}
		verifiers = append(verifiers, a)
		return nil
	})
	return verifiers, err
}
