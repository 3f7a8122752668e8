// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/event"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/storage"
	"github.com/bitmark-inc/carbonmarkd/verifier"
)

func TestAddRemove(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	var buffer event.Buffer
	r := verifier.New(fixtures.Authority, storage.Pool.Verifiers, &buffer)
	assert.Equal(t, fixtures.Authority, r.Authority(), "authority")

	err := fixtures.Transact(t, func() error {
		return r.Add(fixtures.Authority, fixtures.Verifier)
	})
	assert.Nil(t, err, "add")
	assert.True(t, r.IsVerifier(fixtures.Verifier), "member")
	assert.Equal(t, 1, len(buffer.Pending()), "added event")
	assert.Equal(t, event.VerifierAdded, buffer.Pending()[0].Kind, "added kind")

	// set semantics: second add is silent
	buffer.Reset()
	err = fixtures.Transact(t, func() error {
		return r.Add(fixtures.Authority, fixtures.Verifier)
	})
	assert.Nil(t, err, "re-add")
	assert.Equal(t, 0, len(buffer.Pending()), "no event on re-add")

	list, err := r.List()
	assert.Nil(t, err, "list")
	assert.Equal(t, []account.Address{fixtures.Verifier}, list, "list")

	err = fixtures.Transact(t, func() error {
		return r.Remove(fixtures.Authority, fixtures.Verifier)
	})
	assert.Nil(t, err, "remove")
	assert.False(t, r.IsVerifier(fixtures.Verifier), "removed")
	assert.Equal(t, event.VerifierRemoved, buffer.Pending()[0].Kind, "removed kind")

	buffer.Reset()
	err = fixtures.Transact(t, func() error {
		return r.Remove(fixtures.Authority, fixtures.Verifier)
	})
	assert.Nil(t, err, "remove non-member")
	assert.Equal(t, 0, len(buffer.Pending()), "no event on remove of non-member")
}

func TestNotAuthorised(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	var buffer event.Buffer
	r := verifier.New(fixtures.Authority, storage.Pool.Verifiers, &buffer)

	err := fixtures.Transact(t, func() error {
		return r.Add(fixtures.Stranger, fixtures.Stranger)
	})
	assert.Equal(t, fault.NotAuthorised, err, "stranger add")
	assert.False(t, r.IsVerifier(fixtures.Stranger), "not added")

	err = fixtures.Transact(t, func() error {
		return r.Add(fixtures.Authority, fixtures.Verifier)
	})
	assert.Nil(t, err, "authority add")

	err = fixtures.Transact(t, func() error {
		return r.Remove(fixtures.Verifier, fixtures.Verifier)
	})
	assert.Equal(t, fault.NotAuthorised, err, "verifier cannot remove itself")
	assert.True(t, r.IsVerifier(fixtures.Verifier), "still member")

	err = fixtures.Transact(t, func() error {
		return r.Add(fixtures.Authority, account.Zero)
	})
	assert.Equal(t, fault.InvalidAddress, err, "zero address")
}

func TestListOrder(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	var buffer event.Buffer
	r := verifier.New(fixtures.Authority, storage.Pool.Verifiers, &buffer)

	addresses := []account.Address{fixtures.Buyer, fixtures.Verifier, fixtures.Uploader}
	err := fixtures.Transact(t, func() error {
		for _, a := range addresses {
			if err := r.Add(fixtures.Authority, a); nil != err {
				return err
			}
		}
		return nil
	})
	assert.Nil(t, err, "add all")

	list, err := r.List()
	assert.Nil(t, err, "list")
	assert.Equal(t, 3, len(list), "count")
	for i := 1; i < len(list); i += 1 {
		assert.Equal(t, -1, list[i-1].Compare(list[i]), "sorted: %d", i)
	}
}
