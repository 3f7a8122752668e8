// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funds_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/event"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/funds"
	"github.com/bitmark-inc/carbonmarkd/storage"
)

func TestCreditAndTransfer(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	var buffer event.Buffer
	l := funds.New(storage.Pool.Funds, &buffer)

	assert.True(t, l.BalanceOf(fixtures.Buyer).IsZero(), "empty")

	err := fixtures.Transact(t, func() error {
		return l.Credit(fixtures.Buyer, uint256.NewInt(1000))
	})
	assert.Nil(t, err, "credit")
	assert.Equal(t, uint64(1000), l.BalanceOf(fixtures.Buyer).Uint64(), "credited")
	assert.Equal(t, event.FundsCredited, buffer.Pending()[0].Kind, "credit event")

	err = fixtures.Transact(t, func() error {
		return l.Transfer(fixtures.Buyer, fixtures.Uploader, uint256.NewInt(400))
	})
	assert.Nil(t, err, "transfer")
	assert.Equal(t, uint64(600), l.BalanceOf(fixtures.Buyer).Uint64(), "payer")
	assert.Equal(t, uint64(400), l.BalanceOf(fixtures.Uploader).Uint64(), "payee")

	err = fixtures.Transact(t, func() error {
		return l.Transfer(fixtures.Buyer, fixtures.Uploader, uint256.NewInt(601))
	})
	assert.Equal(t, fault.InsufficientFunds, err, "overdraw")
	assert.Equal(t, uint64(600), l.BalanceOf(fixtures.Buyer).Uint64(), "unchanged")

	buffer.Reset()
	err = fixtures.Transact(t, func() error {
		return l.Transfer(fixtures.Stranger, fixtures.Uploader, uint256.NewInt(0))
	})
	assert.Nil(t, err, "zero transfer")
	assert.Equal(t, 0, len(buffer.Pending()), "no event for zero")

	err = fixtures.Transact(t, func() error {
		return l.Transfer(fixtures.Buyer, fixtures.Buyer, uint256.NewInt(600))
	})
	assert.Nil(t, err, "self transfer")
	assert.Equal(t, uint64(600), l.BalanceOf(fixtures.Buyer).Uint64(), "self unchanged")

	err = fixtures.Transact(t, func() error {
		return l.Transfer(fixtures.Buyer, fixtures.Uploader, uint256.NewInt(600))
	})
	assert.Nil(t, err, "drain")
	assert.True(t, l.BalanceOf(fixtures.Buyer).IsZero(), "drained")
}

func TestCreditRejects(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	l := funds.New(storage.Pool.Funds, &event.Buffer{})

	err := fixtures.Transact(t, func() error {
		return l.Credit(account.Zero, uint256.NewInt(1))
	})
	assert.Equal(t, fault.InvalidAddress, err, "zero address")

	err = fixtures.Transact(t, func() error {
		return l.Credit(fixtures.Buyer, uint256.NewInt(0))
	})
	assert.Equal(t, fault.InvalidAmount, err, "zero value")

	maximum := new(uint256.Int).SetAllOne()
	err = fixtures.Transact(t, func() error {
		return l.Credit(fixtures.Buyer, maximum)
	})
	assert.Nil(t, err, "maximum")

	err = fixtures.Transact(t, func() error {
		return l.Credit(fixtures.Buyer, uint256.NewInt(1))
	})
	assert.Equal(t, fault.InvalidAmount, err, "overflow")
	assert.Equal(t, maximum, l.BalanceOf(fixtures.Buyer), "unchanged after overflow")
}

func TestTransferOverflowLeavesPayer(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	var buffer event.Buffer
	l := funds.New(storage.Pool.Funds, &buffer)

	maximum := new(uint256.Int).SetAllOne()
	err := fixtures.Transact(t, func() error {
		err := l.Credit(fixtures.Uploader, maximum)
		if nil != err {
			return err
		}
		return l.Credit(fixtures.Buyer, uint256.NewInt(1))
	})
	assert.Nil(t, err, "credit")

	buffer.Reset()
	err = fixtures.Transact(t, func() error {
		err := l.Transfer(fixtures.Buyer, fixtures.Uploader, uint256.NewInt(1))
		assert.Equal(t, uint64(1), l.BalanceOf(fixtures.Buyer).Uint64(), "payer untouched inside transaction")
		assert.Equal(t, maximum, l.BalanceOf(fixtures.Uploader), "payee untouched inside transaction")
		return err
	})
	assert.Equal(t, fault.InvalidAmount, err, "payee overflow")
	assert.Equal(t, uint64(1), l.BalanceOf(fixtures.Buyer).Uint64(), "payer unchanged")
	assert.Equal(t, maximum, l.BalanceOf(fixtures.Uploader), "payee unchanged")
	assert.Equal(t, 0, len(buffer.Pending()), "no event on overflow")
}
