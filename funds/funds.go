// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package funds - native value balances used to pay for credits
package funds

import (
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/event"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/storage"
)

// Ledger - value balances
type Ledger struct {
	pool storage.Handle
	sink event.Sink
}

// New - create a funds ledger
func New(pool storage.Handle, sink event.Sink) *Ledger {
	return &Ledger{
		pool: pool,
		sink: sink,
	}
}

// BalanceOf - value held by an address
func (l *Ledger) BalanceOf(address account.Address) *uint256.Int {
	buffer := l.pool.Get(address[:])
	if nil == buffer {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).SetBytes(buffer)
}

func (l *Ledger) put(address account.Address, value *uint256.Int) {
	if value.IsZero() {
		l.pool.Delete(address[:])
		return
	}
	b := value.Bytes32()
	l.pool.Put(address[:], b[:])
}

// Credit - create value, only for genesis allocation and test faucets
func (l *Ledger) Credit(to account.Address, value *uint256.Int) error {
	if to.IsZero() {
		return fault.InvalidAddress
	}
	if nil == value || value.IsZero() {
		return fault.InvalidAmount
	}
	balance, overflow := new(uint256.Int).AddOverflow(l.BalanceOf(to), value)
	if overflow {
		return fault.InvalidAmount
	}
	l.put(to, balance)
	l.sink.Emit(event.FundsCredited, event.Funds{
		To:    to,
		Value: value.Dec(),
	})
	return nil
}

// Transfer - move value between addresses
//
// a zero value succeeds without any change
func (l *Ledger) Transfer(from account.Address, to account.Address, value *uint256.Int) error {
	if nil == value {
		return fault.InvalidAmount
	}
	if value.IsZero() {
		return nil
	}
	if to.IsZero() {
		return fault.InvalidAddress
	}
	balance := l.BalanceOf(from)
	if balance.Lt(value) {
		return fault.InsufficientFunds
	}
	if from != to {
		received, overflow := new(uint256.Int).AddOverflow(l.BalanceOf(to), value)
		if overflow {
			return fault.InvalidAmount
		}
		l.put(from, new(uint256.Int).Sub(balance, value))
		l.put(to, received)
	}
	l.sink.Emit(event.FundsTransferred, event.Funds{
		From:  from,
		To:    to,
		Value: value.Dec(),
	})
	return nil
}
