// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funds

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/rpc/ratelimit"
	"github.com/bitmark-inc/carbonmarkd/util"
)

const (
	rateLimitFunds = 200
	rateBurstFunds = 100
)

// Funds - type for RPC calls
type Funds struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  *ledger.Engine
}

// New - create funds RPC handler
func New(log *logger.L, engine *ledger.Engine) *Funds {
	return &Funds{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitFunds, rateBurstFunds),
		Engine:  engine,
	}
}

// ---

// BalanceArguments - an address
type BalanceArguments struct {
	Address account.Address `json:"address"`
}

// BalanceReply - value as a decimal string
type BalanceReply struct {
	Balance string `json:"balance"`
}

// Balance - value held by an address
func (f *Funds) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}
	return f.balance(arguments.Address, reply)
}

func (f *Funds) balance(address account.Address, reply *BalanceReply) error {
	return f.Engine.View(func(v *ledger.View) error {
		reply.Balance = v.Funds.BalanceOf(address).Dec()
		return nil
	})
}

// ---

// TransferCall - the signed part of a value transfer
type TransferCall struct {
	To    account.Address `json:"to"`
	Value string          `json:"value"`
}

// TransferArguments - a signed value transfer
type TransferArguments struct {
	Call     TransferCall     `json:"call"`
	Envelope *ledger.Envelope `json:"envelope"`
}

// Transfer - send value, the reply is the sender's remaining balance
func (f *Funds) Transfer(arguments *TransferArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}

	value, err := util.ParseValue(arguments.Call.Value)
	if nil != err {
		return err
	}

	caller, err := ledger.SignedCall(arguments.Envelope, arguments.Call)
	if nil != err {
		return err
	}

	err = f.Engine.TransferFunds(caller, arguments.Call.To, value)
	if nil != err {
		return err
	}

	f.Log.Infof("transfer: %s to: %s", value.Dec(), arguments.Call.To)
	return f.balance(arguments.Envelope.Signer, reply)
}
