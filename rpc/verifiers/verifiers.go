// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verifiers

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/rpc/ratelimit"
)

const (
	rateLimitVerifiers = 200
	rateBurstVerifiers = 100
)

// Verifiers - type for RPC calls
type Verifiers struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  *ledger.Engine
}

// New - create verifier RPC handler
func New(log *logger.L, engine *ledger.Engine) *Verifiers {
	return &Verifiers{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitVerifiers, rateBurstVerifiers),
		Engine:  engine,
	}
}

// ---

// ChangeCall - the signed part of an add or remove
type ChangeCall struct {
	Verifier account.Address `json:"verifier"`
}

// ChangeArguments - arguments for add or remove
type ChangeArguments struct {
	Call     ChangeCall       `json:"call"`
	Envelope *ledger.Envelope `json:"envelope"`
}

// ChangeReply - result of add or remove
type ChangeReply struct {
	Verifier account.Address `json:"verifier"`
	Active   bool            `json:"active"`
}

// Add - authority adds a verifier
func (v *Verifiers) Add(arguments *ChangeArguments, reply *ChangeReply) error {
	return v.change(ledger.OpAddVerifier, arguments, reply, v.Engine.AddVerifier)
}

// Remove - authority removes a verifier
func (v *Verifiers) Remove(arguments *ChangeArguments, reply *ChangeReply) error {
	return v.change(ledger.OpRemoveVerifier, arguments, reply, v.Engine.RemoveVerifier)
}

func (v *Verifiers) change(method string, arguments *ChangeArguments, reply *ChangeReply, apply func(ledger.Caller, account.Address) error) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	caller, err := ledger.SignedCall(arguments.Envelope, arguments.Call)
	if nil != err {
		return err
	}

	v.Log.Infof("%s: %s", method, arguments.Call.Verifier)

	err = apply(caller, arguments.Call.Verifier)
	if nil != err {
		return err
	}

	reply.Verifier = arguments.Call.Verifier
	reply.Active = ledger.OpAddVerifier == method
	return nil
}

// ---

// ListArguments - empty arguments for list
type ListArguments struct{}

// ListReply - the authority and current verifier set
type ListReply struct {
	Authority account.Address   `json:"authority"`
	Verifiers []account.Address `json:"verifiers"`
}

// List - the current verifier set
func (v *Verifiers) List(_ *ListArguments, reply *ListReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	return v.Engine.View(func(view *ledger.View) error {
		list, err := view.Verifiers.List()
		if nil != err {
			return err
		}
		reply.Authority = view.Verifiers.Authority()
		reply.Verifiers = list
		return nil
	})
}

// ---

// CheckArguments - address to check
type CheckArguments struct {
	Address account.Address `json:"address"`
}

// CheckReply - verifier status of the address
type CheckReply struct {
	IsVerifier bool `json:"isVerifier"`
}

// IsVerifier - check whether an address may attest
func (v *Verifiers) IsVerifier(arguments *CheckArguments, reply *CheckReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}

	return v.Engine.View(func(view *ledger.View) error {
		reply.IsVerifier = view.Verifiers.IsVerifier(arguments.Address)
		return nil
	})
}
