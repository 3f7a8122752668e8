// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package credits

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/attestation"
	"github.com/bitmark-inc/carbonmarkd/credit"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/rpc/ratelimit"
)

const (
	rateLimitCredits = 200
	rateBurstCredits = 100
)

// Credits - type for RPC calls
type Credits struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  *ledger.Engine
}

// New - create credit RPC handler
func New(log *logger.L, engine *ledger.Engine) *Credits {
	return &Credits{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitCredits, rateBurstCredits),
		Engine:  engine,
	}
}

// ---

// MintArguments - an attestation message with the verifier signature
//
// anyone may relay it, the signature is the authorisation
type MintArguments struct {
	GsProjectID string            `json:"gsProjectId"`
	GsSerial    string            `json:"gsSerial"`
	IpfsCID     string            `json:"ipfsCid"`
	Amount      uint64            `json:"amount"`
	Recipient   account.Address   `json:"recipient"`
	Signature   account.Signature `json:"signature"`
}

// MintReply - the new class
type MintReply struct {
	ClassID uint64 `json:"classId"`
}

// Mint - issue a class under a verifier attestation
func (c *Credits) Mint(arguments *MintArguments, reply *MintReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	classID, err := c.Engine.Mint(
		arguments.GsProjectID,
		arguments.GsSerial,
		arguments.IpfsCID,
		arguments.Amount,
		arguments.Recipient,
		arguments.Signature,
	)
	if nil != err {
		return err
	}

	c.Log.Infof("minted class: %d  project: %s  serial: %s  amount: %d", classID, arguments.GsProjectID, arguments.GsSerial, arguments.Amount)
	reply.ClassID = classID
	return nil
}

// ---

// ApprovalCall - the signed part of a delegation change
type ApprovalCall struct {
	Operator account.Address `json:"operator"`
	Approved bool            `json:"approved"`
}

// ApprovalArguments - a signed delegation change
type ApprovalArguments struct {
	Call     ApprovalCall     `json:"call"`
	Envelope *ledger.Envelope `json:"envelope"`
}

// ApprovalReply - delegation state after the call
type ApprovalReply struct {
	Approved bool `json:"approved"`
}

// SetApprovalForAll - grant or revoke an operator over all classes
func (c *Credits) SetApprovalForAll(arguments *ApprovalArguments, reply *ApprovalReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	caller, err := ledger.SignedCall(arguments.Envelope, arguments.Call)
	if nil != err {
		return err
	}

	err = c.Engine.SetApprovalForAll(caller, arguments.Call.Operator, arguments.Call.Approved)
	if nil != err {
		return err
	}
	reply.Approved = arguments.Call.Approved
	return nil
}

// ---

// TransferCall - the signed part of a transfer
type TransferCall struct {
	From    account.Address `json:"from"`
	To      account.Address `json:"to"`
	ClassID uint64          `json:"classId"`
	Amount  uint64          `json:"amount"`
}

// TransferArguments - a signed transfer
type TransferArguments struct {
	Call     TransferCall     `json:"call"`
	Envelope *ledger.Envelope `json:"envelope"`
}

// BalanceReply - a holder's balance of one class
type BalanceReply struct {
	Balance uint64 `json:"balance"`
}

// TransferFrom - move credits the caller holds or is delegated
//
// the reply is the sender's remaining balance
func (c *Credits) TransferFrom(arguments *TransferArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	caller, err := ledger.SignedCall(arguments.Envelope, arguments.Call)
	if nil != err {
		return err
	}

	call := arguments.Call
	err = c.Engine.TransferCredits(caller, call.From, call.To, call.ClassID, call.Amount)
	if nil != err {
		return err
	}
	return c.balance(call.From, call.ClassID, reply)
}

// ---

// BurnCall - the signed part of a burn
type BurnCall struct {
	From    account.Address `json:"from"`
	ClassID uint64          `json:"classId"`
	Amount  uint64          `json:"amount"`
}

// BurnArguments - a signed burn
type BurnArguments struct {
	Call     BurnCall         `json:"call"`
	Envelope *ledger.Envelope `json:"envelope"`
}

// Burn - destroy credits the caller holds or is delegated
//
// the reply is the holder's remaining balance
func (c *Credits) Burn(arguments *BurnArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	caller, err := ledger.SignedCall(arguments.Envelope, arguments.Call)
	if nil != err {
		return err
	}

	call := arguments.Call
	err = c.Engine.BurnCredits(caller, call.From, call.ClassID, call.Amount)
	if nil != err {
		return err
	}
	return c.balance(call.From, call.ClassID, reply)
}

// ---

// BalanceArguments - holder and class
type BalanceArguments struct {
	Holder  account.Address `json:"holder"`
	ClassID uint64          `json:"classId"`
}

// Balance - credits of a class held by an address
func (c *Credits) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}
	return c.balance(arguments.Holder, arguments.ClassID, reply)
}

func (c *Credits) balance(holder account.Address, classID uint64, reply *BalanceReply) error {
	return c.Engine.View(func(v *ledger.View) error {
		reply.Balance = v.Credits.BalanceOf(holder, classID)
		return nil
	})
}

// ---

// ClassArguments - a class id
type ClassArguments struct {
	ClassID uint64 `json:"classId"`
}

// Class - provenance and supply of a class
func (c *Credits) Class(arguments *ClassArguments, reply *credit.Class) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}
	return c.Engine.View(func(v *ledger.View) error {
		class, err := v.Credits.Class(arguments.ClassID)
		if nil != err {
			return err
		}
		*reply = *class
		return nil
	})
}

// ---

// NonceArguments - an attestation recipient
type NonceArguments struct {
	Holder account.Address `json:"holder"`
}

// NonceReply - what a verifier needs to sign the next attestation
type NonceReply struct {
	Nonce  uint64             `json:"nonce"`
	Domain attestation.Domain `json:"domain"`
}

// Nonce - the nonce the next attestation for holder must carry
func (c *Credits) Nonce(arguments *NonceArguments, reply *NonceReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}
	return c.Engine.View(func(v *ledger.View) error {
		reply.Nonce = v.Credits.NonceOf(arguments.Holder)
		reply.Domain = v.Credits.Domain()
		return nil
	})
}

// ---

// IsApprovedArguments - holder and operator
type IsApprovedArguments struct {
	Holder   account.Address `json:"holder"`
	Operator account.Address `json:"operator"`
}

// IsApprovedForAll - whether operator may move the holder's credits
func (c *Credits) IsApprovedForAll(arguments *IsApprovedArguments, reply *ApprovalReply) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}
	return c.Engine.View(func(v *ledger.View) error {
		reply.Approved = v.Credits.IsApprovedForAll(arguments.Holder, arguments.Operator)
		return nil
	})
}
