// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/attestation"
	"github.com/bitmark-inc/carbonmarkd/counter"
	"github.com/bitmark-inc/carbonmarkd/event"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/mode"
	"github.com/bitmark-inc/carbonmarkd/rpc/ratelimit"
	"github.com/bitmark-inc/carbonmarkd/util"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100

	// faucet calls are expensive for a shared testing chain
	rateLimitFaucet = 1
	rateBurstFaucet = 10
)

// limit for count
const maximumEventCount = 100

// Node - type for RPC calls
type Node struct {
	Log           *logger.L
	Limiter       *rate.Limiter
	FaucetLimiter *rate.Limiter
	Start         time.Time
	Version       string
	PublisherKey  string
	Engine        *ledger.Engine
	counter       *counter.Counter
}

// New - create node RPC handler
//
// publisherKey is the hex public key of the event publisher, empty when
// publishing is disabled
func New(log *logger.L, engine *ledger.Engine, start time.Time, version string, counter *counter.Counter, publisherKey string) *Node {
	return &Node{
		Log:           log,
		Limiter:       rate.NewLimiter(rateLimitNode, rateBurstNode),
		FaucetLimiter: rate.NewLimiter(rateLimitFaucet, rateBurstFaucet),
		Start:         start,
		Version:       version,
		PublisherKey:  publisherKey,
		Engine:        engine,
		counter:       counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain        string             `json:"chain"`
	Mode         string             `json:"mode"`
	RPCs         uint64             `json:"rpcs"`
	Events       uint64             `json:"events"`
	CallDomain   attestation.Domain `json:"callDomain"`
	CreditDomain attestation.Domain `json:"creditDomain"`
	Version      string             `json:"version"`
	Uptime       string             `json:"uptime"`
	PublicKey    string             `json:"publicKey"`
}

// Info - return some information about this node
//
// the domains are what a client needs to sign calls and attestations
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.RPCs = node.counter.Uint64()
	reply.CallDomain = node.Engine.CallDomain()
	reply.CreditDomain = node.Engine.CreditDomain()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.PublicKey = node.PublisherKey

	return node.Engine.View(func(v *ledger.View) error {
		reply.Events = v.Events.Latest()
		return nil
	})
}

// ---

// SequenceArguments - a signer
type SequenceArguments struct {
	Address account.Address `json:"address"`
}

// SequenceReply - the sequence the next signed call must carry
type SequenceReply struct {
	Sequence uint64 `json:"sequence"`
}

// Sequence - next call sequence of a signer
func (node *Node) Sequence(arguments *SequenceArguments, reply *SequenceReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}
	reply.Sequence = node.Engine.CallSequence(arguments.Address)
	return nil
}

// ---

// EventsArguments - page through the event history
type EventsArguments struct {
	Start uint64 `json:"start"`
	Count int    `json:"count"`
}

// EventsReply - a page of events in sequence order
type EventsReply struct {
	Events    []event.Record `json:"events"`
	NextStart uint64         `json:"nextStart"`
}

// Events - committed events from sequence Start
func (node *Node) Events(arguments *EventsArguments, reply *EventsReply) error {
	if err := ratelimit.LimitN(node.Limiter, arguments.Count, maximumEventCount); nil != err {
		return err
	}

	start := arguments.Start
	if 0 == start {
		start = 1
	}
	return node.Engine.View(func(v *ledger.View) error {
		records, err := v.Events.Range(start, arguments.Count)
		if nil != err {
			return err
		}
		reply.Events = records
		reply.NextStart = start
		if n := len(records); n > 0 {
			reply.NextStart = records[n-1].Sequence + 1
		}
		return nil
	})
}

// ---

// FaucetArguments - fund an address on a testing chain
type FaucetArguments struct {
	To    account.Address `json:"to"`
	Value string          `json:"value"`
}

// FaucetReply - balance after funding
type FaucetReply struct {
	Balance string `json:"balance"`
}

// Faucet - create value, testing chains only
func (node *Node) Faucet(arguments *FaucetArguments, reply *FaucetReply) error {
	if err := ratelimit.Limit(node.FaucetLimiter); nil != err {
		return err
	}

	value, err := util.ParseValue(arguments.Value)
	if nil != err {
		return err
	}

	err = node.Engine.Faucet(arguments.To, value)
	if nil != err {
		return err
	}

	node.Log.Infof("faucet: %s to: %s", value.Dec(), arguments.To)
	return node.Engine.View(func(v *ledger.View) error {
		reply.Balance = v.Funds.BalanceOf(arguments.To).Dec()
		return nil
	})
}
