// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - engine and signing helpers for the RPC service tests
package fixtures

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/attestation"
	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/ledger"
)

// ChainID - chain of the test engine
const ChainID = 1337

// FeeRecipient - receives the test marketplace fees
var FeeRecipient = account.Derive("carbonmark:test-fees")

// Setup - logger, in-memory storage and a testing chain engine
func Setup(t *testing.T) (*logger.L, *ledger.Engine) {
	fixtures.SetupStorage(t)

	e, err := ledger.New(ledger.Configuration{
		ChainID:      ChainID,
		Testing:      true,
		Authority:    fixtures.Authority,
		FeeRecipient: FeeRecipient,
		FeeBps:       250,
		Clock: func() time.Time {
			return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		},
	})
	if nil != err {
		t.Fatalf("engine error: %s", err)
	}
	return logger.New(fixtures.LogCategory), e
}

// Teardown - release storage and logger
func Teardown() {
	fixtures.TeardownStorage()
}

// Envelope - sign call as key with its current sequence
func Envelope(t *testing.T, e *ledger.Engine, key *account.PrivateKey, method string, call interface{}) *ledger.Envelope {
	envelope, err := ledger.SignCall(e.CallDomain(), key, method, e.CallSequence(key.Address()), call)
	if nil != err {
		t.Fatalf("sign call error: %s", err)
	}
	return &envelope
}

// Attestation - a verifier signature over a mint message
func Attestation(t *testing.T, e *ledger.Engine, key *account.PrivateKey, message attestation.Message) account.Signature {
	signature, err := message.Sign(e.CreditDomain(), key)
	if nil != err {
		t.Fatalf("sign attestation error: %s", err)
	}
	return signature
}
