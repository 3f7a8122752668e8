// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package credits_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carbonmarkd/attestation"
	"github.com/bitmark-inc/carbonmarkd/credit"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/rpc/credits"
	rpcfixtures "github.com/bitmark-inc/carbonmarkd/rpc/fixtures"
)

func newCredits(t *testing.T) (*credits.Credits, *ledger.Engine) {
	log, e := rpcfixtures.Setup(t)
	err := e.AddVerifier(ledger.Trusted(fixtures.Authority), fixtures.Verifier)
	if nil != err {
		t.Fatalf("add verifier error: %s", err)
	}
	return credits.New(log, e), e
}

func mint(t *testing.T, c *credits.Credits, e *ledger.Engine, serial string, amount uint64) (uint64, credits.MintArguments) {
	var nonce credits.NonceReply
	err := c.Nonce(&credits.NonceArguments{Holder: fixtures.Uploader}, &nonce)
	assert.Nil(t, err, "wrong Nonce")

	m := attestation.Message{
		GsProjectID: "GS1",
		GsSerial:    serial,
		IpfsCID:     "Qm1",
		Amount:      amount,
		Recipient:   fixtures.Uploader,
		Nonce:       nonce.Nonce,
	}
	arg := credits.MintArguments{
		GsProjectID: m.GsProjectID,
		GsSerial:    m.GsSerial,
		IpfsCID:     m.IpfsCID,
		Amount:      m.Amount,
		Recipient:   m.Recipient,
		Signature:   rpcfixtures.Attestation(t, e, fixtures.VerifierKey, m),
	}
	var reply credits.MintReply
	err = c.Mint(&arg, &reply)
	assert.Nil(t, err, "wrong Mint")
	return reply.ClassID, arg
}

func TestMint(t *testing.T) {
	c, e := newCredits(t)
	defer rpcfixtures.Teardown()

	classID, arg := mint(t, c, e, "S1", 100)
	assert.Equal(t, uint64(1), classID, "wrong class")

	var reply credits.MintReply
	err := c.Mint(&arg, &reply)
	assert.Equal(t, fault.SignatureInvalid, err, "attestation replayed")

	var nonce credits.NonceReply
	_ = c.Nonce(&credits.NonceArguments{Holder: fixtures.Uploader}, &nonce)
	assert.Equal(t, uint64(1), nonce.Nonce, "nonce not advanced")
	assert.Equal(t, e.CreditDomain(), nonce.Domain, "wrong domain")

	var class credit.Class
	err = c.Class(&credits.ClassArguments{ClassID: classID}, &class)
	assert.Nil(t, err, "wrong Class")
	assert.Equal(t, "GS1", class.GsProjectID, "wrong project")
	assert.Equal(t, "S1", class.GsSerial, "wrong serial")
	assert.Equal(t, fixtures.Verifier, class.Verifier, "wrong verifier")
	assert.Equal(t, uint64(100), class.TotalSupply, "wrong supply")

	var balance credits.BalanceReply
	err = c.Balance(&credits.BalanceArguments{Holder: fixtures.Uploader, ClassID: classID}, &balance)
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, uint64(100), balance.Balance, "wrong balance")

	err = c.Class(&credits.ClassArguments{ClassID: 5}, &class)
	assert.Equal(t, fault.NotFound, err, "missing class found")
}

func TestTransferAndBurn(t *testing.T) {
	c, e := newCredits(t)
	defer rpcfixtures.Teardown()

	classID, _ := mint(t, c, e, "S1", 100)

	transfer := credits.TransferCall{From: fixtures.Uploader, To: fixtures.Buyer, ClassID: classID, Amount: 30}

	// stranger has no delegation
	var balance credits.BalanceReply
	err := c.TransferFrom(&credits.TransferArguments{
		Call:     transfer,
		Envelope: rpcfixtures.Envelope(t, e, fixtures.StrangerKey, ledger.OpTransferCredits, transfer),
	}, &balance)
	assert.Equal(t, fault.NotAuthorised, err, "stranger transferred")

	approve := credits.ApprovalCall{Operator: fixtures.Stranger, Approved: true}
	var approval credits.ApprovalReply
	err = c.SetApprovalForAll(&credits.ApprovalArguments{
		Call:     approve,
		Envelope: rpcfixtures.Envelope(t, e, fixtures.UploaderKey, ledger.OpSetApprovalForAll, approve),
	}, &approval)
	assert.Nil(t, err, "wrong SetApprovalForAll")
	assert.True(t, approval.Approved, "not approved")

	err = c.IsApprovedForAll(&credits.IsApprovedArguments{Holder: fixtures.Uploader, Operator: fixtures.Stranger}, &approval)
	assert.Nil(t, err, "wrong IsApprovedForAll")
	assert.True(t, approval.Approved, "delegation not stored")

	err = c.TransferFrom(&credits.TransferArguments{
		Call:     transfer,
		Envelope: rpcfixtures.Envelope(t, e, fixtures.StrangerKey, ledger.OpTransferCredits, transfer),
	}, &balance)
	assert.Nil(t, err, "wrong TransferFrom")
	assert.Equal(t, uint64(70), balance.Balance, "wrong sender balance")

	burn := credits.BurnCall{From: fixtures.Buyer, ClassID: classID, Amount: 31}
	err = c.Burn(&credits.BurnArguments{
		Call:     burn,
		Envelope: rpcfixtures.Envelope(t, e, fixtures.BuyerKey, ledger.OpBurnCredits, burn),
	}, &balance)
	assert.Equal(t, fault.InsufficientBalance, err, "overdrawn burn")

	burn.Amount = 10
	err = c.Burn(&credits.BurnArguments{
		Call:     burn,
		Envelope: rpcfixtures.Envelope(t, e, fixtures.BuyerKey, ledger.OpBurnCredits, burn),
	}, &balance)
	assert.Nil(t, err, "wrong Burn")
	assert.Equal(t, uint64(20), balance.Balance, "wrong remaining balance")

	var class credit.Class
	_ = c.Class(&credits.ClassArguments{ClassID: classID}, &class)
	assert.Equal(t, uint64(90), class.TotalSupply, "wrong supply after burn")
	assert.Equal(t, uint64(100), class.Issued, "issued changed")
}
