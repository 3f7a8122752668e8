// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/attestation"
	"github.com/bitmark-inc/carbonmarkd/credit"
	"github.com/bitmark-inc/carbonmarkd/rpc/credits"
)

// MintData - the issuance a verifier is attesting to
type MintData struct {
	GsProjectID string
	GsSerial    string
	IpfsCID     string
	Amount      uint64
	Recipient   account.Address
}

// Mint - sign an attestation as the verifier and submit it
func (c *Client) Mint(verifier *account.PrivateKey, data *MintData) (*credits.MintReply, error) {
	var nonce credits.NonceReply
	err := c.call("Credits.Nonce", &credits.NonceArguments{Holder: data.Recipient}, &nonce)
	if nil != err {
		return nil, err
	}

	message := attestation.Message{
		GsProjectID: data.GsProjectID,
		GsSerial:    data.GsSerial,
		IpfsCID:     data.IpfsCID,
		Amount:      data.Amount,
		Recipient:   data.Recipient,
		Nonce:       nonce.Nonce,
	}
	signature, err := message.Sign(nonce.Domain, verifier)
	if nil != err {
		return nil, err
	}

	arguments := credits.MintArguments{
		GsProjectID: data.GsProjectID,
		GsSerial:    data.GsSerial,
		IpfsCID:     data.IpfsCID,
		Amount:      data.Amount,
		Recipient:   data.Recipient,
		Signature:   signature,
	}
	var reply credits.MintReply
	if err := c.call("Credits.Mint", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// SetApproval - signed operator delegation
func (c *Client) SetApproval(key *account.PrivateKey, operator account.Address, approved bool) (*credits.ApprovalReply, error) {
	call := credits.ApprovalCall{Operator: operator, Approved: approved}
	envelope, err := c.envelope(key, "Credits.SetApprovalForAll", call)
	if nil != err {
		return nil, err
	}
	var reply credits.ApprovalReply
	if err := c.call("Credits.SetApprovalForAll", &credits.ApprovalArguments{Call: call, Envelope: envelope}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// TransferCredits - signed credit transfer, from may differ from
// the signer when it is an approved operator
func (c *Client) TransferCredits(key *account.PrivateKey, call credits.TransferCall) (*credits.BalanceReply, error) {
	envelope, err := c.envelope(key, "Credits.TransferFrom", call)
	if nil != err {
		return nil, err
	}
	var reply credits.BalanceReply
	if err := c.call("Credits.TransferFrom", &credits.TransferArguments{Call: call, Envelope: envelope}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// BurnCredits - signed destruction of credits
func (c *Client) BurnCredits(key *account.PrivateKey, call credits.BurnCall) (*credits.BalanceReply, error) {
	envelope, err := c.envelope(key, "Credits.Burn", call)
	if nil != err {
		return nil, err
	}
	var reply credits.BalanceReply
	if err := c.call("Credits.Burn", &credits.BurnArguments{Call: call, Envelope: envelope}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// CreditBalance - credits of one class held by an address
func (c *Client) CreditBalance(holder account.Address, classID uint64) (*credits.BalanceReply, error) {
	var reply credits.BalanceReply
	if err := c.call("Credits.Balance", &credits.BalanceArguments{Holder: holder, ClassID: classID}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Class - metadata of a minted class
func (c *Client) Class(classID uint64) (*credit.Class, error) {
	var reply credit.Class
	if err := c.call("Credits.Class", &credits.ClassArguments{ClassID: classID}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
