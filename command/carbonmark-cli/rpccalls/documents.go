// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/document"
	"github.com/bitmark-inc/carbonmarkd/rpc/documents"
	"github.com/bitmark-inc/carbonmarkd/rpc/verifiers"
)

// RegisterDocument - signed document registration
func (c *Client) RegisterDocument(key *account.PrivateKey, registration document.Registration) (*documents.RegisterReply, error) {
	envelope, err := c.envelope(key, "Documents.Register", registration)
	if nil != err {
		return nil, err
	}
	var reply documents.RegisterReply
	if err := c.call("Documents.Register", &documents.RegisterArguments{Call: registration, Envelope: envelope}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// AttestDocument - signed attestation by a verifier
func (c *Client) AttestDocument(key *account.PrivateKey, id uint64) (*document.Document, error) {
	call := documents.AttestCall{ID: id}
	envelope, err := c.envelope(key, "Documents.Attest", call)
	if nil != err {
		return nil, err
	}
	var reply document.Document
	if err := c.call("Documents.Attest", &documents.AttestArguments{Call: call, Envelope: envelope}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Document - a single document by id
func (c *Client) Document(id uint64) (*document.Document, error) {
	var reply document.Document
	if err := c.call("Documents.Get", &documents.GetArguments{ID: id}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// DocumentByCID - a single document by content identifier
func (c *Client) DocumentByCID(cid string) (*document.Document, error) {
	var reply document.Document
	if err := c.call("Documents.ByCID", &documents.ByCIDArguments{CID: cid}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Documents - a page of documents filtered by status
func (c *Client) Documents(status string, start uint64, count int) (*documents.ListReply, error) {
	var reply documents.ListReply
	arguments := documents.ListArguments{
		Status: status,
		Start:  start,
		Count:  count,
	}
	if err := c.call("Documents.List", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// ChangeVerifier - signed Verifiers.Add or Verifiers.Remove
func (c *Client) ChangeVerifier(key *account.PrivateKey, method string, verifier account.Address) (*verifiers.ChangeReply, error) {
	call := verifiers.ChangeCall{Verifier: verifier}
	envelope, err := c.envelope(key, method, call)
	if nil != err {
		return nil, err
	}
	var reply verifiers.ChangeReply
	if err := c.call(method, &verifiers.ChangeArguments{Call: call, Envelope: envelope}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Verifiers - the authority and current verifier set
func (c *Client) Verifiers() (*verifiers.ListReply, error) {
	var reply verifiers.ListReply
	if err := c.call("Verifiers.List", &verifiers.ListArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
