// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package event - ledger event kinds, payloads and history
package event

import (
	"github.com/bitmark-inc/carbonmarkd/account"
)

// Kind - name of an event
type Kind string

// all event kinds
const (
	VerifierAdded      Kind = "verifier-added"
	VerifierRemoved    Kind = "verifier-removed"
	DocumentRegistered Kind = "document-registered"
	DocumentAttested   Kind = "document-attested"
	CreditsIssued      Kind = "credits-issued"
	ApprovalForAll     Kind = "approval-for-all"
	CreditsTransferred Kind = "credits-transferred"
	CreditsBurned      Kind = "credits-burned"
	ListingCreated     Kind = "listing-created"
	ListingFilled      Kind = "listing-filled"
	CreditsRetired     Kind = "credits-retired"
	CertificateMinted  Kind = "certificate-minted"
	FundsCredited      Kind = "funds-credited"
	FundsTransferred   Kind = "funds-transferred"
)

// Sink - receives events produced while a call is in progress
type Sink interface {
	Emit(kind Kind, payload interface{})
}

// Pending - an event not yet committed
type Pending struct {
	Kind    Kind
	Payload interface{}
}

// Buffer - collects the events of a single call
type Buffer struct {
	pending []Pending
}

// Emit - append an event to the buffer
func (b *Buffer) Emit(kind Kind, payload interface{}) {
	b.pending = append(b.pending, Pending{
		Kind:    kind,
		Payload: payload,
	})
}

// Pending - events in emit order
func (b *Buffer) Pending() []Pending {
	return b.pending
}

// Reset - drop all buffered events
func (b *Buffer) Reset() {
	b.pending = nil
}

// Verifier - payload of verifier-added and verifier-removed
type Verifier struct {
	Verifier  account.Address `json:"verifier"`
	Authority account.Address `json:"authority"`
}

// Document - payload of document-registered
type Document struct {
	ID          uint64          `json:"id"`
	CID         string          `json:"cid"`
	Uploader    account.Address `json:"uploader"`
	ProjectName string          `json:"projectName"`
}

// Attested - payload of document-attested
type Attested struct {
	ID         uint64          `json:"id"`
	Verifier   account.Address `json:"verifier"`
	AttestedAt int64           `json:"attestedAt"`
}

// Issued - payload of credits-issued
type Issued struct {
	ClassID     uint64          `json:"classId"`
	GsProjectID string          `json:"gsProjectId"`
	GsSerial    string          `json:"gsSerial"`
	CID         string          `json:"cid"`
	Verifier    account.Address `json:"verifier"`
	Recipient   account.Address `json:"recipient"`
	Amount      uint64          `json:"amount"`
}

// Approval - payload of approval-for-all
type Approval struct {
	Holder   account.Address `json:"holder"`
	Operator account.Address `json:"operator"`
	Approved bool            `json:"approved"`
}

// Transfer - payload of credits-transferred
type Transfer struct {
	Operator account.Address `json:"operator"`
	From     account.Address `json:"from"`
	To       account.Address `json:"to"`
	ClassID  uint64          `json:"classId"`
	Amount   uint64          `json:"amount"`
}

// Burn - payload of credits-burned
type Burn struct {
	Operator account.Address `json:"operator"`
	From     account.Address `json:"from"`
	ClassID  uint64          `json:"classId"`
	Amount   uint64          `json:"amount"`
}

// Listed - payload of listing-created
type Listed struct {
	ListingID    uint64          `json:"listingId"`
	Seller       account.Address `json:"seller"`
	ClassID      uint64          `json:"classId"`
	Amount       uint64          `json:"amount"`
	PricePerUnit string          `json:"pricePerUnit"`
}

// Filled - payload of listing-filled
type Filled struct {
	ListingID uint64          `json:"listingId"`
	Buyer     account.Address `json:"buyer"`
	Seller    account.Address `json:"seller"`
	ClassID   uint64          `json:"classId"`
	Amount    uint64          `json:"amount"`
	Value     string          `json:"value"`
	Fee       string          `json:"fee"`
	Remaining uint64          `json:"remaining"`
}

// Retired - payload of credits-retired
type Retired struct {
	Holder        account.Address `json:"holder"`
	ClassID       uint64          `json:"classId"`
	Amount        uint64          `json:"amount"`
	CertificateID uint64          `json:"certificateId"`
}

// Certificate - payload of certificate-minted
type Certificate struct {
	CertificateID   uint64          `json:"certificateId"`
	Owner           account.Address `json:"owner"`
	MetadataPointer string          `json:"metadataPointer"`
}

// Funds - payload of funds-credited and funds-transferred
type Funds struct {
	From  account.Address `json:"from"`
	To    account.Address `json:"to"`
	Value string          `json:"value"`
}
