// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package credit - per class fungible credit balances
//
// credits only come into existence through Mint, which requires an
// attestation signed by a registered verifier.  Each successful mint
// creates a new class, even for evidence that was minted before.
package credit

import (
	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/attestation"
	"github.com/bitmark-inc/carbonmarkd/event"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/storage"
	"github.com/bitmark-inc/carbonmarkd/verifier"
)

const counterName = "class"

var approved = []byte{0x01}

// Handles - pools used by the ledger
type Handles struct {
	Classes     storage.Handle
	Balances    storage.Handle
	Nonces      storage.Handle
	Delegations storage.Handle
	Counters    storage.Handle
}

// Ledger - credit classes and balances
type Ledger struct {
	pools      Handles
	domain     attestation.Domain
	verifiers  verifier.Checker
	signatures attestation.SignatureVerifier
	sink       event.Sink
}

// New - create a credit ledger bound to a signing domain
func New(pools Handles, domain attestation.Domain, verifiers verifier.Checker, signatures attestation.SignatureVerifier, sink event.Sink) *Ledger {
	return &Ledger{
		pools:      pools,
		domain:     domain,
		verifiers:  verifiers,
		signatures: signatures,
		sink:       sink,
	}
}

// Domain - the domain attestations must be signed in
func (l *Ledger) Domain() attestation.Domain {
	return l.domain
}

// Mint - issue a new class to recipient under a verifier attestation
//
// every signature or verifier failure is reported as SignatureInvalid
func (l *Ledger) Mint(gsProjectID string, gsSerial string, cid string, amount uint64, recipient account.Address, signature account.Signature) (uint64, error) {
	if 0 == amount {
		return 0, fault.InvalidAmount
	}
	if recipient.IsZero() {
		return 0, fault.InvalidAddress
	}

	nonce := l.NonceOf(recipient)
	m := attestation.Message{
		GsProjectID: gsProjectID,
		GsSerial:    gsSerial,
		IpfsCID:     cid,
		Amount:      amount,
		Recipient:   recipient,
		Nonce:       nonce,
	}
	signer, err := l.signatures.Recover(m.Digest(l.domain), signature)
	if nil != err || !l.verifiers.IsVerifier(signer) {
		return 0, fault.SignatureInvalid
	}

	classID := storage.NextCount(l.pools.Counters, counterName)
	c := &Class{
		ClassID:     classID,
		GsProjectID: gsProjectID,
		GsSerial:    gsSerial,
		CID:         cid,
		Verifier:    signer,
		Issued:      amount,
		TotalSupply: amount,
	}
	l.pools.Classes.Put(idKey(classID), c.pack())
	l.pools.Balances.PutN(balanceKey(recipient, classID), amount)
	l.pools.Nonces.PutN(recipient[:], nonce+1)

	l.sink.Emit(event.CreditsIssued, event.Issued{
		ClassID:     classID,
		GsProjectID: gsProjectID,
		GsSerial:    gsSerial,
		CID:         cid,
		Verifier:    signer,
		Recipient:   recipient,
		Amount:      amount,
	})
	return classID, nil
}

// NonceOf - the nonce the next attestation for holder must carry
func (l *Ledger) NonceOf(holder account.Address) uint64 {
	n, _ := l.pools.Nonces.GetN(holder[:])
	return n
}

// BalanceOf - credits of a class held by holder
func (l *Ledger) BalanceOf(holder account.Address, classID uint64) uint64 {
	n, _ := l.pools.Balances.GetN(balanceKey(holder, classID))
	return n
}

// Class - provenance and supply of a class
func (l *Ledger) Class(classID uint64) (*Class, error) {
	buffer := l.pools.Classes.Get(idKey(classID))
	if nil == buffer {
		return nil, fault.NotFound
	}
	return unpackClass(classID, buffer)
}

// TotalSupply - outstanding credits of a class, zero for an unknown class
func (l *Ledger) TotalSupply(classID uint64) uint64 {
	c, err := l.Class(classID)
	if nil != err {
		return 0
	}
	return c.TotalSupply
}

// MetadataPointer - content identifier of the evidence behind a class
func (l *Ledger) MetadataPointer(classID uint64) (string, error) {
	c, err := l.Class(classID)
	if nil != err {
		return "", err
	}
	return c.CID, nil
}

// TotalClasses - number of classes ever minted
func (l *Ledger) TotalClasses() uint64 {
	return storage.CurrentCount(l.pools.Counters, counterName)
}

// SetApprovalForAll - grant or revoke a standing delegation over all classes
func (l *Ledger) SetApprovalForAll(holder account.Address, operator account.Address, approve bool) error {
	if operator.IsZero() || holder == operator {
		return fault.InvalidAddress
	}
	key := delegationKey(holder, operator)
	if approve {
		l.pools.Delegations.Put(key, approved)
	} else {
		l.pools.Delegations.Delete(key)
	}
	l.sink.Emit(event.ApprovalForAll, event.Approval{
		Holder:   holder,
		Operator: operator,
		Approved: approve,
	})
	return nil
}

// IsApprovedForAll - true if operator may move holder's credits
func (l *Ledger) IsApprovedForAll(holder account.Address, operator account.Address) bool {
	return l.pools.Delegations.Has(delegationKey(holder, operator))
}

func (l *Ledger) authorised(operator account.Address, from account.Address) bool {
	return operator == from || l.IsApprovedForAll(from, operator)
}

// TransferFrom - move credits between holders
func (l *Ledger) TransferFrom(operator account.Address, from account.Address, to account.Address, classID uint64, amount uint64) error {
	if 0 == amount {
		return fault.InvalidAmount
	}
	if to.IsZero() {
		return fault.InvalidAddress
	}
	if !l.authorised(operator, from) {
		return fault.NotAuthorised
	}
	balance := l.BalanceOf(from, classID)
	if balance < amount {
		return fault.InsufficientBalance
	}
	if from != to {
		l.pools.Balances.PutN(balanceKey(from, classID), balance-amount)
		l.pools.Balances.PutN(balanceKey(to, classID), l.BalanceOf(to, classID)+amount)
	}
	l.sink.Emit(event.CreditsTransferred, event.Transfer{
		Operator: operator,
		From:     from,
		To:       to,
		ClassID:  classID,
		Amount:   amount,
	})
	return nil
}

// Burn - destroy credits and reduce the class supply
func (l *Ledger) Burn(operator account.Address, from account.Address, classID uint64, amount uint64) error {
	if 0 == amount {
		return fault.InvalidAmount
	}
	if !l.authorised(operator, from) {
		return fault.NotAuthorised
	}
	balance := l.BalanceOf(from, classID)
	if balance < amount {
		return fault.InsufficientBalance
	}
	c, err := l.Class(classID)
	if nil != err {
		return err
	}
	c.TotalSupply -= amount
	l.pools.Classes.Put(idKey(classID), c.pack())
	l.pools.Balances.PutN(balanceKey(from, classID), balance-amount)

	l.sink.Emit(event.CreditsBurned, event.Burn{
		Operator: operator,
		From:     from,
		ClassID:  classID,
		Amount:   amount,
	})
	return nil
}
