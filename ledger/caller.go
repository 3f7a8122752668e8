// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/attestation"
	"github.com/bitmark-inc/carbonmarkd/fault"
)

// Envelope - proof that signer authorised a single call
//
// Sequence must equal the signer's stored call sequence
type Envelope struct {
	Signer    account.Address   `json:"signer"`
	Sequence  uint64            `json:"sequence"`
	Signature account.Signature `json:"signature"`
}

// Caller - who is making a mutating call
//
// an in-process caller is trusted as given, a remote caller carries
// an envelope over the call payload
type Caller struct {
	address  account.Address
	envelope *Envelope
	payload  []byte
}

// Trusted - an in-process caller
func Trusted(address account.Address) Caller {
	return Caller{
		address: address,
	}
}

// Signed - a remote caller with its envelope and the exact signed payload
func Signed(envelope Envelope, payload []byte) Caller {
	return Caller{
		address:  envelope.Signer,
		envelope: &envelope,
		payload:  payload,
	}
}

// NewEnvelope - sign a call for submission
func NewEnvelope(domain attestation.Domain, key *account.PrivateKey, method string, sequence uint64, payload []byte) (Envelope, error) {
	call := attestation.Call{
		Method:   method,
		Payload:  payload,
		Sequence: sequence,
	}
	signature, err := call.Sign(domain, key)
	if nil != err {
		return Envelope{}, err
	}
	return Envelope{
		Signer:    key.Address(),
		Sequence:  sequence,
		Signature: signature,
	}, nil
}

// SignedCall - remote caller whose signed payload is the JSON of call
func SignedCall(envelope *Envelope, call interface{}) (Caller, error) {
	if nil == envelope {
		return Caller{}, fault.MissingParameters
	}
	payload, err := json.Marshal(call)
	if nil != err {
		return Caller{}, err
	}
	return Signed(*envelope, payload), nil
}

// SignCall - client side of SignedCall
func SignCall(domain attestation.Domain, key *account.PrivateKey, method string, sequence uint64, call interface{}) (Envelope, error) {
	payload, err := json.Marshal(call)
	if nil != err {
		return Envelope{}, err
	}
	return NewEnvelope(domain, key, method, sequence, payload)
}

// must be called inside the batch so the sequence advance commits or
// aborts with the operation
func (e *Engine) authenticate(method string, caller Caller) (account.Address, error) {
	if nil == caller.envelope {
		if caller.address.IsZero() {
			return account.Zero, fault.InvalidAddress
		}
		return caller.address, nil
	}

	call := attestation.Call{
		Method:   method,
		Payload:  caller.payload,
		Sequence: caller.envelope.Sequence,
	}
	signer, err := e.signatures.Recover(call.Digest(e.callDomain), caller.envelope.Signature)
	if nil != err || signer != caller.envelope.Signer {
		return account.Zero, fault.SignatureInvalid
	}

	key := signer[:]
	current, _ := e.sequences.GetN(key)
	if current != caller.envelope.Sequence {
		return account.Zero, fault.InvalidSequence
	}
	e.sequences.PutN(key, current+1)
	return signer, nil
}
