// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package attestation

import (
	"github.com/bitmark-inc/carbonmarkd/account"
)

const callType = "Call(string method,bytes payload,uint256 sequence)"

var callTypeHash = keccak([]byte(callType))

// Call - a ledger call authenticated by its signer
//
// payload is the canonical JSON of the call arguments and sequence
// must equal the signer's stored call sequence
type Call struct {
	Method   string `json:"method"`
	Payload  []byte `json:"payload"`
	Sequence uint64 `json:"sequence"`
}

// StructHash - hash of the typed call fields
func (c *Call) StructHash() Digest {
	return keccak(
		callTypeHash[:],
		encodeString(c.Method),
		encodeBytes(c.Payload),
		encodeUint(c.Sequence),
	)
}

// Digest - the value that is actually signed
func (c *Call) Digest(domain Domain) Digest {
	return typedDigest(domain.Separator(), c.StructHash())
}

// Sign - produce the caller signature for this call
func (c *Call) Sign(domain Domain, key *account.PrivateKey) (account.Signature, error) {
	digest := c.Digest(domain)
	return key.Sign(digest[:])
}
