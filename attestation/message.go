// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package attestation

import (
	"github.com/bitmark-inc/carbonmarkd/account"
)

const messageType = "Attestation(string gsProjectId,string gsSerial,string ipfsCid,uint256 amount,address recipient,uint256 nonce)"

var messageTypeHash = keccak([]byte(messageType))

// Message - the statement a verifier signs to authorise issuance
type Message struct {
	GsProjectID string          `json:"gsProjectId"`
	GsSerial    string          `json:"gsSerial"`
	IpfsCID     string          `json:"ipfsCid"`
	Amount      uint64          `json:"amount"`
	Recipient   account.Address `json:"recipient"`
	Nonce       uint64          `json:"nonce"`
}

// StructHash - hash of the typed message fields
func (m *Message) StructHash() Digest {
	return keccak(
		messageTypeHash[:],
		encodeString(m.GsProjectID),
		encodeString(m.GsSerial),
		encodeString(m.IpfsCID),
		encodeUint(m.Amount),
		encodeAddress(m.Recipient),
		encodeUint(m.Nonce),
	)
}

// Digest - the value that is actually signed
func (m *Message) Digest(domain Domain) Digest {
	return typedDigest(domain.Separator(), m.StructHash())
}

// Sign - produce the verifier signature for this message
func (m *Message) Sign(domain Domain, key *account.PrivateKey) (account.Signature, error) {
	digest := m.Digest(domain)
	return key.Sign(digest[:])
}
