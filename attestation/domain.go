// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package attestation

import (
	"github.com/bitmark-inc/carbonmarkd/account"
)

// names bound into domains
const (
	CreditDomainName = "CarbonCredit"
	CallDomainName   = "CarbonmarkCall"
	DomainVersion    = "1"
)

const domainType = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"

var domainTypeHash = keccak([]byte(domainType))

// Domain - binds a digest to one issuer on one chain
type Domain struct {
	Name              string          `json:"name"`
	Version           string          `json:"version"`
	ChainID           uint64          `json:"chainId"`
	VerifyingContract account.Address `json:"verifyingContract"`
}

// NewCreditDomain - domain for credit attestations
func NewCreditDomain(chainID uint64, issuer account.Address) Domain {
	return Domain{
		Name:              CreditDomainName,
		Version:           DomainVersion,
		ChainID:           chainID,
		VerifyingContract: issuer,
	}
}

// NewCallDomain - domain for signed ledger calls
func NewCallDomain(chainID uint64, ledger account.Address) Domain {
	return Domain{
		Name:              CallDomainName,
		Version:           DomainVersion,
		ChainID:           chainID,
		VerifyingContract: ledger,
	}
}

// Separator - the domain separator hash
func (d Domain) Separator() Digest {
	return keccak(
		domainTypeHash[:],
		encodeString(d.Name),
		encodeString(d.Version),
		encodeUint(d.ChainID),
		encodeAddress(d.VerifyingContract),
	)
}
