// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package attestation

import (
	"github.com/bitmark-inc/carbonmarkd/account"
)

// SignatureVerifier - recovers the signer of a digest
type SignatureVerifier interface {
	Recover(digest Digest, signature account.Signature) (account.Address, error)
}

type secp256k1Verifier struct{}

// NewSignatureVerifier - recovery over secp256k1 with low-s enforcement
func NewSignatureVerifier() SignatureVerifier {
	return secp256k1Verifier{}
}

func (secp256k1Verifier) Recover(digest Digest, signature account.Signature) (account.Address, error) {
	return account.Recover(digest[:], signature)
}
