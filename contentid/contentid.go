// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package contentid - content identifiers for uploaded evidence
//
// the ledger stores identifiers as opaque strings, this package only
// gives clients and the node a way to compute and check them
package contentid

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"

	"github.com/bitmark-inc/carbonmarkd/fault"
)

// supported identifier versions
const (
	V0 = 0 // base58 "Qm…" sha2-256
	V1 = 1 // base32 "b…" raw codec sha2-256
)

// Provider - compute and check content identifiers
type Provider interface {
	Compute(content []byte) (string, error)
	Validate(identifier string) error
}

type local struct {
	prefix cid.Prefix
}

// NewLocal - identifiers computed directly over the content bytes
//
// the digest is of the bytes themselves, not of a chunked file DAG, so
// large files will not match an identifier produced by an IPFS add
func NewLocal(version uint64) (Provider, error) {
	switch version {
	case V0:
		return &local{
			prefix: cid.Prefix{
				Version:  0,
				Codec:    cid.DagProtobuf,
				MhType:   mh.SHA2_256,
				MhLength: -1,
			},
		}, nil
	case V1:
		return &local{
			prefix: cid.Prefix{
				Version:  1,
				Codec:    cid.Raw,
				MhType:   mh.SHA2_256,
				MhLength: -1,
			},
		}, nil
	default:
		return nil, fault.InvalidCIDVersion
	}
}

// Compute - identifier of content
func (l *local) Compute(content []byte) (string, error) {
	c, err := l.prefix.Sum(content)
	if nil != err {
		return "", err
	}
	return c.String(), nil
}

// Validate - accept any well formed identifier of either version
func (l *local) Validate(identifier string) error {
	if "" == identifier {
		return fault.EmptyCID
	}
	c, err := cid.Decode(identifier)
	if nil != err {
		return fault.InvalidCID
	}
	if _, err := mh.Decode(c.Hash()); nil != err {
		return fault.InvalidCID
	}
	return nil
}
