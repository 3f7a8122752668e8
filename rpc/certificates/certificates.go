// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificates

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/certificate"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/rpc/ratelimit"
)

const (
	rateLimitCertificates = 200
	rateBurstCertificates = 100

	maximumCertificateCount = 100
)

// Certificates - type for RPC calls
type Certificates struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  *ledger.Engine
}

// New - create certificate RPC handler
func New(log *logger.L, engine *ledger.Engine) *Certificates {
	return &Certificates{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitCertificates, rateBurstCertificates),
		Engine:  engine,
	}
}

// ---

// GetArguments - a certificate id
type GetArguments struct {
	CertificateID uint64 `json:"certificateId"`
}

// Get - a single retirement certificate
func (c *Certificates) Get(arguments *GetArguments, reply *certificate.Certificate) error {
	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}
	return c.Engine.View(func(v *ledger.View) error {
		cert, err := v.Certificates.Get(arguments.CertificateID)
		if nil != err {
			return err
		}
		*reply = *cert
		return nil
	})
}

// ---

// OwnedArguments - page through the certificates of an owner
type OwnedArguments struct {
	Owner account.Address `json:"owner"`
	Start uint64          `json:"start"`
	Count int             `json:"count"`
}

// OwnedReply - a page of certificates in mint order
type OwnedReply struct {
	Total        uint64                    `json:"total"`
	Certificates []certificate.Certificate `json:"certificates"`
	NextStart    uint64                    `json:"nextStart"`
}

// Owned - certificates held by owner from index Start
func (c *Certificates) Owned(arguments *OwnedArguments, reply *OwnedReply) error {
	if err := ratelimit.LimitN(c.Limiter, arguments.Count, maximumCertificateCount); nil != err {
		return err
	}
	return c.Engine.View(func(v *ledger.View) error {
		reply.Total = v.Certificates.BalanceOf(arguments.Owner)
		reply.Certificates = make([]certificate.Certificate, 0, arguments.Count)

		index := arguments.Start
		for ; index < reply.Total && len(reply.Certificates) < arguments.Count; index += 1 {
			id, err := v.Certificates.OfOwnerByIndex(arguments.Owner, index)
			if nil != err {
				return err
			}
			cert, err := v.Certificates.Get(id)
			if nil != err {
				return err
			}
			reply.Certificates = append(reply.Certificates, *cert)
		}
		reply.NextStart = index
		return nil
	})
}
