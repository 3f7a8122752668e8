// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/contentid"
	"github.com/bitmark-inc/carbonmarkd/counter"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/rpc/certificates"
	"github.com/bitmark-inc/carbonmarkd/rpc/credits"
	"github.com/bitmark-inc/carbonmarkd/rpc/documents"
	"github.com/bitmark-inc/carbonmarkd/rpc/funds"
	"github.com/bitmark-inc/carbonmarkd/rpc/market"
	"github.com/bitmark-inc/carbonmarkd/rpc/node"
	"github.com/bitmark-inc/carbonmarkd/rpc/verifiers"
)

// Create - an RPC server with every service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, engine *ledger.Engine, provider contentid.Provider, publisherKey string) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(verifiers.New(log, engine))
	_ = server.Register(documents.New(log, engine, provider))
	_ = server.Register(credits.New(log, engine))
	_ = server.Register(market.New(log, engine))
	_ = server.Register(certificates.New(log, engine))
	_ = server.Register(funds.New(log, engine))
	_ = server.Register(node.New(log, engine, start, version, rpcCount, publisherKey))

	return server
}
