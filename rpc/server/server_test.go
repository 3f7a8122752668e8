// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carbonmarkd/certificate"
	"github.com/bitmark-inc/carbonmarkd/counter"
	"github.com/bitmark-inc/carbonmarkd/document"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/rpc/certificates"
	"github.com/bitmark-inc/carbonmarkd/rpc/credits"
	"github.com/bitmark-inc/carbonmarkd/rpc/documents"
	rpcfixtures "github.com/bitmark-inc/carbonmarkd/rpc/fixtures"
	"github.com/bitmark-inc/carbonmarkd/rpc/funds"
	"github.com/bitmark-inc/carbonmarkd/rpc/market"
	"github.com/bitmark-inc/carbonmarkd/rpc/node"
	"github.com/bitmark-inc/carbonmarkd/rpc/server"
	"github.com/bitmark-inc/carbonmarkd/rpc/verifiers"
)

// following tests make sure proper methods are registered to server
// each call goes through the JSON codec used by the listeners

func newClient(t *testing.T) (*rpc.Client, func()) {
	log, e := rpcfixtures.Setup(t)

	c := counter.Counter(0)
	r := server.Create(log, "1.0", &c, e, nil, "")

	serverConn, clientConn := net.Pipe()
	go r.ServeCodec(jsonrpc.NewServerCodec(serverConn))

	client := jsonrpc.NewClient(clientConn)
	return client, func() {
		client.Close()
		rpcfixtures.Teardown()
	}
}

func TestVerifiersList(t *testing.T) {
	client, done := newClient(t)
	defer done()

	var reply verifiers.ListReply
	err := client.Call("Verifiers.List", &verifiers.ListArguments{}, &reply)
	assert.Nil(t, err, "wrong Verifiers.List")
	assert.Equal(t, fixtures.Authority, reply.Authority, "wrong authority")
	assert.Equal(t, 0, len(reply.Verifiers), "unexpected verifiers")
}

func TestDocumentsRegister(t *testing.T) {
	client, done := newClient(t)
	defer done()

	arg := documents.RegisterArguments{
		Call: document.Registration{CID: "Qm1"},
	}
	var reply documents.RegisterReply
	err := client.Call("Documents.Register", &arg, &reply)
	assert.NotNil(t, err, "wrong Documents.Register")
	assert.Equal(t, fault.MissingParameters.Error(), err.Error(), "wrong reply")
}

func TestCreditsBalance(t *testing.T) {
	client, done := newClient(t)
	defer done()

	var reply credits.BalanceReply
	err := client.Call("Credits.Balance", &credits.BalanceArguments{Holder: fixtures.Buyer, ClassID: 1}, &reply)
	assert.Nil(t, err, "wrong Credits.Balance")
	assert.Equal(t, uint64(0), reply.Balance, "wrong balance")
}

func TestMarketInfo(t *testing.T) {
	client, done := newClient(t)
	defer done()

	var reply market.InfoReply
	err := client.Call("Market.Info", &market.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Market.Info")
	assert.Equal(t, uint64(250), reply.FeeBps, "wrong fee")
	assert.Equal(t, rpcfixtures.FeeRecipient, reply.FeeRecipient, "wrong fee recipient")
}

func TestCertificatesGet(t *testing.T) {
	client, done := newClient(t)
	defer done()

	var reply certificate.Certificate
	err := client.Call("Certificates.Get", &certificates.GetArguments{CertificateID: 1}, &reply)
	assert.NotNil(t, err, "wrong Certificates.Get")
	assert.Equal(t, fault.NotFound.Error(), err.Error(), "wrong reply")
}

func TestFundsBalance(t *testing.T) {
	client, done := newClient(t)
	defer done()

	var reply funds.BalanceReply
	err := client.Call("Funds.Balance", &funds.BalanceArguments{Address: fixtures.Buyer}, &reply)
	assert.Nil(t, err, "wrong Funds.Balance")
	assert.Equal(t, "0", reply.Balance, "wrong balance")
}

func TestNodeInfo(t *testing.T) {
	client, done := newClient(t)
	defer done()

	var reply node.InfoReply
	err := client.Call("Node.Info", &node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Node.Info")
	assert.Equal(t, "1.0", reply.Version, "wrong version")
	assert.Equal(t, uint64(rpcfixtures.ChainID), reply.CallDomain.ChainID, "wrong call domain")
}

func TestUnknownMethod(t *testing.T) {
	client, done := newClient(t)
	defer done()

	var reply node.InfoReply
	err := client.Call("Node.Missing", &node.InfoArguments{}, &reply)
	assert.NotNil(t, err, "unknown method answered")
}
