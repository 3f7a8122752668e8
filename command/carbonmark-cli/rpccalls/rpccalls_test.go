// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls_test

import (
	"bytes"
	"net"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carbonmarkd/command/carbonmark-cli/rpccalls"
	"github.com/bitmark-inc/carbonmarkd/contentid"
	"github.com/bitmark-inc/carbonmarkd/counter"
	"github.com/bitmark-inc/carbonmarkd/document"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/rpc/credits"
	rpcfixtures "github.com/bitmark-inc/carbonmarkd/rpc/fixtures"
	"github.com/bitmark-inc/carbonmarkd/rpc/market"
	"github.com/bitmark-inc/carbonmarkd/rpc/server"
)

func newClient(t *testing.T) (*rpccalls.Client, contentid.Provider, func()) {
	log, e := rpcfixtures.Setup(t)

	provider, err := contentid.NewLocal(1)
	assert.Nil(t, err, "content id provider")

	c := counter.Counter(0)
	r := server.Create(log, "1.0", &c, e, provider, "")

	serverConn, clientConn := net.Pipe()
	go r.ServeCodec(jsonrpc.NewServerCodec(serverConn))

	client := rpccalls.NewClientFromConn(clientConn, false, &bytes.Buffer{})
	return client, provider, func() {
		client.Close()
		rpcfixtures.Teardown()
	}
}

func TestNodeInfo(t *testing.T) {
	client, _, done := newClient(t)
	defer done()

	info, err := client.Info()
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, uint64(rpcfixtures.ChainID), info.CallDomain.ChainID, "wrong chain id")
	assert.Equal(t, "1.0", info.Version, "wrong version")
}

func TestVerifierChangeNotAuthority(t *testing.T) {
	client, _, done := newClient(t)
	defer done()

	_, err := client.ChangeVerifier(fixtures.StrangerKey, "Verifiers.Add", fixtures.Verifier)
	assert.NotNil(t, err, "stranger added verifier")
	assert.Equal(t, fault.NotAuthorised.Error(), err.Error(), "wrong error")

	list, err := client.Verifiers()
	assert.Nil(t, err, "wrong Verifiers")
	assert.Equal(t, 0, len(list.Verifiers), "unexpected verifiers")
}

func TestIssueTradeAndRetire(t *testing.T) {
	client, provider, done := newClient(t)
	defer done()

	reply, err := client.ChangeVerifier(fixtures.AuthorityKey, "Verifiers.Add", fixtures.Verifier)
	assert.Nil(t, err, "wrong add verifier")
	assert.True(t, reply.Active, "verifier not active")

	cid, err := provider.Compute([]byte("mangrove restoration project design"))
	assert.Nil(t, err, "wrong cid")

	registered, err := client.RegisterDocument(fixtures.UploaderKey, document.Registration{
		CID:              cid,
		ProjectName:      "Mangrove",
		ProjectType:      "blue-carbon",
		EstimatedCredits: 1000,
	})
	assert.Nil(t, err, "wrong register")
	assert.Equal(t, uint64(1), registered.ID, "wrong document id")

	attested, err := client.AttestDocument(fixtures.VerifierKey, registered.ID)
	assert.Nil(t, err, "wrong attest")
	assert.Equal(t, fixtures.Verifier, attested.Verifier, "wrong verifier")

	minted, err := client.Mint(fixtures.VerifierKey, &rpccalls.MintData{
		GsProjectID: "GS-101",
		GsSerial:    "GS-101-2020",
		IpfsCID:     cid,
		Amount:      10,
		Recipient:   fixtures.Uploader,
	})
	assert.Nil(t, err, "wrong mint")
	assert.Equal(t, uint64(1), minted.ClassID, "wrong class id")

	// the same evidence attested again is a distinct class
	second, err := client.Mint(fixtures.VerifierKey, &rpccalls.MintData{
		GsProjectID: "GS-101",
		GsSerial:    "GS-101-2020",
		IpfsCID:     cid,
		Amount:      5,
		Recipient:   fixtures.Uploader,
	})
	assert.Nil(t, err, "wrong second mint")
	assert.Equal(t, uint64(2), second.ClassID, "wrong second class id")

	info, err := client.MarketInfo()
	assert.Nil(t, err, "wrong market info")

	approval, err := client.SetApproval(fixtures.UploaderKey, info.Address, true)
	assert.Nil(t, err, "wrong approval")
	assert.True(t, approval.Approved, "not approved")

	listing, err := client.List(fixtures.UploaderKey, market.ListCall{
		ClassID:      minted.ClassID,
		Amount:       10,
		PricePerUnit: "100",
	})
	assert.Nil(t, err, "wrong list")
	assert.Equal(t, uint64(1), listing.ListingID, "wrong listing id")

	_, err = client.Faucet(fixtures.Buyer, "10000")
	assert.Nil(t, err, "wrong faucet")

	bought, err := client.Buy(fixtures.BuyerKey, listing.ListingID, 4)
	assert.Nil(t, err, "wrong buy")
	assert.Equal(t, uint64(6), bought.Amount, "wrong remaining")

	balance, err := client.CreditBalance(fixtures.Buyer, minted.ClassID)
	assert.Nil(t, err, "wrong balance")
	assert.Equal(t, uint64(4), balance.Balance, "wrong buyer credits")

	funds, err := client.FundsBalance(fixtures.Buyer)
	assert.Nil(t, err, "wrong funds")
	assert.Equal(t, "9600", funds.Balance, "wrong buyer funds")

	_, err = client.SetApproval(fixtures.BuyerKey, info.Address, true)
	assert.Nil(t, err, "wrong buyer approval")

	retired, err := client.Retire(fixtures.BuyerKey, market.RetireCall{
		ClassID:         minted.ClassID,
		Amount:          2,
		MetadataPointer: "ipfs://retirement/1",
	})
	assert.Nil(t, err, "wrong retire")
	assert.Equal(t, uint64(1), retired.CertificateID, "wrong certificate id")

	owned, err := client.Certificates(fixtures.Buyer, 0, 10)
	assert.Nil(t, err, "wrong certificates")
	assert.Equal(t, uint64(1), owned.Total, "wrong certificate total")

	certificate, err := client.Certificate(retired.CertificateID)
	assert.Nil(t, err, "wrong certificate")
	assert.Equal(t, fixtures.Buyer, certificate.Owner, "wrong certificate owner")
	assert.Equal(t, "ipfs://retirement/1", certificate.MetadataPointer, "wrong pointer")

	active, err := client.ActiveListings()
	assert.Nil(t, err, "wrong active")
	assert.Equal(t, 1, len(active.Listings), "wrong active count")

	burned, err := client.BurnCredits(fixtures.BuyerKey, credits.BurnCall{
		From:    fixtures.Buyer,
		ClassID: minted.ClassID,
		Amount:  2,
	})
	assert.Nil(t, err, "wrong burn")
	assert.Equal(t, uint64(0), burned.Balance, "wrong balance after burn")

	events, err := client.Events(1, 100)
	assert.Nil(t, err, "wrong events")
	assert.NotEqual(t, 0, len(events.Events), "no events")
}
