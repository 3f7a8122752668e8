// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/attestation"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	rpcfixtures "github.com/bitmark-inc/carbonmarkd/rpc/fixtures"
	"github.com/bitmark-inc/carbonmarkd/rpc/market"
)

// minted class 1 of 100 credits held by the uploader with the
// marketplace approved and the buyer funded
func setup(t *testing.T) (*market.Market, *ledger.Engine) {
	log, e := rpcfixtures.Setup(t)
	m := market.New(log, e)

	var info market.InfoReply
	err := m.Info(&market.InfoArguments{}, &info)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, uint64(250), info.FeeBps, "wrong fee")
	assert.Equal(t, rpcfixtures.FeeRecipient, info.FeeRecipient, "wrong fee recipient")

	err = e.AddVerifier(ledger.Trusted(fixtures.Authority), fixtures.Verifier)
	assert.Nil(t, err, "add verifier")

	signature := rpcfixtures.Attestation(t, e, fixtures.VerifierKey, attestation.Message{
		GsProjectID: "GS1",
		GsSerial:    "S1",
		IpfsCID:     "Qm1",
		Amount:      100,
		Recipient:   fixtures.Uploader,
		Nonce:       0,
	})
	_, err = e.Mint("GS1", "S1", "Qm1", 100, fixtures.Uploader, signature)
	assert.Nil(t, err, "mint")

	err = e.SetApprovalForAll(ledger.Trusted(fixtures.Uploader), info.Address, true)
	assert.Nil(t, err, "approve")
	err = e.SetApprovalForAll(ledger.Trusted(fixtures.Buyer), info.Address, true)
	assert.Nil(t, err, "approve")

	err = e.Faucet(fixtures.Buyer, uint256.NewInt(1000))
	assert.Nil(t, err, "faucet")

	return m, e
}

func list(t *testing.T, m *market.Market, e *ledger.Engine, amount uint64, price string) (market.Listing, error) {
	call := market.ListCall{ClassID: 1, Amount: amount, PricePerUnit: price}
	var reply market.Listing
	err := m.List(&market.ListArguments{
		Call:     call,
		Envelope: rpcfixtures.Envelope(t, e, fixtures.UploaderKey, ledger.OpList, call),
	}, &reply)
	return reply, err
}

func buy(t *testing.T, m *market.Market, e *ledger.Engine, listingID uint64, amount uint64, value string) (market.Listing, error) {
	call := market.BuyCall{ListingID: listingID, Amount: amount, Value: value}
	var reply market.Listing
	err := m.Buy(&market.BuyArguments{
		Call:     call,
		Envelope: rpcfixtures.Envelope(t, e, fixtures.BuyerKey, ledger.OpBuy, call),
	}, &reply)
	return reply, err
}

func fundsOf(e *ledger.Engine, address account.Address) uint64 {
	n := uint64(0)
	_ = e.View(func(v *ledger.View) error {
		n = v.Funds.BalanceOf(address).Uint64()
		return nil
	})
	return n
}

func TestListBuyRetire(t *testing.T) {
	m, e := setup(t)
	defer rpcfixtures.Teardown()

	listing, err := list(t, m, e, 50, "1")
	assert.Nil(t, err, "wrong List")
	assert.Equal(t, uint64(1), listing.ListingID, "wrong id")
	assert.Equal(t, "1", listing.PricePerUnit, "wrong price")
	assert.True(t, listing.Active, "not active")

	var quote market.QuoteReply
	err = m.Quote(&market.QuoteArguments{ListingID: 1, Amount: 50}, &quote)
	assert.Nil(t, err, "wrong Quote")
	assert.Equal(t, "50", quote.Value, "wrong quote value")
	assert.Equal(t, "1", quote.Fee, "wrong quote fee")

	_, err = buy(t, m, e, 1, 50, "49")
	assert.Equal(t, fault.IncorrectPayment, err, "under payment")
	_, err = buy(t, m, e, 1, 50, "51")
	assert.Equal(t, fault.IncorrectPayment, err, "over payment")
	_, err = buy(t, m, e, 1, 50, "fifty")
	assert.Equal(t, fault.InvalidAmount, err, "bad value")

	listing, err = buy(t, m, e, 1, 20, "20")
	assert.Nil(t, err, "wrong partial Buy")
	assert.Equal(t, uint64(30), listing.Amount, "wrong remaining")

	listing, err = buy(t, m, e, 1, 30, "30")
	assert.Nil(t, err, "wrong final Buy")
	assert.Equal(t, uint64(0), listing.Amount, "not drained")
	assert.False(t, listing.Active, "still active")

	var active market.ActiveReply
	err = m.Active(&market.ActiveArguments{}, &active)
	assert.Nil(t, err, "wrong Active")
	assert.Equal(t, 0, len(active.Listings), "drained listing active")

	// fees 20 × 2.5% = 0 and 30 × 2.5% = 0 after rounding down
	assert.Equal(t, uint64(950), fundsOf(e, fixtures.Buyer), "buyer funds")
	assert.Equal(t, uint64(50), fundsOf(e, fixtures.Uploader), "seller funds")

	call := market.RetireCall{ClassID: 1, Amount: 10, MetadataPointer: "ipfs://retired"}
	var retired market.RetireReply
	err = m.Retire(&market.RetireArguments{
		Call:     call,
		Envelope: rpcfixtures.Envelope(t, e, fixtures.BuyerKey, ledger.OpRetire, call),
	}, &retired)
	assert.Nil(t, err, "wrong Retire")
	assert.Equal(t, uint64(1), retired.CertificateID, "wrong certificate")

	var got market.Listing
	err = m.Get(&market.GetArguments{ListingID: 1}, &got)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, fixtures.Uploader, got.Seller, "wrong seller")

	err = m.Get(&market.GetArguments{ListingID: 2}, &got)
	assert.Equal(t, fault.ListingNotFound, err, "missing listing found")
}

func TestListRejects(t *testing.T) {
	m, e := setup(t)
	defer rpcfixtures.Teardown()

	_, err := list(t, m, e, 50, "")
	assert.Equal(t, fault.InvalidAmount, err, "empty price")

	_, err = list(t, m, e, 101, "1")
	assert.Equal(t, fault.InsufficientBalance, err, "over balance")

	_, err = list(t, m, e, 50, "0")
	assert.Equal(t, fault.InvalidPrice, err, "zero price")

	var reply market.Listing
	err = m.List(&market.ListArguments{Call: market.ListCall{ClassID: 1, Amount: 1, PricePerUnit: "1"}}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "unsigned list")

	var active market.ActiveReply
	_ = m.Active(&market.ActiveArguments{}, &active)
	assert.Equal(t, 0, len(active.Listings), "rejected listing stored")
}
