// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/certificate"
	"github.com/bitmark-inc/carbonmarkd/rpc/certificates"
	"github.com/bitmark-inc/carbonmarkd/rpc/market"
)

// MarketInfo - marketplace address and fee
func (c *Client) MarketInfo() (*market.InfoReply, error) {
	var reply market.InfoReply
	if err := c.call("Market.Info", &market.InfoArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// List - signed creation of a listing
func (c *Client) List(key *account.PrivateKey, call market.ListCall) (*market.Listing, error) {
	envelope, err := c.envelope(key, "Market.List", call)
	if nil != err {
		return nil, err
	}
	var reply market.Listing
	if err := c.call("Market.List", &market.ListArguments{Call: call, Envelope: envelope}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Quote - the value required to buy amount from a listing
func (c *Client) Quote(listingID uint64, amount uint64) (*market.QuoteReply, error) {
	var reply market.QuoteReply
	if err := c.call("Market.Quote", &market.QuoteArguments{ListingID: listingID, Amount: amount}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Buy - quote then pay exactly the quoted value
func (c *Client) Buy(key *account.PrivateKey, listingID uint64, amount uint64) (*market.Listing, error) {
	quote, err := c.Quote(listingID, amount)
	if nil != err {
		return nil, err
	}

	call := market.BuyCall{
		ListingID: listingID,
		Amount:    amount,
		Value:     quote.Value,
	}
	envelope, err := c.envelope(key, "Market.Buy", call)
	if nil != err {
		return nil, err
	}
	var reply market.Listing
	if err := c.call("Market.Buy", &market.BuyArguments{Call: call, Envelope: envelope}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Retire - signed retirement, returns the certificate id
func (c *Client) Retire(key *account.PrivateKey, call market.RetireCall) (*market.RetireReply, error) {
	envelope, err := c.envelope(key, "Market.Retire", call)
	if nil != err {
		return nil, err
	}
	var reply market.RetireReply
	if err := c.call("Market.Retire", &market.RetireArguments{Call: call, Envelope: envelope}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Listing - a single listing
func (c *Client) Listing(listingID uint64) (*market.Listing, error) {
	var reply market.Listing
	if err := c.call("Market.Get", &market.GetArguments{ListingID: listingID}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// ActiveListings - all listings with remaining amount
func (c *Client) ActiveListings() (*market.ActiveReply, error) {
	var reply market.ActiveReply
	if err := c.call("Market.Active", &market.ActiveArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Certificate - a single retirement certificate
func (c *Client) Certificate(certificateID uint64) (*certificate.Certificate, error) {
	var reply certificate.Certificate
	if err := c.call("Certificates.Get", &certificates.GetArguments{CertificateID: certificateID}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Certificates - a page of certificates held by owner
func (c *Client) Certificates(owner account.Address, start uint64, count int) (*certificates.OwnedReply, error) {
	var reply certificates.OwnedReply
	arguments := certificates.OwnedArguments{
		Owner: owner,
		Start: start,
		Count: count,
	}
	if err := c.call("Certificates.Owned", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
