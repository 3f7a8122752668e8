// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/market"
	"github.com/bitmark-inc/carbonmarkd/rpc/ratelimit"
	"github.com/bitmark-inc/carbonmarkd/util"
)

const (
	rateLimitMarket = 200
	rateBurstMarket = 100
)

// Market - type for RPC calls
type Market struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  *ledger.Engine
}

// New - create marketplace RPC handler
func New(log *logger.L, engine *ledger.Engine) *Market {
	return &Market{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitMarket, rateBurstMarket),
		Engine:  engine,
	}
}

// Listing - a listing with its price as a decimal string
type Listing struct {
	ListingID    uint64          `json:"listingId"`
	Seller       account.Address `json:"seller"`
	ClassID      uint64          `json:"classId"`
	Amount       uint64          `json:"amount"`
	PricePerUnit string          `json:"pricePerUnit"`
	Active       bool            `json:"active"`
}

func toListing(l *market.Listing) Listing {
	return Listing{
		ListingID:    l.ListingID,
		Seller:       l.Seller,
		ClassID:      l.ClassID,
		Amount:       l.Amount,
		PricePerUnit: l.PricePerUnit.Dec(),
		Active:       l.IsActive(),
	}
}

// ---

// ListCall - the signed part of a new listing
type ListCall struct {
	ClassID      uint64 `json:"classId"`
	Amount       uint64 `json:"amount"`
	PricePerUnit string `json:"pricePerUnit"`
}

// ListArguments - a signed listing
type ListArguments struct {
	Call     ListCall         `json:"call"`
	Envelope *ledger.Envelope `json:"envelope"`
}

// List - offer credits for sale
func (m *Market) List(arguments *ListArguments, reply *Listing) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	price, err := util.ParseValue(arguments.Call.PricePerUnit)
	if nil != err {
		return err
	}

	caller, err := ledger.SignedCall(arguments.Envelope, arguments.Call)
	if nil != err {
		return err
	}

	call := arguments.Call
	listingID, err := m.Engine.List(caller, call.ClassID, call.Amount, price)
	if nil != err {
		return err
	}

	m.Log.Infof("listing: %d  class: %d  amount: %d  price: %s", listingID, call.ClassID, call.Amount, price.Dec())
	return m.get(listingID, reply)
}

// ---

// BuyCall - the signed part of a purchase
type BuyCall struct {
	ListingID uint64 `json:"listingId"`
	Amount    uint64 `json:"amount"`
	Value     string `json:"value"`
}

// BuyArguments - a signed purchase
type BuyArguments struct {
	Call     BuyCall          `json:"call"`
	Envelope *ledger.Envelope `json:"envelope"`
}

// Buy - pay exactly amount × price for part or all of a listing
//
// the reply is the listing after the purchase
func (m *Market) Buy(arguments *BuyArguments, reply *Listing) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	value, err := util.ParseValue(arguments.Call.Value)
	if nil != err {
		return err
	}

	caller, err := ledger.SignedCall(arguments.Envelope, arguments.Call)
	if nil != err {
		return err
	}

	call := arguments.Call
	err = m.Engine.Buy(caller, call.ListingID, call.Amount, value)
	if nil != err {
		return err
	}

	m.Log.Infof("bought: %d from listing: %d", call.Amount, call.ListingID)
	return m.get(call.ListingID, reply)
}

// ---

// RetireCall - the signed part of a retirement
type RetireCall struct {
	ClassID         uint64 `json:"classId"`
	Amount          uint64 `json:"amount"`
	MetadataPointer string `json:"metadataPointer"`
}

// RetireArguments - a signed retirement
type RetireArguments struct {
	Call     RetireCall       `json:"call"`
	Envelope *ledger.Envelope `json:"envelope"`
}

// RetireReply - the certificate issued
type RetireReply struct {
	CertificateID uint64 `json:"certificateId"`
}

// Retire - burn credits for a retirement certificate
func (m *Market) Retire(arguments *RetireArguments, reply *RetireReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	caller, err := ledger.SignedCall(arguments.Envelope, arguments.Call)
	if nil != err {
		return err
	}

	call := arguments.Call
	certificateID, err := m.Engine.Retire(caller, call.ClassID, call.Amount, call.MetadataPointer)
	if nil != err {
		return err
	}

	m.Log.Infof("retired: %d of class: %d  certificate: %d", call.Amount, call.ClassID, certificateID)
	reply.CertificateID = certificateID
	return nil
}

// ---

// GetArguments - a listing id
type GetArguments struct {
	ListingID uint64 `json:"listingId"`
}

// Get - a listing whether active or drained
func (m *Market) Get(arguments *GetArguments, reply *Listing) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	return m.get(arguments.ListingID, reply)
}

func (m *Market) get(listingID uint64, reply *Listing) error {
	return m.Engine.View(func(v *ledger.View) error {
		l, err := v.Market.Listing(listingID)
		if nil != err {
			return err
		}
		*reply = toListing(l)
		return nil
	})
}

// ---

// ActiveArguments - empty arguments for the active listings
type ActiveArguments struct{}

// ActiveReply - listings with a remaining amount in id order
type ActiveReply struct {
	Listings []Listing `json:"listings"`
}

// Active - every listing that can still be bought from
func (m *Market) Active(_ *ActiveArguments, reply *ActiveReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	return m.Engine.View(func(v *ledger.View) error {
		listings, err := v.Market.ActiveListings()
		if nil != err {
			return err
		}
		reply.Listings = make([]Listing, len(listings))
		for i := range listings {
			reply.Listings[i] = toListing(&listings[i])
		}
		return nil
	})
}

// ---

// QuoteArguments - a proposed purchase
type QuoteArguments struct {
	ListingID uint64 `json:"listingId"`
	Amount    uint64 `json:"amount"`
}

// QuoteReply - the exact value to send and the fee taken from it
type QuoteReply struct {
	Value string `json:"value"`
	Fee   string `json:"fee"`
}

// Quote - price a purchase before signing it
func (m *Market) Quote(arguments *QuoteArguments, reply *QuoteReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	return m.Engine.View(func(v *ledger.View) error {
		value, fee, err := v.Market.Quote(arguments.ListingID, arguments.Amount)
		if nil != err {
			return err
		}
		reply.Value = value.Dec()
		reply.Fee = fee.Dec()
		return nil
	})
}

// ---

// InfoArguments - empty arguments for info
type InfoArguments struct{}

// InfoReply - fixed marketplace parameters
type InfoReply struct {
	Address      account.Address `json:"address"`
	FeeRecipient account.Address `json:"feeRecipient"`
	FeeBps       uint64          `json:"feeBps"`
}

// Info - the operator address sellers must approve and the fee
func (m *Market) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	return m.Engine.View(func(v *ledger.View) error {
		reply.Address = v.Market.Address()
		reply.FeeRecipient = v.Market.FeeRecipient()
		reply.FeeBps = v.Market.FeeBps()
		return nil
	})
}
