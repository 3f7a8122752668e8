// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package market - escrow free listing, purchase and retirement
//
// listed credits stay with the seller until bought, the marketplace
// moves them using the standing delegation the seller granted it.  A
// seller withdraws a listing by buying the remaining amount itself.
package market

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/event"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/storage"
)

const counterName = "listing"

// fee limits in basis points
const (
	DefaultFeeBps = 250
	MaximumFeeBps = 10000
)

var bpsDenominator = uint256.NewInt(MaximumFeeBps)

// Credits - the credit ledger operations the marketplace needs
type Credits interface {
	BalanceOf(holder account.Address, classID uint64) uint64
	IsApprovedForAll(holder account.Address, operator account.Address) bool
	TransferFrom(operator account.Address, from account.Address, to account.Address, classID uint64, amount uint64) error
	Burn(operator account.Address, from account.Address, classID uint64, amount uint64) error
}

// Funds - value transfer
type Funds interface {
	Transfer(from account.Address, to account.Address, value *uint256.Int) error
}

// Certificates - retirement receipt issue
type Certificates interface {
	Mint(caller account.Address, owner account.Address, metadataPointer string) (uint64, error)
}

// Configuration - fixed marketplace parameters
type Configuration struct {
	Address      account.Address
	FeeRecipient account.Address
	FeeBps       uint64
}

// Handles - pools used by the marketplace
type Handles struct {
	Listings storage.Handle
	Counters storage.Handle
}

// Marketplace - listing book and settlement
type Marketplace struct {
	address      account.Address
	feeRecipient account.Address
	feeBps       *uint256.Int
	pools        Handles
	credits      Credits
	funds        Funds
	certificates Certificates
	sink         event.Sink
}

// New - create a marketplace
func New(configuration Configuration, pools Handles, credits Credits, funds Funds, certificates Certificates, sink event.Sink) (*Marketplace, error) {
	if configuration.FeeBps > MaximumFeeBps {
		return nil, fault.InvalidFeeBps
	}
	if configuration.Address.IsZero() || configuration.FeeRecipient.IsZero() {
		return nil, fault.InvalidAddress
	}
	return &Marketplace{
		address:      configuration.Address,
		feeRecipient: configuration.FeeRecipient,
		feeBps:       uint256.NewInt(configuration.FeeBps),
		pools:        pools,
		credits:      credits,
		funds:        funds,
		certificates: certificates,
		sink:         sink,
	}, nil
}

// Address - the operator identity of the marketplace
func (m *Marketplace) Address() account.Address {
	return m.address
}

// FeeRecipient - receives the protocol fee
func (m *Marketplace) FeeRecipient() account.Address {
	return m.feeRecipient
}

// FeeBps - protocol fee in basis points
func (m *Marketplace) FeeBps() uint64 {
	return m.feeBps.Uint64()
}

// List - offer credits for sale, no credits move
func (m *Marketplace) List(seller account.Address, classID uint64, amount uint64, pricePerUnit *uint256.Int) (uint64, error) {
	if 0 == amount {
		return 0, fault.InvalidAmount
	}
	if nil == pricePerUnit || pricePerUnit.IsZero() {
		return 0, fault.InvalidPrice
	}
	if m.credits.BalanceOf(seller, classID) < amount {
		return 0, fault.InsufficientBalance
	}
	if !m.credits.IsApprovedForAll(seller, m.address) {
		return 0, fault.NotAuthorised
	}

	id := storage.NextCount(m.pools.Counters, counterName)
	l := &Listing{
		ListingID:    id,
		Seller:       seller,
		ClassID:      classID,
		Amount:       amount,
		PricePerUnit: new(uint256.Int).Set(pricePerUnit),
	}
	m.pools.Listings.Put(idKey(id), l.pack())

	m.sink.Emit(event.ListingCreated, event.Listed{
		ListingID:    id,
		Seller:       seller,
		ClassID:      classID,
		Amount:       amount,
		PricePerUnit: pricePerUnit.Dec(),
	})
	return id, nil
}

// Quote - exact value and fee for buying amount from a listing
func (m *Marketplace) Quote(listingID uint64, amount uint64) (*uint256.Int, *uint256.Int, error) {
	l, err := m.Listing(listingID)
	if nil != err {
		return nil, nil, err
	}
	if 0 == amount {
		return nil, nil, fault.InvalidAmount
	}
	if l.Amount < amount {
		return nil, nil, fault.InsufficientListingAmount
	}
	value, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(amount), l.PricePerUnit)
	if overflow {
		return nil, nil, fault.IncorrectPayment
	}
	return value, m.fee(value), nil
}

// fee = value × feeBps / 10000 rounded down
func (m *Marketplace) fee(value *uint256.Int) *uint256.Int {
	fee, _ := new(uint256.Int).MulDivOverflow(value, m.feeBps, bpsDenominator)
	return fee
}

// Buy - settle a partial or full purchase from a listing
//
// value must be exactly amount × pricePerUnit
func (m *Marketplace) Buy(buyer account.Address, listingID uint64, amount uint64, value *uint256.Int) error {
	l, err := m.Listing(listingID)
	if nil != err {
		return err
	}
	if 0 == amount {
		return fault.InvalidAmount
	}
	if l.Amount < amount {
		return fault.InsufficientListingAmount
	}
	expected, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(amount), l.PricePerUnit)
	if overflow || nil == value || !expected.Eq(value) {
		return fault.IncorrectPayment
	}

	l.Amount -= amount
	m.pools.Listings.Put(idKey(listingID), l.pack())

	err = m.credits.TransferFrom(m.address, l.Seller, buyer, l.ClassID, amount)
	if nil != err {
		return err
	}

	fee := m.fee(value)
	payout := new(uint256.Int).Sub(value, fee)

	err = m.funds.Transfer(buyer, m.address, value)
	if nil != err {
		return err
	}
	err = m.funds.Transfer(m.address, m.feeRecipient, fee)
	if nil != err {
		return err
	}
	err = m.funds.Transfer(m.address, l.Seller, payout)
	if nil != err {
		return err
	}

	m.sink.Emit(event.ListingFilled, event.Filled{
		ListingID: listingID,
		Buyer:     buyer,
		Seller:    l.Seller,
		ClassID:   l.ClassID,
		Amount:    amount,
		Value:     value.Dec(),
		Fee:       fee.Dec(),
		Remaining: l.Amount,
	})
	return nil
}

// Retire - burn credits and issue a certificate to the holder
func (m *Marketplace) Retire(holder account.Address, classID uint64, amount uint64, metadataPointer string) (uint64, error) {
	if 0 == amount {
		return 0, fault.InvalidAmount
	}
	if m.credits.BalanceOf(holder, classID) < amount {
		return 0, fault.InsufficientBalance
	}
	err := m.credits.Burn(m.address, holder, classID, amount)
	if nil != err {
		return 0, err
	}
	certificateID, err := m.certificates.Mint(m.address, holder, metadataPointer)
	if nil != err {
		return 0, err
	}

	m.sink.Emit(event.CreditsRetired, event.Retired{
		Holder:        holder,
		ClassID:       classID,
		Amount:        amount,
		CertificateID: certificateID,
	})
	return certificateID, nil
}

// Listing - a listing whether active or drained
func (m *Marketplace) Listing(listingID uint64) (*Listing, error) {
	buffer := m.pools.Listings.Get(idKey(listingID))
	if nil == buffer {
		return nil, fault.ListingNotFound
	}
	return unpackListing(listingID, buffer)
}

// NextListingID - the id the next listing will receive
func (m *Marketplace) NextListingID() uint64 {
	return storage.CurrentCount(m.pools.Counters, counterName) + 1
}

// ActiveListings - listings with a remaining amount in id order
func (m *Marketplace) ActiveListings() ([]Listing, error) {
	listings := make([]Listing, 0, 16)
	err := m.pools.Listings.NewFetchCursor().Map(func(key []byte, value []byte) error {
		l, err := unpackListing(binary.BigEndian.Uint64(key), value)
		if nil != err {
			return err
		}
		if l.IsActive() {
			listings = append(listings, *l)
		}
		return nil
	})
	return listings, err
}
