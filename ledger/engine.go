// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/attestation"
	"github.com/bitmark-inc/carbonmarkd/certificate"
	"github.com/bitmark-inc/carbonmarkd/credit"
	"github.com/bitmark-inc/carbonmarkd/document"
	"github.com/bitmark-inc/carbonmarkd/event"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/funds"
	"github.com/bitmark-inc/carbonmarkd/market"
	"github.com/bitmark-inc/carbonmarkd/messagebus"
	"github.com/bitmark-inc/carbonmarkd/storage"
	"github.com/bitmark-inc/carbonmarkd/verifier"
)

// operation names, also the method bound into a signed call
const (
	OpAddVerifier       = "Verifiers.Add"
	OpRemoveVerifier    = "Verifiers.Remove"
	OpRegisterDocument  = "Documents.Register"
	OpAttestDocument    = "Documents.Attest"
	OpMint              = "Credits.Mint"
	OpSetApprovalForAll = "Credits.SetApprovalForAll"
	OpTransferCredits   = "Credits.TransferFrom"
	OpBurnCredits       = "Credits.Burn"
	OpList              = "Market.List"
	OpBuy               = "Market.Buy"
	OpRetire            = "Market.Retire"
	OpTransferFunds     = "Funds.Transfer"
	OpFaucet            = "Node.Faucet"
	OpGenesis           = "Genesis"
)

// labels for the system addresses when not configured
const (
	IssuerLabel      = "carbonmark:issuer"
	MarketplaceLabel = "carbonmark:marketplace"
	LedgerLabel      = "carbonmark:ledger"
)

// Configuration - fixed parameters of an engine
type Configuration struct {
	ChainID      uint64
	Testing      bool
	Authority    account.Address
	Issuer       account.Address
	Marketplace  account.Address
	Ledger       account.Address
	FeeRecipient account.Address
	FeeBps       uint64
	Clock        func() time.Time
}

// View - committed state for readers
type View struct {
	Verifiers    *verifier.Registry
	Documents    *document.Registry
	Credits      *credit.Ledger
	Funds        *funds.Ledger
	Certificates *certificate.Registry
	Market       *market.Marketplace
	Events       *event.Store
	Sequences    storage.Handle
}

// Engine - the serialised ledger
type Engine struct {
	sync.RWMutex

	log        *logger.L
	clock      func() time.Time
	testing    bool
	chainID    uint64
	buffer     *event.Buffer
	callDomain attestation.Domain
	signatures attestation.SignatureVerifier
	sequences  storage.Handle

	view View
}

// New - build an engine over the global storage pools
//
// storage must already be initialised
func New(configuration Configuration) (*Engine, error) {
	if configuration.Authority.IsZero() {
		return nil, fault.InvalidAddress
	}
	if configuration.Issuer.IsZero() {
		configuration.Issuer = account.Derive(IssuerLabel)
	}
	if configuration.Marketplace.IsZero() {
		configuration.Marketplace = account.Derive(MarketplaceLabel)
	}
	if configuration.Ledger.IsZero() {
		configuration.Ledger = account.Derive(LedgerLabel)
	}
	if configuration.FeeRecipient.IsZero() {
		configuration.FeeRecipient = configuration.Authority
	}
	if nil == configuration.Clock {
		configuration.Clock = time.Now
	}

	log := logger.New("ledger")

	buffer := &event.Buffer{}
	signatures := attestation.NewSignatureVerifier()

	verifiers := verifier.New(configuration.Authority, storage.Pool.Verifiers, buffer)

	documents := document.New(
		document.Handles{
			Documents: storage.Pool.Documents,
			CIDs:      storage.Pool.DocumentCID,
			Uploaders: storage.Pool.UploaderDocuments,
			Counters:  storage.Pool.Counters,
		},
		verifiers,
		buffer,
	)

	credits := credit.New(
		credit.Handles{
			Classes:     storage.Pool.Classes,
			Balances:    storage.Pool.Balances,
			Nonces:      storage.Pool.Nonces,
			Delegations: storage.Pool.Delegations,
			Counters:    storage.Pool.Counters,
		},
		attestation.NewCreditDomain(configuration.ChainID, configuration.Issuer),
		verifiers,
		signatures,
		buffer,
	)

	fundsLedger := funds.New(storage.Pool.Funds, buffer)

	certificates := certificate.New(
		configuration.Marketplace,
		certificate.Handles{
			Certificates: storage.Pool.Certificates,
			OwnerIndex:   storage.Pool.OwnerCertificates,
			OwnerCount:   storage.Pool.CertificateCount,
			Counters:     storage.Pool.Counters,
		},
		buffer,
	)

	marketplace, err := market.New(
		market.Configuration{
			Address:      configuration.Marketplace,
			FeeRecipient: configuration.FeeRecipient,
			FeeBps:       configuration.FeeBps,
		},
		market.Handles{
			Listings: storage.Pool.Listings,
			Counters: storage.Pool.Counters,
		},
		credits,
		fundsLedger,
		certificates,
		buffer,
	)
	if nil != err {
		return nil, err
	}

	e := &Engine{
		log:        log,
		clock:      configuration.Clock,
		testing:    configuration.Testing,
		chainID:    configuration.ChainID,
		buffer:     buffer,
		callDomain: attestation.NewCallDomain(configuration.ChainID, configuration.Ledger),
		signatures: signatures,
		sequences:  storage.Pool.CallSequences,
		view: View{
			Verifiers:    verifiers,
			Documents:    documents,
			Credits:      credits,
			Funds:        fundsLedger,
			Certificates: certificates,
			Market:       marketplace,
			Events:       event.NewStore(storage.Pool.Events, storage.Pool.Counters),
			Sequences:    storage.Pool.CallSequences,
		},
	}

	log.Infof("authority: %s", configuration.Authority)
	log.Infof("issuer: %s", configuration.Issuer)
	log.Infof("marketplace: %s  fee: %d bps to: %s", configuration.Marketplace, configuration.FeeBps, configuration.FeeRecipient)

	return e, nil
}

// ChainID - chain bound into both signing domains
func (e *Engine) ChainID() uint64 {
	return e.chainID
}

// CallDomain - domain for signed call envelopes
func (e *Engine) CallDomain() attestation.Domain {
	return e.callDomain
}

// CreditDomain - domain for mint attestations
func (e *Engine) CreditDomain() attestation.Domain {
	return e.view.Credits.Domain()
}

// View - run f against committed state under the read lock
func (e *Engine) View(f func(v *View) error) error {
	e.RLock()
	defer e.RUnlock()
	return f(&e.view)
}

// CallSequence - the sequence the next signed call from address must carry
func (e *Engine) CallSequence(address account.Address) uint64 {
	e.RLock()
	defer e.RUnlock()
	n, _ := e.sequences.GetN(address[:])
	return n
}

// run one mutating operation as a single atomic call
func (e *Engine) execute(operation string, caller Caller, f func(caller account.Address) error) (err error) {
	start := time.Now()
	defer func() {
		observe(operation, start, err)
	}()

	records, err := e.commit(operation, caller, f)
	if nil != err {
		e.log.Debugf("%s: failed: %s", operation, err)
		return err
	}

	for _, r := range records {
		data, err := json.Marshal(r)
		logger.PanicIfError("ledger: event marshal", err)
		messagebus.Bus.Events.Send(string(r.Kind), data)
	}
	return nil
}

func (e *Engine) commit(operation string, caller Caller, f func(caller account.Address) error) ([]event.Record, error) {
	e.Lock()
	defer e.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return nil, err
	}
	e.buffer.Reset()
	defer e.buffer.Reset()

	address, err := e.authenticate(operation, caller)
	if nil == err {
		err = f(address)
	}
	var records []event.Record
	if nil == err {
		records, err = e.view.Events.Append(e.buffer.Pending(), e.clock())
	}
	if nil != err {
		trx.Abort()
		return nil, err
	}

	err = trx.Commit()
	if nil != err {
		e.log.Criticalf("%s: commit error: %s", operation, err)
		return nil, err
	}
	e.log.Debugf("%s: committed %d events", operation, len(records))
	return records, nil
}

// AddVerifier - authority adds a verifier
func (e *Engine) AddVerifier(caller Caller, address account.Address) error {
	return e.execute(OpAddVerifier, caller, func(c account.Address) error {
		return e.view.Verifiers.Add(c, address)
	})
}

// RemoveVerifier - authority removes a verifier
func (e *Engine) RemoveVerifier(caller Caller, address account.Address) error {
	return e.execute(OpRemoveVerifier, caller, func(c account.Address) error {
		return e.view.Verifiers.Remove(c, address)
	})
}

// RegisterDocument - caller becomes the uploader of a new document
func (e *Engine) RegisterDocument(caller Caller, registration document.Registration) (uint64, error) {
	id := uint64(0)
	err := e.execute(OpRegisterDocument, caller, func(c account.Address) error {
		var err error
		id, err = e.view.Documents.Register(c, e.clock(), registration)
		return err
	})
	return id, err
}

// AttestDocument - a verifier attests a pending document
func (e *Engine) AttestDocument(caller Caller, id uint64) error {
	return e.execute(OpAttestDocument, caller, func(c account.Address) error {
		return e.view.Documents.Attest(c, id, e.clock())
	})
}

// Mint - submit a verifier attestation, anyone may relay it
func (e *Engine) Mint(gsProjectID string, gsSerial string, cid string, amount uint64, recipient account.Address, signature account.Signature) (uint64, error) {
	classID := uint64(0)
	err := e.execute(OpMint, Trusted(e.CreditDomain().VerifyingContract), func(_ account.Address) error {
		var err error
		classID, err = e.view.Credits.Mint(gsProjectID, gsSerial, cid, amount, recipient, signature)
		return err
	})
	return classID, err
}

// SetApprovalForAll - caller grants or revokes a standing delegation
func (e *Engine) SetApprovalForAll(caller Caller, operator account.Address, approved bool) error {
	return e.execute(OpSetApprovalForAll, caller, func(c account.Address) error {
		return e.view.Credits.SetApprovalForAll(c, operator, approved)
	})
}

// TransferCredits - caller moves credits it holds or is delegated
func (e *Engine) TransferCredits(caller Caller, from account.Address, to account.Address, classID uint64, amount uint64) error {
	return e.execute(OpTransferCredits, caller, func(c account.Address) error {
		return e.view.Credits.TransferFrom(c, from, to, classID, amount)
	})
}

// BurnCredits - caller destroys credits it holds or is delegated
func (e *Engine) BurnCredits(caller Caller, from account.Address, classID uint64, amount uint64) error {
	return e.execute(OpBurnCredits, caller, func(c account.Address) error {
		return e.view.Credits.Burn(c, from, classID, amount)
	})
}

// List - caller offers credits for sale
func (e *Engine) List(caller Caller, classID uint64, amount uint64, pricePerUnit *uint256.Int) (uint64, error) {
	listingID := uint64(0)
	err := e.execute(OpList, caller, func(c account.Address) error {
		var err error
		listingID, err = e.view.Market.List(c, classID, amount, pricePerUnit)
		return err
	})
	return listingID, err
}

// Buy - caller pays value for amount from a listing
func (e *Engine) Buy(caller Caller, listingID uint64, amount uint64, value *uint256.Int) error {
	return e.execute(OpBuy, caller, func(c account.Address) error {
		return e.view.Market.Buy(c, listingID, amount, value)
	})
}

// Retire - caller burns credits for a certificate
func (e *Engine) Retire(caller Caller, classID uint64, amount uint64, metadataPointer string) (uint64, error) {
	certificateID := uint64(0)
	err := e.execute(OpRetire, caller, func(c account.Address) error {
		var err error
		certificateID, err = e.view.Market.Retire(c, classID, amount, metadataPointer)
		return err
	})
	return certificateID, err
}

// TransferFunds - caller sends value
func (e *Engine) TransferFunds(caller Caller, to account.Address, value *uint256.Int) error {
	return e.execute(OpTransferFunds, caller, func(c account.Address) error {
		if to.IsZero() {
			return fault.InvalidAddress
		}
		return e.view.Funds.Transfer(c, to, value)
	})
}

// Faucet - create value on a testing chain
func (e *Engine) Faucet(to account.Address, value *uint256.Int) error {
	if !e.testing {
		return fault.TestingChainOnly
	}
	return e.execute(OpFaucet, Trusted(e.view.Verifiers.Authority()), func(_ account.Address) error {
		return e.view.Funds.Credit(to, value)
	})
}
