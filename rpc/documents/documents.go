// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package documents

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/contentid"
	"github.com/bitmark-inc/carbonmarkd/document"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/rpc/ratelimit"
)

const (
	rateLimitDocuments = 200
	rateBurstDocuments = 100

	maximumDocumentCount = 100
)

// list filters
const (
	StatusAll      = "all"
	StatusPending  = "pending"
	StatusAttested = "attested"
)

// Documents - type for RPC calls
type Documents struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Engine   *ledger.Engine
	Provider contentid.Provider
}

// New - create document RPC handler
//
// a non-nil provider validates the identifiers of new registrations
func New(log *logger.L, engine *ledger.Engine, provider contentid.Provider) *Documents {
	return &Documents{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitDocuments, rateBurstDocuments),
		Engine:   engine,
		Provider: provider,
	}
}

// ---

// RegisterArguments - a signed registration
type RegisterArguments struct {
	Call     document.Registration `json:"call"`
	Envelope *ledger.Envelope      `json:"envelope"`
}

// RegisterReply - id of the new document
type RegisterReply struct {
	ID uint64 `json:"id"`
}

// Register - caller becomes the uploader of a new document
func (d *Documents) Register(arguments *RegisterArguments, reply *RegisterReply) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}

	if "" == arguments.Call.CID {
		return fault.EmptyCID
	}
	if nil != d.Provider {
		if err := d.Provider.Validate(arguments.Call.CID); nil != err {
			return err
		}
	}

	caller, err := ledger.SignedCall(arguments.Envelope, arguments.Call)
	if nil != err {
		return err
	}

	id, err := d.Engine.RegisterDocument(caller, arguments.Call)
	if nil != err {
		return err
	}

	d.Log.Infof("registered: %d  cid: %s", id, arguments.Call.CID)
	reply.ID = id
	return nil
}

// ---

// AttestCall - the signed part of an attestation
type AttestCall struct {
	ID uint64 `json:"id"`
}

// AttestArguments - a signed attestation
type AttestArguments struct {
	Call     AttestCall       `json:"call"`
	Envelope *ledger.Envelope `json:"envelope"`
}

// Attest - a verifier attests a pending document
func (d *Documents) Attest(arguments *AttestArguments, reply *document.Document) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}

	caller, err := ledger.SignedCall(arguments.Envelope, arguments.Call)
	if nil != err {
		return err
	}

	err = d.Engine.AttestDocument(caller, arguments.Call.ID)
	if nil != err {
		return err
	}

	d.Log.Infof("attested: %d", arguments.Call.ID)
	return d.get(arguments.Call.ID, reply)
}

// ---

// GetArguments - a document id
type GetArguments struct {
	ID uint64 `json:"id"`
}

// Get - a single document
func (d *Documents) Get(arguments *GetArguments, reply *document.Document) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}
	return d.get(arguments.ID, reply)
}

func (d *Documents) get(id uint64, reply *document.Document) error {
	return d.Engine.View(func(v *ledger.View) error {
		doc, err := v.Documents.Get(id)
		if nil != err {
			return err
		}
		*reply = *doc
		return nil
	})
}

// ---

// ByCIDArguments - a content identifier
type ByCIDArguments struct {
	CID string `json:"cid"`
}

// ByCID - the document registered with a content identifier
func (d *Documents) ByCID(arguments *ByCIDArguments, reply *document.Document) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}
	return d.Engine.View(func(v *ledger.View) error {
		doc, err := v.Documents.ByCID(arguments.CID)
		if nil != err {
			return err
		}
		*reply = *doc
		return nil
	})
}

// ---

// ListArguments - page through documents in registration order
type ListArguments struct {
	Status string `json:"status"`
	Start  uint64 `json:"start"`
	Count  int    `json:"count"`
}

// ListReply - a page of documents
type ListReply struct {
	Documents []document.Document `json:"documents"`
	NextStart uint64              `json:"nextStart"`
}

// List - documents filtered by status, ids from Start
func (d *Documents) List(arguments *ListArguments, reply *ListReply) error {
	if err := ratelimit.LimitN(d.Limiter, arguments.Count, maximumDocumentCount); nil != err {
		return err
	}

	var all []document.Document
	err := d.Engine.View(func(v *ledger.View) error {
		var err error
		switch arguments.Status {
		case StatusAll, "":
			all, err = v.Documents.All()
		case StatusPending:
			all, err = v.Documents.ByStatus(false)
		case StatusAttested:
			all, err = v.Documents.ByStatus(true)
		default:
			err = fault.MissingParameters
		}
		return err
	})
	if nil != err {
		return err
	}

	reply.Documents = make([]document.Document, 0, arguments.Count)
	reply.NextStart = arguments.Start
	for _, doc := range all {
		if doc.ID < arguments.Start {
			continue
		}
		if len(reply.Documents) >= arguments.Count {
			break
		}
		reply.Documents = append(reply.Documents, doc)
		reply.NextStart = doc.ID + 1
	}
	return nil
}

// ---

// ByUploaderArguments - documents of one uploader
type ByUploaderArguments struct {
	Uploader account.Address `json:"uploader"`
}

// ByUploaderReply - ids and details in registration order
type ByUploaderReply struct {
	IDs       []uint64            `json:"ids"`
	Documents []document.Document `json:"documents"`
}

// ByUploader - documents registered by an address
func (d *Documents) ByUploader(arguments *ByUploaderArguments, reply *ByUploaderReply) error {
	if err := ratelimit.Limit(d.Limiter); nil != err {
		return err
	}
	return d.Engine.View(func(v *ledger.View) error {
		documents, err := v.Documents.UserDocumentsWithDetails(arguments.Uploader)
		if nil != err {
			return err
		}
		reply.IDs = make([]uint64, len(documents))
		for i, doc := range documents {
			reply.IDs[i] = doc.ID
		}
		reply.Documents = documents
		return nil
	})
}
