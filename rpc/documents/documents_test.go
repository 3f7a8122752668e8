// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package documents_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carbonmarkd/contentid"
	"github.com/bitmark-inc/carbonmarkd/document"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/rpc/documents"
	rpcfixtures "github.com/bitmark-inc/carbonmarkd/rpc/fixtures"
)

func newDocuments(t *testing.T) (*documents.Documents, *ledger.Engine, contentid.Provider) {
	log, e := rpcfixtures.Setup(t)

	provider, err := contentid.NewLocal(contentid.V1)
	if nil != err {
		t.Fatalf("provider error: %s", err)
	}
	return documents.New(log, e, provider), e, provider
}

func register(t *testing.T, d *documents.Documents, e *ledger.Engine, registration document.Registration) uint64 {
	arg := documents.RegisterArguments{
		Call:     registration,
		Envelope: rpcfixtures.Envelope(t, e, fixtures.UploaderKey, ledger.OpRegisterDocument, registration),
	}
	var reply documents.RegisterReply
	err := d.Register(&arg, &reply)
	if nil != err {
		t.Fatalf("register error: %s", err)
	}
	return reply.ID
}

func TestRegisterAndAttest(t *testing.T) {
	d, e, provider := newDocuments(t)
	defer rpcfixtures.Teardown()

	cid, _ := provider.Compute([]byte("forest survey 2026"))
	id := register(t, d, e, document.Registration{
		CID:              cid,
		ProjectName:      "Forest",
		ProjectType:      "reforestation",
		Location:         "Borneo",
		EstimatedCredits: 1000,
	})
	assert.Equal(t, uint64(1), id, "wrong id")

	err := e.AddVerifier(ledger.Trusted(fixtures.Authority), fixtures.Verifier)
	assert.Nil(t, err, "add verifier")

	call := documents.AttestCall{ID: id}
	arg := documents.AttestArguments{
		Call:     call,
		Envelope: rpcfixtures.Envelope(t, e, fixtures.VerifierKey, ledger.OpAttestDocument, call),
	}
	var doc document.Document
	err = d.Attest(&arg, &doc)
	assert.Nil(t, err, "wrong Attest")
	assert.True(t, doc.IsAttested, "not attested")
	assert.Equal(t, fixtures.Verifier, doc.Verifier, "wrong verifier")
	assert.Equal(t, "attested", doc.Status(), "wrong status")

	arg.Envelope = rpcfixtures.Envelope(t, e, fixtures.VerifierKey, ledger.OpAttestDocument, call)
	err = d.Attest(&arg, &doc)
	assert.Equal(t, fault.DocumentAlreadyAttested, err, "double attestation")

	var byCID document.Document
	err = d.ByCID(&documents.ByCIDArguments{CID: cid}, &byCID)
	assert.Nil(t, err, "wrong ByCID")
	assert.Equal(t, id, byCID.ID, "wrong ByCID id")
}

func TestRegisterRejects(t *testing.T) {
	d, e, provider := newDocuments(t)
	defer rpcfixtures.Teardown()

	var reply documents.RegisterReply

	bad := document.Registration{CID: "not-a-cid", ProjectName: "Forest"}
	err := d.Register(&documents.RegisterArguments{
		Call:     bad,
		Envelope: rpcfixtures.Envelope(t, e, fixtures.UploaderKey, ledger.OpRegisterDocument, bad),
	}, &reply)
	assert.Equal(t, fault.InvalidCID, err, "malformed cid accepted")

	cid, _ := provider.Compute([]byte("wind farm"))
	registration := document.Registration{CID: cid, ProjectName: "Wind"}
	err = d.Register(&documents.RegisterArguments{Call: registration}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "unsigned call accepted")

	register(t, d, e, registration)

	duplicate := document.Registration{CID: cid, ProjectName: "Other"}
	err = d.Register(&documents.RegisterArguments{
		Call:     duplicate,
		Envelope: rpcfixtures.Envelope(t, e, fixtures.StrangerKey, ledger.OpRegisterDocument, duplicate),
	}, &reply)
	assert.Equal(t, fault.DuplicateCID, err, "duplicate cid accepted")
}

func TestList(t *testing.T) {
	d, e, provider := newDocuments(t)
	defer rpcfixtures.Teardown()

	for _, name := range []string{"A", "B", "C", "D"} {
		cid, _ := provider.Compute([]byte(name))
		register(t, d, e, document.Registration{CID: cid, ProjectName: name})
	}
	_ = e.AddVerifier(ledger.Trusted(fixtures.Authority), fixtures.Verifier)
	assert.Nil(t, e.AttestDocument(ledger.Trusted(fixtures.Verifier), 2), "attest 2")
	assert.Nil(t, e.AttestDocument(ledger.Trusted(fixtures.Verifier), 4), "attest 4")

	var reply documents.ListReply
	err := d.List(&documents.ListArguments{Status: documents.StatusAll, Start: 0, Count: 3}, &reply)
	assert.Nil(t, err, "wrong List")
	assert.Equal(t, 3, len(reply.Documents), "wrong page size")
	assert.Equal(t, uint64(4), reply.NextStart, "wrong next start")

	err = d.List(&documents.ListArguments{Start: reply.NextStart, Count: 3}, &reply)
	assert.Nil(t, err, "wrong List")
	assert.Equal(t, 1, len(reply.Documents), "wrong last page")
	assert.Equal(t, "D", reply.Documents[0].ProjectName, "wrong last document")

	err = d.List(&documents.ListArguments{Status: documents.StatusPending, Count: 10}, &reply)
	assert.Nil(t, err, "wrong pending List")
	assert.Equal(t, 2, len(reply.Documents), "wrong pending count")
	assert.Equal(t, "A", reply.Documents[0].ProjectName, "wrong pending")
	assert.Equal(t, "C", reply.Documents[1].ProjectName, "wrong pending")

	err = d.List(&documents.ListArguments{Status: documents.StatusAttested, Count: 10}, &reply)
	assert.Nil(t, err, "wrong attested List")
	assert.Equal(t, 2, len(reply.Documents), "wrong attested count")

	err = d.List(&documents.ListArguments{Status: "rejected", Count: 10}, &reply)
	assert.Equal(t, fault.MissingParameters, err, "unknown status accepted")

	err = d.List(&documents.ListArguments{Count: 0}, &reply)
	assert.Equal(t, fault.InvalidCount, err, "zero count accepted")

	var uploader documents.ByUploaderReply
	err = d.ByUploader(&documents.ByUploaderArguments{Uploader: fixtures.Uploader}, &uploader)
	assert.Nil(t, err, "wrong ByUploader")
	assert.Equal(t, []uint64{1, 2, 3, 4}, uploader.IDs, "wrong uploader ids")

	err = d.ByUploader(&documents.ByUploaderArguments{Uploader: fixtures.Stranger}, &uploader)
	assert.Nil(t, err, "wrong ByUploader")
	assert.Equal(t, 0, len(uploader.IDs), "stranger has documents")

	var doc document.Document
	err = d.Get(&documents.GetArguments{ID: 9}, &doc)
	assert.Equal(t, fault.DocumentNotFound, err, "missing document found")
}
