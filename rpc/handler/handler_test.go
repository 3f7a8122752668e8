// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"net/rpc"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/document"
	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/rpc/handler"
)

const (
	notAllowed      = "method not allowed"
	tooManyRequests = "Too Many Requests"
)

type eResp struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

type jResp struct {
	ID     int         `json:"id"`
	Result int         `json:"result"`
	Error  interface{} `json:"error"`
}

type jReq struct {
	ID     int      `json:"id"`
	Method string   `json:"method"`
	Params []AddArg `json:"params"`
}

type Add struct{}
type AddArg struct {
	A int `json:"A"`
	B int `json:"B"`
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func newHandler(t *testing.T, maxConnections uint64) (handler.Handler, *ledger.Engine) {
	e, err := ledger.New(ledger.Configuration{
		ChainID:   1337,
		Testing:   true,
		Authority: fixtures.Authority,
		FeeBps:    250,
	})
	if nil != err {
		t.Fatalf("engine error: %s", err)
	}

	s := rpc.NewServer()
	_ = s.Register(Add{})

	h := handler.New(
		logger.New(fixtures.LogCategory),
		s,
		e,
		time.Now(),
		"1.0",
		maxConnections,
	)
	return h, e
}

func allowTestNet(h handler.Handler, name string) {
	allow := make(map[string][]*net.IPNet)
	_, ipNet, _ := net.ParseCIDR("192.0.2.1/32")
	allow[name] = []*net.IPNet{ipNet}
	h.SetAllow(allow)
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, resp *http.Response) eResp {
	var j eResp
	err := json.NewDecoder(resp.Body).Decode(&j)
	assert.Nil(t, err, "decode error response")
	return j
}

func TestRoot(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	h, _ := newHandler(t, 5)

	req := httptest.NewRequest("GET", "http://not.found", nil)
	w := httptest.NewRecorder()
	h.Root(w, req)

	j := decodeError(t, w.Result())
	assert.Equal(t, "not found", j.Error, "wrong response")
	assert.Equal(t, http.StatusNotFound, j.Code, "wrong http code")
}

func TestRPC(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	h, _ := newHandler(t, 5)

	add := AddArg{
		A: 1,
		B: 2,
	}

	arg := jReq{
		ID:     5,
		Method: "Add.Add",
		Params: []AddArg{add},
	}
	data, _ := json.Marshal(arg)

	req := httptest.NewRequest("POST", "http://not.exist", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	var j jResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")
	assert.Equal(t, 5, j.ID, "wrong id")
	assert.Equal(t, add.A+add.B, j.Result, "wrong result")
	assert.Nil(t, j.Error, "wrong error")
}

func TestRPCWhenWrongHTTPMethod(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	h, _ := newHandler(t, 5)

	req := httptest.NewRequest("GET", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.RPC(w, req)

	j := decodeError(t, w.Result())
	assert.Equal(t, notAllowed, j.Error, "wrong method")
}

func TestRPCWhenTooManyConnections(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	h, _ := newHandler(t, 0)

	req := httptest.NewRequest("POST", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.RPC(w, req)

	j := decodeError(t, w.Result())
	assert.Equal(t, tooManyRequests, j.Error, "wrong error")
	assert.Equal(t, http.StatusTooManyRequests, j.Code, "wrong code")
}

func TestRPCWhenServeError(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	h, _ := newHandler(t, 5)

	data, _ := json.Marshal(jReq{})

	req := httptest.NewRequest("POST", "http://not.exist", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.RPC(w, req)

	b, _ := ioutil.ReadAll(w.Result().Body)
	assert.Contains(t, string(b), "internal server error", "wrong response")
}

func TestDetails(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	h, e := newHandler(t, 5)
	allowTestNet(h, handler.AllowDetails)

	_, err := e.RegisterDocument(ledger.Trusted(fixtures.Uploader), document.Registration{
		CID:         "Qm1",
		ProjectName: "Forest",
	})
	assert.Nil(t, err, "register")

	// httptest requests come from 192.0.2.1
	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")

	var reply handler.DetailsReply
	_ = json.NewDecoder(resp.Body).Decode(&reply)
	assert.Equal(t, uint64(1337), reply.ChainID, "wrong chain id")
	assert.Equal(t, uint64(1), reply.Documents, "wrong documents")
	assert.Equal(t, uint64(1), reply.Events, "wrong events")
	assert.Equal(t, uint64(0), reply.Listings, "wrong listings")
	assert.Equal(t, "1.0", reply.Version, "wrong version")
}

func TestDetailsWhenNotAllowed(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	h, _ := newHandler(t, 5)

	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	j := decodeError(t, w.Result())
	assert.Equal(t, "forbidden", j.Error, "wrong not allow")

	req = httptest.NewRequest("POST", "http://test.com", nil)
	w = httptest.NewRecorder()
	h.Details(w, req)

	j = decodeError(t, w.Result())
	assert.Equal(t, notAllowed, j.Error, "wrong method")
}

func TestMetrics(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	h, e := newHandler(t, 5)

	req := httptest.NewRequest("GET", "http://test.com/metrics", nil)
	w := httptest.NewRecorder()
	h.Metrics(w, req)
	assert.Equal(t, http.StatusForbidden, w.Result().StatusCode, "metrics open")

	allowTestNet(h, handler.AllowMetrics)

	// ensure at least one ledger series exists
	_ = e.AddVerifier(ledger.Trusted(fixtures.Stranger), fixtures.Verifier)

	w = httptest.NewRecorder()
	h.Metrics(w, req)

	resp := w.Result()
	b, _ := ioutil.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")
	assert.Contains(t, string(b), "carbonmark_ledger_calls_total", "missing ledger metric")
}

func TestDocument(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	h, e := newHandler(t, 5)

	id, err := e.RegisterDocument(ledger.Trusted(fixtures.Uploader), document.Registration{
		CID:              "QmForest",
		ProjectName:      "Forest",
		EstimatedCredits: 500,
	})
	assert.Nil(t, err, "register")

	req := withID(httptest.NewRequest("GET", "http://test.com", nil), "1")
	w := httptest.NewRecorder()
	h.Document(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")

	var d document.Document
	_ = json.NewDecoder(resp.Body).Decode(&d)
	assert.Equal(t, id, d.ID, "wrong id")
	assert.Equal(t, "QmForest", d.CID, "wrong cid")
	assert.Equal(t, fixtures.Uploader, d.Uploader, "wrong uploader")
	assert.False(t, d.IsAttested, "attested")

	req = withID(httptest.NewRequest("GET", "http://test.com", nil), "2")
	w = httptest.NewRecorder()
	h.Document(w, req)
	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode, "missing document found")

	req = withID(httptest.NewRequest("GET", "http://test.com", nil), "x")
	w = httptest.NewRecorder()
	h.Document(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode, "bad id accepted")
}

func TestListingAndClassNotFound(t *testing.T) {
	fixtures.SetupStorage(t)
	defer fixtures.TeardownStorage()

	h, _ := newHandler(t, 5)

	req := withID(httptest.NewRequest("GET", "http://test.com", nil), "1")
	w := httptest.NewRecorder()
	h.Listing(w, req)
	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode, "listing found")

	w = httptest.NewRecorder()
	h.Class(w, req)
	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode, "class found")

	req = withID(httptest.NewRequest("DELETE", "http://test.com", nil), "1")
	w = httptest.NewRecorder()
	h.Class(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Result().StatusCode, "wrong method")
}
