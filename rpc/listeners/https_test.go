// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/rpc/listeners"
)

type testHandler struct {
	allow map[string][]*net.IPNet
}

func (h *testHandler) RPC(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("RPC"))
}

func (h *testHandler) Details(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Details"))
}

func (h *testHandler) Metrics(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Metrics"))
}

func (h *testHandler) Document(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Document:" + chi.URLParam(r, "id")))
}

func (h *testHandler) Listing(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Listing:" + chi.URLParam(r, "id")))
}

func (h *testHandler) Class(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Class:" + chi.URLParam(r, "id")))
}

func (h *testHandler) Root(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Root"))
}

func (h *testHandler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

func TestRouter(t *testing.T) {
	r := listeners.NewRouter(&testHandler{})

	type testItem struct {
		method   string
		path     string
		expected string
	}
	items := []testItem{
		{"POST", "/carbonmarkd/rpc", "RPC"},
		{"GET", "/carbonmarkd/rpc", "Root"},
		{"GET", "/carbonmarkd/details", "Details"},
		{"GET", "/carbonmarkd/documents/12", "Document:12"},
		{"GET", "/carbonmarkd/listings/3", "Listing:3"},
		{"GET", "/carbonmarkd/classes/7", "Class:7"},
		{"GET", "/metrics", "Metrics"},
		{"GET", "/unknown/rpc", "Root"},
		{"GET", "/", "Root"},
	}

	for _, item := range items {
		req := httptest.NewRequest(item.method, "http://test.com"+item.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		b, _ := ioutil.ReadAll(w.Result().Body)
		assert.Equal(t, item.expected, string(b), "%s %s", item.method, item.path)
	}
}

func TestHttpsListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port, listen := randomListen()
	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{listen},
		Allow: map[string][]string{
			"details": {"127.0.0.1/32", " ::1/128"},
		},
	}

	tlsConfig, _ := testTLS(t)
	hdlr := &testHandler{}

	h, err := listeners.NewHTTPS(
		&conf,
		logger.New(fixtures.LogCategory),
		tlsConfig,
		hdlr,
	)
	if err != nil {
		t.Fatalf("NewHTTPS with error: %s", err)
	}
	assert.Equal(t, 2, len(hdlr.allow["details"]), "allow not set")

	err = h.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer h.Close()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}

	time.Sleep(10 * time.Millisecond) // make sure server is ready
	resp, err := client.Get(fmt.Sprintf("https://127.0.0.1:%d/carbonmarkd/details", port))
	if err != nil {
		t.Fatalf("client get with error: %s", err)
	}
	defer resp.Body.Close()

	content, _ := ioutil.ReadAll(resp.Body)
	assert.Equal(t, "Details", string(content), "wrong Details call")
}

func TestNewHTTPSDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h, err := listeners.NewHTTPS(
		&listeners.HTTPSConfiguration{},
		logger.New(fixtures.LogCategory),
		&tls.Config{},
		&testHandler{},
	)
	assert.Nil(t, err, "disabled listener error")
	assert.Nil(t, h, "disabled listener created")

	_, listen := randomListen()
	_, err = listeners.NewHTTPS(
		&listeners.HTTPSConfiguration{
			MaximumConnections: 1,
			Listen:             []string{listen},
			Allow:              map[string][]string{"details": {"not-a-cidr"}},
		},
		logger.New(fixtures.LogCategory),
		&tls.Config{},
		&testHandler{},
	)
	assert.NotNil(t, err, "bad allow accepted")
}
