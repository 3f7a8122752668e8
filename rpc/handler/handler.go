// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package handler - HTTP front end for the JSON RPC server plus the
// read only REST views of documents, listings and credit classes
package handler

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/counter"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/mode"
)

// names of the access controlled endpoints
const (
	AllowDetails = "details"
	AllowMetrics = "metrics"
)

// Handler - the endpoints served over HTTPS
type Handler interface {
	Root(http.ResponseWriter, *http.Request)
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	Metrics(http.ResponseWriter, *http.Request)
	Document(http.ResponseWriter, *http.Request)
	Listing(http.ResponseWriter, *http.Request)
	Class(http.ResponseWriter, *http.Request)
	SetAllow(map[string][]*net.IPNet)
}

type handler struct {
	log            *logger.L
	server         *rpc.Server
	engine         *ledger.Engine
	start          time.Time
	version        string
	allow          map[string][]*net.IPNet
	maxConnections uint64
	count          counter.Counter
	metrics        http.Handler
}

// New - create a handler
func New(log *logger.L, server *rpc.Server, engine *ledger.Engine, start time.Time, version string, maxConnections uint64) Handler {
	return &handler{
		log:            log,
		server:         server,
		engine:         engine,
		start:          start,
		version:        version,
		allow:          make(map[string][]*net.IPNet),
		maxConnections: maxConnections,
		metrics:        promhttp.Handler(),
	}
}

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

// SetAllow - access control for the restricted endpoints
func (h *handler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

// Root - this matches anything not matched and returns error
func (h *handler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.count.Limited(h.maxConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Debugf("rpc serve error: %s", err)
		sendInternalServerError(w)
		return
	}
}

// DetailsReply - node summary for monitoring
type DetailsReply struct {
	Chain        string `json:"chain"`
	ChainID      uint64 `json:"chainId"`
	Mode         string `json:"mode"`
	RPCs         uint64 `json:"rpcs"`
	Events       uint64 `json:"events"`
	Documents    uint64 `json:"documents"`
	Classes      uint64 `json:"classes"`
	Listings     uint64 `json:"listings"`
	Certificates uint64 `json:"certificates"`
	Version      string `json:"version"`
	Uptime       string `json:"uptime"`
}

// Details - GET the node summary, restricted to allowed addresses
func (h *handler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	if !h.isAllowed(AllowDetails, r) {
		h.log.Warnf("deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}
	if !h.count.Limited(h.maxConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	reply := DetailsReply{
		Chain:   mode.ChainName(),
		ChainID: h.engine.ChainID(),
		Mode:    mode.String(),
		RPCs:    h.count.Uint64(),
		Version: h.version,
		Uptime:  time.Since(h.start).String(),
	}
	_ = h.engine.View(func(v *ledger.View) error {
		reply.Events = v.Events.Latest()
		reply.Documents = v.Documents.Total()
		reply.Classes = v.Credits.TotalClasses()
		reply.Listings = v.Market.NextListingID() - 1
		reply.Certificates = v.Certificates.Total()
		return nil
	})

	sendReply(w, reply)
}

// Metrics - prometheus exposition, restricted to allowed addresses
func (h *handler) Metrics(w http.ResponseWriter, r *http.Request) {
	if !h.isAllowed(AllowMetrics, r) {
		h.log.Warnf("deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}
	h.metrics.ServeHTTP(w, r)
}

// Document - GET /documents/{id}
func (h *handler) Document(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(v *ledger.View, id uint64) (interface{}, error) {
		return v.Documents.Get(id)
	})
}

// Listing - GET /listings/{id}
func (h *handler) Listing(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(v *ledger.View, id uint64) (interface{}, error) {
		return v.Market.Listing(id)
	})
}

// Class - GET /classes/{id}
func (h *handler) Class(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(v *ledger.View, id uint64) (interface{}, error) {
		return v.Credits.Class(id)
	})
}

// fetch a single record named by the {id} URL parameter
func (h *handler) lookup(w http.ResponseWriter, r *http.Request, get func(*ledger.View, uint64) (interface{}, error)) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if nil != err || 0 == id {
		sendError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if !h.count.Limited(h.maxConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	var record interface{}
	err = h.engine.View(func(v *ledger.View) error {
		var err error
		record, err = get(v, id)
		return err
	})
	if fault.IsErrNotFound(err) {
		sendNotFound(w)
		return
	}
	if nil != err {
		h.log.Errorf("lookup: %q  error: %s", r.URL.Path, err)
		sendInternalServerError(w)
		return
	}
	sendReply(w, record)
}

// check the remote host against the CIDR list for name
func (h *handler) isAllowed(name string, r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}
	for _, cidr := range h.allow[name] {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
