// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/counter"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/rpc/listeners"
)

func TestRpcListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port, listen := randomListen()
	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Bandwidth:          10000000,
		Listen:             []string{listen},
	}

	count := counter.Counter(0)

	s := rpc.NewServer()
	err := s.Register(Add{})
	if err != nil {
		t.Fatalf("register with error: %s", err)
	}

	tlsConfig, fin := testTLS(t)

	l, err := listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		s,
		tlsConfig,
		fin,
	)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Close()

	c, err := tls.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port), &tls.Config{InsecureSkipVerify: true})
	if err != nil {
		t.Fatalf("dial with error: %s", err)
	}

	arg := AddArg{
		A: 2,
		B: 5,
	}
	var reply int

	client := jsonrpc.NewClient(c)
	err = client.Call("Add.Add", &arg, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")

	_ = client.Close()

	// connection slot is released after the client goes away
	for i := 0; i < 100 && !count.IsZero(); i++ {
		time.Sleep(10 * time.Millisecond)
	}
	assert.True(t, count.IsZero(), "connection count not released")
}

func TestNewRPCErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, listen := randomListen()
	count := counter.Counter(0)
	s := rpc.NewServer()

	type testItem struct {
		configuration listeners.RPCConfiguration
		err           error
	}
	items := []testItem{
		{
			configuration: listeners.RPCConfiguration{MaximumConnections: 0, Bandwidth: 10000000, Listen: []string{listen}},
			err:           fault.MissingParameters,
		},
		{
			configuration: listeners.RPCConfiguration{MaximumConnections: 1, Bandwidth: 100, Listen: []string{listen}},
			err:           fault.MissingParameters,
		},
		{
			configuration: listeners.RPCConfiguration{MaximumConnections: 1, Bandwidth: 10000000, Listen: []string{}},
			err:           fault.MissingParameters,
		},
		{
			configuration: listeners.RPCConfiguration{MaximumConnections: 1, Bandwidth: 10000000, Listen: []string{"300.0.0.1:2130"}},
			err:           fault.InvalidIPAddress,
		},
		{
			configuration: listeners.RPCConfiguration{MaximumConnections: 1, Bandwidth: 10000000, Listen: []string{"127.0.0.1:0"}},
			err:           fault.InvalidPortNumber,
		},
	}

	for i, item := range items {
		_, err := listeners.NewRPC(
			&item.configuration,
			logger.New(fixtures.LogCategory),
			&count,
			s,
			&tls.Config{},
			[32]byte{},
		)
		assert.Equal(t, item.err, err, "%d: wrong error", i)
	}
}
