// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/fixtures"
	"github.com/bitmark-inc/carbonmarkd/rpc/certificate"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func randomListen() (int, string) {
	port := rand.Intn(30000) + 30000
	return port, fmt.Sprintf("127.0.0.1:%d", port)
}

func testTLS(t *testing.T) (*tls.Config, [32]byte) {
	cer, key, err := certificate.Generate("test", nil)
	if nil != err {
		t.Fatalf("generate certificate error: %s", err)
	}
	tlsConfig, fin, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		string(cer),
		string(key),
	)
	if nil != err {
		t.Fatalf("get certificate error: %s", err)
	}
	return tlsConfig, fin
}
