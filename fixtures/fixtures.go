// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared set up for package tests
package fixtures

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/storage"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// fixed keys so that failures are reproducible
var (
	AuthorityKey = mustKey("4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	VerifierKey  = mustKey("8f2a55949038a9610f50fb23b5883af3b4ecb3c3bb792cbcefbd1542c692be63")
	UploaderKey  = mustKey("c87509a1c067bbde78beb793e6fa76530b6382a4c0241e5e4a9ec0a0f44dc0d3")
	BuyerKey     = mustKey("ae6ae8e5ccbfb04590405997ee2d52d2b330726137b875053c36d94e974d162f")
	StrangerKey  = mustKey("0dbbe8e4ae425a6d2687f1a7e3ba17bc98c673636790f1b8ad91193c05875ef1")
)

// addresses of the fixed keys
var (
	Authority = AuthorityKey.Address()
	Verifier  = VerifierKey.Address()
	Uploader  = UploaderKey.Address()
	Buyer     = BuyerKey.Address()
	Stranger  = StrangerKey.Address()
)

func mustKey(s string) *account.PrivateKey {
	key, err := account.PrivateKeyFromHex(s)
	if nil != err {
		panic(fmt.Sprintf("fixture key: %s", err))
	}
	return key
}

// SetupTestLogger - log only critical messages to the testing directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove its files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	os.RemoveAll(dir)
}

// SetupStorage - logger plus a fresh in-memory database
func SetupStorage(t *testing.T) {
	SetupTestLogger()
	err := storage.InitialiseInMemory()
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// TeardownStorage - close database and logger
func TeardownStorage() {
	storage.Finalise()
	TeardownTestLogger()
}

// Transact - run f inside a single storage batch
//
// the batch is committed only when f succeeds
func Transact(t *testing.T, f func() error) error {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	err = f()
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
	return nil
}
