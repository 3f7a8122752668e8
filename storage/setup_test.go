// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/storage"
)

const (
	testingDirName = "testing"
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
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

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

// configure for testing
func setup(t *testing.T) {
	setupTestLogger()
	err := storage.InitialiseInMemory()
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown() {
	storage.Finalise()
	teardownTestLogger()
}

func TestInitialiseTwice(t *testing.T) {
	setup(t)
	defer teardown()

	err := storage.InitialiseInMemory()
	assert.Equal(t, fault.AlreadyInitialised, err, "second initialise")
}

func TestInitialiseFile(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	name := filepath.Join(t.TempDir(), "ledger")

	fresh, err := storage.Initialise(name, storage.ReadWrite)
	assert.Nil(t, err, "first open")
	assert.True(t, fresh, "new database")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin")
	storage.Pool.TestData.Put([]byte("persist"), []byte("value"))
	assert.Nil(t, trx.Commit(), "commit")
	storage.Finalise()

	fresh, err = storage.Initialise(name, storage.ReadOnly)
	assert.Nil(t, err, "reopen")
	assert.False(t, fresh, "existing database")
	assert.Equal(t, []byte("value"), storage.Pool.TestData.Get([]byte("persist")), "persisted")
	storage.Finalise()
}

func TestTransactionNotInitialised(t *testing.T) {
	_, err := storage.NewDBTransaction()
	assert.Equal(t, fault.NotInitialised, err, "no database")
}
