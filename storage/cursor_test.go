// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/storage"
)

// a string data item
type stringElement struct {
	key   string
	value string
}

var testElements = []stringElement{
	{"key-two", "data-two"},
	{"key-one", "data-one"},
	{"other-one", "other"},
	{"key-three", "data-three"},
}

// this is the expected order
var expectedKeys = []string{"key-one", "key-three", "key-two", "other-one"}

func fill(t *testing.T) {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	for _, e := range testElements {
		storage.Pool.TestData.Put([]byte(e.key), []byte(e.value))
	}
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

func TestFetchPages(t *testing.T) {
	setup(t)
	defer teardown()
	fill(t)

	cursor := storage.Pool.TestData.NewFetchCursor()
	keys := []string{}
	for {
		elements, err := cursor.Fetch(3)
		assert.Nil(t, err, "fetch")
		if 0 == len(elements) {
			break
		}
		for _, e := range elements {
			keys = append(keys, string(e.Key))
		}
	}
	assert.Equal(t, expectedKeys, keys, "ordered keys")

	_, err := cursor.Fetch(0)
	assert.Equal(t, fault.InvalidCount, err, "zero count")

	var nilCursor *storage.FetchCursor
	_, err = nilCursor.Fetch(1)
	assert.Equal(t, fault.InvalidCursor, err, "nil cursor")
}

func TestPrefixAndSeek(t *testing.T) {
	setup(t)
	defer teardown()
	fill(t)

	elements, err := storage.Pool.TestData.NewFetchCursor().Prefix([]byte("key-")).Fetch(10)
	assert.Nil(t, err, "fetch")
	assert.Equal(t, 3, len(elements), "prefix count")

	elements, err = storage.Pool.TestData.NewFetchCursor().Seek([]byte("key-t")).Fetch(10)
	assert.Nil(t, err, "fetch")
	assert.Equal(t, 3, len(elements), "seek count")
	assert.Equal(t, []byte("key-three"), elements[0].Key, "first after seek")
}

func TestMapStops(t *testing.T) {
	setup(t)
	defer teardown()
	fill(t)

	n := 0
	err := storage.Pool.TestData.NewFetchCursor().Map(func(key []byte, value []byte) error {
		n += 1
		if 2 == n {
			return fault.NotFound
		}
		return nil
	})
	assert.Equal(t, fault.NotFound, err, "map error")
	assert.Equal(t, 2, n, "map count")
}
