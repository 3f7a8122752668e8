// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/zmqutil"
)

const (
	publicText  = "PUBLIC:6e1c0fdab7fa0b21a2e8d1d5b1ea79b0ab7e98a6aab3c35a3b8e6f1ee63bd76d"
	privateText = "PRIVATE:86e8d96e6b1a4bd4dd06a8bdd2cdb8e0a1d8e1a2bde1f70c8aa8a3b7e3b5f2c1"
)

func TestParseKey(t *testing.T) {
	public, err := zmqutil.ReadPublicKey(publicText + "\n")
	assert.Nil(t, err, "public")
	assert.Equal(t, 32, len(public), "public length")

	private, err := zmqutil.ReadPrivateKey("  " + privateText)
	assert.Nil(t, err, "private")
	assert.Equal(t, 32, len(private), "private length")

	_, err = zmqutil.ReadPublicKey(privateText)
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "private as public")

	_, err = zmqutil.ReadPrivateKey(publicText)
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "public as private")

	_, err = zmqutil.ReadPublicKey("PUBLIC:1234")
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "short key")

	_, err = zmqutil.ReadPublicKey("SECRET:" + strings.Repeat("00", 32))
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "bad tag")
}

func TestMakeKeyPair(t *testing.T) {
	dir, err := ioutil.TempDir("", "zmqutil")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	publicFile := filepath.Join(dir, "test.public")
	privateFile := filepath.Join(dir, "test.private")

	err = zmqutil.MakeKeyPair(publicFile, privateFile)
	assert.Nil(t, err, "make key pair")

	public, err := zmqutil.ReadPublicKeyFile(publicFile)
	assert.Nil(t, err, "read public")
	assert.Equal(t, 32, len(public), "public length")

	private, err := zmqutil.ReadPrivateKeyFile(privateFile)
	assert.Nil(t, err, "read private")
	assert.Equal(t, 32, len(private), "private length")

	err = zmqutil.MakeKeyPair(publicFile, privateFile)
	assert.Equal(t, fault.KeyFileExists, err, "no overwrite")
}
