// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/carbonmarkd/command/carbonmark-cli/configuration"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/fixtures"
)

func newConfiguration() *configuration.Configuration {
	return &configuration.Configuration{
		DefaultIdentity: "uploader",
		Chain:           "local",
		Connections:     []string{"127.0.0.1:2130"},
		Identities:      make(map[string]configuration.Identity),
	}
}

func TestIdentities(t *testing.T) {
	config := newConfiguration()

	err := config.AddIdentity("uploader", "project developer", fixtures.UploaderKey, "secret-password")
	assert.Nil(t, err, "add identity")

	err = config.AddIdentity("uploader", "again", fixtures.UploaderKey, "secret-password")
	assert.Equal(t, fault.IdentityNameExists, err, "duplicate name")

	err = config.AddReceiveOnlyIdentity("buyer", "a buyer", fixtures.Buyer)
	assert.Nil(t, err, "add receive only")

	key, err := config.Private("secret-password", "uploader")
	assert.Nil(t, err, "decrypt")
	assert.Equal(t, fixtures.Uploader, key.Address(), "wrong key")

	_, err = config.Private("wrong-password", "uploader")
	assert.Equal(t, fault.WrongPassword, err, "wrong password accepted")

	_, err = config.Private("secret-password", "buyer")
	assert.Equal(t, fault.NotPrivateKey, err, "receive only decrypted")

	_, err = config.Private("secret-password", "nobody")
	assert.Equal(t, fault.IdentityNameNotFound, err, "missing identity")

	address, err := config.Address("buyer")
	assert.Nil(t, err, "address by name")
	assert.Equal(t, fixtures.Buyer, address, "wrong address")

	address, err = config.Address(fixtures.Stranger.String())
	assert.Nil(t, err, "literal address")
	assert.Equal(t, fixtures.Stranger, address, "wrong literal address")

	info := config.Info()
	assert.Equal(t, 2, len(info), "wrong info count")
	assert.Equal(t, "buyer", info[0].Name, "not sorted")
	assert.False(t, info[0].Private, "buyer is private")
	assert.True(t, info[1].Private, "uploader not private")
}

func TestChangePassword(t *testing.T) {
	config := newConfiguration()

	err := config.AddIdentity("uploader", "project developer", fixtures.UploaderKey, "first-password")
	assert.Nil(t, err, "add identity")

	err = config.ChangePassword("uploader", "bad-password", "second-password")
	assert.Equal(t, fault.WrongPassword, err, "changed with wrong password")

	_, err = config.Private("first-password", "uploader")
	assert.Nil(t, err, "identity lost after failed change")

	err = config.ChangePassword("uploader", "first-password", "second-password")
	assert.Nil(t, err, "change password")

	_, err = config.Private("first-password", "uploader")
	assert.Equal(t, fault.WrongPassword, err, "old password still works")

	key, err := config.Private("second-password", "uploader")
	assert.Nil(t, err, "new password")
	assert.Equal(t, fixtures.Uploader, key.Address(), "wrong key")
}

func TestSaveLoad(t *testing.T) {
	dir, err := os.MkdirTemp("", "carbonmark-cli")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "local-carbonmark-cli.json")

	config := newConfiguration()
	err = config.AddIdentity("uploader", "project developer", fixtures.UploaderKey, "secret-password")
	assert.Nil(t, err, "add identity")

	err = configuration.Save(file, config)
	assert.Nil(t, err, "first save")

	err = configuration.Save(file, config)
	assert.Nil(t, err, "second save")
	_, err = os.Stat(file + ".bk")
	assert.Nil(t, err, "no backup file")

	loaded, err := configuration.Load(file)
	assert.Nil(t, err, "load")
	assert.Equal(t, config.DefaultIdentity, loaded.DefaultIdentity, "wrong default")
	assert.Equal(t, config.Connections, loaded.Connections, "wrong connections")

	key, err := loaded.Private("secret-password", "uploader")
	assert.Nil(t, err, "decrypt loaded")
	assert.Equal(t, fixtures.Uploader, key.Address(), "wrong key")
}
