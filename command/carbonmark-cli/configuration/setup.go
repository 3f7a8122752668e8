// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - the carbonmark-cli JSON file holding
// connections and password protected identities
package configuration

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/fault"
)

// Configuration - configuration file data format
type Configuration struct {
	DefaultIdentity string              `json:"default_identity"`
	Chain           string              `json:"chain"`
	Connections     []string            `json:"connections"`
	Identities      map[string]Identity `json:"identities"`
}

// Identity - mix of plain and encrypted data
//
// a receive only identity has a blank Data and Salt
type Identity struct {
	Description string          `json:"description"`
	Address     account.Address `json:"address"`
	Data        string          `json:"data"`
	Salt        string          `json:"salt"`
}

// InfoIdentity - an identity without the encrypted data
type InfoIdentity struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Address     account.Address `json:"address"`
	Private     bool            `json:"private"`
}

// Load - read the configuration
func Load(filename string) (*Configuration, error) {

	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return nil, err
	}

	f, err := os.Open(filename)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	options := &Configuration{}
	err = json.NewDecoder(f).Decode(options)
	if nil != err {
		return nil, err
	}
	if nil == options.Identities {
		options.Identities = make(map[string]Identity)
	}
	return options, nil
}

// Identity - find identity for a given name
func (config *Configuration) Identity(name string) (*Identity, error) {
	id, ok := config.Identities[name]
	if !ok {
		return nil, fault.IdentityNameNotFound
	}

	return &id, nil
}

// Address - an identity name or a literal 0x address
func (config *Configuration) Address(nameOrAddress string) (account.Address, error) {
	if id, ok := config.Identities[nameOrAddress]; ok {
		return id.Address, nil
	}
	return account.AddressFromHex(nameOrAddress)
}

// Private - find identity decrypt its key for a given name
func (config *Configuration) Private(password string, name string) (*account.PrivateKey, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}

	return decryptIdentity(password, id)
}

// AddIdentity - store encrypted identity
func (config *Configuration) AddIdentity(name string, description string, key *account.PrivateKey, password string) error {

	if _, ok := config.Identities[name]; ok {
		return fault.IdentityNameExists
	}

	salt, secretKey, err := hashPassword(password)
	if nil != err {
		return err
	}

	encrypted, err := encryptData(hex.EncodeToString(key.Bytes()), secretKey)
	if nil != err {
		return err
	}

	config.Identities[name] = Identity{
		Description: description,
		Address:     key.Address(),
		Data:        encrypted,
		Salt:        salt.String(),
	}

	return nil
}

// AddReceiveOnlyIdentity - store public-only identity
func (config *Configuration) AddReceiveOnlyIdentity(name string, description string, address account.Address) error {

	if _, ok := config.Identities[name]; ok {
		return fault.IdentityNameExists
	}
	if address.IsZero() {
		return fault.InvalidAddress
	}

	config.Identities[name] = Identity{
		Description: description,
		Address:     address,
	}

	return nil
}

// ChangePassword - re-encrypt an identity under a new password
func (config *Configuration) ChangePassword(name string, oldPassword string, newPassword string) error {
	id, err := config.Identity(name)
	if nil != err {
		return err
	}

	key, err := decryptIdentity(oldPassword, id)
	if nil != err {
		return err
	}

	delete(config.Identities, name)
	err = config.AddIdentity(name, id.Description, key, newPassword)
	if nil != err {
		config.Identities[name] = *id
	}
	return err
}

// Info - all identities in name order without private data
func (config *Configuration) Info() []InfoIdentity {
	names := make([]string, 0, len(config.Identities))
	for name := range config.Identities {
		names = append(names, name)
	}
	sort.Strings(names)

	info := make([]InfoIdentity, 0, len(names))
	for _, name := range names {
		id := config.Identities[name]
		info = append(info, InfoIdentity{
			Name:        name,
			Description: id.Description,
			Address:     id.Address,
			Private:     "" != id.Data,
		})
	}
	return info
}
