// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/command/carbonmark-cli/configuration"
	"github.com/bitmark-inc/carbonmarkd/command/carbonmark-cli/rpccalls"
	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/util"
)

var (
	ErrRequiredConnect     = fault.InvalidError("connect is required")
	ErrRequiredDescription = fault.InvalidError("description is required")
	ErrRequiredFileName    = fault.InvalidError("file name is required")
	ErrRequiredIdentity    = fault.InvalidError("identity is required")
	ErrRequiredPointer     = fault.InvalidError("metadata pointer is required")
	ErrRequiredProject     = fault.InvalidError("project id and serial are required")
	ErrRequiredReceiver    = fault.InvalidError("receiver is required")
	ErrRequiredValue       = fault.InvalidError("value is required")
	ErrNoConnection        = fault.InvalidError("no connections configured")
	ErrZeroAmount          = fault.InvalidError("amount must be positive")
	ErrZeroID              = fault.InvalidError("id must be positive")
)

// identity is required, but not check the config file
func checkName(name string) (string, error) {
	if "" == name {
		return "", ErrRequiredIdentity
	}

	return name, nil
}

// connect is required.
func checkConnect(connect string) (string, error) {
	if "" == connect {
		return "", ErrRequiredConnect
	}

	return connect, nil
}

// description is required
func checkDescription(description string) (string, error) {
	if "" == description {
		return "", ErrRequiredDescription
	}

	return description, nil
}

// check for non-blank file name
func checkFileName(fileName string) (string, error) {
	if "" == fileName {
		return "", ErrRequiredFileName
	}

	return fileName, nil
}

func checkAmount(amount uint64) (uint64, error) {
	if 0 == amount {
		return 0, ErrZeroAmount
	}
	return amount, nil
}

func checkID(id uint64) (uint64, error) {
	if 0 == id {
		return 0, ErrZeroID
	}
	return id, nil
}

// value is a decimal integer string
func checkValue(value string) (string, error) {
	if "" == value {
		return "", ErrRequiredValue
	}
	if _, err := util.ParseValue(value); nil != err {
		return "", err
	}
	return value, nil
}

// optional hex private key
func checkOptionalKey(key string) (*account.PrivateKey, error) {
	if "" == key {
		return account.NewPrivateKey()
	}
	return account.PrivateKeyFromHex(key)
}

// name of the acting identity, global flag or the default
func identityName(c *cli.Context, config *configuration.Configuration) string {
	name := c.GlobalString("identity")
	if "" == name {
		name = config.DefaultIdentity
	}
	return name
}

// the acting identity's private key, prompting if no password flag
func checkSigner(c *cli.Context, config *configuration.Configuration) (*account.PrivateKey, error) {
	name, err := checkName(identityName(c, config))
	if nil != err {
		return nil, err
	}

	password := c.GlobalString("password")
	if "" == password {
		password, err = promptPassword()
		if nil != err {
			return nil, err
		}
	}

	return config.Private(password, name)
}

// an address flag: identity name, 0x address or blank for the acting identity
func checkAddress(c *cli.Context, flag string, config *configuration.Configuration) (account.Address, error) {
	s := c.String(flag)
	if "" == s {
		s = identityName(c, config)
	}
	return config.Address(s)
}

// a receiving address is required
func checkReceiver(c *cli.Context, flag string, config *configuration.Configuration) (account.Address, error) {
	s := c.String(flag)
	if "" == s {
		return account.Zero, ErrRequiredReceiver
	}
	return config.Address(s)
}

// connect to the first configured node
func connect(m *metadata) (*rpccalls.Client, error) {
	if 0 == len(m.config.Connections) {
		return nil, ErrNoConnection
	}
	return rpccalls.NewClient(m.config.Connections[0], m.verbose, m.e)
}

// check if file exists
func checkFileExists(name string) (bool, error) {
	s, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return s.IsDir(), nil
}
