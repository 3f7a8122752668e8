// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/chain"
	"github.com/bitmark-inc/carbonmarkd/configuration"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/publish"
	"github.com/bitmark-inc/carbonmarkd/rpc/listeners"
	"github.com/bitmark-inc/carbonmarkd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultPublicKeyFile   = "publisher.public"
	defaultPrivateKeyFile  = "publisher.private"
	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory   = "data"
	defaultCarbonmarkDatabase = chain.Carbonmark
	defaultTestingDatabase    = chain.Testing
	defaultLocalDatabase      = chain.Local

	defaultLogDirectory = "log"
	defaultLogFile      = "carbonmarkd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
	defaultBandwidth  = 25000000

	defaultFeeBps     = 250
	defaultCIDVersion = 1
)

// path expanded or calculated defaults
var (
	defaultLogLevels = map[string]string{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the leveldb files
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// LedgerType - fixed addresses and the marketplace fee
//
// blank addresses other than the authority are derived from fixed labels
type LedgerType struct {
	Authority    string `gluamapper:"authority" json:"authority"`
	Issuer       string `gluamapper:"issuer" json:"issuer"`
	Marketplace  string `gluamapper:"marketplace" json:"marketplace"`
	FeeRecipient string `gluamapper:"fee_recipient" json:"fee_recipient"`
	FeeBps       uint64 `gluamapper:"fee_bps" json:"fee_bps"`
	CIDVersion   uint64 `gluamapper:"cid_version" json:"cid_version"`
}

// AllocationType - an initial balance, value is a decimal string
type AllocationType struct {
	Address string `gluamapper:"address" json:"address"`
	Value   string `gluamapper:"value" json:"value"`
}

// GenesisType - state installed on a fresh database
type GenesisType struct {
	Funds     []AllocationType `gluamapper:"funds" json:"funds"`
	Verifiers []string         `gluamapper:"verifiers" json:"verifiers"`
}

// GovernanceType - optional externally maintained verifier set
type GovernanceType struct {
	VerifierFile string `gluamapper:"verifier_file" json:"verifier_file"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string         `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string         `gluamapper:"pidfile" json:"pidfile"`
	Chain         string         `gluamapper:"chain" json:"chain"`
	Database      DatabaseType   `gluamapper:"database" json:"database"`
	ProfileHTTP   string         `gluamapper:"profile_http" json:"profile_http"`
	Ledger        LedgerType     `gluamapper:"ledger" json:"ledger"`
	Genesis       GenesisType    `gluamapper:"genesis" json:"genesis"`
	Governance    GovernanceType `gluamapper:"governance" json:"governance"`

	ClientRPC  listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc"`
	HttpsRPC   listeners.HTTPSConfiguration `gluamapper:"https_rpc" json:"https_rpc"`
	Publishing publish.Configuration        `gluamapper:"publishing" json:"publishing"`
	Logging    logger.Configuration         `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables ...string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Carbonmark,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultCarbonmarkDatabase,
		},

		Ledger: LedgerType{
			FeeBps:     defaultFeeBps,
			CIDVersion: defaultCIDVersion,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Bandwidth:          defaultBandwidth,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		// default: share config with normal RPC
		HttpsRPC: listeners.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Publishing: publish.Configuration{
			PublicKey:  defaultPublicKeyFile,
			PrivateKey: defaultPrivateKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables...); err != nil {
		return nil, err
	}

	// if any test mode and the database file was not specified
	// switch to appropriate default.  Abort if then chain name is
	// not recognised.
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("Chain: %q is not supported", options.Chain)
	}

	// if database was not changed from default
	if options.Database.Name == defaultCarbonmarkDatabase {
		switch options.Chain {
		case chain.Carbonmark:
			// already correct default
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		default:
			return nil, fmt.Errorf("Chain: %s no default database setting", options.Chain)
		}
	}

	if options.Ledger.FeeBps > 10000 {
		return nil, fmt.Errorf("Ledger: fee_bps: %d exceeds 10000", options.Ledger.FeeBps)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.HttpsRPC.Certificate,
		&options.HttpsRPC.PrivateKey,
		&options.Publishing.PublicKey,
		&options.Publishing.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Governance.VerifierFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// convert the ledger section for the engine
func (options *Configuration) ledgerConfiguration() (ledger.Configuration, error) {
	c := ledger.Configuration{
		ChainID: chain.ID(options.Chain),
		Testing: chain.IsTesting(options.Chain),
		FeeBps:  options.Ledger.FeeBps,
	}

	addresses := []struct {
		name     string
		value    string
		address  *account.Address
		required bool
	}{
		{"authority", options.Ledger.Authority, &c.Authority, true},
		{"issuer", options.Ledger.Issuer, &c.Issuer, false},
		{"marketplace", options.Ledger.Marketplace, &c.Marketplace, false},
		{"fee_recipient", options.Ledger.FeeRecipient, &c.FeeRecipient, false},
	}
	for _, a := range addresses {
		if "" == a.value {
			if a.required {
				return c, fmt.Errorf("Ledger: %s is required", a.name)
			}
			continue
		}
		address, err := account.AddressFromHex(a.value)
		if nil != err {
			return c, fmt.Errorf("Ledger: %s: %q error: %s", a.name, a.value, err)
		}
		*a.address = address
	}

	return c, nil
}

// convert the genesis section for the engine
func (options *Configuration) genesis() (ledger.Genesis, error) {
	g := ledger.Genesis{}

	for _, v := range options.Genesis.Verifiers {
		address, err := account.AddressFromHex(v)
		if nil != err {
			return g, fmt.Errorf("Genesis: verifier: %q error: %s", v, err)
		}
		g.Verifiers = append(g.Verifiers, address)
	}

	for _, f := range options.Genesis.Funds {
		address, err := account.AddressFromHex(f.Address)
		if nil != err {
			return g, fmt.Errorf("Genesis: funds address: %q error: %s", f.Address, err)
		}
		value, err := util.ParseValue(f.Value)
		if nil != err {
			return g, fmt.Errorf("Genesis: funds value: %q error: %s", f.Value, err)
		}
		g.Funds = append(g.Funds, ledger.Allocation{
			Address: address,
			Value:   value,
		})
	}

	return g, nil
}
