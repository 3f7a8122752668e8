// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Carbonmark = "carbonmark"
	Testing    = "testing"
	Local      = "local"
)

// chain identifiers bound into every signed digest
const (
	carbonmarkID = 7301
	testingID    = 7302
	localID      = 1337
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Carbonmark, Testing, Local:
		return true
	default:
		return false
	}
}

// ID - the numeric chain identifier, zero for an unknown chain
func ID(name string) uint64 {
	switch name {
	case Carbonmark:
		return carbonmarkID
	case Testing:
		return testingID
	case Local:
		return localID
	default:
		return 0
	}
}

// IsTesting - true for chains that allow faucet funding
func IsTesting(name string) bool {
	return Testing == name || Local == name
}
