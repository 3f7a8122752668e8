// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package governance - keep the verifier set in line with an elected list
//
// the election itself happens elsewhere, its result is a YAML file:
//
//   verifiers:
//     - 0x2c7536E3605D9C16a7a3D7b1898e529396a65c23
//     - 0x…
//
// whenever the file changes the differences are applied as the
// authority, one add or remove call per address
package governance

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/fault"
)

// Registry - verifier set operations performed as the authority
type Registry interface {
	List() ([]account.Address, error)
	Add(address account.Address) error
	Remove(address account.Address) error
}

type verifierFile struct {
	Verifiers []string `yaml:"verifiers"`
}

// ReadFile - decode the elected verifier list
func ReadFile(fileName string) ([]account.Address, error) {
	data, err := os.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	return Decode(data)
}

// Decode - parse YAML data into a sorted list without duplicates
func Decode(data []byte) ([]account.Address, error) {
	var f verifierFile
	err := yaml.Unmarshal(data, &f)
	if nil != err {
		return nil, err
	}

	seen := make(map[account.Address]struct{}, len(f.Verifiers))
	verifiers := make([]account.Address, 0, len(f.Verifiers))
	for _, s := range f.Verifiers {
		a, err := account.AddressFromHex(s)
		if nil != err {
			return nil, err
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		verifiers = append(verifiers, a)
	}
	sort.Slice(verifiers, func(i, j int) bool {
		return verifiers[i].Compare(verifiers[j]) < 0
	})
	return verifiers, nil
}

// Difference - addresses to add and to remove to turn current into elected
func Difference(current []account.Address, elected []account.Address) ([]account.Address, []account.Address) {
	in := make(map[account.Address]struct{}, len(current))
	for _, a := range current {
		in[a] = struct{}{}
	}
	want := make(map[account.Address]struct{}, len(elected))
	for _, a := range elected {
		want[a] = struct{}{}
	}

	add := make([]account.Address, 0)
	for _, a := range elected {
		if _, ok := in[a]; !ok {
			add = append(add, a)
		}
	}
	remove := make([]account.Address, 0)
	for _, a := range current {
		if _, ok := want[a]; !ok {
			remove = append(remove, a)
		}
	}
	return add, remove
}

// Apply - bring the registry in line with the file
//
// an unreadable file or an empty elected list changes nothing
func Apply(log *logger.L, registry Registry, fileName string) error {
	elected, err := ReadFile(fileName)
	if nil != err {
		log.Errorf("read: %q  error: %s", fileName, err)
		return err
	}
	if 0 == len(elected) {
		log.Warnf("read: %q  error: %s", fileName, fault.EmptyVerifierList)
		return fault.EmptyVerifierList
	}
	current, err := registry.List()
	if nil != err {
		return err
	}

	add, remove := Difference(current, elected)
	for _, a := range add {
		err := registry.Add(a)
		if nil != err {
			log.Errorf("add verifier: %s  error: %s", a, err)
			return err
		}
		log.Infof("added verifier: %s", a)
	}
	for _, a := range remove {
		err := registry.Remove(a)
		if nil != err {
			log.Errorf("remove verifier: %s  error: %s", a, err)
			return err
		}
		log.Infof("removed verifier: %s", a)
	}
	return nil
}
