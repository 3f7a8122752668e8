// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/carbonmarkd/account"
)

// Allocation - initial value for an address
type Allocation struct {
	Address account.Address
	Value   *uint256.Int
}

// Genesis - initial state of a fresh database
type Genesis struct {
	Funds     []Allocation
	Verifiers []account.Address
}

// ApplyGenesis - install the initial state in one call
//
// only for a freshly created database, applying twice would credit the
// allocations twice
func (e *Engine) ApplyGenesis(genesis Genesis) error {
	authority := e.view.Verifiers.Authority()
	return e.execute(OpGenesis, Trusted(authority), func(caller account.Address) error {
		for _, v := range genesis.Verifiers {
			err := e.view.Verifiers.Add(caller, v)
			if nil != err {
				return err
			}
		}
		for _, a := range genesis.Funds {
			err := e.view.Funds.Credit(a.Address, a.Value)
			if nil != err {
				return err
			}
		}
		e.log.Infof("genesis: %d verifiers  %d allocations", len(genesis.Verifiers), len(genesis.Funds))
		return nil
	})
}
