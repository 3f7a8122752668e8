// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance

import (
	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/ledger"
)

type engineRegistry struct {
	engine    *ledger.Engine
	authority ledger.Caller
}

// NewEngineRegistry - registry calls made on the engine as authority
func NewEngineRegistry(engine *ledger.Engine, authority account.Address) Registry {
	return &engineRegistry{
		engine:    engine,
		authority: ledger.Trusted(authority),
	}
}

func (r *engineRegistry) List() ([]account.Address, error) {
	var verifiers []account.Address
	err := r.engine.View(func(v *ledger.View) error {
		var err error
		verifiers, err = v.Verifiers.List()
		return err
	})
	return verifiers, err
}

func (r *engineRegistry) Add(address account.Address) error {
	return r.engine.AddVerifier(r.authority, address)
}

func (r *engineRegistry) Remove(address account.Address) error {
	return r.engine.RemoveVerifier(r.authority, address)
}
