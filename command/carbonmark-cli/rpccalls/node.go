// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/rpc/funds"
	"github.com/bitmark-inc/carbonmarkd/rpc/node"
)

// Info - request status from carbonmarkd
func (c *Client) Info() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.call("Node.Info", &node.InfoArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Events - a page of ledger events
func (c *Client) Events(start uint64, count int) (*node.EventsReply, error) {
	var reply node.EventsReply
	if err := c.call("Node.Events", &node.EventsArguments{Start: start, Count: count}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Faucet - fund an address on a testing chain
func (c *Client) Faucet(to account.Address, value string) (*node.FaucetReply, error) {
	var reply node.FaucetReply
	if err := c.call("Node.Faucet", &node.FaucetArguments{To: to, Value: value}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// FundsBalance - value held by an address
func (c *Client) FundsBalance(address account.Address) (*funds.BalanceReply, error) {
	var reply funds.BalanceReply
	if err := c.call("Funds.Balance", &funds.BalanceArguments{Address: address}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// SendFunds - signed value transfer
func (c *Client) SendFunds(key *account.PrivateKey, to account.Address, value string) (*funds.BalanceReply, error) {
	call := funds.TransferCall{To: to, Value: value}
	envelope, err := c.envelope(key, "Funds.Transfer", call)
	if nil != err {
		return nil, err
	}
	var reply funds.BalanceReply
	if err := c.call("Funds.Transfer", &funds.TransferArguments{Call: call, Envelope: envelope}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
