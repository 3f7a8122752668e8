// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/carbonmarkd/account"
	"github.com/bitmark-inc/carbonmarkd/ledger"
	"github.com/bitmark-inc/carbonmarkd/rpc/node"
)

// envelope - sign call as key using the node's call domain and the
// signer's current sequence
func (c *Client) envelope(key *account.PrivateKey, method string, call interface{}) (*ledger.Envelope, error) {
	var info node.InfoReply
	err := c.call("Node.Info", &node.InfoArguments{}, &info)
	if nil != err {
		return nil, err
	}

	var sequence node.SequenceReply
	err = c.call("Node.Sequence", &node.SequenceArguments{Address: key.Address()}, &sequence)
	if nil != err {
		return nil, err
	}

	envelope, err := ledger.SignCall(info.CallDomain, key, method, sequence.Sequence, call)
	if nil != err {
		return nil, err
	}
	return &envelope, nil
}
