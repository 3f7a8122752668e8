// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/carbonmarkd/command/carbonmark-cli/rpccalls"
	"github.com/bitmark-inc/carbonmarkd/rpc/credits"
)

// the acting identity is the verifier signing the attestation
func runMint(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	gsProjectID := c.String("project")
	gsSerial := c.String("serial")
	if "" == gsProjectID || "" == gsSerial {
		return ErrRequiredProject
	}

	amount, err := checkAmount(c.Uint64("amount"))
	if nil != err {
		return err
	}

	recipient, err := checkReceiver(c, "recipient", m.config)
	if nil != err {
		return err
	}

	verifier, err := checkSigner(c, m.config)
	if nil != err {
		return err
	}

	data := &rpccalls.MintData{
		GsProjectID: gsProjectID,
		GsSerial:    gsSerial,
		IpfsCID:     c.String("cid"),
		Amount:      amount,
		Recipient:   recipient,
	}

	if m.verbose {
		fmt.Fprintf(m.e, "verifier: %s\n", verifier.Address())
		fmt.Fprintf(m.e, "project: %s  serial: %s\n", gsProjectID, gsSerial)
		fmt.Fprintf(m.e, "amount: %d  recipient: %s\n", amount, recipient)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Mint(verifier, data)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

// delegate to an operator, the marketplace when none is given
func runApprove(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkSigner(c, m.config)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	operator := c.String("operator")
	var response *credits.ApprovalReply
	if "" == operator {
		info, err := client.MarketInfo()
		if nil != err {
			return err
		}
		response, err = client.SetApproval(key, info.Address, !c.Bool("revoke"))
		if nil != err {
			return err
		}
	} else {
		address, err := m.config.Address(operator)
		if nil != err {
			return err
		}
		response, err = client.SetApproval(key, address, !c.Bool("revoke"))
		if nil != err {
			return err
		}
	}

	printJson(m.w, response)
	return nil
}

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	classID, err := checkID(c.Uint64("class"))
	if nil != err {
		return err
	}

	amount, err := checkAmount(c.Uint64("amount"))
	if nil != err {
		return err
	}

	to, err := checkReceiver(c, "receiver", m.config)
	if nil != err {
		return err
	}

	key, err := checkSigner(c, m.config)
	if nil != err {
		return err
	}

	from := key.Address()
	if "" != c.String("from") {
		from, err = m.config.Address(c.String("from"))
		if nil != err {
			return err
		}
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.TransferCredits(key, credits.TransferCall{
		From:    from,
		To:      to,
		ClassID: classID,
		Amount:  amount,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runBurn(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	classID, err := checkID(c.Uint64("class"))
	if nil != err {
		return err
	}

	amount, err := checkAmount(c.Uint64("amount"))
	if nil != err {
		return err
	}

	key, err := checkSigner(c, m.config)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.BurnCredits(key, credits.BurnCall{
		From:    key.Address(),
		ClassID: classID,
		Amount:  amount,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	classID, err := checkID(c.Uint64("class"))
	if nil != err {
		return err
	}

	owner, err := checkAddress(c, "owner", m.config)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.CreditBalance(owner, classID)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runClass(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	classID, err := checkID(c.Uint64("class"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Class(classID)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
