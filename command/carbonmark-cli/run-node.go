// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runNodeInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Info()
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runEvents(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	start := c.Uint64("start")
	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Events(start, count)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runFaucet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	to, err := checkAddress(c, "to", m.config)
	if nil != err {
		return err
	}

	value, err := checkValue(c.String("value"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "to: %s\n", to)
		fmt.Fprintf(m.e, "value: %s\n", value)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Faucet(to, value)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runFunds(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAddress(c, "owner", m.config)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.FundsBalance(owner)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runSend(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	to, err := checkReceiver(c, "receiver", m.config)
	if nil != err {
		return err
	}

	value, err := checkValue(c.String("value"))
	if nil != err {
		return err
	}

	key, err := checkSigner(c, m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "sender: %s\n", key.Address())
		fmt.Fprintf(m.e, "receiver: %s\n", to)
		fmt.Fprintf(m.e, "value: %s\n", value)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.SendFunds(key, to, value)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
