// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/carbonmarkd/rpc/market"
)

func runMarketInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.MarketInfo()
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	classID, err := checkID(c.Uint64("class"))
	if nil != err {
		return err
	}

	amount, err := checkAmount(c.Uint64("amount"))
	if nil != err {
		return err
	}

	price, err := checkValue(c.String("price"))
	if nil != err {
		return err
	}

	key, err := checkSigner(c, m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "seller: %s\n", key.Address())
		fmt.Fprintf(m.e, "class: %d  amount: %d  price: %s\n", classID, amount, price)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.List(key, market.ListCall{
		ClassID:      classID,
		Amount:       amount,
		PricePerUnit: price,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runBuy(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	listingID, err := checkID(c.Uint64("listing"))
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

	response, err := client.Buy(key, listingID, amount)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runQuote(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	listingID, err := checkID(c.Uint64("listing"))
	if nil != err {
		return err
	}

	amount, err := checkAmount(c.Uint64("amount"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Quote(listingID, amount)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runRetire(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	classID, err := checkID(c.Uint64("class"))
	if nil != err {
		return err
	}

	amount, err := checkAmount(c.Uint64("amount"))
	if nil != err {
		return err
	}

	pointer := c.String("metadata")
	if "" == pointer {
		return ErrRequiredPointer
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

	response, err := client.Retire(key, market.RetireCall{
		ClassID:         classID,
		Amount:          amount,
		MetadataPointer: pointer,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runListings(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	if id := c.Uint64("listing"); 0 != id {
		response, err := client.Listing(id)
		if nil != err {
			return err
		}
		printJson(m.w, response)
		return nil
	}

	response, err := client.ActiveListings()
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runCertificates(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	if id := c.Uint64("certificate"); 0 != id {
		response, err := client.Certificate(id)
		if nil != err {
			return err
		}
		printJson(m.w, response)
		return nil
	}

	owner, err := checkAddress(c, "owner", m.config)
	if nil != err {
		return err
	}

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	response, err := client.Certificates(owner, c.Uint64("start"), count)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
