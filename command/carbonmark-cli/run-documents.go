// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/carbonmarkd/contentid"
	"github.com/bitmark-inc/carbonmarkd/document"
	"github.com/bitmark-inc/carbonmarkd/fault"
)

type cidReply struct {
	File string `json:"file"`
	CID  string `json:"cid"`
}

// compute a content identifier for a file the way the node validates it
func fileCID(fileName string, version uint64) (string, error) {
	provider, err := contentid.NewLocal(version)
	if nil != err {
		return "", err
	}

	content, err := os.ReadFile(fileName)
	if nil != err {
		return "", err
	}

	return provider.Compute(content)
}

func runCID(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName, err := checkFileName(c.String("file"))
	if nil != err {
		return err
	}

	cid, err := fileCID(fileName, c.Uint64("cid-version"))
	if nil != err {
		return err
	}

	printJson(m.w, cidReply{File: fileName, CID: cid})
	return nil
}

func runRegister(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	cid := c.String("cid")
	if fileName := c.String("file"); "" != fileName {
		computed, err := fileCID(fileName, c.Uint64("cid-version"))
		if nil != err {
			return err
		}
		cid = computed
	}

	registration := document.Registration{
		CID:              cid,
		ProjectName:      c.String("name"),
		ProjectType:      c.String("type"),
		Description:      c.String("description"),
		Location:         c.String("location"),
		EstimatedCredits: c.Uint64("estimated"),
	}
	if "" == registration.CID {
		return fault.EmptyCID
	}
	if "" == registration.ProjectName {
		return fault.EmptyProjectName
	}

	key, err := checkSigner(c, m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "uploader: %s\n", key.Address())
		fmt.Fprintf(m.e, "cid: %s\n", registration.CID)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.RegisterDocument(key, registration)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runAttest(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkID(c.Uint64("document"))
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

	response, err := client.AttestDocument(key, id)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runDocument(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id := c.Uint64("document")
	cid := c.String("cid")

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	var response *document.Document
	switch {
	case 0 != id:
		response, err = client.Document(id)
	case "" != cid:
		response, err = client.DocumentByCID(cid)
	default:
		return ErrZeroID
	}
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runDocuments(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Documents(c.String("status"), c.Uint64("start"), count)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

// add or remove a verifier, only the authority can sign these
func changeVerifier(method string) cli.ActionFunc {
	return func(c *cli.Context) error {

		m := c.App.Metadata["config"].(*metadata)

		verifier, err := checkReceiver(c, "verifier", m.config)
		if nil != err {
			return err
		}

		key, err := checkSigner(c, m.config)
		if nil != err {
			return err
		}

		if m.verbose {
			fmt.Fprintf(m.e, "%s: %s\n", method, verifier)
		}

		client, err := connect(m)
		if nil != err {
			return err
		}
		defer client.Close()

		response, err := client.ChangeVerifier(key, method, verifier)
		if nil != err {
			return err
		}

		printJson(m.w, response)
		return nil
	}
}

func runVerifiers(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Verifiers()
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
