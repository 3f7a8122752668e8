// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/carbonmarkd/chain"
	"github.com/bitmark-inc/carbonmarkd/command/carbonmark-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	chain   string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "carbonmark-cli"
	app.Usage = "carbon credit ledger client"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: chain.Local,
			Usage: " connect to `CHAIN` [carbonmark|testing|local]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " identity `PASSWORD`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "generate",
			Usage:  "generate a private key, will not store in config file",
			Action: runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "initialise carbonmark-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*carbonmarkd host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "privateKey, k",
					Value: "",
					Usage: " using existing hex private `KEY`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "privateKey, k",
					Value: "",
					Usage: "+using existing hex private `KEY`",
				},
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "+receive only `ADDRESS`",
				},
				cli.BoolFlag{
					Name:  "default",
					Usage: " make this the default identity",
				},
			},
			Action: runAdd,
		},
		{
			Name:   "info",
			Usage:  "display carbonmark-cli identities",
			Action: runInfo,
		},
		{
			Name:   "password",
			Usage:  "change identity's password",
			Action: runChangePassword,
		},
		{
			Name:   "nodeInfo",
			Usage:  "display carbonmarkd status",
			Action: runNodeInfo,
		},
		{
			Name:      "events",
			Usage:     "list ledger events",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 1,
					Usage: " first event `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runEvents,
		},
		{
			Name:      "cid",
			Usage:     "compute the content identifier of a file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*`FILE` of data to identify",
				},
				cli.Uint64Flag{
					Name:  "cid-version",
					Value: 1,
					Usage: " content identifier `VERSION` [0|1]",
				},
			},
			Action: runCID,
		},
		{
			Name:      "register",
			Usage:     "register a project document",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "+`FILE` to compute the content identifier from",
				},
				cli.StringFlag{
					Name:  "cid, C",
					Value: "",
					Usage: "+content identifier `CID`",
				},
				cli.Uint64Flag{
					Name:  "cid-version",
					Value: 1,
					Usage: " content identifier `VERSION` [0|1]",
				},
				cli.StringFlag{
					Name:  "name, N",
					Value: "",
					Usage: "*project `NAME`",
				},
				cli.StringFlag{
					Name:  "type, T",
					Value: "",
					Usage: " project `TYPE`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: " project `DESCRIPTION`",
				},
				cli.StringFlag{
					Name:  "location, l",
					Value: "",
					Usage: " project `LOCATION`",
				},
				cli.Uint64Flag{
					Name:  "estimated, e",
					Value: 0,
					Usage: " estimated credits `COUNT`",
				},
			},
			Action: runRegister,
		},
		{
			Name:      "attest",
			Usage:     "attest a registered document as a verifier",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "document, d",
					Value: 0,
					Usage: "*document `ID`",
				},
			},
			Action: runAttest,
		},
		{
			Name:      "document",
			Usage:     "display a document",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "document, d",
					Value: 0,
					Usage: "+document `ID`",
				},
				cli.StringFlag{
					Name:  "cid, C",
					Value: "",
					Usage: "+content identifier `CID`",
				},
			},
			Action: runDocument,
		},
		{
			Name:  "documents",
			Usage: "list documents",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "status",
					Value: "",
					Usage: " only documents with `STATUS` [pending|attested]",
				},
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 1,
					Usage: " first document `ID`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runDocuments,
		},
		{
			Name:  "verifier",
			Usage: "manage the verifier set",
			Subcommands: []cli.Command{
				{
					Name:  "add",
					Usage: "authorise a verifier",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "verifier, V",
							Value: "",
							Usage: "*identity name or address `ACCOUNT`",
						},
					},
					Action: changeVerifier("Verifiers.Add"),
				},
				{
					Name:  "remove",
					Usage: "revoke a verifier",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "verifier, V",
							Value: "",
							Usage: "*identity name or address `ACCOUNT`",
						},
					},
					Action: changeVerifier("Verifiers.Remove"),
				},
				{
					Name:   "list",
					Usage:  "display the authority and verifiers",
					Action: runVerifiers,
				},
			},
		},
		{
			Name:      "mint",
			Usage:     "sign an attestation and mint a credit class",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "project, g",
					Value: "",
					Usage: "*registry project `ID`",
				},
				cli.StringFlag{
					Name:  "serial, s",
					Value: "",
					Usage: "*registry `SERIAL`",
				},
				cli.StringFlag{
					Name:  "cid, C",
					Value: "",
					Usage: " supporting document `CID`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*credits to mint `COUNT`",
				},
				cli.StringFlag{
					Name:  "recipient, r",
					Value: "",
					Usage: "*identity name or address `ACCOUNT`",
				},
			},
			Action: runMint,
		},
		{
			Name:  "approve",
			Usage: "allow an operator to move all credits, default is the marketplace",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "operator, o",
					Value: "",
					Usage: " identity name or address `ACCOUNT`",
				},
				cli.BoolFlag{
					Name:  "revoke",
					Usage: " remove the approval",
				},
			},
			Action: runApprove,
		},
		{
			Name:      "transfer",
			Usage:     "transfer credits to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "class, c",
					Value: 0,
					Usage: "*credit class `ID`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*credits to transfer `COUNT`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*identity name or address `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "from, f",
					Value: "",
					Usage: " holder when acting as operator `ACCOUNT`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "burn",
			Usage:     "destroy credits",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "class, c",
					Value: 0,
					Usage: "*credit class `ID`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*credits to burn `COUNT`",
				},
			},
			Action: runBurn,
		},
		{
			Name:      "balance",
			Usage:     "display credits held",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "class, c",
					Value: 0,
					Usage: "*credit class `ID`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name or address `ACCOUNT` default is global identity",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "class",
			Usage:     "display a credit class",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "class, c",
					Value: 0,
					Usage: "*credit class `ID`",
				},
			},
			Action: runClass,
		},
		{
			Name:   "market",
			Usage:  "display marketplace address and fee",
			Action: runMarketInfo,
		},
		{
			Name:      "list",
			Usage:     "offer credits for sale",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "class, c",
					Value: 0,
					Usage: "*credit class `ID`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*credits to sell `COUNT`",
				},
				cli.StringFlag{
					Name:  "price, p",
					Value: "",
					Usage: "*price per credit `VALUE`",
				},
			},
			Action: runList,
		},
		{
			Name:      "quote",
			Usage:     "value required to buy from a listing",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "listing, l",
					Value: 0,
					Usage: "*listing `ID`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*credits to buy `COUNT`",
				},
			},
			Action: runQuote,
		},
		{
			Name:      "buy",
			Usage:     "buy credits from a listing",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "listing, l",
					Value: 0,
					Usage: "*listing `ID`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*credits to buy `COUNT`",
				},
			},
			Action: runBuy,
		},
		{
			Name:      "retire",
			Usage:     "retire credits and receive a certificate",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "class, c",
					Value: 0,
					Usage: "*credit class `ID`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*credits to retire `COUNT`",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: "*certificate metadata `URI`",
				},
			},
			Action: runRetire,
		},
		{
			Name:  "listings",
			Usage: "display active listings",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "listing, l",
					Value: 0,
					Usage: " only this listing `ID`",
				},
			},
			Action: runListings,
		},
		{
			Name:  "certificates",
			Usage: "display retirement certificates",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "certificate, C",
					Value: 0,
					Usage: " only this certificate `ID`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name or address `ACCOUNT` default is global identity",
				},
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " index of first certificate `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runCertificates,
		},
		{
			Name:  "funds",
			Usage: "display value held",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name or address `ACCOUNT` default is global identity",
				},
			},
			Action: runFunds,
		},
		{
			Name:      "send",
			Usage:     "send value to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*identity name or address `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "value, V",
					Value: "",
					Usage: "*value to send `AMOUNT`",
				},
			},
			Action: runSend,
		},
		{
			Name:      "faucet",
			Usage:     "credit value on a testing chain",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: " identity name or address `ACCOUNT` default is global identity",
				},
				cli.StringFlag{
					Name:  "value, V",
					Value: "",
					Usage: "*value to credit `AMOUNT`",
				},
			},
			Action: runFaucet,
		},
		{
			Name:  "version",
			Usage: "display carbonmark-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		switch command {
		case "", "version", "help", "h":
			return nil
		}

		network := c.GlobalString("network")
		switch network {
		case chain.Carbonmark, "live":
			network = chain.Carbonmark
		case chain.Testing, "test":
			network = chain.Testing
		case chain.Local, "regression":
			network = chain.Local
		default:
			return fmt.Errorf("network: %q can only be carbonmark/testing/local", network)
		}

		p := os.Getenv("XDG_CONFIG_HOME")
		if "" == p {
			return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
		dir, err := checkFileExists(p)
		if nil != err {
			return err
		}
		if !dir {
			return fmt.Errorf("not a directory: %q", p)
		}
		file := path.Join(p, app.Name, network+"-"+app.Name+".json")

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		m := &metadata{
			file:    file,
			chain:   network,
			verbose: verbose,
			e:       e,
			w:       w,
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}

		} else if "generate" != command {

			if verbose {
				fmt.Fprintf(e, "reading config file: %s\n", file)
			}

			config, err := configuration.Load(file)
			if nil != err {
				return err
			}
			if config.Chain != network {
				return fmt.Errorf("configuration chain: %q does not match: %q", config.Chain, network)
			}
			m.config = config
		}

		c.App.Metadata["config"] = m
		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if m.verbose {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			err := configuration.Save(m.file, m.config)
			if nil != err {
				return err
			}
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
