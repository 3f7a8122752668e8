// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/messagebus"
	"github.com/bitmark-inc/carbonmarkd/zmqutil"
)

const (
	zapDomain = "carbonmark-publish"
	queueSize = 1000
)

// the part of a zmq.Socket used for sending
type sender interface {
	SendMessage(parts ...interface{}) (int, error)
}

type broadcaster struct {
	log      *logger.L
	chain    string
	socket4  *zmq.Socket
	socket6  *zmq.Socket
	senders  []sender
	listener <-chan messagebus.Message
}

// initialise the broadcaster
func (brdc *broadcaster) initialise(log *logger.L, chainName string, privateKey []byte, publicKey []byte, broadcast []string) error {
	brdc.log = log
	brdc.chain = chainName

	socket4, socket6, err := zmqutil.NewBind(log, zmq.PUB, zapDomain, privateKey, publicKey, broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}
	brdc.socket4 = socket4
	brdc.socket6 = socket6

	brdc.senders = brdc.senders[:0]
	if nil != socket4 {
		brdc.senders = append(brdc.senders, socket4)
	}
	if nil != socket6 {
		brdc.senders = append(brdc.senders, socket6)
	}

	// subscribe before background start so no committed event is missed
	brdc.listener = messagebus.Bus.Events.Chan(queueSize)
	return nil
}

// Run - wait for events and send them to all sockets
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {
	log := args.(*logger.L)

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item, ok := <-brdc.listener:
			if !ok {
				break loop
			}
			brdc.send(item)
		}
	}
	messagebus.Bus.Events.Release(brdc.listener)
	log.Info("stopped")
}

// send one event as [chain, kind, record]
func (brdc *broadcaster) send(item messagebus.Message) {
	if 0 == len(item.Parameters) {
		brdc.log.Warnf("event: %q without record", item.Command)
		return
	}
	for _, s := range brdc.senders {
		_, err := s.SendMessage(brdc.chain, item.Command, item.Parameters[0])
		if nil != err {
			brdc.log.Errorf("send: %q  error: %s", item.Command, err)
		}
	}
}

func (brdc *broadcaster) close() {
	if nil != brdc.socket4 {
		brdc.socket4.Close()
		brdc.socket4 = nil
	}
	if nil != brdc.socket6 {
		brdc.socket6.Close()
		brdc.socket6 = nil
	}
	brdc.senders = nil
}
