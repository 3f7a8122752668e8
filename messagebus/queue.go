// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

// internal constants
const (
	queueSize        = 1000
	minimumQueueSize = 10
)

// Message - a command and its raw parameters
type Message struct {
	Command    string
	Parameters [][]byte
}

// Queue - a single consumer queue
type Queue struct {
	c chan Message
}

// BroadcastQueue - every listener receives every message
type BroadcastQueue struct {
	sync.Mutex
	listeners []chan Message
	dropped   uint64
}

// BusType - the set of queues
type BusType struct {
	Events    *BroadcastQueue // committed ledger events
	TestQueue *Queue          // for testing use
}

// Bus - all available queues
var Bus = BusType{
	Events:    &BroadcastQueue{},
	TestQueue: &Queue{c: make(chan Message, queueSize)},
}

// Send - queue a message, blocks if the queue is full
func (queue *Queue) Send(command string, parameters ...[]byte) {
	queue.c <- Message{
		Command:    command,
		Parameters: parameters,
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}

// Send - give a copy of the message to every listener
//
// a listener whose queue is full misses the message
func (queue *BroadcastQueue) Send(command string, parameters ...[]byte) {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}

	queue.Lock()
	defer queue.Unlock()

	for _, c := range queue.listeners {
		select {
		case c <- m:
		default:
			queue.dropped += 1
		}
	}
}

// Chan - register a new listener
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size < minimumQueueSize {
		size = minimumQueueSize
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.listeners = append(queue.listeners, c)
	queue.Unlock()

	return c
}

// Release - remove a listener and close its channel
func (queue *BroadcastQueue) Release(listener <-chan Message) {
	queue.Lock()
	defer queue.Unlock()

	for i, c := range queue.listeners {
		if (<-chan Message)(c) == listener {
			queue.listeners = append(queue.listeners[:i], queue.listeners[i+1:]...)
			close(c)
			return
		}
	}
}

// Dropped - count of messages not delivered to full listeners
func (queue *BroadcastQueue) Dropped() uint64 {
	queue.Lock()
	defer queue.Unlock()
	return queue.dropped
}
