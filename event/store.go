// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/carbonmarkd/fault"
	"github.com/bitmark-inc/carbonmarkd/storage"
	"github.com/bitmark-inc/carbonmarkd/util"
)

const counterName = "event"

// Record - a committed event
type Record struct {
	Sequence  uint64          `json:"sequence"`
	ID        uuid.UUID       `json:"id"`
	Kind      Kind            `json:"kind"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Store - persistent event history
type Store struct {
	events   storage.Handle
	counters storage.Handle
}

// NewStore - history over the given pools
func NewStore(events storage.Handle, counters storage.Handle) *Store {
	return &Store{
		events:   events,
		counters: counters,
	}
}

func sequenceKey(sequence uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, sequence)
	return key
}

// Append - store pending events in the current batch
//
// returns the records so they can be sent after commit
func (s *Store) Append(pending []Pending, now time.Time) ([]Record, error) {
	records := make([]Record, 0, len(pending))
	for _, p := range pending {
		payload, err := json.Marshal(p.Payload)
		if nil != err {
			return nil, err
		}
		r := Record{
			Sequence:  storage.NextCount(s.counters, counterName),
			ID:        uuid.New(),
			Kind:      p.Kind,
			Timestamp: now.UTC(),
			Payload:   payload,
		}
		s.events.Put(sequenceKey(r.Sequence), r.pack())
		records = append(records, r)
	}
	return records, nil
}

// Latest - sequence of the most recent event, zero if none
func (s *Store) Latest() uint64 {
	return storage.CurrentCount(s.counters, counterName)
}

// Get - a single event
func (s *Store) Get(sequence uint64) (*Record, error) {
	buffer := s.events.Get(sequenceKey(sequence))
	if nil == buffer {
		return nil, fault.NotFound
	}
	return unpack(sequence, buffer)
}

// Range - up to count events starting at sequence start
func (s *Store) Range(start uint64, count int) ([]Record, error) {
	if count <= 0 {
		return nil, fault.InvalidCount
	}
	elements, err := s.events.NewFetchCursor().Seek(sequenceKey(start)).Fetch(count)
	if nil != err {
		return nil, err
	}
	records := make([]Record, 0, len(elements))
	for _, e := range elements {
		r, err := unpack(binary.BigEndian.Uint64(e.Key), e.Value)
		if nil != err {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, nil
}

func (r *Record) pack() []byte {
	return util.Packed{}.
		AppendBytes(r.ID[:]).
		AppendString(string(r.Kind)).
		AppendUint64(uint64(r.Timestamp.UnixNano())).
		AppendBytes(r.Payload)
}

func unpack(sequence uint64, buffer []byte) (*Record, error) {
	u := util.NewUnpacker(buffer)
	id := u.Bytes()
	kind := u.String()
	timestamp := u.Uint64()
	payload := u.Bytes()
	if nil != u.Err() {
		return nil, u.Err()
	}
	r := &Record{
		Sequence:  sequence,
		Kind:      Kind(kind),
		Timestamp: time.Unix(0, int64(timestamp)).UTC(),
		Payload:   payload,
	}
	if len(id) != len(r.ID) {
		return nil, util.ErrTruncated
	}
	copy(r.ID[:], id)
	return r, nil
}
