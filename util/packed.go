// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/binary"

	"github.com/bitmark-inc/carbonmarkd/fault"
)

// ErrTruncated - a packed record ended before all fields were read
const ErrTruncated = fault.ProcessError("packed record is truncated")

// Packed - a record as a sequence of varint prefixed fields
//
// every variable length field is preceded by its length as a varint,
// fixed integers are stored as a single varint
type Packed []byte

// AppendUint64 - append a varint
func (p Packed) AppendUint64(value uint64) Packed {
	return binary.AppendUvarint(p, value)
}

// AppendBool - append a single byte boolean
func (p Packed) AppendBool(value bool) Packed {
	if value {
		return append(p, 1)
	}
	return append(p, 0)
}

// AppendBytes - append varint(length) ++ data
func (p Packed) AppendBytes(data []byte) Packed {
	p = binary.AppendUvarint(p, uint64(len(data)))
	return append(p, data...)
}

// AppendString - append varint(length) ++ string
func (p Packed) AppendString(s string) Packed {
	p = binary.AppendUvarint(p, uint64(len(s)))
	return append(p, s...)
}

// Unpacker - sequential reader of a Packed record
//
// the first error is sticky, all later reads return zero values
type Unpacker struct {
	buffer []byte
	err    error
}

// NewUnpacker - start reading a packed record
func NewUnpacker(p Packed) *Unpacker {
	return &Unpacker{
		buffer: p,
	}
}

// Uint64 - read a varint
func (u *Unpacker) Uint64() uint64 {
	if nil != u.err {
		return 0
	}
	value, n := binary.Uvarint(u.buffer)
	if n <= 0 {
		u.err = ErrTruncated
		return 0
	}
	u.buffer = u.buffer[n:]
	return value
}

// Bool - read a single byte boolean
func (u *Unpacker) Bool() bool {
	if nil != u.err {
		return false
	}
	if 0 == len(u.buffer) {
		u.err = ErrTruncated
		return false
	}
	b := u.buffer[0]
	u.buffer = u.buffer[1:]
	return 0 != b
}

// Bytes - read a length prefixed byte slice (copied)
func (u *Unpacker) Bytes() []byte {
	n := u.Uint64()
	if nil != u.err {
		return nil
	}
	if uint64(len(u.buffer)) < n {
		u.err = ErrTruncated
		return nil
	}
	data := make([]byte, n)
	copy(data, u.buffer[:n])
	u.buffer = u.buffer[n:]
	return data
}

// BytesN - read a length prefixed byte slice that must have length n
func (u *Unpacker) BytesN(n int) []byte {
	data := u.Bytes()
	if nil != u.err {
		return nil
	}
	if n != len(data) {
		u.err = ErrTruncated
		return nil
	}
	return data
}

// String - read a length prefixed string
func (u *Unpacker) String() string {
	return string(u.Bytes())
}

// Err - first error encountered, if any
func (u *Unpacker) Err() error {
	return u.err
}

// Remaining - count of unread bytes
func (u *Unpacker) Remaining() int {
	return len(u.buffer)
}
