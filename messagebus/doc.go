// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a queuing system for committed ledger events
//
// events are only sent after the storage batch that produced them has
// been committed, so a listener never sees an event for rolled back
// state
package messagebus
