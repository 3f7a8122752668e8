// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - serialised, atomic access to the credit ledger
//
// every mutating call holds the engine lock for its whole duration and
// runs inside the single storage batch:
//
//   lock → begin → [check call sequence] → operation → store events → commit
//
// any error aborts the batch, discards the read overlay and drops the
// buffered events.  Events are sent to the message bus only after a
// successful commit, so subscribers never observe an event for state
// that was rolled back.
//
// reads take the read lock through View and see committed state only
package ledger
