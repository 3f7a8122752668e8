// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bitmark-inc/carbonmarkd/fault"
)

// registered once with the default registry
var (
	callsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carbonmark_ledger_calls_total",
		Help: "Total mutating ledger calls by operation and result",
	}, []string{"operation", "result"})

	callDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "carbonmark_ledger_call_duration_seconds",
		Help:    "Duration of mutating ledger calls including commit",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
	}, []string{"operation"})
)

// result label for an error
func resultOf(err error) string {
	switch {
	case nil == err:
		return "ok"
	case fault.IsErrAuthorisation(err):
		return "unauthorised"
	case fault.IsErrInvalid(err):
		return "invalid"
	case fault.IsErrExists(err):
		return "exists"
	case fault.IsErrNotFound(err):
		return "not-found"
	case fault.IsErrPrecondition(err):
		return "precondition"
	case fault.IsErrPayment(err):
		return "payment"
	default:
		return "error"
	}
}

func observe(operation string, start time.Time, err error) {
	callsTotal.WithLabelValues(operation, resultOf(err)).Inc()
	callDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
