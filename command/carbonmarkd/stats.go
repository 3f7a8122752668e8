// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/ledger"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// background process logging memory use and ledger progress
type memstats struct {
	engine *ledger.Engine
}

func (m *memstats) Run(args interface{}, shutdown <-chan struct{}) {

	log := logger.New("memory")

	ticker := time.NewTicker(statsDelay)
	defer ticker.Stop()

loop:
	for {
		m.report(log)

		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
		}
	}
	log.Info("stopped")
}

func (m *memstats) report(log *logger.L) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	text, err := json.Marshal(ms)
	if nil != err {
		log.Errorf("marshal error: %s", err)
	} else {
		log.Debugf("stats: %s", text)
	}
	a := ms.Alloc / mega
	t := ms.TotalAlloc / mega
	s := ms.Sys / mega
	log.Warnf("allocated: %d M  cumulative: %d M  OS virtual: %d M  goroutines: %d", a, t, s, runtime.NumGoroutine())

	_ = m.engine.View(func(v *ledger.View) error {
		log.Infof("events: %d  documents: %d  listings: %d  certificates: %d",
			v.Events.Latest(),
			v.Documents.Total(),
			v.Market.NextListingID()-1,
			v.Certificates.Total(),
		)
		return nil
	})
}
