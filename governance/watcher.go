// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"
)

// editors write in bursts, wait for the file to settle
const settleDelay = 250 * time.Millisecond

// Watcher - background process applying the file on every change
type Watcher struct {
	log      *logger.L
	registry Registry
	fileName string
	watcher  *fsnotify.Watcher
}

// NewWatcher - watch the directory holding fileName
//
// the directory is watched rather than the file so that a file
// replaced by rename is still seen
func NewWatcher(log *logger.L, registry Registry, fileName string) (*Watcher, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}
	err = watcher.Add(filepath.Dir(fileName))
	if nil != err {
		watcher.Close()
		log.Errorf("watch: %q  error: %s", filepath.Dir(fileName), err)
		return nil, err
	}

	return &Watcher{
		log:      log,
		registry: registry,
		fileName: fileName,
		watcher:  watcher,
	}, nil
}

// Run - apply once at start then on each settled change
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Info("starting…")

	defer w.watcher.Close()

	_ = Apply(log, w.registry, w.fileName)

	// nil channel blocks until a change arms the timer
	var settle <-chan time.Time

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if event.Name != w.fileName {
				continue loop
			}
			if isChange(event) {
				log.Debugf("file event: %v", event)
				settle = time.After(settleDelay)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)

		case <-settle:
			settle = nil
			_ = Apply(log, w.registry, w.fileName)
		}
	}
	log.Info("stopped")
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}
