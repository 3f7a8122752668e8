// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - TLS endpoints for the raw JSON RPC and HTTPS servers
package listeners

import (
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/util"
)

const minConnectionCount = 1

// Listener - a started set of network endpoints
type Listener interface {
	Serve() error
	Close()
}

// canonical listen addresses with the network for each
//
// "*:PORT" listens on both tcp4 and tcp6
func parseListenAddress(addrs []string, log *logger.L) ([]string, []string, error) {
	canonical := make([]string, len(addrs))
	network := make([]string, len(addrs))
	for i, listen := range addrs {
		c, v6, err := util.CanonicalIPandPort(listen)
		if nil != err {
			log.Errorf("listen address: %q  error: %s", listen, err)
			return nil, nil, err
		}
		canonical[i] = c
		switch {
		case strings.HasPrefix(strings.TrimSpace(listen), "*"):
			network[i] = "tcp"
		case v6:
			network[i] = "tcp6"
		default:
			network[i] = "tcp4"
		}
	}
	return canonical, network, nil
}
