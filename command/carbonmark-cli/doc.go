// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// carbonmark-cli - command line client for carbonmarkd
//
// identities are held in:
//   ${XDG_CONFIG_HOME}/carbonmark-cli/<chain>-carbonmark-cli.json
//
// create the configuration:
//   carbonmark-cli -n local -i alice setup -c 127.0.0.1:2130 -d "alice's key"
//
// typical flow:
//   carbonmark-cli -i uploader register -f project.pdf -N "Mangrove" -T blue-carbon -e 1000
//   carbonmark-cli -i verifier attest -d 1
//   carbonmark-cli -i verifier mint -g GS-101 -s GS-101-2020 -C <cid> -a 1000 -r uploader
//   carbonmark-cli -i uploader approve
//   carbonmark-cli -i uploader list -c 1 -a 100 -p 5000
//   carbonmark-cli -i buyer buy -l 1 -a 10
//   carbonmark-cli -i buyer retire -c 1 -a 10 -m ipfs://<pointer>
package main
