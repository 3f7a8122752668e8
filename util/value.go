// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"strings"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/carbonmarkd/fault"
)

// ParseValue - a 256 bit value from its decimal string
func ParseValue(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return nil, fault.InvalidAmount
	}
	v, err := uint256.FromDecimal(s)
	if nil != err {
		return nil, fault.InvalidAmount
	}
	return v, nil
}
