// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// carbonmark-dumpdb - hex dump of a storage pool from a stopped node
package main

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"

	"github.com/bitmark-inc/carbonmarkd/storage"
)

func main() {
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "start", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["help"]) > 0 || 1 != len(arguments) || 1 != len(options["file"]) {
		usage(program)
		return
	}

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err || count <= 0 {
			exitwithstatus.Message("%s: invalid count: %q", program, options["count"][0])
		}
	}

	var start []byte
	if len(options["start"]) > 0 {
		start, err = hex.DecodeString(strings.TrimPrefix(options["start"][0], "0x"))
		if nil != err {
			exitwithstatus.Message("%s: invalid start key: %s", program, err)
		}
	}

	// the database name excludes the .leveldb suffix
	database := strings.TrimSuffix(options["file"][0], ".leveldb")
	_, err = storage.Initialise(database, storage.ReadOnly)
	if nil != err {
		exitwithstatus.Message("%s: storage: %q  error: %s", program, database, err)
	}
	defer storage.Finalise()

	p := poolForTag(arguments[0])
	if nil == p {
		exitwithstatus.Message("%s: no pool corresponding to: %q", program, arguments[0])
	}

	cursor := p.NewFetchCursor()
	if nil != start {
		cursor.Seek(start)
	}
	data, err := cursor.Fetch(count)
	if nil != err {
		exitwithstatus.Message("%s: fetch error: %s", program, err)
	}
	for i, e := range data {
		fmt.Printf("%d: Key: %x\n", i, e.Key)
		fmt.Printf("%d: Val: %x\n", i, e.Value)
	}
}

// scan the pool struct for a matching prefix tag or field name
func poolForTag(tag string) *storage.PoolHandle {
	poolType := reflect.TypeOf(storage.Pool)
	poolValue := reflect.ValueOf(storage.Pool)

	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)
		if tag == fieldInfo.Tag.Get("prefix") || strings.EqualFold(tag, fieldInfo.Name) {
			p, ok := poolValue.Field(i).Interface().(*storage.PoolHandle)
			if ok {
				return p
			}
		}
	}
	return nil
}

func usage(program string) {
	fmt.Printf("usage: %s --file=DATABASE [--start=HEX-KEY] [--count=N] TAG\n", program)
	fmt.Printf(" tags:\n")

	poolType := reflect.TypeOf(storage.Pool)
	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)
		fmt.Printf("       %s → %s\n", fieldInfo.Tag.Get("prefix"), fieldInfo.Name)
	}
}
