// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/carbonmarkd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Verifiers         *PoolHandle `prefix:"V"`
	Documents         *PoolHandle `prefix:"D"`
	DocumentCID       *PoolHandle `prefix:"C"`
	UploaderDocuments *PoolHandle `prefix:"U"`
	Classes           *PoolHandle `prefix:"K"`
	Balances          *PoolHandle `prefix:"B"`
	Nonces            *PoolHandle `prefix:"O"`
	Delegations       *PoolHandle `prefix:"A"`
	Listings          *PoolHandle `prefix:"L"`
	Certificates      *PoolHandle `prefix:"R"`
	OwnerCertificates *PoolHandle `prefix:"W"`
	CertificateCount  *PoolHandle `prefix:"Q"`
	Funds             *PoolHandle `prefix:"F"`
	Counters          *PoolHandle `prefix:"N"`
	CallSequences     *PoolHandle `prefix:"S"`
	Events            *PoolHandle `prefix:"E"`
	TestData          *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	db     *leveldb.DB
	access Access
	trx    Transaction
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
// returns true if the database was freshly created
func Initialise(database string, readOnly bool) (bool, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(database+".leveldb", opt)
	if nil != err {
		return false, err
	}
	return setup(db, readOnly)
}

// InitialiseInMemory - a volatile database that vanishes on Finalise
func InitialiseInMemory() error {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return err
	}
	_, err = setup(db, ReadWrite)
	return err
}

func setup(db *leveldb.DB, readOnly bool) (bool, error) {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		db.Close()
		return false, fault.AlreadyInitialised
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return false, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		db.Close()
		logger.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return false, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	fresh := 0 == version
	if fresh {
		if readOnly {
			db.Close()
			return false, fmt.Errorf("database is empty")
		}
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return false, err
		}
	}

	access := newAccess(db)

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	seen := make(map[byte]string)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			db.Close()
			return false, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		if other, ok := seen[prefix]; ok {
			db.Close()
			return false, fmt.Errorf("pool: %s reuses prefix: %q of: %s", fieldInfo.Name, prefixTag, other)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			access: access,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	poolData.db = db
	poolData.access = access
	poolData.trx = newTransaction(access)

	return fresh, nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.access && poolData.access.InUse() {
		poolData.access.Abort()
	}
	if nil != poolData.db {
		poolData.db.Close()
		poolData.db = nil
	}
	poolData.access = nil
	poolData.trx = nil
	Pool = pools{}
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// NewDBTransaction - begin the single batch
func NewDBTransaction() (Transaction, error) {
	poolData.RLock()
	trx := poolData.trx
	poolData.RUnlock()

	if nil == trx {
		return nil, fault.NotInitialised
	}
	err := trx.Begin()
	if nil != err {
		return nil, err
	}
	return trx, nil
}
