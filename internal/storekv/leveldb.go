package storekv

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/jasony/sccwallet/internal/sccerr"
)

// LevelKV persists the SCC's tables in a single embedded LevelDB
// database, grounded in the teacher pack's own database dependency
// (EXCCoin-exccd's database/v3 module wraps github.com/syndtr/goleveldb)
// — an embedded engine fits a local, single-user wallet better than a
// client/server database the SCC would otherwise have to administer.
// Tables are modelled as key prefixes: "<table>\x00<key>".
type LevelKV struct {
	db *leveldb.DB
}

// Open opens (creating if absent) a LevelDB database at dir.
func Open(dir string) (*LevelKV, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, sccerr.Wrap("storekv.Open", sccerr.StorageFailure, err)
	}
	return &LevelKV{db: db}, nil
}

func (l *LevelKV) Close() error {
	if err := l.db.Close(); err != nil {
		return sccerr.Wrap("storekv.Close", sccerr.StorageFailure, err)
	}
	return nil
}

// Begin opens a native LevelDB transaction; its atomic Commit/Discard
// is exactly the tx_commit/tx_rollback contract spec.md §6 requires of
// the durable store.
func (l *LevelKV) Begin() (Tx, error) {
	txn, err := l.db.OpenTransaction()
	if err != nil {
		return nil, sccerr.Wrap("storekv.Begin", sccerr.StorageFailure, err)
	}
	return &levelTx{txn: txn}, nil
}

type levelTx struct {
	txn *leveldb.Transaction
}

func tableKey(table, key string) []byte {
	b := make([]byte, 0, len(table)+1+len(key))
	b = append(b, table...)
	b = append(b, 0)
	b = append(b, key...)
	return b
}

func (t *levelTx) Put(table, key string, value []byte) error {
	if err := t.txn.Put(tableKey(table, key), value, nil); err != nil {
		return sccerr.Wrap("storekv.Put", sccerr.StorageFailure, err)
	}
	return nil
}

func (t *levelTx) Get(table, key string) ([]byte, bool, error) {
	v, err := t.txn.Get(tableKey(table, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, sccerr.Wrap("storekv.Get", sccerr.StorageFailure, err)
	}
	return v, true, nil
}

func (t *levelTx) Delete(table, key string) error {
	if err := t.txn.Delete(tableKey(table, key), nil); err != nil {
		return sccerr.Wrap("storekv.Delete", sccerr.StorageFailure, err)
	}
	return nil
}

func (t *levelTx) Scan(table, prefix string) (Iterator, error) {
	rng := util.BytesPrefix(tableKey(table, prefix))
	it := t.txn.NewIterator(rng, nil)
	return &levelIterator{it: it, table: table}, nil
}

func (t *levelTx) Commit() error {
	if err := t.txn.Commit(); err != nil {
		return sccerr.Wrap("storekv.Commit", sccerr.StorageFailure, err)
	}
	return nil
}

func (t *levelTx) Rollback() error {
	t.txn.Discard()
	return nil
}

type levelIterator struct {
	it    iterator
	table string
}

// iterator narrows goleveldb's iterator.Iterator to what we use, so
// this file doesn't need to import the iterator package by name twice.
type iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

func (i *levelIterator) Next() bool { return i.it.Next() }

func (i *levelIterator) Key() string {
	k := i.it.Key()
	// strip "<table>\x00" prefix
	return string(k[len(i.table)+1:])
}

func (i *levelIterator) Value() []byte { return i.it.Value() }
func (i *levelIterator) Release()      { i.it.Release() }
func (i *levelIterator) Error() error  { return i.it.Error() }
