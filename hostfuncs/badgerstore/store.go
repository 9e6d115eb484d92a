// Package badgerstore implements hostfuncs.KVStore on BadgerDB, giving the
// development host contract storage that survives restarts.
package badgerstore

import (
	"errors"
	"fmt"
	"os"

	badgerdb "github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"

	"github.com/c123chain/cdk-go/hostfuncs"
)

// Options configures a Store.
type Options struct {
	// Dir is the data directory. Empty means an in-memory database.
	Dir string

	// SyncWrites flushes every write to disk before returning.
	SyncWrites bool

	Logger *zap.Logger
}

// Store is a BadgerDB-backed contract store.
type Store struct {
	db *badgerdb.DB
}

var _ hostfuncs.KVStore = (*Store)(nil)

// Open opens or creates the database described by opts.
func Open(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var bopts badgerdb.Options
	if opts.Dir == "" {
		bopts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.Dir, 0o700); err != nil {
			return nil, fmt.Errorf("create badger directory: %w", err)
		}
		bopts = badgerdb.DefaultOptions(opts.Dir).WithSyncWrites(opts.SyncWrites)
	}
	bopts = bopts.WithLogger(&badgerLogger{logger: logger.Sugar()})

	db, err := badgerdb.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", opts.Dir, err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a throwaway in-memory database.
func OpenInMemory() (*Store, error) {
	return Open(Options{})
}

func (s *Store) Get(key []byte) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger get: %w", err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}

func (s *Store) Set(key, value []byte) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("badger set: %w", err)
	}
	return nil
}

func (s *Store) Delete(key []byte) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("badger delete: %w", err)
	}
	return nil
}

// Keys returns every key with the given prefix, in key order.
func (s *Store) Keys(prefix []byte) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger keys: %w", err)
	}
	return keys, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// badgerLogger adapts zap to badger's Logger interface.
type badgerLogger struct {
	logger *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf("[badger] "+format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf("[badger] "+format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debugf("[badger] "+format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf("[badger] "+format, args...)
}
