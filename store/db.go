package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
)

// Database wraps the Badger database
type Database struct {
	db *badger.DB
}

// NewDatabase initializes and returns a new instance of the Badger database
func NewDatabase(path string) (*Database, error) {
	// Remove any existing lock file before opening
	lockFile := filepath.Join(path, "LOCK")
	if err := os.Remove(lockFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove existing lock file: %v", err)
	}

	opts := badger.DefaultOptions(path).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open Badger database: %v", err)
	}

	return &Database{db: db}, nil
}

func (d *Database) GetDB() *badger.DB {
	return d.db
}

// Set sets a key-value pair in the Badger database
func (d *Database) Set(key, value []byte) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Get retrieves a value for a given key from the Badger database.
// Returns (nil, nil) when the key does not exist.
func (d *Database) Get(key []byte) ([]byte, error) {
	var valCopy []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		valCopy, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	return valCopy, err
}

// Delete deletes a key-value pair from the Badger database
func (d *Database) Delete(key []byte) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// ScanPrefix visits every key/value pair under the given prefix.
func (d *Database) ScanPrefix(prefix []byte, visit func(key, value []byte) error) error {
	return d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := visit(item.KeyCopy(nil), val); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the Badger database
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
