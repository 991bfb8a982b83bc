// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

// Package badger is a BadgerDB-backed in-flight record store.
package badger

import (
	"fmt"
	"sort"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/xiaostang/mqtt5/storage"
)

const (
	// defaultDbFile is the default file path for the badger db directory.
	defaultDbFile = ".badger"
)

// Options contains configuration settings for the BadgerDB store.
type Options struct {
	Options *badgerdb.Options
	Path    string `yaml:"path" json:"path"`
}

// Store is a persistent in-flight record store using BadgerDB as a
// backend.
type Store struct {
	client string
	config *Options
	db     *badgerdb.DB
}

// New opens a badger store for the given client id.
func New(client string, config *Options) (*Store, error) {
	if config == nil {
		config = new(Options)
	}

	if len(config.Path) == 0 {
		config.Path = defaultDbFile
	}

	if config.Options == nil {
		defaultOpts := badgerdb.DefaultOptions(config.Path)
		defaultOpts.Logger = nil
		config.Options = &defaultOpts
	}

	db, err := badgerdb.Open(*config.Options)
	if err != nil {
		return nil, err
	}

	return &Store{
		client: client,
		config: config,
		db:     db,
	}, nil
}

// inflightKey returns the primary key for an in-flight record.
func (s *Store) inflightKey(id uint16) []byte {
	return []byte(fmt.Sprintf("%s_%s:%d", storage.InflightKey, s.client, id))
}

// inflightPrefix returns the key prefix shared by the client's records.
func (s *Store) inflightPrefix() []byte {
	return []byte(storage.InflightKey + "_" + s.client + ":")
}

// Serialize persists the raw bytes for a packet id.
func (s *Store) Serialize(kind storage.Kind, id uint16, raw []byte) error {
	if s.db == nil {
		return storage.ErrDBFileNotOpen
	}

	in := storage.Record{
		Raw:      raw,
		Client:   s.client,
		Created:  time.Now().UnixNano(),
		PacketID: id,
		Kind:     kind,
	}

	v, err := in.MarshalBinary()
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(s.inflightKey(id), v)
	})
}

// Release deletes the record for a packet id.
func (s *Store) Release(id uint16) error {
	if s.db == nil {
		return storage.ErrDBFileNotOpen
	}

	return s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(s.inflightKey(id))
	})
}

// Records returns all persisted records for the client, in ascending
// order of persistence time.
func (s *Store) Records() ([]storage.Record, error) {
	if s.db == nil {
		return nil, storage.ErrDBFileNotOpen
	}

	v := []storage.Record{}
	prefix := s.inflightPrefix()
	err := s.db.View(func(txn *badgerdb.Txn) error {
		it := txn.NewIterator(badgerdb.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(d []byte) error {
				var in storage.Record
				if err := in.UnmarshalBinary(d); err != nil {
					return err
				}
				v = append(v, in)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(v, func(i, j int) bool {
		return v[i].Created < v[j].Created
	})

	return v, nil
}

// Drop deletes every record held for the client.
func (s *Store) Drop() error {
	if s.db == nil {
		return storage.ErrDBFileNotOpen
	}

	prefix := s.inflightPrefix()
	return s.db.Update(func(txn *badgerdb.Txn) error {
		it := txn.NewIterator(badgerdb.IteratorOptions{PrefetchValues: false})
		defer it.Close()

		keys := [][]byte{}
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}

		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the badger instance.
func (s *Store) Close() error {
	err := s.db.Close()
	s.db = nil
	return err
}
