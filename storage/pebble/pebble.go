// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

// Package pebble is a Pebble-backed in-flight record store.
package pebble

import (
	"errors"
	"fmt"
	"sort"
	"time"

	pebbledb "github.com/cockroachdb/pebble"

	"github.com/xiaostang/mqtt5/storage"
)

const (
	// defaultDbFile is the default file path for the pebble db directory.
	defaultDbFile = ".pebble"
)

// Options contains configuration settings for the pebble store.
type Options struct {
	Options *pebbledb.Options
	Path    string `yaml:"path" json:"path"`

	// Sync writes through to stable storage on every set. Disabling it
	// trades durability of the most recent writes for throughput.
	Sync bool `yaml:"sync" json:"sync"`
}

// Store is a persistent in-flight record store using Pebble as a backend.
type Store struct {
	client string
	config *Options
	mode   *pebbledb.WriteOptions
	db     *pebbledb.DB
}

// New opens a pebble store for the given client id.
func New(client string, config *Options) (*Store, error) {
	if config == nil {
		config = &Options{Sync: true}
	}

	if len(config.Path) == 0 {
		config.Path = defaultDbFile
	}

	if config.Options == nil {
		config.Options = &pebbledb.Options{}
	}

	db, err := pebbledb.Open(config.Path, config.Options)
	if err != nil {
		return nil, err
	}

	mode := pebbledb.NoSync
	if config.Sync {
		mode = pebbledb.Sync
	}

	return &Store{
		client: client,
		config: config,
		mode:   mode,
		db:     db,
	}, nil
}

// inflightKey returns the primary key for an in-flight record.
func (s *Store) inflightKey(id uint16) []byte {
	return []byte(fmt.Sprintf("%s_%s:%d", storage.InflightKey, s.client, id))
}

// inflightBounds returns the iteration bounds covering the client's
// records.
func (s *Store) inflightBounds() (lower, upper []byte) {
	prefix := storage.InflightKey + "_" + s.client + ":"
	return []byte(prefix), []byte(prefix + "~") // '~' sorts after every digit
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

	return s.db.Set(s.inflightKey(id), v, s.mode)
}

// Release deletes the record for a packet id.
func (s *Store) Release(id uint16) error {
	if s.db == nil {
		return storage.ErrDBFileNotOpen
	}

	err := s.db.Delete(s.inflightKey(id), s.mode)
	if err != nil && !errors.Is(err, pebbledb.ErrNotFound) {
		return err
	}

	return nil
}

// Records returns all persisted records for the client, in ascending
// order of persistence time.
func (s *Store) Records() ([]storage.Record, error) {
	if s.db == nil {
		return nil, storage.ErrDBFileNotOpen
	}

	lower, upper := s.inflightBounds()
	iter, err := s.db.NewIter(&pebbledb.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	v := []storage.Record{}
	for iter.First(); iter.Valid(); iter.Next() {
		var in storage.Record
		if err := in.UnmarshalBinary(iter.Value()); err != nil {
			return nil, err
		}
		v = append(v, in)
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

	lower, upper := s.inflightBounds()
	return s.db.DeleteRange(lower, upper, s.mode)
}

// Close closes the pebble instance.
func (s *Store) Close() error {
	err := s.db.Close()
	s.db = nil
	return err
}
