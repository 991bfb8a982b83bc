// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

// Package bolt is a boltdb-backed in-flight record store.
package bolt

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/xiaostang/mqtt5/storage"
)

const (
	// defaultDbFile is the default file path for the boltdb file.
	defaultDbFile = ".bolt"

	// defaultTimeout is the default time to hold a connection to the file.
	defaultTimeout = 250 * time.Millisecond

	defaultBucket = "mqtt5"
)

// Options contains configuration settings for the bolt store.
type Options struct {
	Options *bbolt.Options
	Bucket  string `yaml:"bucket" json:"bucket"`
	Path    string `yaml:"path" json:"path"`
}

// Store is a persistent in-flight record store using a boltdb file as a
// backend.
type Store struct {
	client string
	config *Options
	db     *bbolt.DB
}

// New opens a bolt store for the given client id.
func New(client string, config *Options) (*Store, error) {
	if config == nil {
		config = new(Options)
	}

	if config.Options == nil {
		config.Options = &bbolt.Options{
			Timeout: defaultTimeout,
		}
	}

	if len(config.Path) == 0 {
		config.Path = defaultDbFile
	}

	if len(config.Bucket) == 0 {
		config.Bucket = defaultBucket
	}

	db, err := bbolt.Open(config.Path, 0600, config.Options)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(config.Bucket))
		return err
	})
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

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(s.config.Bucket)).Put(s.inflightKey(id), v)
	})
}

// Release deletes the record for a packet id.
func (s *Store) Release(id uint16) error {
	if s.db == nil {
		return storage.ErrDBFileNotOpen
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(s.config.Bucket)).Delete(s.inflightKey(id))
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
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(s.config.Bucket)).Cursor()
		for k, d := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, d = c.Next() {
			var in storage.Record
			if err := in.UnmarshalBinary(d); err != nil {
				return err
			}
			v = append(v, in)
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
	return s.db.Update(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(s.config.Bucket)).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the boltdb instance.
func (s *Store) Close() error {
	err := s.db.Close()
	s.db = nil
	return err
}
