// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

// Package redis is a Redis-backed in-flight record store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/xiaostang/mqtt5/storage"
)

// defaultHPrefix is the default key prefix for the session hashes.
const defaultHPrefix = "mqtt5:"

// Options contains configuration settings for the redis store.
type Options struct {
	Options *redis.Options

	// HPrefix is a prefix to differentiate multiple instances sharing
	// one redis database.
	HPrefix string `yaml:"h_prefix" json:"h_prefix"`
}

// Store is a persistent in-flight record store using redis as a backend.
// Records for one client live in a single hash keyed by packet id.
type Store struct {
	client string
	config *Options
	db     *redis.Client
	ctx    context.Context
}

// New opens a redis store for the given client id.
func New(client string, config *Options) (*Store, error) {
	if config == nil {
		config = new(Options)
	}

	if config.Options == nil {
		config.Options = &redis.Options{
			Addr: "localhost:6379",
		}
	}

	if config.HPrefix == "" {
		config.HPrefix = defaultHPrefix
	}

	s := &Store{
		client: client,
		config: config,
		db:     redis.NewClient(config.Options),
		ctx:    context.Background(),
	}

	if _, err := s.db.Ping(s.ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to ping service: %w", err)
	}

	return s, nil
}

// hKey returns the hash key holding the client's in-flight records.
func (s *Store) hKey() string {
	return s.config.HPrefix + storage.InflightKey + "_" + s.client
}

// field returns the hash field for a packet id.
func field(id uint16) string {
	return fmt.Sprint(id)
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

	return s.db.HSet(s.ctx, s.hKey(), field(id), v).Err()
}

// Release deletes the record for a packet id.
func (s *Store) Release(id uint16) error {
	if s.db == nil {
		return storage.ErrDBFileNotOpen
	}

	return s.db.HDel(s.ctx, s.hKey(), field(id)).Err()
}

// Records returns all persisted records for the client, in ascending
// order of persistence time.
func (s *Store) Records() ([]storage.Record, error) {
	if s.db == nil {
		return nil, storage.ErrDBFileNotOpen
	}

	rows, err := s.db.HGetAll(s.ctx, s.hKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	v := []storage.Record{}
	for _, row := range rows {
		var in storage.Record
		if err := in.UnmarshalBinary([]byte(row)); err != nil {
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

	return s.db.Del(s.ctx, s.hKey()).Err()
}

// Close closes the connection to redis.
func (s *Store) Close() error {
	err := s.db.Close()
	s.db = nil
	return err
}
