// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

// Package storage defines the persisted in-flight record format and the
// store contract used by the session resend engine. A store only ever
// receives the exact bytes the codec emitted, and must return them
// verbatim so interrupted QoS 1 and QoS 2 exchanges can be replayed on a
// later session.
package storage

import (
	"errors"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	// InflightKey is the unique key prefix denoting in-flight messages
	// in a store.
	InflightKey = "IFM"
)

var (
	// ErrDBFileNotOpen indicates that the file database (e.g. bolt or
	// badger) wasn't open for reading.
	ErrDBFileNotOpen = errors.New("db file not open")
)

// Kind discriminates which packet a persisted record holds. A record is
// created as a publish and may transition to a pubrel exactly once, when
// the PUBREC of a QoS 2 exchange arrives. The transition is one-way.
type Kind byte

const (
	KindPublish Kind = iota + 1
	KindPubrel
)

// String returns a readable name for the record kind.
func (k Kind) String() string {
	switch k {
	case KindPublish:
		return "publish"
	case KindPubrel:
		return "pubrel"
	}
	return "unknown"
}

// Record is a storable representation of an in-flight QoS>0 packet. Raw
// holds the frame exactly as it was first transmitted, original packet
// identifier included.
type Record struct {
	Raw      []byte `json:"raw" msgpack:"raw"`
	Client   string `json:"client,omitempty" msgpack:"client"`
	Created  int64  `json:"created" msgpack:"created"`
	PacketID uint16 `json:"packet_id" msgpack:"packet_id"`
	Kind     Kind   `json:"kind" msgpack:"kind"`
}

// recordAlias has the same fields as Record but none of its methods, so
// msgpack encodes it structurally instead of recursing back into
// MarshalBinary/UnmarshalBinary.
type recordAlias Record

// MarshalBinary encodes the record into a msgpack envelope.
func (d Record) MarshalBinary() (data []byte, err error) {
	return msgpack.Marshal(recordAlias(d))
}

// UnmarshalBinary decodes a msgpack envelope into the record.
func (d *Record) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return msgpack.Unmarshal(data, (*recordAlias)(d))
}

// Store is a persisted in-flight record store scoped to one client id.
// Serialize and Release are driven by the session on the publish and
// acknowledgement paths; Records and Drop are driven by the caller around
// reconnection. Callers must serialise concurrent access to one store.
type Store interface {
	// Serialize persists the raw bytes for a packet id, overwriting any
	// record already held for that id.
	Serialize(kind Kind, id uint16, raw []byte) error

	// Release deletes the record for a packet id. Releasing an unknown
	// id is a no-op.
	Release(id uint16) error

	// Records returns all persisted records in ascending order of their
	// persistence timestamps.
	Records() ([]Record, error)

	// Drop deletes every record held for the client, as required when a
	// session is established with the clean start flag set.
	Drop() error

	// Close releases the underlying database handle.
	Close() error
}
