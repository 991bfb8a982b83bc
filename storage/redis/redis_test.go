// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisdb "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	"github.com/xiaostang/mqtt5/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr := miniredis.RunT(t)
	s, err := New("cid1", &Options{
		Options: &redisdb.Options{
			Addr: mr.Addr(),
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if s.db != nil {
			_ = s.Close()
		}
	})

	return s
}

func TestNewDefaults(t *testing.T) {
	s := newTestStore(t)
	require.Equal(t, defaultHPrefix, s.config.HPrefix)
	require.Equal(t, defaultHPrefix+storage.InflightKey+"_cid1", s.hKey())
}

func TestNewUnreachable(t *testing.T) {
	_, err := New("cid1", &Options{
		Options: &redisdb.Options{
			Addr: "127.0.0.1:1",
		},
	})
	require.Error(t, err)
}

func TestSerializeReleaseRecords(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Serialize(storage.KindPublish, 1, []byte{0x32, 0x01}))
	time.Sleep(time.Millisecond)
	require.NoError(t, s.Serialize(storage.KindPublish, 2, []byte{0x32, 0x02}))

	v, err := s.Records()
	require.NoError(t, err)
	require.Len(t, v, 2)
	require.Equal(t, uint16(1), v[0].PacketID)
	require.Equal(t, uint16(2), v[1].PacketID)

	require.NoError(t, s.Serialize(storage.KindPubrel, 1, []byte{0x62, 0x01}))
	v, err = s.Records()
	require.NoError(t, err)
	require.Len(t, v, 2)

	for _, r := range v {
		if r.PacketID == 1 {
			require.Equal(t, storage.KindPubrel, r.Kind)
			require.Equal(t, []byte{0x62, 0x01}, r.Raw)
		}
	}

	require.NoError(t, s.Release(2))
	require.NoError(t, s.Release(2))

	v, err = s.Records()
	require.NoError(t, err)
	require.Len(t, v, 1)
}

func TestDrop(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Serialize(storage.KindPublish, 1, []byte{0x32}))
	require.NoError(t, s.Serialize(storage.KindPublish, 2, []byte{0x32}))
	require.NoError(t, s.Drop())

	v, err := s.Records()
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestClosedStoreErrs(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())

	require.ErrorIs(t, s.Serialize(storage.KindPublish, 1, nil), storage.ErrDBFileNotOpen)
	require.ErrorIs(t, s.Release(1), storage.ErrDBFileNotOpen)
	_, err := s.Records()
	require.ErrorIs(t, err, storage.ErrDBFileNotOpen)
	require.ErrorIs(t, s.Drop(), storage.ErrDBFileNotOpen)
}
