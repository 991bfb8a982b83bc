// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package mqtt5

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDPoolAcquireSequential(t *testing.T) {
	p := NewIDPool(IDWidth16)

	for want := uint32(1); want <= 5; want++ {
		id, err := p.Acquire()
		require.NoError(t, err)
		require.Equal(t, want, id)
	}

	require.Equal(t, 5, p.Len())
}

func TestIDPoolNeverIssuesZero(t *testing.T) {
	p := NewIDPool(IDWidth16)
	p.cursor = 65534

	id, err := p.Acquire()
	require.NoError(t, err)
	require.Equal(t, uint32(65535), id)

	id, err = p.Acquire()
	require.NoError(t, err)
	require.Equal(t, uint32(1), id)
}

func TestIDPoolSkipsLive(t *testing.T) {
	p := NewIDPool(IDWidth16)

	id1, err := p.Acquire()
	require.NoError(t, err)

	id2, err := p.Acquire()
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	// With id1 and id2 still live, wrapping must skip them.
	p.cursor = 65535
	id3, err := p.Acquire()
	require.NoError(t, err)
	require.Equal(t, uint32(3), id3)
}

func TestIDPoolAcquireAfterRelease(t *testing.T) {
	p := NewIDPool(IDWidth16)

	id, err := p.Acquire()
	require.NoError(t, err)
	require.False(t, p.Free(id))

	p.Release(id)
	require.True(t, p.Free(id))

	// Released ids become available again on wrap.
	p.cursor = 0
	got, err := p.Acquire()
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestIDPoolReleaseUnknownNoOp(t *testing.T) {
	p := NewIDPool(IDWidth16)
	p.Release(42)
	require.Equal(t, 0, p.Len())
}

func TestIDPoolOccupy(t *testing.T) {
	p := NewIDPool(IDWidth16)
	p.Occupy(7)
	p.Occupy(7) // idempotent
	require.Equal(t, 1, p.Len())
	require.False(t, p.Free(7))

	p.Occupy(0) // id 0 is never valid
	require.Equal(t, 1, p.Len())
}

func TestIDPoolExhausted(t *testing.T) {
	p := NewIDPool(IDWidth16)
	for i := uint32(1); i <= 65535; i++ {
		p.used[i] = struct{}{}
	}

	_, err := p.Acquire()
	require.ErrorIs(t, err, ErrIDExhausted)

	p.Release(100)
	id, err := p.Acquire()
	require.NoError(t, err)
	require.Equal(t, uint32(100), id)
}

func TestIDPool32Width(t *testing.T) {
	p := NewIDPool(IDWidth32)
	require.Equal(t, uint32(4294967295), p.max)

	id, err := p.Acquire()
	require.NoError(t, err)
	require.Equal(t, uint32(1), id)
}
