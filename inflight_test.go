// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package mqtt5

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xiaostang/mqtt5/storage"
)

func TestInflightSetGet(t *testing.T) {
	i := NewInflights()

	require.True(t, i.Set(InflightMessage{PacketID: 1, Kind: storage.KindPublish}))
	require.False(t, i.Set(InflightMessage{PacketID: 1, Kind: storage.KindPubrel}))

	m, ok := i.Get(1)
	require.True(t, ok)
	require.Equal(t, storage.KindPubrel, m.Kind)

	_, ok = i.Get(2)
	require.False(t, ok)
}

func TestInflightLen(t *testing.T) {
	i := NewInflights()
	i.Set(InflightMessage{PacketID: 1})
	i.Set(InflightMessage{PacketID: 2})
	require.Equal(t, 2, i.Len())
}

func TestInflightGetAllOrdered(t *testing.T) {
	i := NewInflights()
	i.Set(InflightMessage{PacketID: 3, Created: 30})
	i.Set(InflightMessage{PacketID: 1, Created: 10})
	i.Set(InflightMessage{PacketID: 2, Created: 20})

	all := i.GetAll()
	require.Len(t, all, 3)
	require.Equal(t, uint16(1), all[0].PacketID)
	require.Equal(t, uint16(2), all[1].PacketID)
	require.Equal(t, uint16(3), all[2].PacketID)
}

func TestInflightDelete(t *testing.T) {
	i := NewInflights()
	i.Set(InflightMessage{PacketID: 1})
	require.True(t, i.Delete(1))
	require.False(t, i.Delete(1))
	require.Equal(t, 0, i.Len())
}

func TestInflightSendQuota(t *testing.T) {
	i := NewInflights()
	i.ResetSendQuota(2)

	require.True(t, i.TakeSendQuota())
	require.True(t, i.TakeSendQuota())
	require.False(t, i.TakeSendQuota())

	i.ReturnSendQuota()
	require.Equal(t, int32(1), i.SendQuota())

	// Quota never exceeds the maximum.
	i.ReturnSendQuota()
	i.ReturnSendQuota()
	require.Equal(t, int32(2), i.SendQuota())
}

func TestInflightReceiveQuota(t *testing.T) {
	i := NewInflights()
	i.ResetReceiveQuota(1)

	i.TakeReceiveQuota()
	require.Equal(t, int32(0), i.receiveQuota)

	i.TakeReceiveQuota() // does not go negative
	require.Equal(t, int32(0), i.receiveQuota)

	i.ReturnReceiveQuota()
	i.ReturnReceiveQuota() // capped at maximum
	require.Equal(t, int32(1), i.receiveQuota)
}
