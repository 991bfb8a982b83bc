// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package mqtt5

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/xiaostang/mqtt5/packets"
)

func TestMetricsRegister(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	// Re-registering the same collectors must fail.
	require.Error(t, m.Register(reg))
}

func TestSessionCollectsMetrics(t *testing.T) {
	tr := new(mockTransport)
	st := newMockStore()
	s := newTestSession(tr, st, true)
	s.Metrics = NewMetrics()

	_, err := s.Publish("t", []byte("x"), 1, false, nil)
	require.NoError(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.Inflight))
	require.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.PacketsSent))

	ack := &packets.Packet{
		FixedHeader: packets.FixedHeader{Type: packets.Puback},
		PacketID:    1,
	}
	require.NoError(t, s.Receive(ack))
	require.Equal(t, 0.0, testutil.ToFloat64(s.Metrics.Inflight))
}
