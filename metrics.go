// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package mqtt5

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors for a session.
type Metrics struct {
	PacketsSent     prometheus.Counter
	PacketsReceived prometheus.Counter
	BytesSent       prometheus.Counter
	BytesReceived   prometheus.Counter
	Resends         prometheus.Counter
	Inflight        prometheus.Gauge
}

// NewMetrics returns a new set of unregistered session collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		PacketsSent:     prometheus.NewCounter(prometheus.CounterOpts{Name: "mqtt_sent_packets", Help: "The total number of sent MQTT packets"}),
		PacketsReceived: prometheus.NewCounter(prometheus.CounterOpts{Name: "mqtt_received_packets", Help: "The total number of received MQTT packets"}),
		BytesSent:       prometheus.NewCounter(prometheus.CounterOpts{Name: "mqtt_sent_bytes", Help: "The total number of sent MQTT bytes"}),
		BytesReceived:   prometheus.NewCounter(prometheus.CounterOpts{Name: "mqtt_received_bytes", Help: "The total number of received MQTT bytes"}),
		Resends:         prometheus.NewCounter(prometheus.CounterOpts{Name: "mqtt_resent_packets", Help: "The total number of MQTT packets restored and retransmitted"}),
		Inflight:        prometheus.NewGauge(prometheus.GaugeOpts{Name: "mqtt_inflight_messages", Help: "The number of QoS>0 MQTT messages awaiting acknowledgement"}),
	}
}

// Register registers the collectors with a prometheus registerer.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.PacketsSent,
		m.PacketsReceived,
		m.BytesSent,
		m.BytesReceived,
		m.Resends,
		m.Inflight,
	} {
		if err := r.Register(c); err != nil {
			return err
		}
	}

	return nil
}
