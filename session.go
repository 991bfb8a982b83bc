// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

// Package mqtt5 provides an MQTT v5 wire codec together with the
// per-session machinery which keeps QoS 1 and QoS 2 publications alive
// across reconnects: a packet identifier pool, an in-flight record map,
// and a resend engine which snapshots outbound PUBLISH and PUBREL frames
// through a caller-provided persistence store.
package mqtt5

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/xiaostang/mqtt5/packets"
	"github.com/xiaostang/mqtt5/storage"
)

// Persister is the collaborator interface through which the session
// persists in-flight frames. Serialize is invoked on each outbound QoS>0
// PUBLISH and each outbound PUBREL, with the exact bytes handed to the
// transport; Release is invoked exactly once when the terminal
// acknowledgement for an id is received. storage.Store satisfies it.
type Persister interface {
	Serialize(kind storage.Kind, id uint16, raw []byte) error
	Release(id uint16) error
}

// Session is the per-connection resend engine. It owns the packet
// identifier pool and in-flight state for one client session. A session
// is a single-writer actor: all calls must be made from one event loop.
type Session struct {
	Options  Options
	Log      *slog.Logger
	Metrics  *Metrics // optional; nil disables collection
	tr       io.ReadWriter
	parser   *packets.Parser
	ids      *IDPool
	inflight *Inflight
	store    Persister
	pending  []InflightMessage // restored frames awaiting Resume, FIFO
	waiting  []packets.Packet  // publishes held back by the send quota

	peerMaximumPacketSize uint32
	restoreSeq            int64
}

// NewSession returns a session writing to the transport tr and persisting
// in-flight frames through store. Both tr and store may be nil for a
// detached session (useful for tests and for restore-only processing).
func NewSession(tr io.ReadWriter, store Persister, opts *Options) *Session {
	if opts == nil {
		opts = new(Options)
	}
	opts.ensureDefaults()

	// If no client id was provided, generate a new one. [MQTT-3.1.3-6]
	if opts.ClientID == "" && opts.CleanStart {
		opts.ClientID = xid.New().String()
	}

	s := &Session{
		Options:  *opts,
		Log:      opts.Logger,
		tr:       tr,
		ids:      NewIDPool(IDWidth16),
		inflight: NewInflights(),
		store:    store,
	}

	if tr != nil {
		s.parser = packets.NewParser(tr)
		s.parser.MaximumPacketSize = opts.MaximumPacketSize
	}

	s.inflight.ResetReceiveQuota(int32(opts.ReceiveMaximum))
	s.inflight.ResetSendQuota(int32(defaultReceiveMaximum))

	return s
}

// Inflight returns the number of QoS>0 publications awaiting their
// terminal acknowledgement.
func (s *Session) Inflight() int {
	return s.inflight.Len()
}

// Connect transmits a CONNECT packet built from the session options.
func (s *Session) Connect() error {
	pk := packets.Packet{
		FixedHeader: packets.FixedHeader{Type: packets.Connect},
		Connect: packets.ConnectParams{
			ClientIdentifier: s.Options.ClientID,
			Keepalive:        s.Options.Keepalive,
			Clean:            s.Options.CleanStart,
		},
		Properties: packets.Properties{
			ReceiveMaximum:    s.Options.ReceiveMaximum,
			MaximumPacketSize: s.Options.MaximumPacketSize,
		},
	}

	if s.Options.SessionExpiryInterval > 0 {
		pk.Properties.SessionExpiryInterval = s.Options.SessionExpiryInterval
		pk.Properties.SessionExpiryIntervalFlag = true
	}

	if s.Options.Username != "" {
		pk.Connect.UsernameFlag = true
		pk.Connect.Username = []byte(s.Options.Username)
	}

	if s.Options.Password != "" {
		pk.Connect.PasswordFlag = true
		pk.Connect.Password = []byte(s.Options.Password)
	}

	if err := pk.ConnectValidate(); err != nil {
		return err
	}

	raw, err := pk.Bytes()
	if err != nil {
		return err
	}

	return s.write(raw)
}

// Publish encodes and transmits an application message. For QoS 1 and 2 a
// packet identifier is acquired, the frame is persisted through the store
// before transmission, and the identifier is returned. The dup flag of a
// first transmission is always 0. [MQTT-3.3.1-1]
func (s *Session) Publish(topic string, payload []byte, qos byte, retain bool, props *packets.Properties) (uint16, error) {
	if qos > 2 {
		return 0, packets.ErrProtocolViolationQosOutOfRange
	}

	pk := packets.Packet{
		FixedHeader: packets.FixedHeader{
			Type:   packets.Publish,
			Qos:    qos,
			Retain: retain,
		},
		TopicName: topic,
		Payload:   payload,
		Created:   time.Now().Unix(),
	}

	if props != nil {
		pk.Properties = props.Copy(true)
	}

	if qos == 0 {
		if err := pk.PublishValidate(); err != nil {
			return 0, err
		}

		raw, err := pk.Bytes()
		if err != nil {
			return 0, err
		}

		if err := s.checkPeerSize(raw); err != nil {
			return 0, err
		}

		return 0, s.write(raw)
	}

	id, err := s.ids.Acquire()
	if err != nil {
		return 0, err
	}

	pk.PacketID = uint16(id)
	if err := pk.PublishValidate(); err != nil {
		s.ids.Release(id)
		return 0, err
	}

	if !s.inflight.TakeSendQuota() {
		// The peer's receive maximum is exhausted; hold the publish
		// until an acknowledgement returns quota. [MQTT-3.1.2-24]
		s.waiting = append(s.waiting, pk)
		s.Log.Debug("publish queued on send quota", "id", pk.PacketID)
		return pk.PacketID, nil
	}

	if err := s.transmitPublish(pk); err != nil {
		return 0, err
	}

	return pk.PacketID, nil
}

// transmitPublish encodes, persists, records and sends a QoS>0 publish.
// An encode or size failure unwinds with no state change.
func (s *Session) transmitPublish(pk packets.Packet) error {
	raw, err := pk.Bytes()
	if err != nil {
		s.ids.Release(uint32(pk.PacketID))
		s.inflight.ReturnSendQuota()
		return err
	}

	if err := s.checkPeerSize(raw); err != nil {
		s.ids.Release(uint32(pk.PacketID))
		s.inflight.ReturnSendQuota()
		return err
	}

	// Restored frames must reach the wire before newly issued ones so the
	// broker observes the original per-client order.
	if err := s.Resume(); err != nil {
		s.ids.Release(uint32(pk.PacketID))
		s.inflight.ReturnSendQuota()
		return err
	}

	if s.store != nil {
		if err := s.store.Serialize(storage.KindPublish, pk.PacketID, raw); err != nil {
			s.ids.Release(uint32(pk.PacketID))
			s.inflight.ReturnSendQuota()
			return err
		}
	}

	s.inflight.Set(InflightMessage{
		Raw:      raw,
		Created:  pk.Created,
		PacketID: pk.PacketID,
		Kind:     storage.KindPublish,
	})

	if s.Metrics != nil {
		s.Metrics.Inflight.Inc()
	}

	s.Log.Debug("publish transmitted", "id", pk.PacketID, "qos", pk.FixedHeader.Qos)

	return s.write(raw)
}

// Pingreq transmits a PINGREQ packet.
func (s *Session) Pingreq() error {
	pk := packets.Packet{FixedHeader: packets.FixedHeader{Type: packets.Pingreq}}
	raw, err := pk.Bytes()
	if err != nil {
		return err
	}

	return s.write(raw)
}

// Disconnect transmits a DISCONNECT packet with the given reason code.
func (s *Session) Disconnect(reason byte) error {
	pk := packets.Packet{
		FixedHeader: packets.FixedHeader{Type: packets.Disconnect},
		ReasonCode:  reason,
	}

	raw, err := pk.Bytes()
	if err != nil {
		return err
	}

	return s.write(raw)
}

// ReadPacket reads the next packet from the transport, dispatching any
// acknowledgement packets through the resend engine before returning the
// packet to the caller. Parse errors surface directly so the caller can
// close the connection with the matching reason.
func (s *Session) ReadPacket() (*packets.Packet, error) {
	pk, err := s.parser.ReadPacket()
	if err != nil {
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.PacketsReceived.Inc()
		s.Metrics.BytesReceived.Add(float64(pk.Size()))
	}

	if err := s.Receive(pk); err != nil {
		return pk, err
	}

	return pk, nil
}

// Receive drives the resend engine with an inbound packet. Packets which
// are not acknowledgements pass through untouched.
func (s *Session) Receive(pk *packets.Packet) error {
	switch pk.FixedHeader.Type {
	case packets.Connack:
		s.onConnack(pk)
		return nil
	case packets.Puback, packets.Pubcomp:
		return s.complete(pk.PacketID)
	case packets.Pubrec:
		return s.onPubrec(pk)
	default:
		return nil
	}
}

// onConnack applies the peer's advertised limits and assigned client id.
func (s *Session) onConnack(pk *packets.Packet) {
	if pk.Properties.ReceiveMaximum > 0 {
		s.inflight.ResetSendQuota(int32(pk.Properties.ReceiveMaximum))
	}

	if pk.Properties.MaximumPacketSize > 0 {
		s.peerMaximumPacketSize = pk.Properties.MaximumPacketSize
	}

	if pk.Properties.AssignedClientID != "" {
		s.Options.ClientID = pk.Properties.AssignedClientID
	}

	s.Log.Info("session established",
		"client", s.Options.ClientID,
		"session_present", pk.SessionPresent,
		"reason", pk.ReasonCode)
}

// complete finalises a QoS exchange: the persisted record is released
// exactly once, the identifier returns to the pool, and any publish
// waiting on send quota is transmitted. A duplicate acknowledgement for
// an unknown id is a no-op.
func (s *Session) complete(id uint16) error {
	if !s.inflight.Delete(id) {
		return nil
	}

	if s.store != nil {
		if err := s.store.Release(id); err != nil {
			return err
		}
	}

	s.ids.Release(uint32(id))
	s.inflight.ReturnSendQuota()

	if s.Metrics != nil {
		s.Metrics.Inflight.Dec()
	}

	s.Log.Debug("exchange complete", "id", id)

	return s.flushWaiting()
}

// onPubrec answers a PUBREC with a PUBREL, persisting the PUBREL over the
// publish record for the id. The publish to pubrel transition is one-way.
func (s *Session) onPubrec(pk *packets.Packet) error {
	if pk.ReasonCode >= 0x80 {
		// The receiver refused the publication; the exchange ends here.
		return s.complete(pk.PacketID)
	}

	m, ok := s.inflight.Get(pk.PacketID)

	rel := packets.Packet{
		FixedHeader: packets.FixedHeader{Type: packets.Pubrel},
		PacketID:    pk.PacketID,
	}
	if !ok {
		rel.ReasonCode = packets.ErrPacketIdentifierNotFound.Code // [MQTT-3.6.2-1]
	}

	raw, err := rel.Bytes()
	if err != nil {
		return err
	}

	if ok {
		if s.store != nil {
			if err := s.store.Serialize(storage.KindPubrel, pk.PacketID, raw); err != nil {
				return err
			}
		}

		s.inflight.Set(InflightMessage{
			Raw:      raw,
			Created:  m.Created,
			PacketID: pk.PacketID,
			Kind:     storage.KindPubrel,
		})
	}

	return s.write(raw)
}

// Restore re-arms in-flight state from a frame persisted by an earlier
// session. Publish frames have the dup flag set on the fixed header byte
// without re-encoding the rest of the frame; pubrel frames are queued
// verbatim. Restored frames are transmitted by Resume, in the order they
// were restored, before any newly issued publication.
func (s *Session) Restore(kind storage.Kind, raw []byte) error {
	cp := append([]byte{}, raw...)

	pk, err := packets.FromBytes(cp)
	if err != nil {
		return err
	}

	switch kind {
	case storage.KindPublish:
		if pk.FixedHeader.Type != packets.Publish || pk.FixedHeader.Qos == 0 {
			return packets.ErrMalformedPacket
		}
		cp[0] |= 1 << 3 // dup [MQTT-3.3.1-1]
	case storage.KindPubrel:
		if pk.FixedHeader.Type != packets.Pubrel {
			return packets.ErrMalformedPacket
		}
	default:
		return packets.ErrMalformedPacket
	}

	s.ids.Occupy(uint32(pk.PacketID))
	s.inflight.TakeSendQuota()

	s.restoreSeq++
	m := InflightMessage{
		Raw:      cp,
		Created:  s.restoreSeq,
		PacketID: pk.PacketID,
		Kind:     kind,
		Restored: true,
	}

	s.inflight.Set(m)
	s.pending = append(s.pending, m)

	if s.Metrics != nil {
		s.Metrics.Inflight.Inc()
	}

	s.Log.Debug("restored in-flight frame", "id", pk.PacketID, "kind", kind.String())

	return nil
}

// Resume transmits any restored frames which have not yet reached the
// wire, in restore order. A transport failure leaves the untransmitted
// remainder pending and every persisted record intact.
func (s *Session) Resume() error {
	for len(s.pending) > 0 {
		m := s.pending[0]
		if err := s.write(m.Raw); err != nil {
			return err
		}

		s.pending = s.pending[1:]

		if s.Metrics != nil {
			s.Metrics.Resends.Inc()
		}
	}

	return nil
}

// flushWaiting transmits publishes held back by the send quota, in order,
// while quota remains.
func (s *Session) flushWaiting() error {
	for len(s.waiting) > 0 {
		if !s.inflight.TakeSendQuota() {
			return nil
		}

		pk := s.waiting[0]
		s.waiting = s.waiting[1:]

		if err := s.transmitPublish(pk); err != nil {
			return err
		}
	}

	return nil
}

// checkPeerSize fails with ErrPacketTooLarge when the frame exceeds the
// peer's advertised maximum packet size. [MQTT-3.1.2-24]
func (s *Session) checkPeerSize(raw []byte) error {
	if s.peerMaximumPacketSize > 0 && uint32(len(raw)) > s.peerMaximumPacketSize {
		return packets.ErrPacketTooLarge
	}
	return nil
}

// ErrNoTransport is returned when a detached session attempts to transmit.
var ErrNoTransport = errors.New("no transport attached")

// write hands a frame to the transport. Transport errors are surfaced
// unchanged and leave all in-flight records intact.
func (s *Session) write(raw []byte) error {
	if s.tr == nil {
		return ErrNoTransport
	}

	n, err := s.tr.Write(raw)

	if s.Metrics != nil {
		s.Metrics.PacketsSent.Inc()
		s.Metrics.BytesSent.Add(float64(n))
	}

	return err
}
