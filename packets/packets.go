// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
	"fmt"
)

// Packet is an MQTT v5 control packet. A single struct carries the fields
// of all fifteen packet types; the embedded fixed header discriminates
// which encode and decode contract applies.
//
// A decoded Packet borrows its Payload (and any byte-slice fields) from
// the buffer it was decoded from and must not outlive it; use Copy to
// obtain an owning packet.
type Packet struct {
	Connect        ConnectParams // parameters for a CONNECT packet.
	Properties     Properties    // the mqtt v5 properties of the packet.
	Payload        []byte        // a message payload for PUBLISH packets.
	ReasonCodes    []byte        // one reason code per entry for SUBACK and UNSUBACK packets.
	Filters        Subscriptions // a list of subscription filters for SUBSCRIBE and UNSUBSCRIBE packets.
	TopicName      string        // the topic a PUBLISH packet is addressed to.
	Created        int64         // unix timestamp the packet was created, for in-flight ordering.
	PacketID       uint16        // the packet identifier for QoS>0 and (un)subscribe exchanges.
	ReasonCode     byte          // the reason code for acknowledgement-type packets.
	SessionPresent bool          // the session-present flag of a CONNACK packet.
	FixedHeader
}

// ConnectParams contains the fields of a CONNECT packet which have no home
// on the generic Packet struct.
type ConnectParams struct {
	WillProperties   Properties `json:"willProperties"`
	Password         []byte     `json:"password"`
	Username         []byte     `json:"username"`
	WillPayload      []byte     `json:"willPayload"`
	ClientIdentifier string     `json:"clientId"`
	WillTopic        string     `json:"willTopic"`
	Keepalive        uint16     `json:"keepalive"`
	WillQos          byte       `json:"willQos"`
	Clean            bool       `json:"clean"`
	WillFlag         bool       `json:"willFlag"`
	WillRetain       bool       `json:"willRetain"`
	UsernameFlag     bool       `json:"usernameFlag"`
	PasswordFlag     bool       `json:"passwordFlag"`
}

// Subscription contains the filter and options of a subscription entry.
type Subscription struct {
	Filter            string `json:"filter"`
	Identifier        int    `json:"identifier,omitempty"`
	RetainHandling    byte   `json:"retain_handling"`
	Qos               byte   `json:"qos"`
	RetainAsPublished bool   `json:"retain_as_pub"`
	NoLocal           bool   `json:"no_local"`
}

// Subscriptions is a slice of subscription entries, in wire order.
type Subscriptions []Subscription

// encodeOptions returns the subscription options byte for an entry.
func (s Subscription) encodeOptions() byte {
	return s.Qos | encodeBool(s.NoLocal)<<2 | encodeBool(s.RetainAsPublished)<<3 | s.RetainHandling<<4
}

// decodeOptions unpacks a subscription options byte into the entry.
// Bits 6 and 7 are reserved and must be 0. [MQTT-3.8.3-5]
func (s *Subscription) decodeOptions(b byte) error {
	if b&0xC0 != 0 {
		return ErrProtocolViolationInvalidSubOptions
	}

	s.Qos = b & 0x03
	s.NoLocal = (b>>2)&0x01 > 0
	s.RetainAsPublished = (b>>3)&0x01 > 0
	s.RetainHandling = (b >> 4) & 0x03

	if s.Qos > 2 {
		return ErrMalformedQos
	}

	if s.RetainHandling > 2 {
		return ErrProtocolViolationInvalidSubOptions
	}

	return nil
}

// protocolSignature is the seven byte protocol signature of a v5 CONNECT
// variable header: a length-prefixed "MQTT" followed by the level byte.
var protocolSignature = []byte{0x00, 0x04, 'M', 'Q', 'T', 'T', 0x05}

// FormatID returns the packet id as a string.
func (pk *Packet) FormatID() string {
	return fmt.Sprint(pk.PacketID)
}

// Encode encodes the packet into buf according to the type recorded in the
// fixed header. The remaining length and property block sizes are computed
// before any byte is written; callers which pre-size buf with Size() are
// guaranteed a single allocation.
func (pk *Packet) Encode(buf *bytes.Buffer) error {
	switch pk.FixedHeader.Type {
	case Connect:
		return pk.ConnectEncode(buf)
	case Connack:
		return pk.ConnackEncode(buf)
	case Publish:
		return pk.PublishEncode(buf)
	case Puback:
		return pk.PubackEncode(buf)
	case Pubrec:
		return pk.PubrecEncode(buf)
	case Pubrel:
		return pk.PubrelEncode(buf)
	case Pubcomp:
		return pk.PubcompEncode(buf)
	case Subscribe:
		return pk.SubscribeEncode(buf)
	case Suback:
		return pk.SubackEncode(buf)
	case Unsubscribe:
		return pk.UnsubscribeEncode(buf)
	case Unsuback:
		return pk.UnsubackEncode(buf)
	case Pingreq:
		return pk.PingreqEncode(buf)
	case Pingresp:
		return pk.PingrespEncode(buf)
	case Disconnect:
		return pk.DisconnectEncode(buf)
	case Auth:
		return pk.AuthEncode(buf)
	default:
		return ErrMalformedPacket
	}
}

// Decode decodes the variable header and payload in buf into the packet,
// according to the type recorded in the (already decoded) fixed header.
func (pk *Packet) Decode(buf []byte) error {
	switch pk.FixedHeader.Type {
	case Connect:
		return pk.ConnectDecode(buf)
	case Connack:
		return pk.ConnackDecode(buf)
	case Publish:
		return pk.PublishDecode(buf)
	case Puback:
		return pk.PubackDecode(buf)
	case Pubrec:
		return pk.PubrecDecode(buf)
	case Pubrel:
		return pk.PubrelDecode(buf)
	case Pubcomp:
		return pk.PubcompDecode(buf)
	case Subscribe:
		return pk.SubscribeDecode(buf)
	case Suback:
		return pk.SubackDecode(buf)
	case Unsubscribe:
		return pk.UnsubscribeDecode(buf)
	case Unsuback:
		return pk.UnsubackDecode(buf)
	case Pingreq:
		return pk.PingreqDecode(buf)
	case Pingresp:
		return pk.PingrespDecode(buf)
	case Disconnect:
		return pk.DisconnectDecode(buf)
	case Auth:
		return pk.AuthDecode(buf)
	default:
		return ErrMalformedPacket
	}
}

// Size returns the total frame length of the encoded packet: one fixed
// header byte, the remaining length bytes, and the remaining length. For
// every packet Size equals the length of the buffer produced by Bytes.
func (pk *Packet) Size() int {
	rem := pk.remaining()
	return 1 + lengthBytes(rem) + rem
}

// remaining computes the remaining length of the packet per type, without
// encoding anything.
func (pk *Packet) remaining() int {
	switch pk.FixedHeader.Type {
	case Connect:
		return pk.connectRemaining()
	case Connack:
		return pk.connackRemaining()
	case Publish:
		return pk.publishRemaining()
	case Puback, Pubrec, Pubrel, Pubcomp:
		return pk.ackRemaining()
	case Subscribe:
		return pk.subscribeRemaining()
	case Suback:
		return pk.subackRemaining()
	case Unsubscribe:
		return pk.unsubscribeRemaining()
	case Unsuback:
		return pk.unsubackRemaining()
	case Pingreq, Pingresp:
		return 0
	case Disconnect, Auth:
		return pk.reasonRemaining()
	default:
		return 0
	}
}

// Bytes encodes the packet into a freshly allocated buffer whose capacity
// equals the encoded size, and returns the contiguous frame.
func (pk *Packet) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, pk.Size()))
	if err := pk.Encode(buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// FromBytes decodes a complete contiguous frame (fixed header included)
// into a packet. The frame length must match the encoded remaining length
// exactly.
func FromBytes(raw []byte) (*Packet, error) {
	if len(raw) < 2 {
		return nil, ErrMalformedPacket
	}

	pk := new(Packet)
	if err := pk.FixedHeader.Decode(raw[0]); err != nil {
		return nil, err
	}

	rem, offset, err := decodeLength(raw, 1)
	if err != nil {
		return nil, err
	}

	if offset+rem != len(raw) {
		return nil, ErrMalformedPacket
	}

	pk.FixedHeader.Remaining = rem
	if err := pk.Decode(raw[offset:]); err != nil {
		return nil, err
	}

	return pk, nil
}

// Copy creates an owning deep copy of the packet, detached from any buffer
// the original was decoded from. The fixed header dup flag is not carried
// over unless allowTransfer is set.
func (pk *Packet) Copy(allowTransfer bool) Packet {
	fh := FixedHeader{
		Remaining: pk.FixedHeader.Remaining,
		Type:      pk.FixedHeader.Type,
		Qos:       pk.FixedHeader.Qos,
		Retain:    pk.FixedHeader.Retain,
	}

	if allowTransfer {
		fh.Dup = pk.FixedHeader.Dup
	}

	cp := Packet{
		FixedHeader:    fh,
		TopicName:      pk.TopicName,
		Properties:     pk.Properties.Copy(allowTransfer),
		PacketID:       pk.PacketID,
		ReasonCode:     pk.ReasonCode,
		SessionPresent: pk.SessionPresent,
		Created:        pk.Created,
		Connect: ConnectParams{
			ClientIdentifier: pk.Connect.ClientIdentifier,
			Keepalive:        pk.Connect.Keepalive,
			WillQos:          pk.Connect.WillQos,
			Clean:            pk.Connect.Clean,
			WillFlag:         pk.Connect.WillFlag,
			WillRetain:       pk.Connect.WillRetain,
			UsernameFlag:     pk.Connect.UsernameFlag,
			PasswordFlag:     pk.Connect.PasswordFlag,
			WillTopic:        pk.Connect.WillTopic,
			WillProperties:   pk.Connect.WillProperties.Copy(allowTransfer),
		},
	}

	if len(pk.Payload) > 0 {
		cp.Payload = append([]byte{}, pk.Payload...)
	}

	if len(pk.ReasonCodes) > 0 {
		cp.ReasonCodes = append([]byte{}, pk.ReasonCodes...)
	}

	if len(pk.Filters) > 0 {
		cp.Filters = append(Subscriptions{}, pk.Filters...)
	}

	if len(pk.Connect.Username) > 0 {
		cp.Connect.Username = append([]byte{}, pk.Connect.Username...)
	}

	if len(pk.Connect.Password) > 0 {
		cp.Connect.Password = append([]byte{}, pk.Connect.Password...)
	}

	if len(pk.Connect.WillPayload) > 0 {
		cp.Connect.WillPayload = append([]byte{}, pk.Connect.WillPayload...)
	}

	return cp
}
