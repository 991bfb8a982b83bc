// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// subscribeRemaining computes the remaining length of a SUBSCRIBE packet.
func (pk *Packet) subscribeRemaining() int {
	props := pk.Properties.Size(Subscribe)

	n := 2 + lengthBytes(props) + props
	for _, sub := range pk.Filters {
		n += 2 + len(sub.Filter) + 1
	}

	return n
}

// SubscribeEncode encodes a SUBSCRIBE packet. The fixed header flags of a
// SUBSCRIBE must be 0b0010, which the qos bit carries. [MQTT-3.8.1-1]
func (pk *Packet) SubscribeEncode(buf *bytes.Buffer) error {
	if pk.PacketID == 0 { // [MQTT-2.2.1-3]
		return ErrProtocolViolationNoPacketID
	}

	if len(pk.Filters) == 0 { // [MQTT-3.8.3-2]
		return ErrProtocolViolationNoFilters
	}

	rem := pk.subscribeRemaining()
	if rem > MaxRemainingLength {
		return ErrPacketTooLarge
	}

	pk.FixedHeader.Type = Subscribe
	pk.FixedHeader.Qos = 1
	pk.FixedHeader.Remaining = rem
	pk.FixedHeader.Encode(buf)

	buf.Write(encodeUint16(pk.PacketID))
	pk.Properties.Encode(Subscribe, buf)

	for _, sub := range pk.Filters {
		buf.Write(encodeString(sub.Filter))
		buf.WriteByte(sub.encodeOptions())
	}

	return nil
}

// SubscribeDecode decodes a SUBSCRIBE packet.
func (pk *Packet) SubscribeDecode(buf []byte) error {
	var offset int
	var err error

	pk.PacketID, offset, err = decodeUint16(buf, 0)
	if err != nil {
		return ErrMalformedPacketID
	}

	if pk.PacketID == 0 {
		return ErrProtocolViolationNoPacketID
	}

	offset, err = pk.Properties.Decode(Subscribe, buf, offset)
	if err != nil {
		return err
	}

	var filter string
	var options byte
	for offset < len(buf) {
		filter, offset, err = decodeString(buf, offset)
		if err != nil {
			return ErrMalformedTopic
		}

		options, offset, err = decodeByte(buf, offset)
		if err != nil {
			return ErrMalformedQos
		}

		sub := Subscription{Filter: filter}
		if err := sub.decodeOptions(options); err != nil {
			return err
		}

		// A subscription identifier in the property block applies to
		// every filter in the packet.
		if len(pk.Properties.SubscriptionIdentifier) > 0 {
			sub.Identifier = pk.Properties.SubscriptionIdentifier[0]
		}

		pk.Filters = append(pk.Filters, sub)
	}

	if len(pk.Filters) == 0 { // [MQTT-3.8.3-2]
		return ErrProtocolViolationNoFilters
	}

	return nil
}
