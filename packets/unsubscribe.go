// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// unsubscribeRemaining computes the remaining length of an UNSUBSCRIBE
// packet.
func (pk *Packet) unsubscribeRemaining() int {
	props := pk.Properties.Size(Unsubscribe)

	n := 2 + lengthBytes(props) + props
	for _, sub := range pk.Filters {
		n += 2 + len(sub.Filter)
	}

	return n
}

// UnsubscribeEncode encodes an UNSUBSCRIBE packet. The fixed header flags
// of an UNSUBSCRIBE must be 0b0010, which the qos bit carries.
// [MQTT-3.10.1-1]
func (pk *Packet) UnsubscribeEncode(buf *bytes.Buffer) error {
	if pk.PacketID == 0 {
		return ErrProtocolViolationNoPacketID
	}

	if len(pk.Filters) == 0 { // [MQTT-3.10.3-2]
		return ErrProtocolViolationNoFilters
	}

	rem := pk.unsubscribeRemaining()
	if rem > MaxRemainingLength {
		return ErrPacketTooLarge
	}

	pk.FixedHeader.Type = Unsubscribe
	pk.FixedHeader.Qos = 1
	pk.FixedHeader.Remaining = rem
	pk.FixedHeader.Encode(buf)

	buf.Write(encodeUint16(pk.PacketID))
	pk.Properties.Encode(Unsubscribe, buf)

	for _, sub := range pk.Filters {
		buf.Write(encodeString(sub.Filter))
	}

	return nil
}

// UnsubscribeDecode decodes an UNSUBSCRIBE packet.
func (pk *Packet) UnsubscribeDecode(buf []byte) error {
	var offset int
	var err error

	pk.PacketID, offset, err = decodeUint16(buf, 0)
	if err != nil {
		return ErrMalformedPacketID
	}

	if pk.PacketID == 0 {
		return ErrProtocolViolationNoPacketID
	}

	offset, err = pk.Properties.Decode(Unsubscribe, buf, offset)
	if err != nil {
		return err
	}

	var filter string
	for offset < len(buf) {
		filter, offset, err = decodeString(buf, offset)
		if err != nil {
			return ErrMalformedTopic
		}

		pk.Filters = append(pk.Filters, Subscription{Filter: filter})
	}

	if len(pk.Filters) == 0 { // [MQTT-3.10.3-2]
		return ErrProtocolViolationNoFilters
	}

	return nil
}
