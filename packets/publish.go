// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// publishRemaining computes the remaining length of a PUBLISH packet.
func (pk *Packet) publishRemaining() int {
	props := pk.Properties.Size(Publish)

	n := 2 + len(pk.TopicName)
	if pk.FixedHeader.Qos > 0 {
		n += 2
	}
	n += lengthBytes(props) + props
	n += len(pk.Payload)

	return n
}

// PublishEncode encodes a PUBLISH packet.
func (pk *Packet) PublishEncode(buf *bytes.Buffer) error {
	if pk.FixedHeader.Qos > 0 && pk.PacketID == 0 { // [MQTT-2.2.1-2]
		return ErrProtocolViolationNoPacketID
	}

	rem := pk.publishRemaining()
	if rem > MaxRemainingLength {
		return ErrPacketTooLarge
	}

	pk.FixedHeader.Type = Publish
	pk.FixedHeader.Remaining = rem
	pk.FixedHeader.Encode(buf)

	buf.Write(encodeString(pk.TopicName)) // [MQTT-3.3.2-1]

	if pk.FixedHeader.Qos > 0 {
		buf.Write(encodeUint16(pk.PacketID))
	}

	pk.Properties.Encode(Publish, buf)
	buf.Write(pk.Payload)

	return nil
}

// PublishDecode decodes a PUBLISH packet. The payload is borrowed from buf.
func (pk *Packet) PublishDecode(buf []byte) error {
	var offset int
	var err error

	pk.TopicName, offset, err = decodeString(buf, 0)
	if err != nil {
		return ErrMalformedTopic
	}

	if pk.FixedHeader.Qos > 0 { // [MQTT-2.2.1-2]
		pk.PacketID, offset, err = decodeUint16(buf, offset)
		if err != nil {
			return ErrMalformedPacketID
		}

		if pk.PacketID == 0 {
			return ErrProtocolViolationNoPacketID
		}
	}

	offset, err = pk.Properties.Decode(Publish, buf, offset)
	if err != nil {
		return err
	}

	pk.Payload = buf[offset:]

	return nil
}

// PublishValidate validates a decoded or constructed PUBLISH packet against
// the rules which depend on more than one field.
func (pk *Packet) PublishValidate() error {
	if pk.FixedHeader.Qos == 0 && pk.PacketID > 0 { // [MQTT-2.2.1-2]
		return ErrProtocolViolationSurplusPacketID
	}

	if pk.TopicName == "" && !pk.Properties.TopicAliasFlag { // [MQTT-3.3.2-4]
		return ErrProtocolViolationNoTopic
	}

	// A payload declared as utf-8 must actually be utf-8. [MQTT-3.3.2-5]
	if pk.Properties.PayloadFormatFlag && pk.Properties.PayloadFormat == 1 &&
		checkUTF8(pk.Payload, false) != utf8WellFormed {
		return ErrPayloadFormatInvalid
	}

	return nil
}
