// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// connackRemaining computes the remaining length of a CONNACK packet.
func (pk *Packet) connackRemaining() int {
	props := pk.Properties.Size(Connack)
	return 2 + lengthBytes(props) + props
}

// ConnackEncode encodes a CONNACK packet.
func (pk *Packet) ConnackEncode(buf *bytes.Buffer) error {
	rem := pk.connackRemaining()
	if rem > MaxRemainingLength {
		return ErrPacketTooLarge
	}

	pk.FixedHeader.Type = Connack
	pk.FixedHeader.Remaining = rem
	pk.FixedHeader.Encode(buf)

	buf.WriteByte(encodeBool(pk.SessionPresent)) // [MQTT-3.2.2-1]
	buf.WriteByte(pk.ReasonCode)
	pk.Properties.Encode(Connack, buf)

	return nil
}

// ConnackDecode decodes a CONNACK packet.
func (pk *Packet) ConnackDecode(buf []byte) error {
	ack, offset, err := decodeByte(buf, 0)
	if err != nil {
		return ErrMalformedSessionPresent
	}

	if ack&0xFE != 0 { // bits 7-1 are reserved [MQTT-3.2.2-1]
		return ErrMalformedSessionPresent
	}
	pk.SessionPresent = ack&0x01 > 0

	pk.ReasonCode, offset, err = decodeByte(buf, offset)
	if err != nil {
		return ErrMalformedReasonCode
	}

	_, err = pk.Properties.Decode(Connack, buf, offset)
	if err != nil {
		return err
	}

	return nil
}
