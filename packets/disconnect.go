// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// reasonRemaining computes the remaining length of a DISCONNECT or AUTH
// packet. When the reason code is the type's default and no properties are
// present the whole body is omitted.
func (pk *Packet) reasonRemaining() int {
	props := pk.Properties.Size(pk.FixedHeader.Type)
	if pk.ReasonCode == 0 && props == 0 {
		return 0
	}

	return 1 + lengthBytes(props) + props
}

// DisconnectEncode encodes a DISCONNECT packet.
func (pk *Packet) DisconnectEncode(buf *bytes.Buffer) error {
	pk.FixedHeader.Type = Disconnect

	rem := pk.reasonRemaining()
	if rem > MaxRemainingLength {
		return ErrPacketTooLarge
	}

	pk.FixedHeader.Remaining = rem
	pk.FixedHeader.Encode(buf)

	if rem > 0 {
		buf.WriteByte(pk.ReasonCode)
		pk.Properties.Encode(Disconnect, buf)
	}

	return nil
}

// DisconnectDecode decodes a DISCONNECT packet. An empty body means a
// normal disconnection. [MQTT-3.14.2-1]
func (pk *Packet) DisconnectDecode(buf []byte) error {
	if len(buf) == 0 {
		pk.ReasonCode = CodeNormalDisconnection.Code
		return nil
	}

	var offset int
	var err error

	pk.ReasonCode, offset, err = decodeByte(buf, 0)
	if err != nil {
		return ErrMalformedReasonCode
	}

	if offset >= len(buf) {
		return nil
	}

	_, err = pk.Properties.Decode(Disconnect, buf, offset)
	if err != nil {
		return err
	}

	return nil
}
