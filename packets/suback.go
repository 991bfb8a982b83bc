// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// subackRemaining computes the remaining length of a SUBACK packet.
func (pk *Packet) subackRemaining() int {
	props := pk.Properties.Size(Suback)
	return 2 + lengthBytes(props) + props + len(pk.ReasonCodes)
}

// SubackEncode encodes a SUBACK packet. Reason codes are written in the
// order of the matched SUBSCRIBE entries. [MQTT-3.9.3-1]
func (pk *Packet) SubackEncode(buf *bytes.Buffer) error {
	if pk.PacketID == 0 {
		return ErrProtocolViolationNoPacketID
	}

	rem := pk.subackRemaining()
	if rem > MaxRemainingLength {
		return ErrPacketTooLarge
	}

	pk.FixedHeader.Type = Suback
	pk.FixedHeader.Remaining = rem
	pk.FixedHeader.Encode(buf)

	buf.Write(encodeUint16(pk.PacketID))
	pk.Properties.Encode(Suback, buf)
	buf.Write(pk.ReasonCodes)

	return nil
}

// SubackDecode decodes a SUBACK packet.
func (pk *Packet) SubackDecode(buf []byte) error {
	var offset int
	var err error

	pk.PacketID, offset, err = decodeUint16(buf, 0)
	if err != nil {
		return ErrMalformedPacketID
	}

	offset, err = pk.Properties.Decode(Suback, buf, offset)
	if err != nil {
		return err
	}

	pk.ReasonCodes = buf[offset:]

	return nil
}
