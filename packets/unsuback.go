// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// unsubackRemaining computes the remaining length of an UNSUBACK packet.
func (pk *Packet) unsubackRemaining() int {
	props := pk.Properties.Size(Unsuback)
	return 2 + lengthBytes(props) + props + len(pk.ReasonCodes)
}

// UnsubackEncode encodes an UNSUBACK packet.
func (pk *Packet) UnsubackEncode(buf *bytes.Buffer) error {
	if pk.PacketID == 0 {
		return ErrProtocolViolationNoPacketID
	}

	rem := pk.unsubackRemaining()
	if rem > MaxRemainingLength {
		return ErrPacketTooLarge
	}

	pk.FixedHeader.Type = Unsuback
	pk.FixedHeader.Remaining = rem
	pk.FixedHeader.Encode(buf)

	buf.Write(encodeUint16(pk.PacketID))
	pk.Properties.Encode(Unsuback, buf)
	buf.Write(pk.ReasonCodes)

	return nil
}

// UnsubackDecode decodes an UNSUBACK packet.
func (pk *Packet) UnsubackDecode(buf []byte) error {
	var offset int
	var err error

	pk.PacketID, offset, err = decodeUint16(buf, 0)
	if err != nil {
		return ErrMalformedPacketID
	}

	offset, err = pk.Properties.Decode(Unsuback, buf, offset)
	if err != nil {
		return err
	}

	pk.ReasonCodes = buf[offset:]

	return nil
}
