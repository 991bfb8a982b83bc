// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// PingreqEncode encodes a PINGREQ packet.
func (pk *Packet) PingreqEncode(buf *bytes.Buffer) error {
	pk.FixedHeader.Type = Pingreq
	pk.FixedHeader.Remaining = 0
	pk.FixedHeader.Encode(buf)
	return nil
}

// PingreqDecode decodes a PINGREQ packet. A PINGREQ has no variable header
// or payload.
func (pk *Packet) PingreqDecode(buf []byte) error {
	if len(buf) > 0 {
		return ErrMalformedPacket
	}
	return nil
}
