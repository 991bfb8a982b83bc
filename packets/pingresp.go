// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// PingrespEncode encodes a PINGRESP packet.
func (pk *Packet) PingrespEncode(buf *bytes.Buffer) error {
	pk.FixedHeader.Type = Pingresp
	pk.FixedHeader.Remaining = 0
	pk.FixedHeader.Encode(buf)
	return nil
}

// PingrespDecode decodes a PINGRESP packet.
func (pk *Packet) PingrespDecode(buf []byte) error {
	if len(buf) > 0 {
		return ErrMalformedPacket
	}
	return nil
}
