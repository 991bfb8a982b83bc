// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// PubrecEncode encodes a PUBREC packet.
func (pk *Packet) PubrecEncode(buf *bytes.Buffer) error {
	pk.FixedHeader.Type = Pubrec
	return pk.ackEncode(buf)
}

// PubrecDecode decodes a PUBREC packet.
func (pk *Packet) PubrecDecode(buf []byte) error {
	return pk.ackDecode(validPubackReasons, buf)
}
