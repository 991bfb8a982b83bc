// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// PubcompEncode encodes a PUBCOMP packet.
func (pk *Packet) PubcompEncode(buf *bytes.Buffer) error {
	pk.FixedHeader.Type = Pubcomp
	return pk.ackEncode(buf)
}

// PubcompDecode decodes a PUBCOMP packet.
func (pk *Packet) PubcompDecode(buf []byte) error {
	return pk.ackDecode(validPubrelReasons, buf)
}
