// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// PubrelEncode encodes a PUBREL packet. The fixed header flags of a PUBREL
// must be 0b0010, which the qos bit carries. [MQTT-3.6.1-1]
func (pk *Packet) PubrelEncode(buf *bytes.Buffer) error {
	pk.FixedHeader.Type = Pubrel
	pk.FixedHeader.Qos = 1
	return pk.ackEncode(buf)
}

// PubrelDecode decodes a PUBREL packet.
func (pk *Packet) PubrelDecode(buf []byte) error {
	return pk.ackDecode(validPubrelReasons, buf)
}
