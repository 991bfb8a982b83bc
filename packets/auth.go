// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// validAuthReasons are the reason codes an AUTH packet may carry.
// [MQTT-3.15.2-1]
var validAuthReasons = map[byte]bool{
	CodeSuccess.Code:                true,
	CodeContinueAuthentication.Code: true,
	CodeReAuthenticate.Code:         true,
}

// AuthEncode encodes an AUTH packet.
func (pk *Packet) AuthEncode(buf *bytes.Buffer) error {
	if !validAuthReasons[pk.ReasonCode] {
		return ErrProtocolViolationInvalidReason
	}

	pk.FixedHeader.Type = Auth

	rem := pk.reasonRemaining()
	if rem > MaxRemainingLength {
		return ErrPacketTooLarge
	}

	pk.FixedHeader.Remaining = rem
	pk.FixedHeader.Encode(buf)

	if rem > 0 {
		buf.WriteByte(pk.ReasonCode)
		pk.Properties.Encode(Auth, buf)
	}

	return nil
}

// AuthDecode decodes an AUTH packet. An empty body means success.
func (pk *Packet) AuthDecode(buf []byte) error {
	if len(buf) == 0 {
		pk.ReasonCode = CodeSuccess.Code
		return nil
	}

	var offset int
	var err error

	pk.ReasonCode, offset, err = decodeByte(buf, 0)
	if err != nil {
		return ErrMalformedReasonCode
	}

	if !validAuthReasons[pk.ReasonCode] {
		return ErrProtocolViolationInvalidReason
	}

	if offset >= len(buf) {
		return nil
	}

	_, err = pk.Properties.Decode(Auth, buf, offset)
	if err != nil {
		return err
	}

	return nil
}
