// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// validPubackReasons are the reason codes a PUBACK or PUBREC may carry.
var validPubackReasons = map[byte]bool{
	CodeSuccess.Code:                    true,
	CodeNoMatchingSubscribers.Code:      true,
	ErrUnspecifiedError.Code:            true,
	ErrImplementationSpecificError.Code: true,
	ErrNotAuthorized.Code:               true,
	ErrTopicNameInvalid.Code:            true,
	ErrPacketIdentifierInUse.Code:       true,
	ErrQuotaExceeded.Code:               true,
	ErrPayloadFormatInvalid.Code:        true,
}

// validPubrelReasons are the reason codes a PUBREL or PUBCOMP may carry.
var validPubrelReasons = map[byte]bool{
	CodeSuccess.Code:                 true,
	ErrPacketIdentifierNotFound.Code: true,
}

// ackRemaining computes the remaining length of an acknowledgement-type
// packet (PUBACK, PUBREC, PUBREL, PUBCOMP). When the reason code is
// success and no properties are present, both are omitted and the packet
// is the two byte packet identifier alone.
func (pk *Packet) ackRemaining() int {
	props := pk.Properties.Size(pk.FixedHeader.Type)
	if pk.ReasonCode == CodeSuccess.Code && props == 0 {
		return 2
	}

	return 2 + 1 + lengthBytes(props) + props
}

// ackEncode encodes an acknowledgement-type packet.
func (pk *Packet) ackEncode(buf *bytes.Buffer) error {
	if pk.PacketID == 0 {
		return ErrProtocolViolationNoPacketID
	}

	rem := pk.ackRemaining()
	pk.FixedHeader.Remaining = rem
	pk.FixedHeader.Encode(buf)

	buf.Write(encodeUint16(pk.PacketID))

	if rem > 2 {
		buf.WriteByte(pk.ReasonCode)
		pk.Properties.Encode(pk.FixedHeader.Type, buf)
	}

	return nil
}

// ackDecode decodes an acknowledgement-type packet. The reason code and
// property block may both be absent, in which case the reason is success.
func (pk *Packet) ackDecode(valid map[byte]bool, buf []byte) error {
	var offset int
	var err error

	pk.PacketID, offset, err = decodeUint16(buf, 0)
	if err != nil {
		return ErrMalformedPacketID
	}

	if offset >= len(buf) {
		pk.ReasonCode = CodeSuccess.Code
		return nil
	}

	pk.ReasonCode, offset, err = decodeByte(buf, offset)
	if err != nil {
		return ErrMalformedReasonCode
	}

	if !valid[pk.ReasonCode] { // [MQTT-3.4.2-1]
		return ErrProtocolViolationInvalidReason
	}

	if offset >= len(buf) {
		return nil
	}

	_, err = pk.Properties.Decode(pk.FixedHeader.Type, buf, offset)
	if err != nil {
		return err
	}

	return nil
}

// PubackEncode encodes a PUBACK packet.
func (pk *Packet) PubackEncode(buf *bytes.Buffer) error {
	pk.FixedHeader.Type = Puback
	return pk.ackEncode(buf)
}

// PubackDecode decodes a PUBACK packet.
func (pk *Packet) PubackDecode(buf []byte) error {
	return pk.ackDecode(validPubackReasons, buf)
}
