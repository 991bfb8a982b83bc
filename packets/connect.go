// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

// connectRemaining computes the remaining length of a CONNECT packet.
func (pk *Packet) connectRemaining() int {
	props := pk.Properties.Size(Connect)

	// protocol signature + connect flags + keepalive
	n := len(protocolSignature) + 1 + 2
	n += lengthBytes(props) + props
	n += 2 + len(pk.Connect.ClientIdentifier)

	if pk.Connect.WillFlag {
		wp := pk.Connect.WillProperties.Size(WillProperties)
		n += lengthBytes(wp) + wp
		n += 2 + len(pk.Connect.WillTopic)
		n += 2 + len(pk.Connect.WillPayload)
	}

	if pk.Connect.UsernameFlag {
		n += 2 + len(pk.Connect.Username)
	}

	if pk.Connect.PasswordFlag {
		n += 2 + len(pk.Connect.Password)
	}

	return n
}

// ConnectEncode encodes a CONNECT packet.
func (pk *Packet) ConnectEncode(buf *bytes.Buffer) error {
	rem := pk.connectRemaining()
	if rem > MaxRemainingLength {
		return ErrPacketTooLarge
	}

	pk.FixedHeader.Type = Connect
	pk.FixedHeader.Remaining = rem
	pk.FixedHeader.Encode(buf)

	buf.Write(protocolSignature)

	flag := encodeBool(pk.Connect.Clean)<<1 |
		encodeBool(pk.Connect.WillFlag)<<2 |
		pk.Connect.WillQos<<3 |
		encodeBool(pk.Connect.WillRetain)<<5 |
		encodeBool(pk.Connect.PasswordFlag)<<6 |
		encodeBool(pk.Connect.UsernameFlag)<<7
	buf.WriteByte(flag)

	buf.Write(encodeUint16(pk.Connect.Keepalive))
	pk.Properties.Encode(Connect, buf)

	buf.Write(encodeString(pk.Connect.ClientIdentifier)) // [MQTT-3.1.3-3]

	if pk.Connect.WillFlag { // [MQTT-3.1.3-11]
		pk.Connect.WillProperties.Encode(WillProperties, buf)
		buf.Write(encodeString(pk.Connect.WillTopic))
		buf.Write(encodeBytes(pk.Connect.WillPayload))
	}

	if pk.Connect.UsernameFlag { // [MQTT-3.1.3-12]
		buf.Write(encodeBytes(pk.Connect.Username))
	}

	if pk.Connect.PasswordFlag { // [MQTT-3.1.3-13]
		buf.Write(encodeBytes(pk.Connect.Password))
	}

	return nil
}

// ConnectDecode decodes a CONNECT packet.
func (pk *Packet) ConnectDecode(buf []byte) error {
	var offset int
	var err error

	name, offset, err := decodeBytes(buf, 0)
	if err != nil {
		return ErrMalformedProtocolName
	}

	if !bytes.Equal(name, protocolSignature[2:6]) { // [MQTT-3.1.2-1]
		return ErrProtocolViolationProtocolName
	}

	version, offset, err := decodeByte(buf, offset)
	if err != nil {
		return ErrMalformedProtocolVersion
	}

	if version != protocolSignature[6] { // [MQTT-3.1.2-2]
		return ErrUnsupportedProtocolVersion
	}

	flags, offset, err := decodeByte(buf, offset)
	if err != nil {
		return ErrMalformedFlags
	}

	if flags&0x01 != 0 { // [MQTT-3.1.2-3]
		return ErrProtocolViolationReservedBit
	}

	pk.Connect.Clean = 1&(flags>>1) > 0
	pk.Connect.WillFlag = 1&(flags>>2) > 0
	pk.Connect.WillQos = 3 & (flags >> 3)
	pk.Connect.WillRetain = 1&(flags>>5) > 0
	pk.Connect.PasswordFlag = 1&(flags>>6) > 0
	pk.Connect.UsernameFlag = 1&(flags>>7) > 0

	if !pk.Connect.WillFlag && (pk.Connect.WillQos > 0 || pk.Connect.WillRetain) { // [MQTT-3.1.2-11]
		return ErrProtocolViolationWillFlagSurplusRetain
	}

	if pk.Connect.WillQos > 2 { // [MQTT-3.1.2-12]
		return ErrProtocolViolationQosOutOfRange
	}

	pk.Connect.Keepalive, offset, err = decodeUint16(buf, offset)
	if err != nil {
		return ErrMalformedKeepalive
	}

	offset, err = pk.Properties.Decode(Connect, buf, offset)
	if err != nil {
		return err
	}

	pk.Connect.ClientIdentifier, offset, err = decodeClientString(buf, offset)
	if err != nil {
		return err
	}

	if pk.Connect.WillFlag { // [MQTT-3.1.2-9]
		offset, err = pk.Connect.WillProperties.Decode(WillProperties, buf, offset)
		if err != nil {
			return ErrMalformedWillProperties
		}

		pk.Connect.WillTopic, offset, err = decodeString(buf, offset)
		if err != nil {
			return ErrMalformedWillTopic
		}

		pk.Connect.WillPayload, offset, err = decodeBytes(buf, offset)
		if err != nil {
			return ErrMalformedWillPayload
		}
	}

	if pk.Connect.UsernameFlag { // [MQTT-3.1.3-12]
		pk.Connect.Username, offset, err = decodeBytes(buf, offset)
		if err != nil {
			return ErrMalformedUsername
		}

		if checkUTF8(pk.Connect.Username, true) != utf8WellFormed {
			return ErrMalformedInvalidUTF8
		}
	}

	if pk.Connect.PasswordFlag {
		pk.Connect.Password, _, err = decodeBytes(buf, offset)
		if err != nil {
			return ErrMalformedPassword
		}
	}

	return nil
}

// ConnectValidate ensures the connect packet is compliant.
func (pk *Packet) ConnectValidate() error {
	if len(pk.Connect.ClientIdentifier) > 65535 {
		return ErrClientIdentifierTooLong
	}

	if pk.Connect.ClientIdentifier == "" && !pk.Connect.Clean { // [MQTT-3.1.3-7]
		return ErrClientIdentifierNotValid
	}

	if pk.Connect.WillFlag && len(pk.Connect.WillTopic) == 0 { // [MQTT-3.1.3-11]
		return ErrProtocolViolationWillFlagNoPayload
	}

	return nil
}
