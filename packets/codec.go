// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
	"encoding/binary"
	"io"
	"unsafe"
)

// bytesToString provides a zero-alloc no-copy byte to string conversion.
// via https://github.com/golang/go/issues/25484#issuecomment-391415660
func bytesToString(bs []byte) string {
	return *(*string)(unsafe.Pointer(&bs))
}

// decodeUint16 extracts a big-endian two byte integer from a byte array.
func decodeUint16(buf []byte, offset int) (uint16, int, error) {
	if len(buf) < offset+2 {
		return 0, 0, ErrMalformedOffsetUintOutOfRange
	}

	return binary.BigEndian.Uint16(buf[offset : offset+2]), offset + 2, nil
}

// decodeUint32 extracts a big-endian four byte integer from a byte array.
func decodeUint32(buf []byte, offset int) (uint32, int, error) {
	if len(buf) < offset+4 {
		return 0, 0, ErrMalformedOffsetUintOutOfRange
	}

	return binary.BigEndian.Uint32(buf[offset : offset+4]), offset + 4, nil
}

// decodeString extracts a length-prefixed utf-8 string from a byte array.
// The contents are checked against the mqtt utf-8 rules; both ill-formed
// sequences and disallowed code points fail. [MQTT-1.5.4-1] [MQTT-1.5.4-2]
func decodeString(buf []byte, offset int) (string, int, error) {
	b, n, err := decodeBytes(buf, offset)
	if err != nil {
		return "", 0, err
	}

	if checkUTF8(b, true) != utf8WellFormed {
		return "", 0, ErrMalformedInvalidUTF8
	}

	return bytesToString(b), n, nil
}

// decodeClientString extracts a length-prefixed client identifier. Client
// identifiers are only checked for well-formedness (plus the universal nul,
// surrogate and non-character prohibitions); control characters which other
// string fields reject are tolerated here. [MQTT-3.1.3-5]
func decodeClientString(buf []byte, offset int) (string, int, error) {
	b, n, err := decodeBytes(buf, offset)
	if err != nil {
		return "", 0, err
	}

	if checkUTF8(b, false) != utf8WellFormed {
		return "", 0, ErrMalformedInvalidUTF8
	}

	return bytesToString(b), n, nil
}

// decodeStringPair extracts two consecutive length-prefixed utf-8 strings,
// as used by the user property key/value encoding.
func decodeStringPair(buf []byte, offset int) (k, v string, n int, err error) {
	k, n, err = decodeString(buf, offset)
	if err != nil {
		return "", "", 0, err
	}

	v, n, err = decodeString(buf, n)
	if err != nil {
		return "", "", 0, err
	}

	return k, v, n, nil
}

// decodeBytes extracts a length-prefixed byte array from a byte array.
func decodeBytes(buf []byte, offset int) ([]byte, int, error) {
	length, next, err := decodeUint16(buf, offset)
	if err != nil {
		return make([]byte, 0), 0, err
	}

	if next+int(length) > len(buf) {
		return make([]byte, 0), 0, ErrMalformedOffsetBytesOutOfRange
	}

	return buf[next : next+int(length)], next + int(length), nil
}

// decodeByte extracts the value of a single byte from a byte array.
func decodeByte(buf []byte, offset int) (byte, int, error) {
	if len(buf) <= offset {
		return 0, 0, ErrMalformedOffsetByteOutOfRange
	}
	return buf[offset], offset + 1, nil
}

// decodeLength extracts a variable byte integer from a byte array. At most
// four bytes are consumed; a fourth byte carrying a continuation bit fails.
func decodeLength(buf []byte, offset int) (val, next int, err error) {
	var multiplier uint32
	var value uint32
	for {
		if len(buf) <= offset {
			return 0, 0, ErrMalformedVariableByteInteger
		}

		eb := buf[offset]
		offset++

		if multiplier > 21 { // a fifth length byte [MQTT-1.5.5-1]
			return 0, 0, ErrMalformedVariableByteInteger
		}

		value |= uint32(eb&127) << multiplier
		if (eb & 128) == 0 {
			break
		}

		multiplier += 7
	}

	return int(value), offset, nil
}

// DecodeLength reads a variable byte integer from a byte reader, returning
// the decoded value and the number of bytes consumed. Used by the framing
// parser where the remaining length arrives over a stream.
func DecodeLength(b io.ByteReader) (n, bu int, err error) {
	// see 1.5.5 Variable Byte Integer decode non-normative
	// https://docs.oasis-open.org/mqtt/mqtt/v5.0/os/mqtt-v5.0-os.html#_Toc3901027
	var multiplier uint32
	var value uint32
	bu = 1
	for {
		eb, err := b.ReadByte()
		if err != nil {
			return 0, bu, err
		}

		if multiplier > 21 {
			return 0, bu, ErrMalformedVariableByteInteger
		}

		value |= uint32(eb&127) << multiplier
		if (eb & 128) == 0 {
			break
		}

		multiplier += 7
		bu++
	}

	return int(value), bu, nil
}

// encodeBool returns a byte instead of a bool.
func encodeBool(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// encodeBytes encodes a byte array with its two byte length prefix.
func encodeBytes(val []byte) []byte {
	// In most circumstances the number of bytes being encoded is small.
	// Setting the cap to a low amount allows us to account for those without
	// triggering allocation growth on append unless we need to.
	buf := make([]byte, 2, 32)
	binary.BigEndian.PutUint16(buf, uint16(len(val)))
	return append(buf, val...)
}

// encodeUint16 encodes a uint16 value to a byte array.
func encodeUint16(val uint16) []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, val)
	return buf
}

// encodeUint32 encodes a uint32 value to a byte array.
func encodeUint32(val uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, val)
	return buf
}

// encodeString encodes a string with its two byte length prefix.
func encodeString(val string) []byte {
	// Like encodeBytes, we set the cap to a small number to avoid
	// triggering allocation growth on append unless we absolutely need to.
	buf := make([]byte, 2, 32)
	binary.BigEndian.PutUint16(buf, uint16(len(val)))
	return append(buf, []byte(val)...)
}

// encodeLength writes a value as a variable byte integer in shortest form.
func encodeLength(b *bytes.Buffer, length int64) {
	// 1.5.5 Variable Byte Integer encode non-normative
	// https://docs.oasis-open.org/mqtt/mqtt/v5.0/os/mqtt-v5.0-os.html#_Toc3901027
	for {
		eb := byte(length % 128)
		length /= 128
		if length > 0 {
			eb |= 0x80
		}
		b.WriteByte(eb)
		if length == 0 {
			break // [MQTT-1.5.5-1]
		}
	}
}

// lengthBytes returns the number of bytes the variable byte integer
// encoding of n occupies. Used for size arithmetic ahead of encoding.
func lengthBytes(n int) int {
	switch {
	case n < 128:
		return 1
	case n < 16384:
		return 2
	case n < 2097152:
		return 3
	default:
		return 4
	}
}
