// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeUint16(t *testing.T) {
	v, n, err := decodeUint16([]byte{0x01, 0xF4}, 0)
	require.NoError(t, err)
	require.Equal(t, uint16(500), v)
	require.Equal(t, 2, n)
}

func TestDecodeUint16Short(t *testing.T) {
	_, _, err := decodeUint16([]byte{0x01}, 0)
	require.ErrorIs(t, err, ErrMalformedOffsetUintOutOfRange)
}

func TestDecodeUint32(t *testing.T) {
	v, n, err := decodeUint32([]byte{0x00, 0x00, 0x01, 0x2C}, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(300), v)
	require.Equal(t, 4, n)
}

func TestDecodeUint32Short(t *testing.T) {
	_, _, err := decodeUint32([]byte{0x00, 0x00, 0x01}, 0)
	require.ErrorIs(t, err, ErrMalformedOffsetUintOutOfRange)
}

func TestDecodeString(t *testing.T) {
	v, n, err := decodeString([]byte{0x00, 0x03, 'a', '/', 'b'}, 0)
	require.NoError(t, err)
	require.Equal(t, "a/b", v)
	require.Equal(t, 5, n)
}

func TestDecodeStringInvalidUTF8(t *testing.T) {
	// unpaired surrogate U+D800
	_, _, err := decodeString([]byte{0x00, 0x03, 0xED, 0xA0, 0x80}, 0)
	require.ErrorIs(t, err, ErrMalformedInvalidUTF8)
}

func TestDecodeStringControlDisallowed(t *testing.T) {
	_, _, err := decodeString([]byte{0x00, 0x01, 0x01}, 0)
	require.ErrorIs(t, err, ErrMalformedInvalidUTF8)
}

func TestDecodeClientStringControlAllowed(t *testing.T) {
	v, _, err := decodeClientString([]byte{0x00, 0x01, 0x01}, 0)
	require.NoError(t, err)
	require.Equal(t, "\x01", v)
}

func TestDecodeClientStringNulRejected(t *testing.T) {
	_, _, err := decodeClientString([]byte{0x00, 0x01, 0x00}, 0)
	require.ErrorIs(t, err, ErrMalformedInvalidUTF8)
}

func TestDecodeStringPair(t *testing.T) {
	k, v, n, err := decodeStringPair([]byte{0x00, 0x01, 'k', 0x00, 0x01, 'v'}, 0)
	require.NoError(t, err)
	require.Equal(t, "k", k)
	require.Equal(t, "v", v)
	require.Equal(t, 6, n)
}

func TestDecodeBytesOverrun(t *testing.T) {
	_, _, err := decodeBytes([]byte{0x00, 0x09, 'a', 'b'}, 0)
	require.ErrorIs(t, err, ErrMalformedOffsetBytesOutOfRange)
}

func TestDecodeByte(t *testing.T) {
	v, n, err := decodeByte([]byte{0x7F}, 0)
	require.NoError(t, err)
	require.Equal(t, byte(0x7F), v)
	require.Equal(t, 1, n)

	_, _, err = decodeByte([]byte{}, 0)
	require.ErrorIs(t, err, ErrMalformedOffsetByteOutOfRange)
}

func TestEncodeBool(t *testing.T) {
	require.Equal(t, byte(1), encodeBool(true))
	require.Equal(t, byte(0), encodeBool(false))
}

func TestEncodeString(t *testing.T) {
	require.Equal(t, []byte{0x00, 0x03, 'a', '/', 'b'}, encodeString("a/b"))
	require.Equal(t, []byte{0x00, 0x00}, encodeString(""))
}

func TestEncodeBytes(t *testing.T) {
	require.Equal(t, []byte{0x00, 0x02, 0xDE, 0xAD}, encodeBytes([]byte{0xDE, 0xAD}))
}

func TestEncodeUint16(t *testing.T) {
	require.Equal(t, []byte{0x01, 0xF4}, encodeUint16(500))
}

func TestEncodeUint32(t *testing.T) {
	require.Equal(t, []byte{0x00, 0x00, 0x01, 0x2C}, encodeUint32(300))
}

// varintBoundaries are the values at which the variable byte integer
// encoding changes width, plus both extremes.
var varintBoundaries = map[int]int{
	0:         1,
	1:         1,
	127:       1,
	128:       2,
	16383:     2,
	16384:     3,
	2097151:   3,
	2097152:   4,
	268435455: 4,
}

func TestLengthRoundTrip(t *testing.T) {
	for val, width := range varintBoundaries {
		var b bytes.Buffer
		encodeLength(&b, int64(val))
		require.Equal(t, width, b.Len(), "value %d", val)
		require.Equal(t, width, lengthBytes(val), "value %d", val)

		got, next, err := decodeLength(b.Bytes(), 0)
		require.NoError(t, err, "value %d", val)
		require.Equal(t, val, got, "value %d", val)
		require.Equal(t, width, next, "value %d", val)

		got, bu, err := DecodeLength(bytes.NewBuffer(b.Bytes()))
		require.NoError(t, err, "value %d", val)
		require.Equal(t, val, got, "value %d", val)
		require.Equal(t, width, bu, "value %d", val)
	}
}

func TestDecodeLengthFifthByte(t *testing.T) {
	raw := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	_, _, err := decodeLength(raw, 0)
	require.ErrorIs(t, err, ErrMalformedVariableByteInteger)

	_, _, err = DecodeLength(bytes.NewBuffer(raw))
	require.ErrorIs(t, err, ErrMalformedVariableByteInteger)
}

func TestDecodeLengthTruncated(t *testing.T) {
	_, _, err := decodeLength([]byte{0x80}, 0)
	require.ErrorIs(t, err, ErrMalformedVariableByteInteger)
}
