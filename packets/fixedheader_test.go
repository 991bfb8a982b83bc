// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedHeaderTable struct {
	rawBytes    []byte
	header      FixedHeader
	packetError bool
	flagError   error
}

var fhTable = []fixedHeaderTable{
	{rawBytes: []byte{Connect << 4, 0x00}, header: FixedHeader{Type: Connect}},
	{rawBytes: []byte{Connack << 4, 0x00}, header: FixedHeader{Type: Connack}},
	{rawBytes: []byte{Publish << 4, 0x00}, header: FixedHeader{Type: Publish}},
	{rawBytes: []byte{Publish<<4 | 1<<1, 0x00}, header: FixedHeader{Type: Publish, Qos: 1}},
	{rawBytes: []byte{Publish<<4 | 1<<1 | 1, 0x00}, header: FixedHeader{Type: Publish, Qos: 1, Retain: true}},
	{rawBytes: []byte{Publish<<4 | 2<<1, 0x00}, header: FixedHeader{Type: Publish, Qos: 2}},
	{rawBytes: []byte{Publish<<4 | 1<<3 | 1<<1, 0x00}, header: FixedHeader{Type: Publish, Dup: true, Qos: 1}},
	{rawBytes: []byte{Puback << 4, 0x00}, header: FixedHeader{Type: Puback}},
	{rawBytes: []byte{Pubrec << 4, 0x00}, header: FixedHeader{Type: Pubrec}},
	{rawBytes: []byte{Pubrel<<4 | 1<<1, 0x00}, header: FixedHeader{Type: Pubrel, Qos: 1}},
	{rawBytes: []byte{Pubcomp << 4, 0x00}, header: FixedHeader{Type: Pubcomp}},
	{rawBytes: []byte{Subscribe<<4 | 1<<1, 0x00}, header: FixedHeader{Type: Subscribe, Qos: 1}},
	{rawBytes: []byte{Suback << 4, 0x00}, header: FixedHeader{Type: Suback}},
	{rawBytes: []byte{Unsubscribe<<4 | 1<<1, 0x00}, header: FixedHeader{Type: Unsubscribe, Qos: 1}},
	{rawBytes: []byte{Unsuback << 4, 0x00}, header: FixedHeader{Type: Unsuback}},
	{rawBytes: []byte{Pingreq << 4, 0x00}, header: FixedHeader{Type: Pingreq}},
	{rawBytes: []byte{Pingresp << 4, 0x00}, header: FixedHeader{Type: Pingresp}},
	{rawBytes: []byte{Disconnect << 4, 0x00}, header: FixedHeader{Type: Disconnect}},
	{rawBytes: []byte{Auth << 4, 0x00}, header: FixedHeader{Type: Auth}},

	// QoS bits out of range on a publish.
	{rawBytes: []byte{Publish<<4 | 3<<1, 0x00}, flagError: ErrMalformedQos},

	// Dup set with qos 0 on a publish.
	{rawBytes: []byte{Publish<<4 | 1<<3, 0x00}, flagError: ErrProtocolViolationDupNoQos},

	// Wrong reserved flags on the 0b0010 types.
	{rawBytes: []byte{Pubrel << 4, 0x00}, flagError: ErrMalformedFlags},
	{rawBytes: []byte{Pubrel<<4 | 0x03, 0x00}, flagError: ErrMalformedFlags},
	{rawBytes: []byte{Subscribe << 4, 0x00}, flagError: ErrMalformedFlags},
	{rawBytes: []byte{Unsubscribe << 4, 0x00}, flagError: ErrMalformedFlags},

	// Reserved flag bits set on a 0b0000 type.
	{rawBytes: []byte{Connect<<4 | 1<<1, 0x00}, flagError: ErrMalformedFlags},
	{rawBytes: []byte{Pingreq<<4 | 1<<3, 0x00}, flagError: ErrMalformedFlags},
	{rawBytes: []byte{Disconnect<<4 | 1, 0x00}, flagError: ErrMalformedFlags},
}

func TestFixedHeaderDecode(t *testing.T) {
	for i, wanted := range fhTable {
		fh := new(FixedHeader)
		err := fh.Decode(wanted.rawBytes[0])
		if wanted.flagError != nil {
			require.ErrorIs(t, err, wanted.flagError, "case %d", i)
			continue
		}

		require.NoError(t, err, "case %d", i)
		require.Equal(t, wanted.header.Type, fh.Type, "case %d", i)
		require.Equal(t, wanted.header.Dup, fh.Dup, "case %d", i)
		require.Equal(t, wanted.header.Qos, fh.Qos, "case %d", i)
		require.Equal(t, wanted.header.Retain, fh.Retain, "case %d", i)
	}
}

func TestFixedHeaderEncode(t *testing.T) {
	for i, wanted := range fhTable {
		if wanted.flagError != nil {
			continue
		}

		buf := new(bytes.Buffer)
		fh := wanted.header
		fh.Encode(buf)
		require.Equal(t, wanted.rawBytes, buf.Bytes(), "case %d", i)
	}
}

func TestFixedHeaderEncodeRemaining(t *testing.T) {
	buf := new(bytes.Buffer)
	fh := FixedHeader{Type: Publish, Remaining: 321}
	fh.Encode(buf)
	require.Equal(t, []byte{Publish << 4, 0xC1, 0x02}, buf.Bytes())
}
