// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordMarshalBinary(t *testing.T) {
	r := Record{
		Raw:      []byte{0x32, 0x0A, 0x00, 0x03, 'a', '/', 'b', 0x00, 0x07, 0x00},
		Client:   "cid1",
		Created:  1234567890,
		PacketID: 7,
		Kind:     KindPublish,
	}

	data, err := r.MarshalBinary()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var out Record
	require.NoError(t, out.UnmarshalBinary(data))
	require.Equal(t, r, out)
}

func TestRecordUnmarshalBinaryEmpty(t *testing.T) {
	var out Record
	require.NoError(t, out.UnmarshalBinary(nil))
	require.Equal(t, Record{}, out)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "publish", KindPublish.String())
	require.Equal(t, "pubrel", KindPubrel.String())
	require.Equal(t, "unknown", Kind(9).String())
}
