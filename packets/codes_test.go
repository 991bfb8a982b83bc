// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodesString(t *testing.T) {
	c := Code{Code: 0x97, Reason: "quota exceeded"}
	require.Equal(t, "quota exceeded", c.String())
	require.Equal(t, "quota exceeded", c.Error())
}

func TestCodesTaxonomy(t *testing.T) {
	require.Equal(t, byte(0x81), ErrMalformedPacket.Code)
	require.Equal(t, byte(0x81), ErrMalformedInvalidUTF8.Code)
	require.Equal(t, byte(0x82), ErrProtocolViolation.Code)
	require.Equal(t, byte(0x95), ErrPacketTooLarge.Code)
	require.Equal(t, byte(0x99), ErrPayloadFormatInvalid.Code)
	require.Equal(t, byte(0x00), CodeSuccess.Code)
}

func TestQosCodes(t *testing.T) {
	require.Equal(t, CodeGrantedQos0, QosCodes[0])
	require.Equal(t, CodeGrantedQos1, QosCodes[1])
	require.Equal(t, CodeGrantedQos2, QosCodes[2])
}
