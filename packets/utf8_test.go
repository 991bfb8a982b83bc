// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckUTF8(t *testing.T) {
	tt := []struct {
		desc   string
		in     []byte
		strict utf8Status
		lax    utf8Status
	}{
		{"empty", []byte{}, utf8WellFormed, utf8WellFormed},
		{"ascii", []byte("hello"), utf8WellFormed, utf8WellFormed},
		{"two byte", []byte("héllo"), utf8WellFormed, utf8WellFormed},
		{"three byte", []byte("世界"), utf8WellFormed, utf8WellFormed},
		{"four byte", []byte{0xF0, 0x9F, 0x98, 0x80}, utf8WellFormed, utf8WellFormed}, // U+1F600
		{"bom preserved", []byte{0xEF, 0xBB, 0xBF, 'a'}, utf8WellFormed, utf8WellFormed},
		{"nul", []byte{'a', 0x00}, utf8Disallowed, utf8Disallowed},
		{"c0 control", []byte{0x1F}, utf8Disallowed, utf8WellFormed},
		{"del", []byte{0x7F}, utf8Disallowed, utf8WellFormed},
		{"c1 control", []byte{0xC2, 0x80}, utf8Disallowed, utf8WellFormed}, // U+0080
		{"surrogate d800", []byte{0xED, 0xA0, 0x80}, utf8IllFormed, utf8IllFormed},
		{"surrogate dfff", []byte{0xED, 0xBF, 0xBF}, utf8IllFormed, utf8IllFormed},
		{"noncharacter fdd0", []byte{0xEF, 0xB7, 0x90}, utf8Disallowed, utf8Disallowed},
		{"noncharacter fffe", []byte{0xEF, 0xBF, 0xBE}, utf8Disallowed, utf8Disallowed},
		{"noncharacter ffff", []byte{0xEF, 0xBF, 0xBF}, utf8Disallowed, utf8Disallowed},
		{"noncharacter plane 1", []byte{0xF0, 0x9F, 0xBF, 0xBE}, utf8Disallowed, utf8Disallowed}, // U+1FFFE
		{"overlong two byte", []byte{0xC0, 0x80}, utf8IllFormed, utf8IllFormed},
		{"overlong three byte", []byte{0xE0, 0x80, 0xAF}, utf8IllFormed, utf8IllFormed},
		{"overlong four byte", []byte{0xF0, 0x80, 0x80, 0xAF}, utf8IllFormed, utf8IllFormed},
		{"beyond u+10ffff", []byte{0xF4, 0x90, 0x80, 0x80}, utf8IllFormed, utf8IllFormed},
		{"truncated sequence", []byte{0xE4, 0xB8}, utf8IllFormed, utf8IllFormed},
		{"bare continuation", []byte{0x80}, utf8IllFormed, utf8IllFormed},
		{"stray fe", []byte{0xFE}, utf8IllFormed, utf8IllFormed},
	}

	for _, tx := range tt {
		require.Equal(t, tx.strict, checkUTF8(tx.in, true), "strict: %s", tx.desc)
		require.Equal(t, tx.lax, checkUTF8(tx.in, false), "lax: %s", tx.desc)
	}
}
