package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddressChecksumsLowercase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Address
	}{
		{
			name:  "mixed checksum target",
			input: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			want:  "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		},
		{
			name:  "second vector",
			input: "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359",
			want:  "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		},
		{
			name:  "all caps body",
			input: "0x52908400098527886E0F7030069857D2E4169EE7",
			want:  "0x52908400098527886E0F7030069857D2E4169EE7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAddress(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAddressAcceptsValidChecksum(t *testing.T) {
	got, err := ParseAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.NoError(t, err)
	assert.Equal(t, Address("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"), got)
}

func TestParseAddressRejectsBadChecksum(t *testing.T) {
	// Same address with two checksum characters flipped
	_, err := ParseAddress("0x5Aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestParseAddressRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing prefix", "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"},
		{"too short", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1bea"},
		{"too long", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed00"},
		{"non-hex", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beazz"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAddress(tt.input)
			assert.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, Address("").IsZero())
	assert.True(t, ZeroAddress.IsZero())
	assert.False(t, Address("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed").IsZero())
}

func TestAmountString(t *testing.T) {
	assert.Equal(t, "0.001", TurnPrice.String())
	assert.Equal(t, "0.005", (5 * TurnPrice).String())
	assert.Equal(t, "1", Amount(NanoPerUnit).String())
	assert.Equal(t, "1.5", Amount(NanoPerUnit+NanoPerUnit/2).String())
	assert.Equal(t, "0", Amount(0).String())
	assert.False(t, strings.HasSuffix((3*TurnPrice).String(), "0"))
}
