package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAddress(t *testing.T) {
	pub, err := DecodeAddress(vectorAddress)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, vectorPublic), []byte(pub))
	assert.Equal(t, vectorAddress, Address(pub))
}

func TestDecodeAddress_Invalid(t *testing.T) {
	tests := []struct {
		name string
		addr string
	}{
		{"bad character", "0OIl"},
		{"too short", "abc"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAddress(tt.addr)
			assert.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

func TestValidPoint(t *testing.T) {
	assert.True(t, ValidPoint(mustHex(t, vectorPublic)))

	// y = 2 不在曲线上
	bad := make([]byte, PublicKeySize)
	bad[0] = 2
	assert.False(t, ValidPoint(bad))

	assert.False(t, ValidPoint([]byte{1, 2, 3}))
}

func TestAlphabet(t *testing.T) {
	assert.Len(t, Alphabet, 58)
	for _, c := range "0OIl" {
		assert.NotContains(t, Alphabet, string(c))
	}
}
