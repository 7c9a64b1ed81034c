package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("12345678")
	require.NoError(t, err)

	assert.NotEqual(t, "12345678", hash)
	assert.True(t, VerifyPassword("12345678", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
