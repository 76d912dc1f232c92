package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalt(t *testing.T) {
	a, err := NewSalt()
	require.NoError(t, err)
	b, err := NewSalt()
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestSaltedHashDeterministic(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	h1 := SaltedHash(salt, "prehash-value")
	h2 := SaltedHash(salt, "prehash-value")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 32)
}

func TestSaltedHashDependsOnSalt(t *testing.T) {
	saltA, err := NewSalt()
	require.NoError(t, err)
	saltB, err := NewSalt()
	require.NoError(t, err)

	assert.NotEqual(t, SaltedHash(saltA, "prehash-value"), SaltedHash(saltB, "prehash-value"))
}

func TestVerify(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	hash := SaltedHash(salt, "correct")

	assert.True(t, Verify(salt, "correct", hash))
	assert.False(t, Verify(salt, "wrong", hash))
}

func TestNewTokenUnique(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
