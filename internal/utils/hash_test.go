package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_ProducesBcryptHash(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash, got %q", hash)
}

func TestVerifyPassword_Match(t *testing.T) {
	hash, err := HashPassword("my-secret-password")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("my-secret-password", hash))
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("my-secret-password")
	require.NoError(t, err)

	assert.False(t, VerifyPassword("a-different-password", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-hash"))
}

func TestHashPassword_SaltsAreUnique(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same password should differ by salt")
}
