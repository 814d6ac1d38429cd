package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_NeverPlaintext(t *testing.T) {
	t.Parallel()

	for _, pw := range []string{"a", "secret123", "pässwörd", "0123456789012345678901234567890123456789"} {
		hash, err := HashPassword(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hash)

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, PasswordCost, cost)
	}
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("secret123")
	require.NoError(t, err)
	b, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestComparePassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "secret123"))
	assert.ErrorIs(t, ComparePassword(hash, "wrong"), ErrPasswordMismatch)

	err = ComparePassword("not-a-hash", "secret123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}
