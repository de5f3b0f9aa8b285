package auth

import (
	"testing"

	"agenda/config"
	domainerrors "agenda/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	hash, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Password123!", hash)

	assert.True(t, hasher.Check("Password123!", hash))
	assert.False(t, hasher.Check("wrong-password", hash))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	first, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	second, err := hasher.Hash("Password123!")
	require.NoError(t, err)

	// bcrypt generates a fresh salt per call.
	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_ValidateStrength(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{
		Auth: &config.AuthConfig{MinPasswordLength: 8},
	})

	assert.NoError(t, hasher.ValidateStrength("12345678"))

	err := hasher.ValidateStrength("1234567")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordTooShort)
}
