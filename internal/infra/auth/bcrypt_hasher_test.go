package auth

import (
	"strings"
	"testing"

	"journal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	password := "correct horse battery"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Salted: hashing twice yields different digests that both verify.
	again, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
	assert.True(t, hasher.Check(password, again))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPassword123!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6
	hasher := NewBcryptHasherWithCost(customCost)

	hash, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_CostFromConfig(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 5}})

	hash, err := hasher.Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)

	// Out-of-range costs fall back to the default.
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasherWithCost(99).(*bcryptHasher).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(nil).(*bcryptHasher).cost)
}

func TestBcryptHasher_TooLongPassword(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	_, err := hasher.Hash(strings.Repeat("a", 100))
	assert.Error(t, err)
}
