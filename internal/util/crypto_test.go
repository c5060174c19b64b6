package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "MyPassword123"

	hashed, err := HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, password, hashed)

	// same password must produce a different hash (random salt)
	hashed2, err := HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, hashed, hashed2)

	_, err = HashPassword("", bcrypt.MinCost)
	assert.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	password := "TestPass456"
	hashed, err := HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPassword(password, hashed))
	assert.False(t, CheckPassword("WrongPass", hashed))
	assert.False(t, CheckPassword("", hashed))
	assert.False(t, CheckPassword(password, ""))
	assert.False(t, CheckPassword(password, "invalid-format"))
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken()
	require.NoError(t, err)
	assert.Len(t, token, 40) // 20 random bytes, hex encoded

	token2, err := GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)
}

func TestHashToken(t *testing.T) {
	raw := "some-raw-token"

	hash := HashToken(raw)
	assert.NotEqual(t, raw, hash)
	assert.Len(t, hash, 64) // sha256 hex

	// deterministic, so lookups by hash work
	assert.Equal(t, hash, HashToken(raw))
	assert.NotEqual(t, hash, HashToken("other-token"))
}
