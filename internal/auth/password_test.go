package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("monSuperPasswordSécurisé", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotContains(t, hash, "monSuperPasswordSécurisé")

	assert.True(t, CheckPassword(hash, "monSuperPasswordSécurisé"))
	assert.False(t, CheckPassword(hash, "monSuperPasswordSecurise"))
	assert.False(t, CheckPassword(hash, ""))
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "monSuperPasswordSécurisé"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("davy", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("davy", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword("al6", 0)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73), bcrypt.MinCost)
	require.ErrorIs(t, err, ErrPasswordTooLong)
}
