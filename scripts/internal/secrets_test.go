package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewSigningSecret(t *testing.T) {
	a, err := newSigningSecret()
	require.NoError(t, err)
	b, err := newSigningSecret()
	require.NoError(t, err)

	assert.Len(t, a, signingSecretBytes*2)
	assert.NotEqual(t, a, b)
}

func TestHashPassword(t *testing.T) {
	hash, err := hashPassword("change-me")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("change-me")))

	_, err = hashPassword("")
	assert.Error(t, err)
}
