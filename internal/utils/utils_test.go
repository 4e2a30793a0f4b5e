package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", digest)
	assert.True(t, h.Verify("s3cret!", digest))
	assert.False(t, h.Verify("other", digest))
	assert.False(t, h.Verify("s3cret!", "not-a-digest"))
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).Cost)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.GenerateJWT("abc", "D")
	require.NoError(t, err)

	claims, err := issuer.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.UserID)
	assert.Equal(t, "D", claims.Role)
}

func TestTokenRejectsOtherSecretAndExpiry(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Hour).GenerateJWT("abc", "P")
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).ValidateJWT(token)
	assert.Error(t, err)

	expired := NewTokenIssuer("one", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateJWT("abc", "P")
	require.NoError(t, err)
	_, err = NewTokenIssuer("one", time.Hour).ValidateJWT(old)
	assert.Error(t, err)
}

func TestTokenWithoutSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour).GenerateJWT("abc", "P")
	assert.ErrorIs(t, err, ErrNoSecret)
}
