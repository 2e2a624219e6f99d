package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintVerifyRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", 30*time.Minute)

	tok, err := issuer.Mint("user-123")
	require.NoError(t, err)

	userID, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("test-secret", -1*time.Minute)

	tok, err := issuer.Mint("user-123")
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewIssuer("secret-a", 30*time.Minute)
	other := NewIssuer("secret-b", 30*time.Minute)

	tok, err := issuer.Mint("user-123")
	require.NoError(t, err)

	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyGarbage(t *testing.T) {
	issuer := NewIssuer("test-secret", 30*time.Minute)

	_, err := issuer.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalid)
}
