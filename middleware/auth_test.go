package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewTokenService([]byte("secret"))

	t.Run("session token", func(t *testing.T) {
		token, err := s.MintSessionToken("ray@example.com")
		require.NoError(t, err)

		email, err := s.ParseToken(token, PurposeSession)
		require.NoError(t, err)
		assert.Equal(t, "ray@example.com", email)
	})

	t.Run("link token", func(t *testing.T) {
		token, err := s.MintLinkToken("ray@example.com")
		require.NoError(t, err)

		email, err := s.ParseToken(token, PurposeLink)
		require.NoError(t, err)
		assert.Equal(t, "ray@example.com", email)
	})

	t.Run("purpose mismatch rejected", func(t *testing.T) {
		token, err := s.MintLinkToken("ray@example.com")
		require.NoError(t, err)

		_, err = s.ParseToken(token, PurposeSession)
		assert.Error(t, err)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, err := s.MintSessionToken("ray@example.com")
		require.NoError(t, err)

		other := NewTokenService([]byte("different"))
		_, err = other.ParseToken(token, PurposeSession)
		assert.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := s.ParseToken("not-a-token", PurposeSession)
		assert.Error(t, err)
	})
}
