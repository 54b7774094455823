package auth

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCallback(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	t.Run("provider error with description", func(t *testing.T) {
		params, err := url.ParseQuery("error=access_denied&error_description=User%20cancelled")
		require.NoError(t, err)

		ses, resolveErr := ResolveCallback(params, now)
		require.Error(t, resolveErr)
		assert.Nil(t, ses)
		assert.Equal(t, CodeProviderRejected, CodeOf(resolveErr))
		assert.Equal(t, "User cancelled", resolveErr.Error())
	})

	t.Run("provider error without description falls back to the error code", func(t *testing.T) {
		params := url.Values{"error": {"access_denied"}}

		_, resolveErr := ResolveCallback(params, now)
		require.Error(t, resolveErr)
		assert.Equal(t, "access_denied", resolveErr.Error())
	})

	t.Run("provider error wins over a present token", func(t *testing.T) {
		params := url.Values{
			"error": {"server_error"},
			"token": {buildToken(t, map[string]any{"username": "jdoe", "email": "jdoe@example.com"})},
		}

		ses, resolveErr := ResolveCallback(params, now)
		assert.Nil(t, ses)
		assert.Equal(t, CodeProviderRejected, CodeOf(resolveErr))
	})

	t.Run("no parameters at all", func(t *testing.T) {
		ses, resolveErr := ResolveCallback(url.Values{}, now)
		require.Error(t, resolveErr)
		assert.Nil(t, ses)
		assert.Equal(t, CodeMissingToken, CodeOf(resolveErr))
		assert.Equal(t, "no token received", resolveErr.Error())
	})

	t.Run("malformed token yields no session", func(t *testing.T) {
		params := url.Values{"token": {"not-three-segments"}}

		ses, resolveErr := ResolveCallback(params, now)
		assert.Nil(t, ses)
		assert.Equal(t, CodeMalformedToken, CodeOf(resolveErr))
	})

	t.Run("expired token yields no session", func(t *testing.T) {
		token := buildToken(t, map[string]any{
			"username": "jdoe",
			"email":    "jdoe@example.com",
			"exp":      now.Unix() - 60,
		})
		ses, resolveErr := ResolveCallback(url.Values{"token": {token}}, now)
		assert.Nil(t, ses)
		assert.Equal(t, CodeExpiredToken, CodeOf(resolveErr))
	})

	t.Run("valid token materializes the session", func(t *testing.T) {
		token := buildToken(t, map[string]any{
			"username": "jdoe",
			"email":    "jdoe@example.com",
			"provider": "microsoft",
			"exp":      now.Unix() + 3600,
		})

		ses, resolveErr := ResolveCallback(url.Values{"token": {token}}, now)
		require.NoError(t, resolveErr)
		require.NotNil(t, ses)
		assert.Equal(t, "jdoe", ses.Username)
		assert.Equal(t, "jdoe@example.com", ses.Email)
		assert.Equal(t, "microsoft", ses.Provider)
		assert.Equal(t, token, ses.Token)
	})

	t.Run("absent provider defaults to federated", func(t *testing.T) {
		token := buildToken(t, map[string]any{
			"username": "jdoe",
			"email":    "jdoe@example.com",
		})

		ses, resolveErr := ResolveCallback(url.Values{"token": {token}}, now)
		require.NoError(t, resolveErr)
		assert.Equal(t, DefaultProvider, ses.Provider)
	})
}
