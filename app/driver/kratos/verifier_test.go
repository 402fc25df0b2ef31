package kratos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jcepedarey/emmita-backend/app/config"
	"github.com/Jcepedarey/emmita-backend/app/domain"
)

const testSessionToken = "ory_st_abcdefghijklmnopqrstuvwxyz"

func sessionBody(active bool) map[string]interface{} {
	return map[string]interface{}{
		"id":         "session-1",
		"active":     active,
		"expires_at": "2030-01-01T00:00:00Z",
		"identity": map[string]interface{}{
			"id":         "identity-1",
			"schema_id":  "default",
			"schema_url": "http://kratos/schemas/default",
			"traits": map[string]interface{}{
				"email": "ana@example.com",
				"name":  "Ana",
			},
		},
	}
}

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *IdentityVerifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.Config{
		KratosPublicURL: server.URL,
		KratosAdminURL:  server.URL,
	}, testLogger(t))
	require.NoError(t, err)

	verifier, err := NewIdentityVerifier(client, testLogger(t))
	require.NoError(t, err)
	return verifier
}

func TestNewIdentityVerifier_RequiresPublicAPI(t *testing.T) {
	client, err := NewClient(&config.Config{KratosAdminURL: "http://kratos-admin:4434"}, testLogger(t))
	require.NoError(t, err)

	verifier, err := NewIdentityVerifier(client, testLogger(t))
	assert.Error(t, err)
	assert.Nil(t, verifier)
}

func TestIdentityVerifier_VerifyCredential(t *testing.T) {
	t.Run("active session", func(t *testing.T) {
		verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/sessions/whoami", r.URL.Path)
			assert.Equal(t, testSessionToken, r.Header.Get("X-Session-Token"))
			writeJSON(t, w, http.StatusOK, sessionBody(true))
		})

		identity, err := verifier.VerifyCredential(context.Background(), testSessionToken)
		require.NoError(t, err)
		assert.Equal(t, "identity-1", identity.ID)
		assert.Equal(t, "ana@example.com", identity.Email)
		assert.Equal(t, "Ana", identity.Claims["name"])
		require.NotNil(t, identity.ExpiresAt)
		assert.True(t, identity.ExpiresAt.Equal(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("inactive session", func(t *testing.T) {
		verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, sessionBody(false))
		})

		_, err := verifier.VerifyCredential(context.Background(), testSessionToken)
		assert.ErrorIs(t, err, domain.ErrCredentialRejected)
	})

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, status, map[string]interface{}{
					"error": map[string]interface{}{"code": status, "message": "no valid session"},
				})
			})

			_, err := verifier.VerifyCredential(context.Background(), testSessionToken)
			assert.ErrorIs(t, err, domain.ErrCredentialRejected)
		})
	}

	t.Run("provider failure", func(t *testing.T) {
		verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusInternalServerError, map[string]interface{}{
				"error": map[string]interface{}{"code": 500, "message": "boom"},
			})
		})

		_, err := verifier.VerifyCredential(context.Background(), testSessionToken)
		assert.ErrorIs(t, err, domain.ErrIdentityProviderUnavailable)
		assert.NotErrorIs(t, err, domain.ErrCredentialRejected)
	})

	t.Run("provider unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		client, err := NewClient(&config.Config{KratosPublicURL: url, KratosAdminURL: url}, testLogger(t))
		require.NoError(t, err)
		verifier, err := NewIdentityVerifier(client, testLogger(t))
		require.NoError(t, err)

		_, err = verifier.VerifyCredential(context.Background(), testSessionToken)
		assert.ErrorIs(t, err, domain.ErrIdentityProviderUnavailable)
	})
}
