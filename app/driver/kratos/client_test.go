package kratos

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jcepedarey/emmita-backend/app/config"
	"github.com/Jcepedarey/emmita-backend/app/utils/logger"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	var buf bytes.Buffer
	l, err := logger.NewWithWriter("debug", &buf)
	require.NoError(t, err)
	return l
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name       string
		config     *config.Config
		wantError  bool
		wantPublic bool
	}{
		{
			name: "public and admin",
			config: &config.Config{
				KratosPublicURL: "http://kratos-public:4433",
				KratosAdminURL:  "http://kratos-admin:4434",
			},
			wantPublic: true,
		},
		{
			name: "admin only",
			config: &config.Config{
				KratosAdminURL: "http://kratos-admin:4434",
			},
		},
		{
			name: "empty admin URL",
			config: &config.Config{
				KratosPublicURL: "http://kratos-public:4433",
			},
			wantError: true,
		},
		{
			name: "invalid public URL",
			config: &config.Config{
				KratosPublicURL: "invalid-url",
				KratosAdminURL:  "http://kratos-admin:4434",
			},
			wantError: true,
		},
		{
			name: "unsupported scheme",
			config: &config.Config{
				KratosAdminURL: "ftp://kratos-admin:4434",
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config, testLogger(t))

			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client.AdminAPI())
			assert.Equal(t, tt.wantPublic, client.PublicAPI() != nil)
		})
	}
}

func TestClient_HealthCheck(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/version", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]string{"version": "v1.3.0"})
	}))
	defer healthy.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	t.Run("all APIs reachable", func(t *testing.T) {
		client, err := NewClient(&config.Config{
			KratosPublicURL: healthy.URL,
			KratosAdminURL:  healthy.URL,
		}, testLogger(t))
		require.NoError(t, err)
		assert.NoError(t, client.HealthCheck(context.Background()))
	})

	t.Run("public API down", func(t *testing.T) {
		client, err := NewClient(&config.Config{
			KratosPublicURL: broken.URL,
			KratosAdminURL:  healthy.URL,
		}, testLogger(t))
		require.NoError(t, err)
		err = client.HealthCheck(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "public")
	})

	t.Run("admin API down", func(t *testing.T) {
		client, err := NewClient(&config.Config{KratosAdminURL: broken.URL}, testLogger(t))
		require.NoError(t, err)
		err = client.HealthCheck(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "admin")
	})
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, isValidURL("http://localhost:4433"))
	assert.True(t, isValidURL("https://kratos.example.com"))
	assert.False(t, isValidURL(""))
	assert.False(t, isValidURL("localhost:4433"))
	assert.False(t, isValidURL("http://"))
}
