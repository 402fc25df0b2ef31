package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jcepedarey/emmita-backend/app/config"
)

func TestConfig_Load(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		wantErr  bool
		validate func(*testing.T, *config.Config)
	}{
		{
			name: "default configuration",
			envVars: map[string]string{
				"DATABASE_URL":      "postgres://emmita:secret@db:5432/emmita?sslmode=disable",
				"KRATOS_PUBLIC_URL": "http://kratos-public:4433",
				"KRATOS_ADMIN_URL":  "http://kratos-admin:4434",
			},
			validate: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "3001", cfg.Port)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, config.VerifierKratos, cfg.IdentityVerifier)
				assert.Equal(t, 20, cfg.MinCredentialLength)
				assert.Equal(t, 5*time.Second, cfg.CollaboratorTimeout)
				assert.Equal(t, 14, cfg.TrialPeriodDays)
				assert.Equal(t, 10, cfg.DatabaseMaxConns)
				assert.Equal(t, 5*time.Minute, cfg.DatabaseIdleTime)
				assert.Equal(t, time.Duration(0), cfg.IdentityCacheTTL)
				assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
				assert.Len(t, cfg.CORSAllowedOrigins, 3)
				assert.True(t, cfg.EnableMetrics)
				assert.False(t, cfg.OTelEnabled)
				assert.Equal(t, "postgres://emmita:secret@db:5432/emmita?sslmode=disable", cfg.DatabaseDSN())
			},
		},
		{
			name: "custom configuration",
			envVars: map[string]string{
				"PORT":                       "8080",
				"LOG_LEVEL":                  "debug",
				"DB_PASSWORD":                "p@ss",
				"DB_HOST":                    "pg",
				"DB_NAME":                    "tenants",
				"DB_SSL_MODE":                "disable",
				"IDENTITY_VERIFIER":          "jwt",
				"JWT_SECRET":                 "0123456789abcdef0123456789abcdef",
				"KRATOS_ADMIN_URL":           "http://kratos-admin:4434",
				"AUTH_MIN_CREDENTIAL_LENGTH": "32",
				"AUTH_COLLABORATOR_TIMEOUT":  "2s",
				"IDENTITY_CACHE_TTL":         "30s",
				"CORS_ALLOWED_ORIGINS":       "http://localhost:5173, https://app.example.com",
				"SMTP_HOST":                  "smtp.example.com",
				"SIGNUP_NOTIFY_TO":           "ops@example.com,owner@example.com",
				"ENABLE_METRICS":             "false",
			},
			validate: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "8080", cfg.Port)
				assert.Equal(t, config.VerifierJWT, cfg.IdentityVerifier)
				assert.Equal(t, 32, cfg.MinCredentialLength)
				assert.Equal(t, 2*time.Second, cfg.CollaboratorTimeout)
				assert.Equal(t, 30*time.Second, cfg.IdentityCacheTTL)
				assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.CORSAllowedOrigins)
				assert.Equal(t, []string{"ops@example.com", "owner@example.com"}, cfg.SignupNotifyTo)
				assert.False(t, cfg.EnableMetrics)
				assert.Equal(t, "postgres://emmita:p%40ss@pg:5432/tenants?sslmode=disable", cfg.DatabaseDSN())
			},
		},
		{
			name: "missing database settings",
			envVars: map[string]string{
				"KRATOS_PUBLIC_URL": "http://kratos-public:4433",
				"KRATOS_ADMIN_URL":  "http://kratos-admin:4434",
			},
			wantErr: true,
		},
		{
			name: "jwt verifier without secret",
			envVars: map[string]string{
				"DATABASE_URL":      "postgres://emmita:secret@db:5432/emmita",
				"IDENTITY_VERIFIER": "jwt",
				"KRATOS_ADMIN_URL":  "http://kratos-admin:4434",
			},
			wantErr: true,
		},
		{
			name: "malformed timeout",
			envVars: map[string]string{
				"DATABASE_URL":              "postgres://emmita:secret@db:5432/emmita",
				"KRATOS_PUBLIC_URL":         "http://kratos-public:4433",
				"KRATOS_ADMIN_URL":          "http://kratos-admin:4434",
				"AUTH_COLLABORATOR_TIMEOUT": "soon",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"DATABASE_URL", "DB_PASSWORD", "KRATOS_PUBLIC_URL", "KRATOS_ADMIN_URL", "IDENTITY_VERIFIER", "JWT_SECRET"} {
				t.Setenv(key, "")
			}
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			got, err := config.Load()

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			tt.validate(t, got)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			Port:                "3001",
			LogLevel:            "info",
			DatabaseURL:         "postgres://emmita:secret@db:5432/emmita",
			DatabaseMaxConns:    10,
			IdentityVerifier:    config.VerifierKratos,
			KratosPublicURL:     "http://kratos-public:4433",
			KratosAdminURL:      "http://kratos-admin:4434",
			MinCredentialLength: 20,
			CollaboratorTimeout: 5 * time.Second,
			TrialPeriodDays:     14,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "valid configuration", mutate: func(c *config.Config) {}},
		{name: "invalid port", mutate: func(c *config.Config) { c.Port = "invalid_port" }, wantErr: true},
		{name: "port out of range", mutate: func(c *config.Config) { c.Port = "70000" }, wantErr: true},
		{name: "invalid log level", mutate: func(c *config.Config) { c.LogLevel = "verbose" }, wantErr: true},
		{name: "empty connection pool", mutate: func(c *config.Config) { c.DatabaseMaxConns = 0 }, wantErr: true},
		{name: "unknown verifier", mutate: func(c *config.Config) { c.IdentityVerifier = "ldap" }, wantErr: true},
		{name: "invalid admin URL", mutate: func(c *config.Config) { c.KratosAdminURL = "kratos-admin" }, wantErr: true},
		{name: "zero credential length", mutate: func(c *config.Config) { c.MinCredentialLength = 0 }, wantErr: true},
		{name: "tiny timeout", mutate: func(c *config.Config) { c.CollaboratorTimeout = time.Millisecond }, wantErr: true},
		{name: "zero trial period", mutate: func(c *config.Config) { c.TrialPeriodDays = 0 }, wantErr: true},
		{name: "smtp without recipients", mutate: func(c *config.Config) { c.SMTPHost = "smtp.example.com" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_SecretFromFile(t *testing.T) {
	dir := t.TempDir()
	secretPath := filepath.Join(dir, "db_password")
	require.NoError(t, os.WriteFile(secretPath, []byte("from-file\n"), 0o600))

	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_PASSWORD_FILE", secretPath)
	t.Setenv("KRATOS_PUBLIC_URL", "http://kratos-public:4433")
	t.Setenv("KRATOS_ADMIN_URL", "http://kratos-admin:4434")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.DatabasePassword)
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
