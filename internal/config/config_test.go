package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "tacticalgear_test")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("ALLOW_SEED", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")
}

func TestFromEnvDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8001", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.True(t, cfg.AllowSeed)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.StripeEnabled())
}

func TestFromEnvSplitsCORSOrigins(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ORIGINS", "https://shop.example.com, https://admin.example.com,")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestFromEnvRequiresValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing mongo url",
			env:     map[string]string{"MONGO_URL": ""},
			wantErr: "MONGO_URL",
		},
		{
			name:    "missing db name",
			env:     map[string]string{"DB_NAME": ""},
			wantErr: "DB_NAME",
		},
		{
			name:    "production needs jwt secret",
			env:     map[string]string{"GO_ENV": "production"},
			wantErr: "JWT_SECRET",
		},
		{
			name:    "admin email without password",
			env:     map[string]string{"ADMIN_EMAIL": "ops@example.com"},
			wantErr: "ADMIN_PASSWORD",
		},
		{
			name:    "bad seed flag",
			env:     map[string]string{"ALLOW_SEED": "maybe"},
			wantErr: "ALLOW_SEED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProductionDisablesSeedByDefault(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "prod-secret")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.AllowSeed)
	assert.True(t, cfg.IsProduction())
}
