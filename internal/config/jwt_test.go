package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthConfig_JWT(t *testing.T) {
	tests := []struct {
		name          string
		auth          AuthConfig
		expectedHours int
		wantErr       string
	}{
		{
			name:          "default expiration",
			auth:          AuthConfig{JWTSecret: "test-secret-key"},
			expectedHours: 24,
		},
		{
			name:          "custom expiration",
			auth:          AuthConfig{JWTSecret: "test-secret-key", JWTExpirationHours: 48},
			expectedHours: 48,
		},
		{
			name:          "minimum expiration",
			auth:          AuthConfig{JWTSecret: "test-secret-key", JWTExpirationHours: 1},
			expectedHours: 1,
		},
		{
			name:    "missing secret",
			auth:    AuthConfig{JWTExpirationHours: 24},
			wantErr: "JWT_SECRET is required",
		},
		{
			name:    "negative expiration",
			auth:    AuthConfig{JWTSecret: "test-secret-key", JWTExpirationHours: -1},
			wantErr: "at least 1 hour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.auth.JWT()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.auth.JWTSecret, cfg.Secret)
			assert.Equal(t, tt.expectedHours, cfg.ExpirationHours)
		})
	}
}

func TestJWTConfig_Normalize(t *testing.T) {
	assert.NoError(t, (&JWTConfig{Secret: "s", ExpirationHours: 1}).normalize())
	assert.Error(t, (&JWTConfig{Secret: "", ExpirationHours: 1}).normalize())
	assert.Error(t, (&JWTConfig{Secret: "s", ExpirationHours: 0}).normalize())
}
