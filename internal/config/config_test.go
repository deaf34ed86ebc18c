package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("SESSION_SECRET", "s3cret")

	cfg, err := load(v)

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.Development())
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, BackendNone, cfg.Store.Backend)
	assert.Equal(t, 10*time.Second, cfg.Store.APITimeout)
	assert.Equal(t, time.Hour, cfg.Bills.DraftTTL)
	assert.EqualValues(t, 10<<20, cfg.Bills.UploadMaxBytes)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
}

func TestLoad_UnsetEnvironmentRequiresSecret(t *testing.T) {
	_, err := load(viper.New())

	assert.ErrorContains(t, err, "SESSION_SECRET")
}

func TestLoad_DevelopmentSecret(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "Development")

	cfg, err := load(v)

	require.NoError(t, err)
	assert.True(t, cfg.Development())
	assert.NotEmpty(t, cfg.Session.Secret)
}

func TestLoad_Backends(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr string
	}{
		{
			name:   "api",
			values: map[string]any{"STORE_BACKEND": "API", "API_URL": "http://api"},
		},
		{
			name:   "sqlite",
			values: map[string]any{"STORE_BACKEND": "sqlite"},
		},
		{
			name:    "firestore without project",
			values:  map[string]any{"STORE_BACKEND": "firestore", "GCS_BUCKET": "b"},
			wantErr: "FIRESTORE_PROJECT",
		},
		{
			name:    "unknown",
			values:  map[string]any{"STORE_BACKEND": "mongo"},
			wantErr: "unknown STORE_BACKEND",
		},
		{
			name:    "bad port",
			values:  map[string]any{"HTTP_PORT": 70000},
			wantErr: "HTTP_PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set("SESSION_SECRET", "s3cret")
			for k, val := range tt.values {
				v.Set(k, val)
			}

			cfg, err := load(v)

			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, cfg.Store.Backend)
		})
	}
}
