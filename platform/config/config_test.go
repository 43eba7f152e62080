package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/properties")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.GetAccessTokenTTL())
	assert.Equal(t, 12, cfg.GetBcryptCost())
	assert.Equal(t, 10*time.Second, cfg.GetUploadTimeout())
	assert.Equal(t, "property-images", cfg.GetMinIOBucket())
	assert.False(t, cfg.IsMinIOEnabled())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.GetCORSOrigins())
}

func TestLoadRequiresSigningKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/properties")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRejectsInvalidTTLAndCost(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_TTL", "soon")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_ACCESS_TTL", "10m")
	t.Setenv("BCRYPT_COST", "99")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestLoadWildcardCORSAllowsAll(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ORIGINS", "https://a.example.com, *")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.GetCORSAllowAll())
	assert.Equal(t, []string{"https://a.example.com", "*"}, cfg.GetCORSOrigins())
}

func TestLoadMinIORequiresCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "")
	t.Setenv("MINIO_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("MINIO_ACCESS_KEY", "minio")
	t.Setenv("MINIO_SECRET_KEY", "minio123")
	t.Setenv("MINIO_PUBLIC_BASE_URL", "https://cdn.example.com/")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsMinIOEnabled())
	assert.Equal(t, "https://cdn.example.com", cfg.GetMinIOPublicBaseURL())
}
