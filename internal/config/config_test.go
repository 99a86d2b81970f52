package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "projecthub", cfg.MongoDB)
	assert.Equal(t, "projecthub-knowledge-base", cfg.MinIOBucket)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessExpiry)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_DB", "projecthub_staging")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "projecthub_staging", cfg.MongoDB)
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
	assert.True(t, cfg.MinIOUseSSL)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTAccessExpiry)
}
