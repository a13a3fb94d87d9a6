package config

import (
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[Database]
Addr = "db:5432"
User = "portal"
Password = "s3cret"
Database = "municipal_portal"
PoolSize = 10

[App]
Port = 8080

[Auth]
JWTSecret = "change-me"
SessionTTL = "12h"

[Storage]
Driver = "s3"
Bucket = "portal-media"
Endpoint = "http://minio:9000"
UsePathStyle = true

[Cache]
TTL = "30s"
`

func TestDecodeAndNormalize(t *testing.T) {
	var cfg Config
	_, err := toml.Decode(sample, &cfg)
	require.NoError(t, err)
	require.NoError(t, cfg.Normalize())

	assert.Equal(t, "db:5432", cfg.Database.Addr)
	assert.Equal(t, 10, cfg.Database.PoolSize)
	assert.Equal(t, 3, cfg.Database.MaxRetries)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "portal_session", cfg.Auth.CookieName)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.True(t, cfg.Storage.UsePathStyle)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "postgres://portal:s3cret@db:5432/municipal_portal?sslmode=disable", cfg.DatabaseURL())
}

func TestNormalize(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := Config{}
		cfg.Auth.JWTSecret = "x"
		require.NoError(t, cfg.Normalize())

		assert.Equal(t, 3000, cfg.App.Port)
		assert.Equal(t, StorageMemory, cfg.Storage.Driver)
		assert.Equal(t, "http://localhost:3000/files", cfg.Storage.PublicURL)
		assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
		assert.Equal(t, time.Minute, cfg.Cache.TTL)
	})

	t.Run("CacheDisabled", func(t *testing.T) {
		cfg := Config{}
		cfg.Auth.JWTSecret = "x"
		cfg.Cache.TTL = 30 * time.Second
		cfg.Cache.Disabled = true
		require.NoError(t, cfg.Normalize())
		assert.Zero(t, cfg.Cache.TTL)

		cfg = Config{}
		cfg.Auth.JWTSecret = "x"
		cfg.Cache.TTL = -time.Second
		assert.Error(t, cfg.Normalize())
	})

	t.Run("MissingSecret", func(t *testing.T) {
		cfg := Config{}
		assert.Error(t, cfg.Normalize())
	})

	t.Run("S3WithoutBucket", func(t *testing.T) {
		cfg := Config{}
		cfg.Auth.JWTSecret = "x"
		cfg.Storage.Driver = StorageS3
		assert.Error(t, cfg.Normalize())
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		cfg := Config{}
		cfg.Auth.JWTSecret = "x"
		cfg.Storage.Driver = "ftp"
		assert.Error(t, cfg.Normalize())
	})

	t.Run("HostWithoutPort", func(t *testing.T) {
		cfg := Config{}
		cfg.Auth.JWTSecret = "x"
		cfg.Database.Addr = "db"
		require.NoError(t, cfg.Normalize())
		assert.Contains(t, cfg.DatabaseURL(), "@db:5432/")
	})
}
