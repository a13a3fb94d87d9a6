package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-pg/pg/v10"
)

const (
	StorageS3     = "s3"
	StorageMemory = "memory"
)

type Config struct {
	Database pg.Options
	App      struct {
		Host            string
		Port            int
		FrontendDir     string
		LogQueries      bool
		ShutdownTimeout time.Duration
	}
	Auth struct {
		JWTSecret    string
		Issuer       string
		SessionTTL   time.Duration
		CookieName   string
		SecureCookie bool
	}
	Storage struct {
		Driver       string
		Endpoint     string
		Region       string
		Bucket       string
		AccessKey    string
		SecretKey    string
		UsePathStyle bool
		PublicURL    string
	}
	Upload struct {
		MaxImageSize    int64
		MaxDocumentSize int64
	}
	Cache struct {
		// TTL of cached public responses, 1m when unset.
		TTL time.Duration
		// Disabled turns the response cache off regardless of TTL.
		Disabled bool
	}
	Sentry struct {
		DSN         string
		Environment string
	}
}

// Normalize fills in defaults and rejects configurations the service cannot start with.
func (c *Config) Normalize() error {
	if c.App.Port == 0 {
		c.App.Port = 3000
	}
	if c.App.FrontendDir == "" {
		c.App.FrontendDir = "./frontend"
	}
	if c.App.ShutdownTimeout == 0 {
		c.App.ShutdownTimeout = 5 * time.Second
	}

	if c.Database.ApplicationName == "" {
		c.Database.ApplicationName = "municipal-portal"
	}
	if c.Database.MaxRetries == 0 {
		c.Database.MaxRetries = 3
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("auth.JWTSecret is required")
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "municipal-portal"
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 24 * time.Hour
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "portal_session"
	}

	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = StorageMemory
	case StorageMemory:
	case StorageS3:
		if c.Storage.Bucket == "" {
			return errors.New("storage.Bucket is required for the s3 driver")
		}
		if c.Storage.Region == "" {
			c.Storage.Region = "us-east-1"
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == StorageMemory && c.Storage.PublicURL == "" {
		c.Storage.PublicURL = fmt.Sprintf("http://localhost:%d/files", c.App.Port)
	}

	switch {
	case c.Cache.Disabled:
		c.Cache.TTL = 0
	case c.Cache.TTL < 0:
		return fmt.Errorf("cache ttl must not be negative, got %s", c.Cache.TTL)
	case c.Cache.TTL == 0:
		c.Cache.TTL = time.Minute
	}
	if c.Sentry.Environment == "" {
		c.Sentry.Environment = "development"
	}

	return nil
}

// DatabaseURL renders the connection options as a postgres URL for the migration driver.
func (c *Config) DatabaseURL() string {
	addr := c.Database.Addr
	if addr == "" {
		addr = "localhost:5432"
	} else if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, strconv.Itoa(5432))
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     addr,
		Path:     "/" + c.Database.Database,
		RawQuery: "sslmode=disable",
	}
	if c.Database.TLSConfig != nil {
		u.RawQuery = "sslmode=require"
	}

	return u.String()
}
