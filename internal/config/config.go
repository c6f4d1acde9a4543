// Package config defines the service configuration and its layered loader.
package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone lookups work without system tzdata

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/auth"
)

// Store backends.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// GRPCAddr is the gRPC listen address, e.g. ":50051".
	GRPCAddr string `koanf:"grpc_addr"`
	// OpsAddr serves /metrics and /healthz; empty disables it.
	OpsAddr string `koanf:"ops_addr"`

	// Store selects the backend: mongo or memory.
	Store         string `koanf:"store"`
	MongoURI      string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongo_database"`

	// JWTSecret is a single signing secret. JWTKeys ("kid:secret,...")
	// enables rotation and takes precedence; JWTActiveKid picks the signer.
	JWTSecret    string        `koanf:"jwt_secret"`
	JWTKeys      string        `koanf:"jwt_keys"`
	JWTActiveKid string        `koanf:"jwt_active_kid"`
	TokenTTL     time.Duration `koanf:"token_ttl"`

	// RateLimitRPM and RateLimitBurst bound Register/Login per account.
	RateLimitRPM   int `koanf:"rate_limit_rpm"`
	RateLimitBurst int `koanf:"rate_limit_burst"`

	TLSCert    string `koanf:"tls_cert"`
	TLSKey     string `koanf:"tls_key"`
	RequireTLS bool   `koanf:"require_tls"`

	// Timezone is the IANA zone proposed session dates are read in.
	Timezone string `koanf:"timezone"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		GRPCAddr:       ":50051",
		OpsAddr:        ":9090",
		Store:          StoreMongo,
		MongoURI:       "mongodb://localhost:27017",
		MongoDatabase:  "skillswap",
		TokenTTL:       24 * time.Hour,
		RateLimitRPM:   10,
		RateLimitBurst: 3,
		Timezone:       "UTC",
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks field combinations. Every error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.GRPCAddr) == "" {
		return invalid("grpc_addr must not be empty")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return invalid("log_format must be text or json, got %q", c.LogFormat)
	}
	switch c.Store {
	case StoreMongo:
		if c.MongoURI == "" {
			return invalid("mongo_uri is required when store is mongo")
		}
	case StoreMemory:
	default:
		return invalid("store must be %s or %s, got %q", StoreMongo, StoreMemory, c.Store)
	}
	if _, _, err := c.SigningKeys(); err != nil {
		return err
	}
	if c.TokenTTL <= 0 {
		return invalid("token_ttl must be positive")
	}
	if c.RateLimitRPM <= 0 || c.RateLimitBurst <= 0 {
		return invalid("rate_limit_rpm and rate_limit_burst must be positive")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return invalid("tls_cert and tls_key must be set together")
	}
	if c.RequireTLS && c.TLSCert == "" {
		return invalid("require_tls is set but tls_cert/tls_key are not configured")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// SigningKeys returns the JWT keys and the kid that signs new tokens.
func (c *Config) SigningKeys() (map[string]string, string, error) {
	if c.JWTKeys != "" {
		keys, err := auth.ParseKeys(c.JWTKeys)
		if err != nil {
			return nil, "", invalid("jwt_keys: %v", err)
		}
		if len(keys) == 0 {
			return nil, "", invalid("jwt_keys holds no keys")
		}
		if _, ok := keys[c.JWTActiveKid]; !ok {
			return nil, "", invalid("jwt_active_kid %q is not in jwt_keys", c.JWTActiveKid)
		}
		return keys, c.JWTActiveKid, nil
	}
	if c.JWTSecret == "" {
		return nil, "", invalid("either jwt_secret or jwt_keys must be set")
	}
	return map[string]string{auth.DefaultKid: c.JWTSecret}, auth.DefaultKid, nil
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, invalid("timezone %q: %v", c.Timezone, err)
	}
	return loc, nil
}
