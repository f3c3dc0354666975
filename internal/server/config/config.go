// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/cryptox"
	"github.com/dmitrijs2005/hotelbook/internal/logging"
)

// ErrMissingSecret is returned by Validate when no signing secret is configured.
var ErrMissingSecret = errors.New("secret key is not configured (set JWT_SECRET, -s or secret_key)")

// Config holds runtime settings for the hotelbook auth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - EndpointAddrGRPC: bind address for the gRPC API; empty disables it.
//   - DatabaseDSN: PostgreSQL DSN (pgx); empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing tokens (HS256). Required.
//   - TokenValidityDuration: lifetime of issued tokens.
//   - PasswordHashAlgorithm / PasswordHashCost: password hasher selection.
//   - CORSAllowedOrigins: browser origins allowed to call the API.
//   - LogBackend: "slog" or "zap".
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddrHTTP      string
	EndpointAddrGRPC      string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	PasswordHashAlgorithm string
	PasswordHashCost      int
	CORSAllowedOrigins    []string
	LogBackend            string
	ShutdownTimeout       time.Duration
}

// LoadDefaults populates Config with development defaults.
// SecretKey is deliberately left empty.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3000"
	c.EndpointAddrGRPC = ""
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.TokenValidityDuration = 30 * 24 * time.Hour
	c.PasswordHashAlgorithm = cryptox.AlgorithmBcrypt
	c.PasswordHashCost = 10
	c.CORSAllowedOrigins = []string{"http://localhost:5173"}
	c.LogBackend = logging.BackendSlog
	c.ShutdownTimeout = 15 * time.Second
}

// Validate reports configuration that the server cannot start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrMissingSecret
	}
	if c.EndpointAddrHTTP == "" {
		return errors.New("http endpoint address is empty")
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("token validity must be positive, got %s", c.TokenValidityDuration)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	if _, err := cryptox.NewPasswordHasher(c.PasswordHashAlgorithm, c.PasswordHashCost); err != nil {
		return err
	}
	switch c.LogBackend {
	case logging.BackendSlog, logging.BackendZap:
	default:
		return fmt.Errorf("unknown log backend %q", c.LogBackend)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
