// Package tabconfig loads the TOML configuration file used by the tableau
// daemon (cmd/tableaud).
package tabconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	DefaultListenAddr        = ":8080"
	DefaultUnauthDelayMillis = 1000
	DefaultTokenTTLMinutes   = 60
)

// APIKeyEntry is one provisioned API key as stored on disk: a label and the
// base64-encoded bcrypt hash of its secret. The plaintext secret is never
// written to the config file.
type APIKeyEntry struct {
	Name string `toml:"name"`
	Hash string `toml:"hash"`
}

// Config is the full configuration for a tableau daemon.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `toml:"listen_addr"`

	// DataDir is the directory sqlite history is stored in. If empty, the
	// in-memory store is used instead.
	DataDir string `toml:"data_dir"`

	// JWTSecret signs issued tokens. Must be at least MinSecretSize bytes.
	JWTSecret string `toml:"jwt_secret"`

	// UnauthDelayMillis is additional time to wait before responding to an
	// unauthenticated or unauthorized request, as an anti-flood measure.
	// Set to a negative number to disable.
	UnauthDelayMillis int `toml:"unauth_delay_millis"`

	// TokenTTLMinutes is how long an issued JWT remains valid.
	TokenTTLMinutes int `toml:"token_ttl_minutes"`

	// APIKeys is the set of provisioned API keys (bcrypt hashes only).
	APIKeys []APIKeyEntry `toml:"api_keys"`
}

const (
	MinSecretSize = 32
	MaxSecretSize = 64
)

// Load reads and parses a TOML config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg.FillDefaults(), nil
}

// FillDefaults returns a copy of cfg with unset fields given their defaults.
func (cfg Config) FillDefaults() Config {
	filled := cfg

	if filled.ListenAddr == "" {
		filled.ListenAddr = DefaultListenAddr
	}
	if filled.UnauthDelayMillis == 0 {
		filled.UnauthDelayMillis = DefaultUnauthDelayMillis
	}
	if filled.TokenTTLMinutes == 0 {
		filled.TokenTTLMinutes = DefaultTokenTTLMinutes
	}

	return filled
}

// Validate returns an error if cfg has invalid or missing required fields.
// Call it on the result of FillDefaults, not on a raw parsed Config.
func (cfg Config) Validate() error {
	if len(cfg.JWTSecret) < MinSecretSize {
		return fmt.Errorf("jwt_secret: must be at least %d bytes, but is %d", MinSecretSize, len(cfg.JWTSecret))
	}
	if len(cfg.JWTSecret) > MaxSecretSize {
		return fmt.Errorf("jwt_secret: must be no more than %d bytes, but is %d", MaxSecretSize, len(cfg.JWTSecret))
	}
	if len(cfg.APIKeys) == 0 {
		return fmt.Errorf("api_keys: at least one API key must be provisioned")
	}
	return nil
}
