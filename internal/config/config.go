// Package config loads server settings from a TOML file with per-environment
// sections, then applies environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds the server settings for one environment.
type Config struct {
	Environment string `toml:"-"`
	Addr        string `toml:"addr"`
	DatabaseURL string `toml:"database_url"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	// http
	AllowedOrigins []string `toml:"allowed_origins"`
	// ForwardAuth trusts the Remote-User header from a reverse proxy.
	ForwardAuth bool   `toml:"forward_auth"`
	WebDir      string `toml:"web_dir"`
	// sessions
	SessionPurgeSchedule string `toml:"session_purge_schedule"`
	// oidc
	OIDCIssuer       string `toml:"oidc_issuer"`
	OIDCClientID     string `toml:"oidc_client_id"`
	OIDCClientSecret string `toml:"-"`
	OIDCRedirectURL  string `toml:"oidc_redirect_url"`
}

// SSOEnabled reports whether all OIDC settings are present.
func (c *Config) SSOEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != "" && c.OIDCClientSecret != "" && c.OIDCRedirectURL != ""
}

// Toml is the layout of config.toml, one section per environment.
type Toml struct {
	Development *Config
	Production  *Config
}

// Get returns the section for env, accepting both short and long names.
func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Addr:                 ":8080",
		LogLevel:             "info",
		LogToStdout:          true,
		AllowedOrigins:       []string{"http://localhost:4200"},
		SessionPurgeSchedule: "@hourly",
	}
}

// Load reads the section for env from the TOML file at path, then applies
// overrides from a .env file and the process environment. A missing file
// yields Default.
func Load(env, path string) (*Config, error) {
	// Variables already set in the environment win over .env.
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		var t Toml
		_, err := toml.DecodeFile(path, &t)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("decode %s: %w", path, err)
		default:
			section, err := t.Get(env)
			if err != nil {
				return nil, err
			}
			if section == nil {
				return nil, fmt.Errorf("config %s has no [%s] section", path, env)
			}
			mergeInto(cfg, section)
		}
	}
	cfg.Environment = strings.ToLower(env)

	applyEnv(cfg)
	return cfg, nil
}

func mergeInto(dst, src *Config) {
	if src.Addr != "" {
		dst.Addr = src.Addr
	}
	if src.DatabaseURL != "" {
		dst.DatabaseURL = src.DatabaseURL
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	dst.LogsPath = src.LogsPath
	dst.LogToStdout = src.LogToStdout
	dst.LogFormatJSON = src.LogFormatJSON
	if len(src.AllowedOrigins) > 0 {
		dst.AllowedOrigins = src.AllowedOrigins
	}
	dst.ForwardAuth = src.ForwardAuth
	dst.WebDir = src.WebDir
	if src.SessionPurgeSchedule != "" {
		dst.SessionPurgeSchedule = src.SessionPurgeSchedule
	}
	dst.OIDCIssuer = src.OIDCIssuer
	dst.OIDCClientID = src.OIDCClientID
	dst.OIDCRedirectURL = src.OIDCRedirectURL
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("WEB_DIR"); v != "" {
		cfg.WebDir = v
	}
	if v := os.Getenv("FORWARD_AUTH"); v != "" {
		cfg.ForwardAuth = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("OIDC_ISSUER"); v != "" {
		cfg.OIDCIssuer = v
	}
	if v := os.Getenv("OIDC_CLIENT_ID"); v != "" {
		cfg.OIDCClientID = v
	}
	if v := os.Getenv("OIDC_REDIRECT_URL"); v != "" {
		cfg.OIDCRedirectURL = v
	}
	// secrets only come from the environment
	cfg.OIDCClientSecret = os.Getenv("OIDC_CLIENT_SECRET")
}
