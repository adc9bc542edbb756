// Package config layers defaults, an optional YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	OIDC     OIDCConfig     `yaml:"oidc"`
	Log      LogConfig      `yaml:"log"`
	Timezone string         `yaml:"timezone"`
	WebUIURL string         `yaml:"web_ui_url"`

	loc *time.Location
}

type ServerConfig struct {
	Port     string `yaml:"port"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// DatabaseConfig picks the relational backend. Path is used by sqlite, DSN by postgres.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"`
	TokenTTL        time.Duration `yaml:"token_ttl"`
	VerifyPasswords bool          `yaml:"verify_passwords"`
	TokenStorePath  string        `yaml:"token_store_path"`
}

// OIDCConfig is optional; single sign-on is enabled when IssuerURL is set.
type OIDCConfig struct {
	IssuerURL    string `yaml:"issuer_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
	LogoutURL    string `yaml:"logout_url"`
}

func (o OIDCConfig) Enabled() bool { return o.IssuerURL != "" }

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Defaults returns the configuration used when nothing else is supplied.
func Defaults() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Driver: "sqlite", Path: "data/crm.db"},
		Auth:     AuthConfig{TokenTTL: 72 * time.Hour, VerifyPasswords: true},
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Timezone: "Local",
	}
}

// Load builds the configuration. configFile may be empty, in which case the
// well-known locations are tried and silently skipped when missing.
func Load(configFile string) (*Config, error) {
	c := Defaults()

	paths := []string{"etc/sales-crm.yaml", "/etc/sales-crm/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if configFile != "" {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			continue
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		break
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	envOverride(&c.Server.Port, "API_PORT")
	envOverride(&c.Server.CertFile, "CERT_FILE_PATH")
	envOverride(&c.Server.KeyFile, "KEY_FILE_PATH")
	envOverride(&c.Database.Driver, "DB_DRIVER")
	envOverride(&c.Database.Path, "DB_PATH")
	envOverride(&c.Database.DSN, "DB_DSN")
	envOverride(&c.Auth.JWTSecret, "JWT_TOKEN")
	envOverride(&c.Auth.TokenStorePath, "DATA_STORAGE_PATH")
	envOverrideBool(&c.Auth.VerifyPasswords, "VERIFY_PASSWORDS")
	envOverrideDuration(&c.Auth.TokenTTL, "TOKEN_TTL")
	envOverride(&c.OIDC.IssuerURL, "OIDC_ISSUER_URL")
	envOverride(&c.OIDC.ClientID, "OIDC_CLIENT_ID")
	envOverride(&c.OIDC.ClientSecret, "OIDC_CLIENT_SECRET")
	envOverride(&c.OIDC.RedirectURI, "OIDC_REDIRECT_URI")
	envOverride(&c.OIDC.LogoutURL, "OIDC_LOGOUT_URL")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverride(&c.Timezone, "TIMEZONE")
	envOverride(&c.WebUIURL, "WEB_UI_BASE_URL")

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks required settings and resolves the timezone.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret (JWT_TOKEN) is required")
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("config: database.path is required for sqlite")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return errors.New("config: database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("config: auth.token_ttl must be positive")
	}
	if c.OIDC.Enabled() && (c.OIDC.ClientID == "" || c.OIDC.RedirectURI == "") {
		return errors.New("config: oidc.client_id and oidc.redirect_uri are required when oidc.issuer_url is set")
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	c.loc = loc
	return nil
}

// Location is the calendar used for every date-granular rule.
func (c *Config) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// TLSEnabled reports whether both certificate and key are configured.
func (c *Config) TLSEnabled() bool {
	return c.Server.CertFile != "" && c.Server.KeyFile != ""
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envOverrideDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
