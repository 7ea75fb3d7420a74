// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. PROFILER_SQLITE_PATH.
const EnvPrefix = "PROFILER"

// Config represents the settings shared by every command. Values come from
// an optional YAML/JSON file, the environment and bound command-line flags.
type Config struct {
	// Lookup table overrides
	SectionHeaders string `mapstructure:"section_headers"` // Path to a section header synonym table
	Skills         string `mapstructure:"skills"`          // Path to a skill taxonomy table
	Template       string `mapstructure:"template"`        // Path to LaTeX template

	// Storage
	DatabaseURL string `mapstructure:"database_url"` // PostgreSQL connection URL
	SQLitePath  string `mapstructure:"sqlite_path"`  // Local SQLite history database

	// Behavior
	UseBrowser     bool  `mapstructure:"use_browser"`      // Render URL imports in a headless browser when needed
	Concurrency    int   `mapstructure:"concurrency"`      // Parallel documents in batch mode
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"` // Upload size ceiling

	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout_seconds"`
	WriteTimeout   int      `mapstructure:"write_timeout_seconds"`
	IdleTimeout    int      `mapstructure:"idle_timeout_seconds"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// AllowPrivateURLs lets URL imports reach loopback, private and
	// link-local hosts.
	AllowPrivateURLs bool `mapstructure:"allow_private_urls"`
}

// AuthConfig holds the raw token and password settings. Use JWT() and
// Password() to obtain validated configurations.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
	BcryptCost         int    `mapstructure:"bcrypt_cost"`
	PasswordPepper     string `mapstructure:"password_pepper"`
}

// RateLimitConfig holds the request limiter settings.
type RateLimitConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	DefaultLimit    int      `mapstructure:"default_limit"`
	DefaultWindow   int      `mapstructure:"default_window_seconds"`
	CleanupInterval int      `mapstructure:"cleanup_interval_seconds"`
	Whitelist       []string `mapstructure:"whitelist"`
	Blacklist       []string `mapstructure:"blacklist"`
}

// LogConfig selects the log encoder and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// envBindings maps config keys onto the unprefixed variable names that
// deployments already use.
var envBindings = map[string]string{
	"database_url":                        "DATABASE_URL",
	"auth.jwt_secret":                     "JWT_SECRET",
	"auth.jwt_expiration_hours":           "JWT_EXPIRATION_HOURS",
	"auth.bcrypt_cost":                    "BCRYPT_COST",
	"auth.password_pepper":                "PASSWORD_PEPPER",
	"rate_limit.enabled":                  "RATE_LIMIT_ENABLED",
	"rate_limit.default_limit":            "RATE_LIMIT_DEFAULT",
	"rate_limit.default_window_seconds":   "RATE_LIMIT_WINDOW_SECONDS",
	"rate_limit.cleanup_interval_seconds": "RATE_LIMIT_CLEANUP_INTERVAL",
	"rate_limit.whitelist":                "RATE_LIMIT_WHITELIST",
	"rate_limit.blacklist":                "RATE_LIMIT_BLACKLIST",
}

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Concurrency:    4,
		MaxUploadBytes: 5 << 20,
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    30,
			WriteTimeout:   60,
			IdleTimeout:    120,
			AllowedOrigins: []string{"*"},
		},
		Auth: AuthConfig{
			JWTExpirationHours: 24,
			BcryptCost:         12,
		},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			DefaultLimit:    100,
			DefaultWindow:   60,
			CleanupInterval: 300,
		},
	}
}

// SetDefaults registers Defaults() on v so that environment variables for
// keys absent from the config file are still picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("section_headers", d.SectionHeaders)
	v.SetDefault("skills", d.Skills)
	v.SetDefault("template", d.Template)
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("sqlite_path", d.SQLitePath)
	v.SetDefault("use_browser", d.UseBrowser)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("max_upload_bytes", d.MaxUploadBytes)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout_seconds", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout_seconds", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout_seconds", d.Server.IdleTimeout)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("server.allow_private_urls", d.Server.AllowPrivateURLs)
	v.SetDefault("auth.jwt_secret", d.Auth.JWTSecret)
	v.SetDefault("auth.jwt_expiration_hours", d.Auth.JWTExpirationHours)
	v.SetDefault("auth.bcrypt_cost", d.Auth.BcryptCost)
	v.SetDefault("auth.password_pepper", d.Auth.PasswordPepper)
	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.default_limit", d.RateLimit.DefaultLimit)
	v.SetDefault("rate_limit.default_window_seconds", d.RateLimit.DefaultWindow)
	v.SetDefault("rate_limit.cleanup_interval_seconds", d.RateLimit.CleanupInterval)
	v.SetDefault("rate_limit.whitelist", d.RateLimit.Whitelist)
	v.SetDefault("rate_limit.blacklist", d.RateLimit.Blacklist)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
}

// Load reads configuration into a Config. An empty path skips the file and
// uses defaults plus the environment. Flags must already be bound on v.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Explicit names disable the prefix, so the prefixed form is listed too.
	for key, env := range envBindings {
		prefixed := EnvPrefix + "_" + strings.ToUpper(envKeyReplacer.Replace(key))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("binding %s environment variable: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those depend on the
// command being run.
func (c *Config) Validate() error {
	if c.DatabaseURL != "" && c.SQLitePath != "" {
		return fmt.Errorf("config error: 'database_url' and 'sqlite_path' are mutually exclusive")
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port)
	}
	if c.RateLimit.DefaultLimit < 0 || c.RateLimit.DefaultWindow < 0 {
		return fmt.Errorf("config error: rate limit values must be non-negative")
	}

	files := []struct{ key, path string }{
		{"template", c.Template},
		{"section headers", c.SectionHeaders},
		{"skills", c.Skills},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if _, err := os.Stat(f.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", f.key, f.path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. It is used to layer a config file underneath explicit flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.SectionHeaders == "" {
		result.SectionHeaders = defaults.SectionHeaders
	}
	if result.Skills == "" {
		result.Skills = defaults.Skills
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.DatabaseURL == "" && result.SQLitePath == "" {
		result.DatabaseURL = defaults.DatabaseURL
		result.SQLitePath = defaults.SQLitePath
	}

	// Numeric fields: use default if zero
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if len(result.Server.AllowedOrigins) == 0 {
		result.Server.AllowedOrigins = defaults.Server.AllowedOrigins
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
