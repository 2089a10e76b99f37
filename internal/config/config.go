// Package config loads application settings from files, the environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/easy-style/internal/common"
)

// EnvPrefix namespaces environment overrides, e.g. EASYSTYLE_SERVER_ADDR.
const EnvPrefix = "EASYSTYLE"

// DefaultDatabasePath is where the SQLite database lives unless configured.
const DefaultDatabasePath = "$HOME/.local/share/easystyle/easystyle.db"

// Config is the full application configuration.
type Config struct {
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Shopping ShoppingConfig `mapstructure:"shopping"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Share    ShareConfig    `mapstructure:"share"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// GeminiConfig configures the AI gateway.
type GeminiConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	TextModel  string        `mapstructure:"text_model"`
	ImageModel string        `mapstructure:"image_model"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RateLimit  int           `mapstructure:"rate_limit"`
}

// ShoppingConfig configures the mock product lookup.
type ShoppingConfig struct {
	MinLatency time.Duration `mapstructure:"min_latency"`
	MaxLatency time.Duration `mapstructure:"max_latency"`
	Seed       uint64        `mapstructure:"seed"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	Environment    string   `mapstructure:"environment"`
	JWTSecret      string   `mapstructure:"jwt_secret"`
	AdminEmail     string   `mapstructure:"admin_email"`
	AdminPassword  string   `mapstructure:"admin_password"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RateLimitPerIP float64  `mapstructure:"rate_limit_per_ip"`
	RateBurst      int      `mapstructure:"rate_burst"`
	MaxUploadMB    int64    `mapstructure:"max_upload_mb"`
}

// ShareConfig configures image sharing. Sharing is off when Bucket is empty.
type ShareConfig struct {
	Bucket     string        `mapstructure:"bucket"`
	Region     string        `mapstructure:"region"`
	Endpoint   string        `mapstructure:"endpoint"`
	PresignTTL time.Duration `mapstructure:"presign_ttl"`
}

// NotifyConfig configures email notifications. They are off when the key is empty.
type NotifyConfig struct {
	SendGridAPIKey string `mapstructure:"sendgrid_api_key"`
	FromEmail      string `mapstructure:"from_email"`
	FromName       string `mapstructure:"from_name"`
}

// LoggingConfig selects the log level and format.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	// Keys without a meaningful default are still registered so env overrides reach Unmarshal.
	for _, key := range []string{
		"gemini.api_key", "server.jwt_secret", "server.admin_password",
		"share.bucket", "share.region", "share.endpoint",
		"notify.sendgrid_api_key", "notify.from_email",
	} {
		v.SetDefault(key, "")
	}
	v.SetDefault("shopping.seed", 0)

	v.SetDefault("gemini.text_model", "gemini-2.5-flash")
	v.SetDefault("gemini.image_model", "gemini-2.5-flash-image-preview")
	v.SetDefault("gemini.timeout", 2*time.Minute)
	v.SetDefault("gemini.rate_limit", 60)

	v.SetDefault("shopping.min_latency", 300*time.Millisecond)
	v.SetDefault("shopping.max_latency", 700*time.Millisecond)

	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.admin_email", "admin@easystyle.com")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit_per_ip", 2.0)
	v.SetDefault("server.rate_burst", 10)
	v.SetDefault("server.max_upload_mb", 10)

	v.SetDefault("share.presign_ttl", 7*24*time.Hour)

	v.SetDefault("notify.from_name", "EasyStyle")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Prepare wires defaults and environment handling into v and reads the config file, if any.
// When file is empty the standard search paths are used.
func Prepare(v *viper.Viper, file string) error {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/easystyle")
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = firstEnv("GEMINI_API_KEY", "API_KEY")
	}
	cfg.Database.Path = ExpandPath(cfg.Database.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that do not depend on which command runs.
func (c *Config) Validate() error {
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.Logging.Format)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	if c.Shopping.MinLatency < 0 || c.Shopping.MaxLatency < c.Shopping.MinLatency {
		return fmt.Errorf("%w: shopping latency range %s-%s", common.ErrInvalidConfig, c.Shopping.MinLatency, c.Shopping.MaxLatency)
	}
	if c.Gemini.RateLimit < 0 {
		return fmt.Errorf("%w: gemini.rate_limit must not be negative", common.ErrInvalidConfig)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("%w: server.max_upload_mb must be positive", common.ErrInvalidConfig)
	}
	return nil
}

// ValidateServer checks the settings the HTTP API requires.
func (c *Config) ValidateServer() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("%w: gemini.api_key", common.ErrMissingConfig)
	}
	if c.Server.JWTSecret == "" {
		return fmt.Errorf("%w: server.jwt_secret", common.ErrMissingConfig)
	}
	if c.Server.RateLimitPerIP <= 0 {
		return fmt.Errorf("%w: server.rate_limit_per_ip must be positive", common.ErrInvalidConfig)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
