package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is loaded once at startup and handed to every component that needs
// it. Nothing reads the environment after Load returns.
type Config struct {
	Port   int    `mapstructure:"port"`
	AppEnv string `mapstructure:"app_env"`

	DBURL             string        `mapstructure:"db_url"`
	DBMaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	DBAutoMigrate     bool          `mapstructure:"db_auto_migrate"`

	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTExpiresIn time.Duration `mapstructure:"jwt_expires_in"`

	AdminEmail        string `mapstructure:"admin_email"`
	AdminPassword     string `mapstructure:"admin_password"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	CORSOrigins          string        `mapstructure:"cors_origins"`
	SlowRequestThreshold time.Duration `mapstructure:"slow_request_threshold"`
	HealthCheckSchedule  string        `mapstructure:"health_check_schedule"`
}

var defaults = map[string]interface{}{
	"port":                   8080,
	"app_env":                "development",
	"db_url":                 "",
	"db_max_open_conns":      25,
	"db_max_idle_conns":      10,
	"db_conn_max_lifetime":   "5m",
	"db_auto_migrate":        true,
	"jwt_secret":             "",
	"jwt_expires_in":         "24h",
	"admin_email":            "",
	"admin_password":         "",
	"admin_password_hash":    "",
	"log_level":              "info",
	"log_format":             "text",
	"cors_origins":           "*",
	"slow_request_threshold": "200ms",
	"health_check_schedule":  "@every 30s",
}

// Load reads .env, an optional config.toml and the process environment, in
// increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found")
	}

	configName := "config"
	if name := os.Getenv("CONFIG_NAME"); name != "" {
		configName = name
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings the HTTP server and token issuance depend on.
func (c *Config) Validate() error {
	var missing []string
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.AdminEmail == "" {
		missing = append(missing, "ADMIN_EMAIL")
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.JWTExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive, got %s", c.JWTExpiresIn)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AllowedOrigins splits CORS_ORIGINS on commas. A lone "*" allows any origin.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
