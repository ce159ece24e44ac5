package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                   string   `mapstructure:"PORT"`
	Env                    string   `mapstructure:"ENV"`
	DatabaseURL            string   `mapstructure:"DATABASE_URL"`
	DBMaxConns             int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns             int32    `mapstructure:"DB_MIN_CONNS"`
	JWTSecret              string   `mapstructure:"JWT_SECRET"`
	AuthIssuer             string   `mapstructure:"AUTH_ISSUER"`
	AuthAudience           string   `mapstructure:"AUTH_AUDIENCE"`
	CORSOrigins            []string `mapstructure:"CORS_ORIGINS"`
	NotificationMaxAgeDays int      `mapstructure:"NOTIFICATION_MAX_AGE_DAYS"`
	NotificationSweepMins  int      `mapstructure:"NOTIFICATION_SWEEP_MINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("NOTIFICATION_MAX_AGE_DAYS", 30)
	v.SetDefault("NOTIFICATION_SWEEP_MINS", 60)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("AUTH_ISSUER")
	v.BindEnv("AUTH_AUDIENCE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("NOTIFICATION_MAX_AGE_DAYS")
	v.BindEnv("NOTIFICATION_SWEEP_MINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Outside development
// a JWT secret must be configured so real authentication is enforced.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV is not development")
	}
	if c.NotificationMaxAgeDays < 1 {
		return fmt.Errorf("NOTIFICATION_MAX_AGE_DAYS must be at least 1")
	}
	if c.NotificationSweepMins < 1 {
		return fmt.Errorf("NOTIFICATION_SWEEP_MINS must be at least 1")
	}
	return nil
}
