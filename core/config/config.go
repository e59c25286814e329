package config

import (
	"fmt"
	"time"

	"toutouchic-api/core/constants"
	"toutouchic-api/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host        string
		Port        int
		FrontendURL string
	}

	AuthConfig struct {
		JWTSecret         string
		AdminPasswordHash string
	}

	SalonConfig struct {
		Timezone  string
		StorePath string
	}

	EmailConfig struct {
		Host       string
		Port       string
		From       string
		OwnerEmail string
	}

	CalendarConfig struct {
		CredentialsJSON string
		CalendarID      string
	}

	Config struct {
		Server   ServerConfig
		Auth     AuthConfig
		Salon    SalonConfig
		Email    EmailConfig
		Calendar CalendarConfig

		location *time.Location
	}
)

// Load reads configuration from the environment (with optional .env file).
// Called once from server startup; the result is threaded explicitly into
// the modules that need it.
func Load() (*Config, error) {
	// Missing .env is fine in production; env vars take precedence anyway.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 5000)
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("SALON_TIMEZONE", constants.DefaultTimezone)
	v.SetDefault("APPOINTMENTS_FILE", "appointments.json")
	v.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	v.SetDefault("EMAIL_FROM", "no-reply@toutouchic.fr")

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("SERVER_HOST"),
			Port:        v.GetInt("SERVER_PORT"),
			FrontendURL: v.GetString("FRONTEND_URL"),
		},
		Auth: AuthConfig{
			JWTSecret:         v.GetString("JWT_SECRET"),
			AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		},
		Salon: SalonConfig{
			Timezone:  v.GetString("SALON_TIMEZONE"),
			StorePath: v.GetString("APPOINTMENTS_FILE"),
		},
		Email: EmailConfig{
			Host:       v.GetString("EMAIL_HOST"),
			Port:       v.GetString("EMAIL_PORT"),
			From:       v.GetString("EMAIL_FROM"),
			OwnerEmail: v.GetString("RECIPIENT_EMAIL"),
		},
		Calendar: CalendarConfig{
			CredentialsJSON: v.GetString("GOOGLE_CALENDAR_CREDENTIALS"),
			CalendarID:      v.GetString("GOOGLE_CALENDAR_ID"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	loc, err := time.LoadLocation(cfg.Salon.Timezone)
	if err != nil {
		logger.Warn("Config:Load:InvalidTimezone", "timezone", cfg.Salon.Timezone, "error", err)
		loc = time.UTC
	}
	cfg.location = loc

	return cfg, nil
}

// Location returns the salon-local time zone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}
