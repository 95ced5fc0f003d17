package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/pkg/utils"
)

// Config is the process configuration, loaded once at startup.
type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	DB      DatabaseConfig `mapstructure:"db"`
	Line    LineConfig     `mapstructure:"line"`
	Admin   AdminConfig    `mapstructure:"admin"`
	Log     LogConfig      `mapstructure:"log"`
	Booking BookingConfig  `mapstructure:"booking"`
}

// ServerConfig HTTP server settings. BaseURL is the public https origin used in image links.
type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	BaseURL     string   `mapstructure:"base_url"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig PostgreSQL settings.
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MigrateOnRun bool   `mapstructure:"migrate_on_start"`
}

// DSN builds the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// LineConfig messaging platform credentials.
type LineConfig struct {
	ChannelSecret string `mapstructure:"channel_secret"`
	ChannelToken  string `mapstructure:"channel_token"`
}

// AdminConfig admin API credentials. PasswordHash is a bcrypt hash (see cmd/hash-password).
type AdminConfig struct {
	Username     string        `mapstructure:"username"`
	PasswordHash string        `mapstructure:"password_hash"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

// LogConfig logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BookingConfig booking policy settings. Deadlines are the startup defaults; values
// stored in system_settings take precedence at check time.
type BookingConfig struct {
	Timezone  string           `mapstructure:"timezone"`
	Deadlines models.Deadlines `mapstructure:"deadlines"`
}

// Location resolves the configured timezone; "" and "Local" mean the process zone.
func (c BookingConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Load reads defaults, an optional config file and BOT_* environment variables.
// Priority: environment > config file > defaults. A .env file in the working
// directory is loaded into the environment first. Load does not validate; the
// server calls Validate, the maintenance tools only need the db section.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	defaults := models.DefaultDeadlines()
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "shuttle_bot")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "shuttle_booking")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.migrate_on_start", true)

	v.SetDefault("line.channel_secret", "")
	v.SetDefault("line.channel_token", "")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.jwt_secret", "")
	v.SetDefault("admin.token_ttl", "12h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("booking.timezone", "Local")
	v.SetDefault("booking.deadlines.bus_day", defaults.BusDay)
	v.SetDefault("booking.deadlines.bus_night", defaults.BusNight)
	v.SetDefault("booking.deadlines.meal_day", defaults.MealDay)
	v.SetDefault("booking.deadlines.meal_night", defaults.MealNight)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.Line.ChannelSecret == "" || c.Line.ChannelToken == "" {
		return errors.New("config: line.channel_secret and line.channel_token are required")
	}
	if len(c.Admin.JWTSecret) < 16 {
		return errors.New("config: admin.jwt_secret must be at least 16 characters")
	}
	for key, value := range c.Booking.Deadlines.ByKey() {
		if !utils.IsValidClock(value) {
			return fmt.Errorf("config: booking deadline %s=%q is not HH:MM", key, value)
		}
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("config: booking.timezone: %w", err)
	}
	return nil
}
