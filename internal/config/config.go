package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBDebug       bool
	DBAutoMigrate bool

	ServerPort      string
	ShutdownTimeout time.Duration
	CORSOrigins     string

	JWTSecret string
	JWTExpiry time.Duration

	RedisAddr string
	CacheTTL  time.Duration

	LogLevel  string
	LogFormat string
	Timezone  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "tasks_user")
	v.SetDefault("DB_PASSWORD", "tasks_pass")
	v.SetDefault("DB_NAME", "tasks_db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_DEBUG", false)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("JWT_SECRET", "supersecretkey")
	v.SetDefault("JWT_EXPIRY", "24h")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("APP_TIMEZONE", "Local")
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using system environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is what most hosting platforms set.
	if err := v.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	cfg := &Config{
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSLMODE"),
		DBDebug:       v.GetBool("DB_DEBUG"),
		DBAutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),

		ServerPort:      v.GetString("SERVER_PORT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		CORSOrigins:     v.GetString("CORS_ORIGINS"),

		JWTSecret: v.GetString("JWT_SECRET"),
		JWTExpiry: v.GetDuration("JWT_EXPIRY"),

		RedisAddr: v.GetString("REDIS_ADDR"),
		CacheTTL:  v.GetDuration("CACHE_TTL"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		Timezone:  v.GetString("APP_TIMEZONE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWTExpiry <= 0 {
		return errors.New("JWT_EXPIRY must be a positive duration")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be a positive duration")
	}
	if c.RedisAddr != "" && c.CacheTTL <= 0 {
		return errors.New("CACHE_TTL must be a positive duration")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Location resolves APP_TIMEZONE, the zone start times are interpreted in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
