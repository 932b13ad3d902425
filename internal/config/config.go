// Package config loads application settings from the environment, an
// optional .env file and an optional config file.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	AppPort string

	DBDriver    string // sqlite, postgres or mongo
	DatabaseDSN string
	MongoURI    string

	JWTSecret    string
	JWTExpiresIn time.Duration

	RabbitMQURL       string
	EventsLogConsumer bool

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	LoginMaxAttempts int
	LoginWindow      time.Duration

	StatsTimezone   string
	StatsDateLayout string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "bjjtracker.db")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/bjjtracker")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRES_IN", "720h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_LOG_CONSUMER", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_WINDOW", "15m")
	v.SetDefault("STATS_TIMEZONE", "Local")
	v.SetDefault("STATS_DATE_LAYOUT", "02/01/2006")
}

// Load reads the configuration. A missing .env file is not an error;
// configFile is optional.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := FromViper(v)
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	switch cfg.DBDriver {
	case "sqlite", "postgres", "mongo":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		AppPort:           v.GetString("APP_PORT"),
		DBDriver:          v.GetString("DB_DRIVER"),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		MongoURI:          v.GetString("MONGO_URI"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTExpiresIn:      v.GetDuration("JWT_EXPIRES_IN"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		EventsLogConsumer: v.GetBool("EVENTS_LOG_CONSUMER"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		LoginMaxAttempts:  v.GetInt("LOGIN_MAX_ATTEMPTS"),
		LoginWindow:       v.GetDuration("LOGIN_WINDOW"),
		StatsTimezone:     v.GetString("STATS_TIMEZONE"),
		StatsDateLayout:   v.GetString("STATS_DATE_LAYOUT"),
	}
}

// Location resolves StatsTimezone, the zone used to bucket sessions by day.
func (c *Config) Location() (*time.Location, error) {
	if c.StatsTimezone == "" || c.StatsTimezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.StatsTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_TIMEZONE %q: %w", c.StatsTimezone, err)
	}
	return loc, nil
}
