package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env      string   `mapstructure:"env"` // current application environment (local, dev, production etc)
	Telegram Telegram `mapstructure:"telegram"`
	API      API      `mapstructure:"api"`
	Quiz     Quiz     `mapstructure:"quiz"`
	Pick     Pick     `mapstructure:"pick"`
	Daily    Daily    `mapstructure:"daily"`
	DB       DB       `mapstructure:"database"`
	Redis    Redis    `mapstructure:"redis"`
}

// Telegram contains bot settings.
type Telegram struct {
	Token string `mapstructure:"-"` // loaded from TELEGRAM_API_TOKEN
	Debug bool   `mapstructure:"debug"`
}

// API contains the study API client settings.
type API struct {
	BaseURL        string        `mapstructure:"base_url"`
	AccessToken    string        `mapstructure:"-"` // loaded from API_ACCESS_TOKEN
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"`
}

// Quiz contains the timings of a quiz play.
type Quiz struct {
	IntroDuration  time.Duration `mapstructure:"intro_duration"`
	RevealDelay    time.Duration `mapstructure:"reveal_delay"`
	TickResolution time.Duration `mapstructure:"tick_resolution"`
}

// Pick contains the AI pick status polling settings.
type Pick struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	PollTimeout  time.Duration `mapstructure:"poll_timeout"`
}

// Daily contains the daily quiz announcement settings.
type Daily struct {
	Schedule      string `mapstructure:"schedule"`       // cron expression, UTC
	MaxConcurrent int    `mapstructure:"max_concurrent"` // announcements sent in parallel
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Redis contains the query cache settings.
type Redis struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"-"` // loaded from REDIS_PASSWORD
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"` // lifetime of cached API responses
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from an optional .env file, config files and
// environment variables, in increasing priority.
func Load() (*Config, error) {
	return load("./config", ".env")
}

func load(configDir, envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("telegram.debug", false)
	v.SetDefault("api.base_url", "https://api.picktoss.com/api/v2")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.max_retries", 3)
	v.SetDefault("api.retry_base_delay", "500ms")
	v.SetDefault("quiz.intro_duration", "1500ms")
	v.SetDefault("quiz.reveal_delay", "600ms")
	v.SetDefault("quiz.tick_resolution", "1s")
	v.SetDefault("pick.poll_interval", "4s")
	v.SetDefault("pick.poll_timeout", "5m")
	v.SetDefault("daily.schedule", "0 9 * * *")
	v.SetDefault("daily.max_concurrent", 10)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "5m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("api_access_token", "API_ACCESS_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.Telegram.Token = v.GetString("telegram_api_token")
	cfg.API.AccessToken = v.GetString("api_access_token")
	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.Password = v.GetString("redis_password")

	var missing []string
	if cfg.Telegram.Token == "" {
		missing = append(missing, "TELEGRAM_API_TOKEN")
	}
	if cfg.API.AccessToken == "" {
		missing = append(missing, "API_ACCESS_TOKEN")
	}
	if cfg.DB.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnvironmentVariables, strings.Join(missing, ", "))
	}

	return &cfg, nil
}
