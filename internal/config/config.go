package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		Enabled      bool   `yaml:"enabled"`
	} `yaml:"email"`

	Payments struct {
		Provider string `yaml:"provider"` // mock, stripe
		Currency string `yaml:"currency"`
	} `yaml:"payments"`

	RateLimit struct {
		AuthPerMinute    int `yaml:"auth_per_minute"`
		MessagePerMinute int `yaml:"message_per_minute"`
	} `yaml:"rate_limit"`
}

var AppConfig *Config

// LoadConfig reads configuration from config.yaml, or entirely from
// environment variables when DATABASE_URL is set (test/deployment mode).
// A .env file in the working directory is honored if present.
func LoadConfig() {
	var cfg Config

	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60 * 24 * 7 // 7 days, matching the token lifetime used for issued sessions

	if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
		if ttl, err := strconv.Atoi(ttlStr); err == nil && ttl > 0 {
			cfg.JWT.TTL = ttl
		}
	}

	cfg.Payments.Provider = os.Getenv("PAYMENT_PROVIDER")
	cfg.Payments.Currency = os.Getenv("PAYMENT_CURRENCY")

	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_AUTH_PER_MINUTE")); err == nil && v > 0 {
		cfg.RateLimit.AuthPerMinute = v
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_MESSAGE_PER_MINUTE")); err == nil && v > 0 {
		cfg.RateLimit.MessagePerMinute = v
	}

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60 * 24 * 7
	}
	if cfg.Payments.Provider == "" {
		cfg.Payments.Provider = "mock"
	}
	if cfg.Payments.Currency == "" {
		cfg.Payments.Currency = "EUR"
	}
	if cfg.RateLimit.AuthPerMinute == 0 {
		cfg.RateLimit.AuthPerMinute = 5
	}
	if cfg.RateLimit.MessagePerMinute == 0 {
		cfg.RateLimit.MessagePerMinute = 10
	}
}

// GetConfig returns the loaded configuration, loading it on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
