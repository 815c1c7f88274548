package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver          string `yaml:"db_driver"`
	DBHost            string `yaml:"db_host"`
	DBPort            string `yaml:"db_port"`
	DBUser            string `yaml:"db_user"`
	DBPassword        string `yaml:"db_password"`
	DBName            string `yaml:"db_name"`
	RedisHost         string `yaml:"redis_host"`
	RedisPort         string `yaml:"redis_port"`
	SessionStore      string `yaml:"session_store"`
	SessionSecret     string `yaml:"session_secret"`
	GinMode           string `yaml:"gin_mode"`
	ServerPort        string `yaml:"server_port"`
	LogLevel          string `yaml:"log_level"`
	JWTSecret         string `yaml:"jwt_secret"`
	JWTTTLMinutes     int    `yaml:"jwt_ttl_minutes"`
	OTPTTLSeconds     int    `yaml:"otp_ttl_seconds"`
	SendGridAPIKey    string `yaml:"sendgrid_api_key"`
	MailFrom          string `yaml:"mail_from"`
	MailFromName      string `yaml:"mail_from_name"`
	OpenAIAPIKey      string `yaml:"openai_api_key"`
	KeepAliveURL      string `yaml:"keepalive_url"`
	KeepAliveSchedule string `yaml:"keepalive_schedule"`
	AdminEmail        string `yaml:"admin_email"`
	AdminPassword     string `yaml:"admin_password"`
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and finally environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBDriver:          "mysql",
		DBHost:            "localhost",
		DBPort:            "3306",
		DBUser:            "hubuser",
		DBPassword:        "hubpassword",
		DBName:            "community_service_hub",
		RedisHost:         "localhost",
		RedisPort:         "6379",
		SessionStore:      "cookie",
		SessionSecret:     "default-secret-key-change-me",
		GinMode:           "debug",
		ServerPort:        "8080",
		LogLevel:          "info",
		JWTSecret:         "default-jwt-secret-change-me",
		JWTTTLMinutes:     60,
		OTPTTLSeconds:     120,
		MailFrom:          "no-reply@communityservicehub.org",
		MailFromName:      "Community Service Hub",
		KeepAliveSchedule: "@every 10m",
	}
}

func (c *Config) overrideWithEnv() {
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.RedisHost = getEnv("REDIS_HOST", c.RedisHost)
	c.RedisPort = getEnv("REDIS_PORT", c.RedisPort)
	c.SessionStore = getEnv("SESSION_STORE", c.SessionStore)
	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTTTLMinutes = getEnvInt("JWT_TTL_MINUTES", c.JWTTTLMinutes)
	c.OTPTTLSeconds = getEnvInt("OTP_TTL_SECONDS", c.OTPTTLSeconds)
	c.SendGridAPIKey = getEnv("SENDGRID_API_KEY", c.SendGridAPIKey)
	c.MailFrom = getEnv("MAIL_FROM", c.MailFrom)
	c.MailFromName = getEnv("MAIL_FROM_NAME", c.MailFromName)
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.KeepAliveURL = getEnv("KEEPALIVE_URL", c.KeepAliveURL)
	c.KeepAliveSchedule = getEnv("KEEPALIVE_SCHEDULE", c.KeepAliveSchedule)
	c.AdminEmail = getEnv("ADMIN_EMAIL", c.AdminEmail)
	c.AdminPassword = getEnv("ADMIN_PASSWORD", c.AdminPassword)
}

// Validate checks the values that have a closed set of options.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}
	switch c.SessionStore {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unsupported session store %q", c.SessionStore)
	}
	if c.OTPTTLSeconds <= 0 {
		return fmt.Errorf("otp ttl must be positive")
	}
	if c.JWTTTLMinutes <= 0 {
		return fmt.Errorf("jwt ttl must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
