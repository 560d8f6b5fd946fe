package config

import (
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Server settings
	ServerPort      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Debug           bool
	Version         string

	// Backend that turns a video id into a blog post
	BackendURL string

	// Rate limiting for /generate
	RateLimit         int
	RateLimitInterval time.Duration

	// Application paths
	LogDir   string
	LogLevel string
	TempDir  string
}

// LoadConfig reads configuration from the environment, after merging in a
// .env file from the working directory when one exists.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("Failed to load .env file")
	}

	return &Config{
		ServerPort:        GetEnv("SERVER_PORT", "8080"),
		ReadTimeout:       getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      getEnvAsDuration("WRITE_TIMEOUT", 30*time.Minute),
		IdleTimeout:       getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		Debug:             getEnvAsBool("DEBUG", false),
		Version:           GetEnv("VERSION", "0.1.0"),
		BackendURL:        GetEnv("BACKEND_URL", "http://localhost:8000"),
		RateLimit:         getEnvAsInt("RATE_LIMIT", 5),
		RateLimitInterval: getEnvAsDuration("RATE_LIMIT_INTERVAL", 1*time.Second),
		LogDir:            GetEnv("LOG_DIR", "./logs"),
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		TempDir:           GetEnv("TEMP_DIR", os.TempDir()),
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid boolean, using default")
	}
	return defaultValue
}

func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return errors.New("server port is required")
	}
	if cfg.BackendURL == "" {
		return errors.New("backend URL is required")
	}
	u, err := url.Parse(cfg.BackendURL)
	if err != nil {
		return errors.Wrap(err, "invalid backend URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("backend URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("backend URL must have a host")
	}
	if cfg.ReadTimeout <= 0 {
		return errors.New("read timeout must be greater than 0")
	}
	if cfg.WriteTimeout <= 0 {
		return errors.New("write timeout must be greater than 0")
	}
	if cfg.IdleTimeout <= 0 {
		return errors.New("idle timeout must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("rate limit must be greater than 0")
	}
	if cfg.RateLimitInterval <= 0 {
		return errors.New("rate limit interval must be greater than 0")
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	return nil
}
