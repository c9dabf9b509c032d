// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL   = "https://showra.app"
	DefaultCopyReset = 2 * time.Second
)

type Config struct {
	GitHub GitHubConfig
	Card   CardConfig
	Log    LogConfig
}

type GitHubConfig struct {
	Token string
	// APIURL and GraphQLURL point at a GitHub Enterprise installation when set.
	APIURL     string
	GraphQLURL string
	// RateLimitSleep caps a single secondary rate-limit sleep. Zero surfaces the limit immediately.
	RateLimitSleep time.Duration
}

type CardConfig struct {
	BaseURL   string
	CopyReset time.Duration
}

type LogConfig struct {
	Level logrus.Level
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return &Config{
		GitHub: GitHubConfig{
			Token:          os.Getenv("GITHUB_TOKEN"),
			APIURL:         os.Getenv("GITHUB_API_URL"),
			GraphQLURL:     os.Getenv("GITHUB_GRAPHQL_URL"),
			RateLimitSleep: getEnvAsDuration("GITHUB_RATE_LIMIT_SLEEP", 0),
		},
		Card: CardConfig{
			BaseURL:   strings.TrimRight(getEnv("DEVCARD_BASE_URL", DefaultBaseURL), "/"),
			CopyReset: getEnvAsDuration("DEVCARD_COPY_RESET", DefaultCopyReset),
		},
		Log: LogConfig{
			Level: getEnvAsLevel("LOG_LEVEL", logrus.InfoLevel),
		},
	}, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsLevel(key string, defaultValue logrus.Level) logrus.Level {
	if value := os.Getenv(key); value != "" {
		if level, err := logrus.ParseLevel(value); err == nil {
			return level
		}
	}
	return defaultValue
}
