// Package config loads runtime configuration from the environment.
// Classification policy lives in the YAML rules file, not here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Email delivery (Resend)
	ResendAPIKey string
	EmailFrom    string
	EmailTo      string
	CC           string // comma-separated, optional
	BCC          string // comma-separated, optional

	// Report settings
	Timezone         string
	MaxTop           int    // items in the email headline list
	MentionsCount    int    // size of the "further mentions" block
	InternationalMax int    // cap of the international section
	TopicOrder       string // "max_score" or "fixed"

	// Engine inputs
	FeedsConfigPath string
	RulesConfigPath string
	NewsMaxAge      time.Duration

	// Reviews pilot
	ReviewsJSON       string
	WeeklyReviewsJSON string

	// HTTP behavior
	RequestTimeout time.Duration
	FeedRatePerSec float64
	RetryAttempts  int
	RetryDelay     time.Duration

	// Urgent watcher
	SeenCachePath  string
	SeenCacheHours int

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Timezone:         getEnvOrDefault("TIMEZONE", "Europe/Berlin"),
		MaxTop:           getEnvIntOrDefault("MAX_TOP", 15),
		MentionsCount:    getEnvIntOrDefault("MENTIONS_COUNT", 20),
		InternationalMax: getEnvIntOrDefault("INTERNATIONAL_MAX", 5),
		TopicOrder:       getEnvOrDefault("TOPIC_ORDER", "max_score"),
		FeedsConfigPath:  getEnvOrDefault("FEEDS_CONFIG_PATH", "configs/feeds.yaml"),
		RulesConfigPath:  getEnvOrDefault("RULES_CONFIG_PATH", "configs/rules.yaml"),
		NewsMaxAge:       time.Duration(getEnvIntOrDefault("NEWS_MAX_AGE_HOURS", 24)) * time.Hour,
		RequestTimeout:   time.Duration(getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		RetryAttempts:    getEnvIntOrDefault("RETRY_ATTEMPTS", 3),
		RetryDelay:       time.Duration(getEnvIntOrDefault("RETRY_DELAY_SECONDS", 5)) * time.Second,
		SeenCachePath:    getEnvOrDefault("SEEN_CACHE_PATH", "alerted_links.json"),
		SeenCacheHours:   getEnvIntOrDefault("SEEN_CACHE_TTL_HOURS", 48),
	}

	cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.EmailFrom = os.Getenv("EMAIL_FROM")
	cfg.EmailTo = os.Getenv("EMAIL_TO")
	cfg.CC = os.Getenv("CC")
	cfg.BCC = os.Getenv("BCC")

	cfg.ReviewsJSON = os.Getenv("REVIEWS_JSON")
	cfg.WeeklyReviewsJSON = os.Getenv("WEEKLY_REVIEWS_JSON")

	cfg.FeedRatePerSec = 1
	if v := os.Getenv("FEED_RATE_PER_SEC"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.FeedRatePerSec = f
		}
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required")
	}
	if c.EmailFrom == "" {
		return fmt.Errorf("EMAIL_FROM is required")
	}
	if c.EmailTo == "" {
		return fmt.Errorf("EMAIL_TO is required")
	}
	if c.TopicOrder != "max_score" && c.TopicOrder != "fixed" {
		return fmt.Errorf("TOPIC_ORDER must be 'max_score' or 'fixed'")
	}
	if c.MaxTop <= 0 {
		return fmt.Errorf("MAX_TOP must be positive")
	}
	return nil
}
