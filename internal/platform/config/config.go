package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean. Optional backends (postgres, redis, kafka) fall back to
// in-process implementations when their URLs are empty.
type Config struct {
	Addr string

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers string
	KafkaTopic   string

	// Rate limiting: submissions per client per fixed window.
	RateLimitMax    int
	RateLimitWindow time.Duration

	Consent ConsentConfig
}

// ConsentConfig is the static consent disclosure stamped verbatim onto every
// created lead. Changing the disclosed language requires bumping Version;
// historical leads keep the version and purpose in force at creation time.
type ConsentConfig struct {
	Version string
	Purpose string
}

// FromEnv builds a Config from environment variables with development defaults.
func FromEnv() Config {
	return Config{
		Addr:            envOr("PROPWORTH_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		KafkaBrokers:    os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:      envOr("KAFKA_LEAD_TOPIC", "propworth.leads.assigned"),
		RateLimitMax:    envIntOr("RATE_LIMIT_MAX", 5),
		RateLimitWindow: envDurationOr("RATE_LIMIT_WINDOW", time.Minute),
		Consent: ConsentConfig{
			Version: envOr("CONSENT_TEXT_VERSION", "v1.2"),
			Purpose: envOr("CONSENT_PURPOSE",
				"Sharing your contact details and property preferences with a matched real-estate agent who will contact you about buying or selling property."),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
