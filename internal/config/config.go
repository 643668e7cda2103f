package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the public Etherscan endpoint. Tests and private
	// deployments inject their own via ETHERSCAN_BASE_URL or --base-url.
	DefaultBaseURL = "https://api.etherscan.io/api"

	// DefaultMaxAgeDays flags unverified contracts younger than a week.
	DefaultMaxAgeDays = 7

	minMaxAgeDays = 1
	maxMaxAgeDays = 3650
	minTimeout    = 1 * time.Second
	maxTimeout    = 10 * time.Minute
)

// Error policies for contract lookups that fail mid-scan.
const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

// Config holds 12-factor environment configuration for the scanner.
type Config struct {
	BaseURL    string
	APIKey     string
	MaxAgeDays int
	Timeout    time.Duration
	OnError    string
}

// Settings mirrors the optional YAML settings file (--config).
type Settings struct {
	Etherscan struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"etherscan"`
	Scan struct {
		MaxAgeDays int    `yaml:"max_age_days"`
		OnError    string `yaml:"on_error"`
	} `yaml:"scan"`
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

func parseDurEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// NormalizeOnError folds arbitrary input to a valid policy, defaulting to
// abort so a half-configured run keeps the strict failure mode.
func NormalizeOnError(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), OnErrorSkip) {
		return OnErrorSkip
	}
	return OnErrorAbort
}

// Load reads environment variables and returns a Config with defaults applied.
func Load() Config {
	age := clampInt(parseIntEnv("MAX_AGE_DAYS", DefaultMaxAgeDays), minMaxAgeDays, maxMaxAgeDays)
	timeout := clampDuration(parseDurEnv("HTTP_TIMEOUT", 30*time.Second), minTimeout, maxTimeout)
	return Config{
		BaseURL:    env("ETHERSCAN_BASE_URL", DefaultBaseURL),
		APIKey:     env("ETHERSCAN_API_KEY", ""),
		MaxAgeDays: age,
		Timeout:    timeout,
		OnError:    NormalizeOnError(env("ON_ERROR", OnErrorAbort)),
	}
}

// LoadFile parses the optional YAML settings file. Values from it rank below
// environment variables and flags; the caller decides what to take.
func LoadFile(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings file: %w", err)
	}
	return s, nil
}

// RedactAPIKey hides most of an API key so it can appear in logs and plans.
func RedactAPIKey(k string) string {
	if k == "" {
		return ""
	}
	if len(k) <= 4 {
		return "***"
	}
	return k[:4] + "***"
}
