// Package config provides application configuration from an optional YAML
// file and environment variables
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds all application configuration
type AppConfig struct {
	ListenAddr        string         `yaml:"listen_addr"`
	DatabaseURL       string         `yaml:"database_url"`
	NasaAPIURL        string         `yaml:"nasa_api_url"`
	NasaAPIKey        string         `yaml:"nasa_api_key"`
	OpenMeteoURL      string         `yaml:"open_meteo_url"`
	ShareOrigin       string         `yaml:"share_origin"`
	Timezone          string         `yaml:"timezone"`
	SessionTTLSeconds int            `yaml:"session_ttl_seconds"`
	Gemini            GeminiConfig   `yaml:"gemini"`
	FetchInterval     FetchIntervals `yaml:"fetch_interval"`
}

// GeminiConfig configures the generation provider
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// FetchIntervals defines archive refresh intervals in seconds. They are
// only used when a database is configured.
type FetchIntervals struct {
	ApodSeconds  int `yaml:"apod_seconds"`
	NeoSeconds   int `yaml:"neo_seconds"`
	DonkiSeconds int `yaml:"donki_seconds"`
}

func defaults() AppConfig {
	return AppConfig{
		ListenAddr:        ":3000",
		NasaAPIURL:        "https://api.nasa.gov",
		NasaAPIKey:        "DEMO_KEY",
		OpenMeteoURL:      "https://api.open-meteo.com",
		ShareOrigin:       "http://localhost:3000",
		Timezone:          "Local",
		SessionTTLSeconds: 3600,
		Gemini: GeminiConfig{
			Model: "gemini-3-flash-preview",
		},
		FetchInterval: FetchIntervals{
			ApodSeconds:  43200,
			NeoSeconds:   7200,
			DonkiSeconds: 3600,
		},
	}
}

// LoadConfig loads defaults, then the YAML file at path (if path is not
// empty), then environment variable overrides
func LoadConfig(path string) (*AppConfig, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.ListenAddr = getEnv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.NasaAPIURL = getEnv("NASA_API_URL", cfg.NasaAPIURL)
	cfg.NasaAPIKey = getEnv("NASA_API_KEY", cfg.NasaAPIKey)
	cfg.OpenMeteoURL = getEnv("OPEN_METEO_URL", cfg.OpenMeteoURL)
	cfg.ShareOrigin = getEnv("SHARE_ORIGIN", cfg.ShareOrigin)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.SessionTTLSeconds = getEnvInt("SESSION_TTL_SECONDS", cfg.SessionTTLSeconds)
	cfg.Gemini.APIKey = getEnv("GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Gemini.Model = getEnv("GEMINI_MODEL", cfg.Gemini.Model)
	cfg.Gemini.BaseURL = getEnv("GEMINI_BASE_URL", cfg.Gemini.BaseURL)
	cfg.FetchInterval.ApodSeconds = getEnvInt("APOD_EVERY_SECONDS", cfg.FetchInterval.ApodSeconds)
	cfg.FetchInterval.NeoSeconds = getEnvInt("NEO_EVERY_SECONDS", cfg.FetchInterval.NeoSeconds)
	cfg.FetchInterval.DonkiSeconds = getEnvInt("DONKI_EVERY_SECONDS", cfg.FetchInterval.DonkiSeconds)

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	if cfg.SessionTTLSeconds <= 0 {
		return nil, fmt.Errorf("session_ttl_seconds must be positive, got %d", cfg.SessionTTLSeconds)
	}
	return &cfg, nil
}

// Location resolves the time zone used for "today" in the NEO feed
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SessionTTL returns how long an idle session is kept
func (c *AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}

// ArchiveEnabled reports whether feed snapshots are persisted
func (c *AppConfig) ArchiveEnabled() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
