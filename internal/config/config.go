package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Geocode  GeocodeConfig `mapstructure:"geocode"`
	Report   ReportConfig  `mapstructure:"report"`
	Scan     ScanConfig    `mapstructure:"scan"`
}

// GeocodeConfig controls the reverse-geocoding lookups.
type GeocodeConfig struct {
	// Language of the resolved addresses (Nominatim accept-language /
	// Google language code).
	Language string `mapstructure:"language"`
	// Timeout bounds one lookup.
	Timeout time.Duration `mapstructure:"timeout"`
	// Interval paces lookups: at most one per interval across all workers.
	Interval time.Duration `mapstructure:"interval"`
	// Endpoint overrides the Nominatim URL; empty selects the public
	// OpenStreetMap instance.
	Endpoint string `mapstructure:"endpoint"`
	// GoogleAPIKey switches resolution to the Google Maps API when set.
	GoogleAPIKey string `mapstructure:"google_api_key"`
}

// ReportConfig controls the output document.
type ReportConfig struct {
	Prefix     string `mapstructure:"prefix"`
	Title      string `mapstructure:"title"`
	ThumbWidth int    `mapstructure:"thumb_width"`
}

// ScanConfig controls folder processing.
type ScanConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// New creates a new configuration with default values
func New() *Config {
	return &Config{
		LogLevel: "info",
		Geocode: GeocodeConfig{
			Language: "ru",
			Timeout:  10 * time.Second,
			Interval: 500 * time.Millisecond,
		},
		Report: ReportConfig{
			Prefix:     "PHOTO_EVIDENCE",
			Title:      "Photo Evidence Table",
			ThumbWidth: 360,
		},
		Scan: ScanConfig{
			Concurrency: 4,
		},
	}
}

// Load merges an optional config file and PHOTO_EVIDENCE_* environment
// variables over the defaults. An empty file path means no config file.
func Load(file string) (*Config, error) {
	cfg := New()

	v := viper.New()
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("geocode.language", cfg.Geocode.Language)
	v.SetDefault("geocode.timeout", cfg.Geocode.Timeout)
	v.SetDefault("geocode.interval", cfg.Geocode.Interval)
	v.SetDefault("geocode.endpoint", cfg.Geocode.Endpoint)
	v.SetDefault("geocode.google_api_key", cfg.Geocode.GoogleAPIKey)
	v.SetDefault("report.prefix", cfg.Report.Prefix)
	v.SetDefault("report.title", cfg.Report.Title)
	v.SetDefault("report.thumb_width", cfg.Report.ThumbWidth)
	v.SetDefault("scan.concurrency", cfg.Scan.Concurrency)

	v.SetEnvPrefix("PHOTO_EVIDENCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
