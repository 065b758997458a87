// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/albumatlas/config.yaml",
	"/etc/albumatlas/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultTags is the genre list fanned out against the primary source.
var DefaultTags = []string{
	"acoustic", "alternative", "ambient", "americana", "blues",
	"bossa nova", "britpop", "classic rock", "classical", "country",
	"dance", "disco", "dream pop", "drum and bass", "dub",
	"electronic", "emo", "experimental", "folk", "funk",
	"garage rock", "gospel", "grunge", "hard rock", "hardcore",
	"heavy metal", "hip-hop", "house", "indie", "indie pop",
	"industrial", "jazz", "krautrock", "latin", "lo-fi",
	"metal", "new wave", "noise", "pop", "post-punk",
	"post-rock", "progressive rock", "psychedelic", "punk", "r&b",
	"reggae", "rock", "shoegaze", "singer-songwriter", "ska",
	"soul", "soundtrack", "synthpop", "techno", "trip-hop",
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Primary: PrimaryConfig{
			BaseURL:           "https://ws.audioscrobbler.com",
			APIKey:            "",
			Timeout:           15 * time.Second,
			TagLimit:          30,
			MaxConcurrent:     0, // One goroutine per tag
			RequestsPerSecond: 0, // Unpaced
			Tags:              append([]string(nil), DefaultTags...),
		},
		Secondary: SecondaryConfig{
			BaseURL:           "https://api.discogs.com",
			Token:             "",
			UserAgent:         "AlbumAtlas/1.0 +https://github.com/tomtom215/albumatlas",
			ResultType:        "master",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 1, // Authenticated Discogs clients get 60/min
			Burst:             1,
			MaxConcurrent:     4,
			StaggerStep:       50 * time.Millisecond,
			JitterMax:         250 * time.Millisecond,
			MaxRetries:        2,
			RetryBaseDelay:    2 * time.Second,
			MaxRetryAfter:     time.Minute,
			BreakerEnabled:    true,
			BreakerTimeout:    2 * time.Minute,
			LookupCacheSize:   2000,
			LookupCacheTTL:    6 * time.Hour,
		},
		Catalog: CatalogConfig{
			MaxItems:         300,
			PlaceholderImage: "/static/img/album-placeholder.png",
			NewestDecade:     (time.Now().Year() / 10) * 10,
			OldestDecadeEnd:  1959,
			BuildTimeout:     30 * time.Minute,
			WarmOnStartup:    false,
			MaxWait:          30 * time.Second,
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults. The result is validated before return.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"primary.tags",
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Primary source (Last.fm)
	"lastfm_url":            "primary.base_url",
	"lastfm_api_key":        "primary.api_key",
	"lastfm_timeout":        "primary.timeout",
	"lastfm_tag_limit":      "primary.tag_limit",
	"lastfm_max_concurrent": "primary.max_concurrent",
	"lastfm_rps":            "primary.requests_per_second",
	"catalog_tags":          "primary.tags",

	// Secondary source (Discogs)
	"discogs_url":               "secondary.base_url",
	"discogs_token":             "secondary.token",
	"discogs_user_agent":        "secondary.user_agent",
	"discogs_result_type":       "secondary.result_type",
	"discogs_timeout":           "secondary.timeout",
	"discogs_rps":               "secondary.requests_per_second",
	"discogs_burst":             "secondary.burst",
	"discogs_max_concurrent":    "secondary.max_concurrent",
	"discogs_stagger_step":      "secondary.stagger_step",
	"discogs_jitter_max":        "secondary.jitter_max",
	"discogs_max_retries":       "secondary.max_retries",
	"discogs_retry_base_delay":  "secondary.retry_base_delay",
	"discogs_max_retry_after":   "secondary.max_retry_after",
	"discogs_breaker_enabled":   "secondary.breaker_enabled",
	"discogs_breaker_timeout":   "secondary.breaker_timeout",
	"discogs_lookup_cache_size": "secondary.lookup_cache_size",
	"discogs_lookup_cache_ttl":  "secondary.lookup_cache_ttl",

	// Catalog
	"catalog_max_items":         "catalog.max_items",
	"catalog_placeholder_image": "catalog.placeholder_image",
	"catalog_newest_decade":     "catalog.newest_decade",
	"catalog_oldest_decade_end": "catalog.oldest_decade_end",
	"catalog_build_timeout":     "catalog.build_timeout",
	"catalog_warm_on_startup":   "catalog.warm_on_startup",
	"catalog_max_wait":          "catalog.max_wait",

	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - LASTFM_API_KEY -> primary.api_key
//   - DISCOGS_TOKEN -> secondary.token
//   - CATALOG_MAX_ITEMS -> catalog.max_items
//   - HTTP_PORT -> server.port
//
// Unmapped variables return "" and are skipped so unrelated environment
// variables never leak into the configuration.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
