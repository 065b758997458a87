// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package config

import "time"

// Config holds all application configuration.
//
// Configuration is loaded in layers by LoadWithKoanf:
//  1. Struct defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/albumatlas/config.yaml)
//  3. Environment variables (see envTransformFunc for the mapping table)
type Config struct {
	Primary   PrimaryConfig   `koanf:"primary"`
	Secondary SecondaryConfig `koanf:"secondary"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// PrimaryConfig holds settings for the tag index (Last.fm-compatible API).
type PrimaryConfig struct {
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`

	// TagLimit is the number of albums requested per tag.
	TagLimit int `koanf:"tag_limit"`

	// MaxConcurrent bounds parallel tag lookups (0 = one per tag).
	MaxConcurrent int `koanf:"max_concurrent"`

	// RequestsPerSecond paces tag lookups (0 = unpaced).
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	// Tags is the list of category tags fanned out on build.
	Tags []string `koanf:"tags"`
}

// SecondaryConfig holds settings for the release index (Discogs-compatible API)
// and the enrichment scheduler that paces calls to it.
type SecondaryConfig struct {
	BaseURL    string        `koanf:"base_url"`
	Token      string        `koanf:"token"`
	UserAgent  string        `koanf:"user_agent"`
	ResultType string        `koanf:"result_type"`
	Timeout    time.Duration `koanf:"timeout"`

	// Scheduler
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	MaxConcurrent     int           `koanf:"max_concurrent"`
	StaggerStep       time.Duration `koanf:"stagger_step"` // Per-position delay before the first attempt
	JitterMax         time.Duration `koanf:"jitter_max"`   // Upper bound of random stagger jitter

	// Retry policy for 429 responses
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"` // attempt x base when Retry-After is absent
	MaxRetryAfter  time.Duration `koanf:"max_retry_after"`  // Directed delays above this degrade the item

	// Circuit breaker
	BreakerEnabled bool          `koanf:"breaker_enabled"`
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`

	// Release lookup memo, reused by rebuilds after a failed build (0 = off)
	LookupCacheSize int           `koanf:"lookup_cache_size"`
	LookupCacheTTL  time.Duration `koanf:"lookup_cache_ttl"`
}

// CatalogConfig holds master catalog settings.
type CatalogConfig struct {
	MaxItems         int           `koanf:"max_items"`
	PlaceholderImage string        `koanf:"placeholder_image"`
	NewestDecade     int           `koanf:"newest_decade"`
	OldestDecadeEnd  int           `koanf:"oldest_decade_end"`
	BuildTimeout     time.Duration `koanf:"build_timeout"`
	WarmOnStartup    bool          `koanf:"warm_on_startup"`
	MaxWait          time.Duration `koanf:"max_wait"` // Upper bound for ?wait=true queries
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// SecurityConfig holds CORS and API rate limit settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// ShouldWarnAboutCORS reports whether any origin may call the API.
func (c *Config) ShouldWarnAboutCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
