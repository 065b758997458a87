// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// maxSecondaryRetries bounds DISCOGS_MAX_RETRIES. The enrichment budget grows
// linearly with retries and the source's limits make more than a few useless.
const maxSecondaryRetries = 5

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validatePrimary(); err != nil {
		return err
	}

	if err := c.validateSecondary(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validatePrimary validates the tag index settings
func (c *Config) validatePrimary() error {
	if err := validateHTTPURL(c.Primary.BaseURL, "LASTFM_URL"); err != nil {
		return fmt.Errorf("LASTFM_URL is invalid: %w", err)
	}
	if c.Primary.APIKey == "" {
		return fmt.Errorf("LASTFM_API_KEY is required")
	}
	if c.Primary.Timeout <= 0 {
		return fmt.Errorf("LASTFM_TIMEOUT must be positive")
	}
	if c.Primary.TagLimit < 1 || c.Primary.TagLimit > 1000 {
		return fmt.Errorf("LASTFM_TAG_LIMIT must be between 1 and 1000")
	}
	if c.Primary.MaxConcurrent < 0 {
		return fmt.Errorf("LASTFM_MAX_CONCURRENT must not be negative")
	}
	if c.Primary.RequestsPerSecond < 0 {
		return fmt.Errorf("LASTFM_RPS must not be negative")
	}
	return c.validateTags()
}

// validateTags requires at least one non-blank tag
func (c *Config) validateTags() error {
	for _, tag := range c.Primary.Tags {
		if strings.TrimSpace(tag) != "" {
			return nil
		}
	}
	return fmt.Errorf("CATALOG_TAGS must contain at least one tag")
}

// validateSecondary validates the release index and scheduler settings
func (c *Config) validateSecondary() error {
	s := &c.Secondary
	if err := validateHTTPURL(s.BaseURL, "DISCOGS_URL"); err != nil {
		return fmt.Errorf("DISCOGS_URL is invalid: %w", err)
	}
	if s.UserAgent == "" {
		return fmt.Errorf("DISCOGS_USER_AGENT is required")
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("DISCOGS_TIMEOUT must be positive")
	}
	if s.RequestsPerSecond <= 0 {
		return fmt.Errorf("DISCOGS_RPS must be positive")
	}
	if s.Burst < 1 {
		return fmt.Errorf("DISCOGS_BURST must be at least 1")
	}
	if s.MaxConcurrent < 1 {
		return fmt.Errorf("DISCOGS_MAX_CONCURRENT must be at least 1")
	}
	if s.StaggerStep < 0 || s.JitterMax < 0 {
		return fmt.Errorf("DISCOGS_STAGGER_STEP and DISCOGS_JITTER_MAX must not be negative")
	}
	if s.MaxRetries < 0 || s.MaxRetries > maxSecondaryRetries {
		return fmt.Errorf("DISCOGS_MAX_RETRIES must be between 0 and %d", maxSecondaryRetries)
	}
	if s.RetryBaseDelay <= 0 {
		return fmt.Errorf("DISCOGS_RETRY_BASE_DELAY must be positive")
	}
	if s.MaxRetryAfter < s.RetryBaseDelay {
		return fmt.Errorf("DISCOGS_MAX_RETRY_AFTER must be at least DISCOGS_RETRY_BASE_DELAY")
	}
	if s.BreakerEnabled && s.BreakerTimeout <= 0 {
		return fmt.Errorf("DISCOGS_BREAKER_TIMEOUT must be positive when the breaker is enabled")
	}
	if s.LookupCacheSize < 0 {
		return fmt.Errorf("DISCOGS_LOOKUP_CACHE_SIZE must not be negative")
	}
	if s.LookupCacheSize > 0 && s.LookupCacheTTL <= 0 {
		return fmt.Errorf("DISCOGS_LOOKUP_CACHE_TTL must be positive when the lookup cache is enabled")
	}
	return nil
}

// validateCatalog validates master catalog settings
func (c *Config) validateCatalog() error {
	cat := &c.Catalog
	if cat.MaxItems < 1 {
		return fmt.Errorf("CATALOG_MAX_ITEMS must be at least 1")
	}
	if cat.NewestDecade%10 != 0 {
		return fmt.Errorf("CATALOG_NEWEST_DECADE must be a multiple of 10, got %d", cat.NewestDecade)
	}
	if (cat.OldestDecadeEnd+1)%10 != 0 {
		return fmt.Errorf("CATALOG_OLDEST_DECADE_END must end a decade (e.g. 1959), got %d", cat.OldestDecadeEnd)
	}
	if cat.OldestDecadeEnd < 1 || cat.OldestDecadeEnd >= cat.NewestDecade {
		return fmt.Errorf("CATALOG_OLDEST_DECADE_END must be positive and before CATALOG_NEWEST_DECADE")
	}
	if cat.BuildTimeout <= 0 {
		return fmt.Errorf("CATALOG_BUILD_TIMEOUT must be positive")
	}
	if cat.MaxWait < 0 {
		return fmt.Errorf("CATALOG_MAX_WAIT must not be negative")
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validateSecurity validates CORS and rate limit configuration
func (c *Config) validateSecurity() error {
	if c.Server.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain '*' when ENVIRONMENT=production")
			}
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL checks that rawURL is an http(s) base URL without path or query.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	// Allow trailing slash but no other paths
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
