package config

import (
	"fmt"
	"net/url"
	"os"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true, "pretty": true, "auto": true, "": true,
}

const maxPageSize = 100

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if u, err := url.Parse(c.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("api.base_url: must be an http(s) URL, got %q", c.API.BaseURL))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("api.timeout: must not be negative, got %s", c.API.Timeout))
	}

	if c.Catalog.PageSize < 0 || c.Catalog.PageSize > maxPageSize {
		errs = append(errs, fmt.Sprintf("catalog.page_size: must be between 1 and %d, got %d", maxPageSize, c.Catalog.PageSize))
	}
	if c.Catalog.RecommendedLimit < 0 {
		errs = append(errs, fmt.Sprintf("catalog.recommended_limit: must be positive, got %d", c.Catalog.RecommendedLimit))
	}
	if c.Catalog.SearchDebounce < 0 {
		errs = append(errs, fmt.Sprintf("catalog.search_debounce: must not be negative, got %s", c.Catalog.SearchDebounce))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be one of text, json, pretty, auto; got %q", c.Log.Format))
	}

	if c.Fixtures.Data != "" {
		if _, err := os.Stat(c.Fixtures.Data); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("fixtures.data: file %q does not exist", c.Fixtures.Data))
		}
	}

	return errs
}
