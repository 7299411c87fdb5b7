// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults applied to fields left empty in the config file.
const (
	DefaultBaseURL          = "http://localhost:3000"
	DefaultPageSize         = 12
	DefaultRecommendedLimit = 4
	DefaultSearchDebounce   = 300 * time.Millisecond
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "auto"
	DefaultFixturesListen   = "localhost:3000"
)

// Config is the root configuration structure.
type Config struct {
	API      APIConfig      `toml:"api"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Log      LogConfig      `toml:"log"`
	Fixtures FixturesConfig `toml:"fixtures"`
}

// APIConfig points at the movies REST API.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	// Timeout bounds each request. Zero leaves requests unbounded.
	Timeout time.Duration `toml:"timeout"`
}

type CatalogConfig struct {
	PageSize         int           `toml:"page_size"`
	RecommendedLimit int           `toml:"recommended_limit"`
	SearchDebounce   time.Duration `toml:"search_debounce"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text, json, pretty or auto
}

// FixturesConfig configures the local stand-in backend.
type FixturesConfig struct {
	Listen string `toml:"listen"`
	Data   string `toml:"data"` // db.json path; empty serves the bundled sample
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, parses and validates the configuration file.
// Unresolved environment variables and validation failures are reported
// together as a *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation. Missing environment variables are still
// an error.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}
	return cfg, nil
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.Catalog.PageSize == 0 {
		c.Catalog.PageSize = DefaultPageSize
	}
	if c.Catalog.RecommendedLimit == 0 {
		c.Catalog.RecommendedLimit = DefaultRecommendedLimit
	}
	if c.Catalog.SearchDebounce == 0 {
		c.Catalog.SearchDebounce = DefaultSearchDebounce
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Fixtures.Listen == "" {
		c.Fixtures.Listen = DefaultFixturesListen
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars expands environment references in content. References
// that cannot be resolved are left in place and reported in missing; for
// ${VAR:?message} the entry reads "VAR: message".
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if value == "" {
				return arg
			}
			return value
		case ":?":
			if value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return result, missing
}
