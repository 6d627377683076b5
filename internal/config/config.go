// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/ats-matcher/internal/logger"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Resume  string `json:"resume,omitempty" yaml:"resume,omitempty"`   // Path to resume file (pdf, docx, doc, txt)
	Job     string `json:"job,omitempty" yaml:"job,omitempty"`         // Path to job description text file
	JobURL  string `json:"job_url,omitempty" yaml:"job_url,omitempty"` // URL to fetch job description from
	Catalog string `json:"catalog,omitempty" yaml:"catalog,omitempty"` // Path to job catalog (yaml or json)

	// Behavior
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL URL for the job catalog
	UseBrowser  bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`   // Render job pages in headless Chrome when needed
	Verbose     bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	MinScore    int    `json:"min_score,omitempty" yaml:"min_score,omitempty"`     // Recommendation cutoff; 0 means default, negative disables
	Concurrency int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"` // Parallel batch scoring limit

	// Job URL imports refuse loopback, private and link-local hosts unless this is set.
	AllowPrivateURLs bool `json:"allow_private_urls,omitempty" yaml:"allow_private_urls,omitempty"`

	Server ServerConfig  `json:"server,omitempty" yaml:"server,omitempty"`
	Log    logger.Config `json:"log,omitempty" yaml:"log,omitempty"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr           string   `json:"addr,omitempty" yaml:"addr,omitempty"`
	RateLimit      float64  `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"` // requests per second per client
	Burst          int      `json:"burst,omitempty" yaml:"burst,omitempty"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Concurrency: 4,
		Server: ServerConfig{
			Addr:           ":8080",
			RateLimit:      5,
			Burst:          10,
			AllowedOrigins: []string{"*"},
		},
		Log: logger.Config{Level: "info", Format: "json"},
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		"ATS_RESUME":     &c.Resume,
		"ATS_JOB":        &c.Job,
		"ATS_JOB_URL":    &c.JobURL,
		"ATS_CATALOG":    &c.Catalog,
		"DATABASE_URL":   &c.DatabaseURL,
		"ATS_ADDR":       &c.Server.Addr,
		"ATS_LOG_LEVEL":  &c.Log.Level,
		"ATS_LOG_FORMAT": &c.Log.Format,
	}
	for key, dst := range strs {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"ATS_USE_BROWSER":        &c.UseBrowser,
		"ATS_ALLOW_PRIVATE_URLS": &c.AllowPrivateURLs,
	}
	for key, dst := range bools {
		if v := getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("config error: %s: %w", key, err)
			}
			*dst = b
		}
	}

	ints := map[string]*int{
		"ATS_MIN_SCORE":   &c.MinScore,
		"ATS_CONCURRENCY": &c.Concurrency,
		"ATS_BURST":       &c.Server.Burst,
	}
	for key, dst := range ints {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s: %w", key, err)
		}
		*dst = n
	}

	if v := strings.TrimSpace(getenv("ATS_RATE_LIMIT")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config error: ATS_RATE_LIMIT: %w", err)
		}
		c.Server.RateLimit = f
	}

	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.MinScore > 100 {
		return fmt.Errorf("config error: 'min_score' must be at most 100")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("config error: 'server.rate_limit' must be non-negative")
	}
	if c.Server.Burst < 0 {
		return fmt.Errorf("config error: 'server.burst' must be non-negative")
	}

	switch c.Log.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log.format' must be json or pretty, got %q", c.Log.Format)
	}

	files := []struct{ name, path string }{
		{"resume", c.Resume},
		{"job", c.Job},
		{"catalog", c.Catalog},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if _, err := os.Stat(f.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", f.name, f.path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.Resume, defaults.Resume)
	fill(&result.Job, defaults.Job)
	fill(&result.JobURL, defaults.JobURL)
	fill(&result.Catalog, defaults.Catalog)
	fill(&result.DatabaseURL, defaults.DatabaseURL)
	fill(&result.Server.Addr, defaults.Server.Addr)
	fill(&result.Log.Level, defaults.Log.Level)
	fill(&result.Log.Format, defaults.Log.Format)

	// Numeric fields: use default if zero
	if result.MinScore == 0 {
		result.MinScore = defaults.MinScore
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Server.RateLimit == 0 {
		result.Server.RateLimit = defaults.Server.RateLimit
	}
	if result.Server.Burst == 0 {
		result.Server.Burst = defaults.Server.Burst
	}
	if len(result.Server.AllowedOrigins) == 0 {
		result.Server.AllowedOrigins = defaults.Server.AllowedOrigins
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
