// Package config defines the scraper configuration and how it is loaded
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "SWIMSCRAPER_"

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = EnvPrefix + "CONFIG"

// Config contains the scraper configuration
type Config struct {
	// BaseURL is the swimcloud site root
	BaseURL string `koanf:"base_url" validate:"required,url"`
	// UserAgent is sent on JSON API requests
	UserAgent string `koanf:"user_agent" validate:"required"`
	// BrowserUserAgent and Referer are sent on HTML page requests
	BrowserUserAgent string `koanf:"browser_user_agent" validate:"required"`
	Referer          string `koanf:"referer"`

	TimeoutMS   int `koanf:"timeout_ms" validate:"min=1"`
	PageDelayMS int `koanf:"page_delay_ms" validate:"min=0"`

	CloudflareBypass bool `koanf:"cloudflare_bypass"`
	// RawDir, when set, receives a copy of every fetched response
	RawDir string `koanf:"raw_dir"`

	TeamsCSV  string `koanf:"teams_csv" validate:"required"`
	OutputDir string `koanf:"output_dir" validate:"required"`

	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogDir   string `koanf:"log_dir"`

	// Batch defaults
	StartYear int    `koanf:"start_year" validate:"min=1996"`
	EndYear   int    `koanf:"end_year" validate:"gtefield=StartYear"`
	ClassYear int    `koanf:"class_year" validate:"min=1996"`
	Genders   string `koanf:"genders" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// New returns a Config holding the defaults
func New() *Config {
	return &Config{
		BaseURL:          "https://www.swimcloud.com",
		UserAgent:        "Mozilla/5.0",
		BrowserUserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/81.0.4044.138 Safari/537.36",
		Referer:          "https://google.com/",
		TimeoutMS:        30_000,
		PageDelayMS:      50,
		TeamsCSV:         "collegeSwimmingTeams.csv",
		OutputDir:        ".",
		LogLevel:         "info",
		LogDir:           "logs",
		StartYear:        2020,
		EndYear:          2024,
		ClassYear:        2028,
		Genders:          "M,F",
	}
}

// Load builds a Config by layering defaults, an optional YAML file and
// environment variables, lowest precedence first. path names the file; when
// empty the SWIMSCRAPER_CONFIG variable is consulted.
func Load(path string) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// SWIMSCRAPER_PAGE_DELAY_MS -> page_delay_ms
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration struct and the gender list
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	for _, g := range cfg.GenderList() {
		if g != "M" && g != "F" {
			return fmt.Errorf("config validation failed: invalid gender %q in genders", g)
		}
	}
	return nil
}

// GenderList splits Genders into upper-cased codes
func (c *Config) GenderList() []string {
	var out []string
	for _, g := range strings.Split(c.Genders, ",") {
		if g = strings.ToUpper(strings.TrimSpace(g)); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// Timeout is TimeoutMS as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// PageDelay is PageDelayMS as a duration
func (c *Config) PageDelay() time.Duration {
	return time.Duration(c.PageDelayMS) * time.Millisecond
}
