package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings wayfare reads from config.toml.
type Config struct {
	APIURL          string
	DisplayTimeZone string
	Location        *time.Location
	PageSize        int
	MaxResults      int
	LookupDebounce  time.Duration
	LookupRate      float64
	LookupBurst     int
	LookupCacheTTL  time.Duration
	LogFile         string
	LogLevel        string
}

const (
	defaultConfigPath     = "~/.config/wayfare/config.toml"
	defaultAPIURL         = "http://127.0.0.1:8080"
	defaultTimeZone       = "UTC"
	defaultPageSize       = 15
	defaultMaxResults     = 15
	defaultDebounceMS     = 400
	defaultLookupRate     = 5
	defaultLookupBurst    = 5
	defaultCacheTTLSecond = 300
	defaultLogFile        = "~/.local/state/wayfare/wayfare.log"
	defaultLogLevel       = "info"
	maxResultsLimit       = 250
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:          defaultAPIURL,
		DisplayTimeZone: defaultTimeZone,
		Location:        time.UTC,
		PageSize:        defaultPageSize,
		MaxResults:      defaultMaxResults,
		LookupDebounce:  defaultDebounceMS * time.Millisecond,
		LookupRate:      defaultLookupRate,
		LookupBurst:     defaultLookupBurst,
		LookupCacheTTL:  defaultCacheTTLSecond * time.Second,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
	}
}

type rawConfig struct {
	APIURL          string   `toml:"api_url"`
	DisplayTimeZone string   `toml:"display_time_zone"`
	PageSize        *int     `toml:"page_size"`
	MaxResults      *int     `toml:"max_results"`
	DebounceMS      *int     `toml:"lookup_debounce_ms"`
	LookupRate      *float64 `toml:"lookup_rate_per_second"`
	LookupBurst     *int     `toml:"lookup_burst"`
	CacheTTLSeconds *int     `toml:"lookup_cache_ttl_seconds"`
	LogFile         string   `toml:"log_file"`
	LogLevel        string   `toml:"log_level"`
}

// Load reads the config at path, falling back to defaults when the file is
// missing. Blank values use their defaults; out-of-range values are errors.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.apply(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", resolved, err)
	}
	return cfg, nil
}

func (c *Config) apply(raw rawConfig) error {
	if v := strings.TrimSpace(raw.APIURL); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(raw.DisplayTimeZone); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return fmt.Errorf("display_time_zone: %w", err)
		}
		c.DisplayTimeZone = v
		c.Location = loc
	}
	if raw.PageSize != nil {
		if *raw.PageSize < 1 {
			return fmt.Errorf("page_size must be positive, got %d", *raw.PageSize)
		}
		c.PageSize = *raw.PageSize
	}
	if raw.MaxResults != nil {
		if *raw.MaxResults < 1 || *raw.MaxResults > maxResultsLimit {
			return fmt.Errorf("max_results must be between 1 and %d, got %d", maxResultsLimit, *raw.MaxResults)
		}
		c.MaxResults = *raw.MaxResults
	}
	if raw.DebounceMS != nil {
		if *raw.DebounceMS < 0 {
			return fmt.Errorf("lookup_debounce_ms cannot be negative")
		}
		c.LookupDebounce = time.Duration(*raw.DebounceMS) * time.Millisecond
	}
	if raw.LookupRate != nil {
		if *raw.LookupRate <= 0 {
			return fmt.Errorf("lookup_rate_per_second must be positive")
		}
		c.LookupRate = *raw.LookupRate
	}
	if raw.LookupBurst != nil {
		if *raw.LookupBurst < 1 {
			return fmt.Errorf("lookup_burst must be positive")
		}
		c.LookupBurst = *raw.LookupBurst
	}
	if raw.CacheTTLSeconds != nil {
		if *raw.CacheTTLSeconds < 0 {
			return fmt.Errorf("lookup_cache_ttl_seconds cannot be negative")
		}
		c.LookupCacheTTL = time.Duration(*raw.CacheTTLSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		c.LogLevel = v
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
