package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds albumfeed's runtime settings.
type Config struct {
	FeedURL           string
	Country           string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	LogLevel          string
	LogFormat         string
	LogFile           string
	ListenAddr        string
	UserAgent         string
}

const (
	defaultConfigPath        = "~/.config/albumfeed/config.toml"
	defaultLogFile           = "~/.local/share/albumfeed/albumfeed.log"
	defaultCountry           = "us"
	defaultRequestTimeout    = 10 * time.Second
	defaultRequestsPerSecond = 2.0
	defaultLogLevel          = "info"
	defaultLogFormat         = "text"
	defaultListenAddr        = "127.0.0.1:8080"
	defaultUserAgent         = "albumfeed/0.1"
)

// Environment variables that override file values.
const (
	EnvFeedURL           = "ALBUMFEED_FEED_URL"
	EnvCountry           = "ALBUMFEED_COUNTRY"
	EnvLogLevel          = "ALBUMFEED_LOG_LEVEL"
	EnvLogFormat         = "ALBUMFEED_LOG_FORMAT"
	EnvListenAddr        = "ALBUMFEED_LISTEN_ADDR"
	EnvRequestsPerSecond = "ALBUMFEED_REQUESTS_PER_SECOND"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Country:           defaultCountry,
		RequestTimeout:    defaultRequestTimeout,
		RequestsPerSecond: defaultRequestsPerSecond,
		LogLevel:          defaultLogLevel,
		LogFormat:         defaultLogFormat,
		LogFile:           mustExpand(defaultLogFile),
		ListenAddr:        defaultListenAddr,
		UserAgent:         defaultUserAgent,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
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

	var raw struct {
		FeedURL               string  `toml:"feed_url"`
		Country               string  `toml:"country"`
		RequestTimeoutSeconds int     `toml:"request_timeout_seconds"`
		RequestsPerSecond     float64 `toml:"requests_per_second"`
		LogLevel              string  `toml:"log_level"`
		LogFormat             string  `toml:"log_format"`
		LogFile               string  `toml:"log_file"`
		ListenAddr            string  `toml:"listen_addr"`
		UserAgent             string  `toml:"user_agent"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.FeedURL = strings.TrimSpace(raw.FeedURL)
	cfg.Country = orDefault(raw.Country, defaultCountry)
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if raw.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = raw.RequestsPerSecond
	}
	cfg.LogLevel = orDefault(raw.LogLevel, defaultLogLevel)
	cfg.LogFormat = orDefault(raw.LogFormat, defaultLogFormat)
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))
	cfg.ListenAddr = orDefault(raw.ListenAddr, defaultListenAddr)
	cfg.UserAgent = orDefault(raw.UserAgent, defaultUserAgent)

	return cfg, nil
}

// LoadEnvFile adds the variables of a dotenv file to the process environment
// without replacing ones already set. A blank path or a missing file is not
// an error.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := godotenv.Load(resolved); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with ALBUMFEED_* variables found through lookup.
// Unparsable numbers are reported and leave the field unchanged.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvFeedURL); ok {
		cfg.FeedURL = v
	}
	if v, ok := get(EnvCountry); ok {
		cfg.Country = v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvLogFormat); ok {
		cfg.LogFormat = v
	}
	if v, ok := get(EnvListenAddr); ok {
		cfg.ListenAddr = v
	}
	if v, ok := get(EnvRequestsPerSecond); ok {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return cfg, fmt.Errorf("parse %s=%q: invalid rate", EnvRequestsPerSecond, v)
		}
		cfg.RequestsPerSecond = rps
	}
	return cfg, nil
}

// ResolvedFeedURL returns FeedURL, or the storefront feed for Country when
// FeedURL is unset.
func (c Config) ResolvedFeedURL() string {
	if u := strings.TrimSpace(c.FeedURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	country := strings.ToLower(orDefault(c.Country, defaultCountry))
	return "https://itunes.apple.com/" + country + "/rss/topalbums"
}

func orDefault(v, def string) string {
	if trimmed := strings.TrimSpace(v); trimmed != "" {
		return trimmed
	}
	return def
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
