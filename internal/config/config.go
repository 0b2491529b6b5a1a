package config

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/titanous/json5"
)

// Config holds user preferences.
type Config struct {
	DefaultStyle string `json:"default_style,omitempty"`
	Platform     string `json:"platform,omitempty"`
	EditorURL    string `json:"editor_url,omitempty"`
	AutoCopy     *bool  `json:"auto_copy,omitempty"`
	CacheTTL     string `json:"cache_ttl,omitempty"`
}

// knownKey describes a config key and its optional validator.
type knownKey struct {
	validate func(string) error
}

var knownKeys = map[string]knownKey{
	"default_style": {validate: validateEnum(
		"bold", "circle", "extrabold", "fraktur",
		"italic", "monospace", "script", "smallcaps",
	)},
	"platform": {validate: validateEnum(
		"twitter", "threads", "mastodon", "instagram", "linkedin", "facebook",
	)},
	"editor_url": {validate: validateURL},
	"auto_copy":  {validate: validateBool},
	"cache_ttl":  {validate: validateDuration},
}

func validateEnum(allowed ...string) func(string) error {
	return func(val string) error {
		for _, a := range allowed {
			if val == a {
				return nil
			}
		}

		return fmt.Errorf("must be one of: %s", strings.Join(allowed, ", "))
	}
}

func validateBool(val string) error {
	if val != "true" && val != "false" {
		return fmt.Errorf("must be true or false")
	}

	return nil
}

func validateDuration(val string) error {
	_, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}

	return nil
}

func validateURL(val string) error {
	u, err := url.Parse(val)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must be an http(s) URL")
	}

	return nil
}

// CacheTTLDuration parses CacheTTL as a time.Duration.
// Returns 24h on empty or invalid values.
func (cfg *Config) CacheTTLDuration() time.Duration {
	if cfg.CacheTTL == "" {
		return 24 * time.Hour
	}

	d, err := time.ParseDuration(cfg.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}

	return d
}

// Load reads config from the JSON5 file at path.
// Returns an empty Config if the file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes config as pretty-printed JSON atomically.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	data = append(data, '\n')

	return atomicWrite(path, data)
}

// atomicWrite writes data to path via temp-file + rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmp.Name()

	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	tmpPath = "" // prevent deferred cleanup

	return nil
}

// Get returns the string value for a config key and whether it is set.
func (cfg *Config) Get(key string) (string, bool) {
	switch key {
	case "default_style":
		return cfg.DefaultStyle, cfg.DefaultStyle != ""
	case "platform":
		return cfg.Platform, cfg.Platform != ""
	case "editor_url":
		return cfg.EditorURL, cfg.EditorURL != ""
	case "auto_copy":
		if cfg.AutoCopy == nil {
			return "", false
		}

		return fmt.Sprintf("%t", *cfg.AutoCopy), true
	case "cache_ttl":
		return cfg.CacheTTL, cfg.CacheTTL != ""
	default:
		return "", false
	}
}

// Set sets a config key to a value after validation.
func (cfg *Config) Set(key, value string) error {
	kk, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %s (valid keys: %s)", key, strings.Join(KnownKeys(), ", "))
	}

	if kk.validate != nil {
		if err := kk.validate(value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
	}

	switch key {
	case "default_style":
		cfg.DefaultStyle = value
	case "platform":
		cfg.Platform = value
	case "editor_url":
		cfg.EditorURL = value
	case "auto_copy":
		b := value == "true"
		cfg.AutoCopy = &b
	case "cache_ttl":
		cfg.CacheTTL = value
	}

	return nil
}

// Unset removes a config key (resets to zero/nil).
func (cfg *Config) Unset(key string) error {
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("unknown config key: %s (valid keys: %s)", key, strings.Join(KnownKeys(), ", "))
	}

	switch key {
	case "default_style":
		cfg.DefaultStyle = ""
	case "platform":
		cfg.Platform = ""
	case "editor_url":
		cfg.EditorURL = ""
	case "auto_copy":
		cfg.AutoCopy = nil
	case "cache_ttl":
		cfg.CacheTTL = ""
	}

	return nil
}

// KnownKeys returns a sorted list of valid config key names.
func KnownKeys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// --- Context helpers ---

type ctxKey struct{}

// WithConfig stores a Config in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext retrieves the Config from the context.
func FromContext(ctx context.Context) *Config {
	if v := ctx.Value(ctxKey{}); v != nil {
		if cfg, ok := v.(*Config); ok {
			return cfg
		}
	}

	return nil
}
