package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/fakeyudi/hollowlog/internal/catalog"
)

// Config holds all configurable hollowlog settings.
type Config struct {
	DefaultTarget string `json:"default_target" koanf:"default_target"` // target id used on first run
	Order         string `json:"order" koanf:"order"`                   // "newest" | "oldest"
	DataDir       string `json:"data_dir" koanf:"data_dir"`             // override XDG data dir
	LogLevel      string `json:"log_level" koanf:"log_level"`
	DefaultFormat string `json:"default_format" koanf:"default_format"` // export: "markdown" | "json"
}

// EnvPrefix is the prefix of environment overrides, e.g. HOLLOWLOG_ORDER.
const EnvPrefix = "HOLLOWLOG_"

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		DefaultTarget: catalog.DefaultTargetID,
		Order:         "newest",
		LogLevel:      "warn",
		DefaultFormat: "markdown",
	}
}

// GlobalPath returns ~/.config/hollowlog/config.json.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hollowlog", "config.json"), nil
}

// LoadGlobal reads ~/.config/hollowlog/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path, true)
}

// LoadProject reads .hollowlogconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".hollowlogconfig", false)
}

// LoadEnv reads HOLLOWLOG_* environment variables.
// Returns nil (no error) when none are set.
func LoadEnv() (*Config, error) {
	k := koanf.New(".")
	// HOLLOWLOG_DEFAULT_TARGET -> default_target
	provider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if len(k.Keys()) == 0 {
		return nil, nil
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return &cfg, nil
}

// SaveGlobal writes cfg to ~/.config/hollowlog/config.json, creating the
// directory if needed.
func SaveGlobal(cfg Config) error {
	path, err := GlobalPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge layers configs over the defaults, later layers taking precedence.
// Usual order is global, project, env. Nil layers and empty fields are skipped.
func Merge(layers ...*Config) Config {
	result := Defaults()
	for _, l := range layers {
		if l == nil {
			continue
		}
		if l.DefaultTarget != "" {
			result.DefaultTarget = l.DefaultTarget
		}
		if l.Order != "" {
			result.Order = l.Order
		}
		if l.DataDir != "" {
			result.DataDir = l.DataDir
		}
		if l.LogLevel != "" {
			result.LogLevel = l.LogLevel
		}
		if l.DefaultFormat != "" {
			result.DefaultFormat = l.DefaultFormat
		}
	}
	return result
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
