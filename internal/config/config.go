package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/marcus/modalfocus/internal/suggest"
)

const configFile = ".modalfocus/config.json"

// Config holds the persisted demo settings.
type Config struct {
	Mouse        bool   `json:"mouse"`
	LogFile      string `json:"log_file,omitempty"`
	LogLevel     string `json:"log_level,omitempty"`
	ModalWidth   int    `json:"modal_width,omitempty"`
	Variant      string `json:"variant,omitempty"`
	InitialFocus string `json:"initial_focus,omitempty"`
}

// Keys lists the settable keys in display order.
var Keys = []string{"mouse", "log_file", "log_level", "modal_width", "variant", "initial_focus"}

var variants = []string{"default", "danger", "warning", "info"}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Mouse:    true,
		LogLevel: "info",
		Variant:  "default",
	}
}

// Path returns the config file location under baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

// Load reads the config from disk. Missing keys keep their defaults.
func Load(baseDir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := Path(baseDir)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Set validates value, stores it under key and saves the config.
func Set(baseDir, key, value string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	return Save(baseDir, cfg)
}

// Set stores value under key without saving.
func (c *Config) Set(key, value string) error {
	switch key {
	case "mouse":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("mouse: %w", err)
		}
		c.Mouse = b
	case "log_file":
		c.LogFile = value
	case "log_level":
		if _, err := ParseLevel(value); err != nil {
			return err
		}
		c.LogLevel = strings.ToLower(value)
	case "modal_width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("modal_width: %w", err)
		}
		if n < 0 {
			return fmt.Errorf("modal_width: must not be negative, got %d", n)
		}
		c.ModalWidth = n
	case "variant":
		v := strings.ToLower(value)
		if !contains(variants, v) {
			return fmt.Errorf("variant: must be one of %s, got %q", strings.Join(variants, ", "), value)
		}
		c.Variant = v
	case "initial_focus":
		c.InitialFocus = value
	default:
		if hints := suggest.Word(key, Keys); len(hints) > 0 {
			return fmt.Errorf("unknown config key %q (did you mean %s?)", key, hints[0])
		}
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Get returns the value stored under key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "mouse":
		return strconv.FormatBool(c.Mouse), nil
	case "log_file":
		return c.LogFile, nil
	case "log_level":
		return c.LogLevel, nil
	case "modal_width":
		return strconv.Itoa(c.ModalWidth), nil
	case "variant":
		return c.Variant, nil
	case "initial_focus":
		return c.InitialFocus, nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
