// Package config loads muxer tool settings from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (MUXER_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .muxer.yaml in the current directory
//  2. ~/.config/muxer/config.yaml
//
// The directory candidate list lives in ~/.muxer.rc and is handled by the
// rc package; this file holds tool settings only.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	shellwords "github.com/mattn/go-shellwords"
	"gopkg.in/yaml.v3"
)

// Config holds all muxer settings.
type Config struct {
	// Sources
	RCPath        string `yaml:"rc_path"`         // directory list, default ~/.muxer.rc
	SSHConfigPath string `yaml:"ssh_config_path"` // default ~/.ssh/config
	DisableSSH    bool   `yaml:"disable_ssh"`     // skip ssh hosts entirely
	SSHPrefix     string `yaml:"ssh_prefix"`      // session name prefix for ssh targets

	// Launch
	Command string `yaml:"command"` // command for new directory sessions; empty = shell

	// Picker
	Theme string `yaml:"theme"` // dark, light
	Sort  string `yaml:"sort"`  // frecency, alpha

	// History
	DisableHistory bool   `yaml:"disable_history"`
	HistoryPath    string `yaml:"history_path"` // default ~/.local/state/muxer/history.db

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // comma-separated key=value pairs

	// CommandArgs is Command parsed into argv (not from YAML).
	CommandArgs []string `yaml:"-"`

	// ConfigFile is the path of the loaded config file (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		SSHPrefix: "SSH_",
		Theme:     "dark",
		Sort:      "frecency",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)

	if cfg.Command != "" {
		args, err := shellwords.Parse(cfg.Command)
		if err != nil {
			return nil, fmt.Errorf("invalid command %q: %w", cfg.Command, err)
		}
		cfg.CommandArgs = args
	}

	switch cfg.Sort {
	case "frecency", "alpha":
	default:
		return nil, fmt.Errorf("invalid sort %q (supported: frecency, alpha)", cfg.Sort)
	}

	return cfg, nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	// 1. Current directory
	if data, err := os.ReadFile(".muxer.yaml"); err == nil {
		return ".muxer.yaml", data, nil
	}

	// 2. XDG config dir / ~/.config
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "muxer", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.RCPath != "" {
		cfg.RCPath = file.RCPath
	}
	if file.SSHConfigPath != "" {
		cfg.SSHConfigPath = file.SSHConfigPath
	}
	if file.DisableSSH {
		cfg.DisableSSH = true
	}
	if file.SSHPrefix != "" {
		cfg.SSHPrefix = file.SSHPrefix
	}
	if file.Command != "" {
		cfg.Command = file.Command
	}
	if file.Theme != "" {
		cfg.Theme = file.Theme
	}
	if file.Sort != "" {
		cfg.Sort = file.Sort
	}
	if file.DisableHistory {
		cfg.DisableHistory = true
	}
	if file.HistoryPath != "" {
		cfg.HistoryPath = file.HistoryPath
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("MUXER_RC"); v != "" {
		cfg.RCPath = v
	}
	if v := os.Getenv("MUXER_SSH_CONFIG"); v != "" {
		cfg.SSHConfigPath = v
	}
	if v := os.Getenv("MUXER_DISABLE_SSH"); v == "true" || v == "1" {
		cfg.DisableSSH = true
	}
	if v := os.Getenv("MUXER_SSH_PREFIX"); v != "" {
		cfg.SSHPrefix = v
	}
	if v := os.Getenv("MUXER_COMMAND"); v != "" {
		cfg.Command = v
	}
	if v := os.Getenv("MUXER_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("MUXER_SORT"); v != "" {
		cfg.Sort = v
	}
	if v := os.Getenv("MUXER_DISABLE_HISTORY"); v == "true" || v == "1" {
		cfg.DisableHistory = true
	}
	if v := os.Getenv("MUXER_HISTORY_PATH"); v != "" {
		cfg.HistoryPath = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}
