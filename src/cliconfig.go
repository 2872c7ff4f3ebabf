package tinytcl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// CLIConfig holds settings loaded from ~/.tinytcl/config.toml
type CLIConfig struct {
	Color       string `toml:"color"` // "auto", "always" or "never"
	HistoryFile string `toml:"history_file"`
	Debug       bool   `toml:"debug"`
	OptLevel    int    `toml:"opt_level"`
}

// DefaultCLIConfig returns the settings used when no file exists
func DefaultCLIConfig() CLIConfig {
	history := ""
	if dir := ConfigDir(); dir != "" {
		history = filepath.Join(dir, "history")
	}
	return CLIConfig{
		Color:       "auto",
		HistoryFile: history,
		OptLevel:    int(OptimizeBasic),
	}
}

// ConfigDir returns the path to the ~/.tinytcl directory
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tinytcl")
}

// ConfigFilePath returns the path to ~/.tinytcl/config.toml
func ConfigFilePath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// LoadCLIConfig decodes the settings file at path over the defaults. A
// missing file yields the defaults and no error.
func LoadCLIConfig(path string) (CLIConfig, error) {
	cfg := DefaultCLIConfig()
	if path == "" {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultCLIConfig(), nil
	}
	if err != nil {
		return DefaultCLIConfig(), fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("load %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	switch cfg.Color {
	case "auto", "always", "never":
	case "":
		cfg.Color = "auto"
	default:
		return cfg, fmt.Errorf("load %s: color must be auto, always or never, not %q", path, cfg.Color)
	}
	if strings.HasPrefix(cfg.HistoryFile, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.HistoryFile = filepath.Join(home, cfg.HistoryFile[2:])
		}
	}
	return cfg, nil
}

const defaultCLIConfigText = `# tinytcl CLI configuration
# This file is automatically created on first run

# Colored error output: "auto", "always" or "never"
color = "auto"

# REPL history, empty to disable
history_file = "~/.tinytcl/history"

# Debug logging
debug = false

# 0 parses every script, 1 caches parsed scripts
opt_level = 1
`

// WriteDefaultCLIConfig creates the settings file at path when it is missing
func WriteDefaultCLIConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultCLIConfigText), 0o644)
}
