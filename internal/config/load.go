package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the home directory when no path is given.
const DefaultFile = ".tloxrc.yaml"

// Load reads settings with ENV interpolation and validates them.
// Search order: explicit path > TLOX_CONFIG env > ~/.tloxrc.yaml. When no
// file is found the defaults are returned.
func Load(configPath string, getenv func(string) string) (*Config, error) {
	path, err := resolveConfigPath(configPath, getenv)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		data = interpolateEnv(data, getenv)

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		cfg.Path = path
	}

	cfg.REPL.History = expandHome(cfg.REPL.History, getenv)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings for errors.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.REPL.Prompt == "" {
		errs = append(errs, "repl.prompt must not be empty")
	}
	if cfg.REPL.HistoryLimit < 0 {
		errs = append(errs, fmt.Sprintf("invalid repl.history_limit: %d (must be >= 0)", cfg.REPL.HistoryLimit))
	}
	if cfg.Watch.Debounce <= 0 {
		errs = append(errs, fmt.Sprintf("invalid watch.debounce: %s (must be positive)", cfg.Watch.Debounce))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// resolveConfigPath finds the settings file to use. An empty result means
// none was requested or found.
func resolveConfigPath(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if envPath := getenv("TLOX_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("TLOX_CONFIG file not found: %s", envPath)
		}
		return envPath, nil
	}

	if home := homeDir(getenv); home != "" {
		path := filepath.Join(home, DefaultFile)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func homeDir(getenv func(string) string) string {
	if home := getenv("HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// expandHome replaces a leading "~" with the home directory.
func expandHome(path string, getenv func(string) string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home := homeDir(getenv)
	if home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// envPattern matches ${VAR} or ${VAR:-default}.
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} patterns with environment values.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		value := getenv(string(parts[1]))
		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}
		return []byte(value)
	})
}
