// Package config holds user settings for the tlox command.
package config

import "time"

// Config is the root of the settings file.
type Config struct {
	REPL  REPLConfig  `yaml:"repl"`
	Watch WatchConfig `yaml:"watch"`

	// Path is the file the settings were read from, empty for defaults.
	Path string `yaml:"-"`
}

// REPLConfig configures the interactive prompt.
type REPLConfig struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	History            string `yaml:"history"`       // history file, empty disables
	HistoryLimit       int    `yaml:"history_limit"` // 0 keeps liner's default
}

// WatchConfig configures -watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	Clear    bool          `yaml:"clear"` // clear the terminal before each run
}

// Defaults returns the settings used when no file is found.
func Defaults() *Config {
	return &Config{
		REPL: REPLConfig{
			Prompt:             "> ",
			ContinuationPrompt: ". ",
			History:            "~/.tlox_history",
			HistoryLimit:       1000,
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
	}
}
