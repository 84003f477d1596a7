// Package config loads lsh's own settings: history size, prompt string,
// and the resource guard's thresholds. Nothing here is consulted by the
// lexer, parser, or executor themselves — the shell's grammar and dispatch
// rules are fixed, only these operational knobs are configurable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is lsh's on-disk settings file, ~/.lsh/config.yaml.
//
// GuardWarnPercent and GuardAbortPercent are read and saved with the rest
// of the file, but the pipeline resource guard does not consult them: it
// always uses its own fixed 25% warn and 80% abort thresholds.
type Config struct {
	Prompt            string `yaml:"prompt"`
	HistorySize       int    `yaml:"history_size"`
	GuardWarnPercent  int    `yaml:"guard_warn_percent"`
	GuardAbortPercent int    `yaml:"guard_abort_percent"`
}

// DefaultPrompt is the byte-exact prompt spec.md's REPL driver prints.
const DefaultPrompt = "$ "

func Default() *Config {
	return &Config{
		Prompt:            DefaultPrompt,
		HistorySize:       1000,
		GuardWarnPercent:  25,
		GuardAbortPercent: 80,
	}
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lsh"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func HistoryPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// Load reads the config file if present, falling back to defaults for
// anything it doesn't set, then applies environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		f, openErr := os.Open(path)
		if openErr == nil {
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		} else if !os.IsNotExist(openErr) {
			return nil, openErr
		}
	}

	if prompt := os.Getenv("LSH_PROMPT"); prompt != "" {
		cfg.Prompt = prompt
	}
	if n, err := strconv.Atoi(os.Getenv("LSH_HISTORY_SIZE")); err == nil {
		cfg.HistorySize = n
	}

	return cfg, nil
}

// Save writes the config to ~/.lsh/config.yaml.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := Path()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
