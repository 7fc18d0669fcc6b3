package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultConfigName = ".mylox.yml"

// Config is read from a YAML file. Flags given on the command line win.
type Config struct {
	Trace       bool   `yaml:"trace"`
	HistoryFile string `yaml:"history_file"`
	Prompt      string `yaml:"prompt"`
}

func defaultConfig() Config {
	cfg := Config{Prompt: "> "}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".mylox_history")
	}
	return cfg
}

// loadConfig reads path, or ~/.mylox.yml when path is empty. A missing
// default file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, defaultConfigName)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%v: %w", path, err)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	return cfg, nil
}
