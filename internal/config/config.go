// Package config carries board settings. Defaults live in code, a YAML
// file can override them, and command-line flags override both.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Canvas size in board units.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Background fill for exports.
	Background string `yaml:"background"`

	// HistoryDepth bounds the undo stack. 0 means pick from available
	// memory at startup.
	HistoryDepth int `yaml:"history_depth"`

	// FPS drives the animation frame loop and frame-sequence exports.
	FPS int `yaml:"fps"`

	// DPI used when rasterizing imported PDF pages.
	ImportDPI int `yaml:"import_dpi"`

	// Workers bounds concurrent frame rasterization during export.
	Workers int `yaml:"workers"`
}

func Default() Config {
	return Config{
		Width:      1280,
		Height:     720,
		Background: "#ffffff",
		FPS:        30,
		ImportDPI:  150,
		Workers:    4,
	}
}

// LoadFile reads a YAML config over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
