package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mastercactapus/cleanerctl/command"
)

type config struct {
	Port        string
	Baud        int
	ReadTimeout time.Duration
	Bridge      string
	Macros      map[string][]command.Block
}

type fileConfig struct {
	Port        string            `toml:"port"`
	Baud        int               `toml:"baud"`
	ReadTimeout string            `toml:"read_timeout"`
	Bridge      string            `toml:"bridge"`
	Macros      map[string]string `toml:"macros"`
}

func defaultConfig() config {
	return config{
		Port:        "/dev/ttyUSB0",
		Baud:        115200,
		ReadTimeout: time.Second,
		Macros:      map[string][]command.Block{},
	}
}

// loadConfig reads the TOML config at path, applying its values over
// the defaults. An empty path returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("port") {
		if p := strings.TrimSpace(raw.Port); p != "" {
			cfg.Port = p
		}
	}

	if meta.IsDefined("baud") {
		cfg.Baud = raw.Baud
	}

	if meta.IsDefined("read_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReadTimeout))
		if err != nil {
			return config{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}

	if meta.IsDefined("bridge") {
		cfg.Bridge = strings.TrimSpace(raw.Bridge)
	}

	for name, text := range raw.Macros {
		blocks, err := command.Parse(text)
		if err != nil {
			return config{}, fmt.Errorf("parse macro %q: %w", name, err)
		}
		cfg.Macros[name] = blocks
	}

	return cfg, nil
}
