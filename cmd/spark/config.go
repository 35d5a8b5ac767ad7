package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// replConfig holds the optional REPL settings read from ~/.spark.toml.
type replConfig struct {
	HistoryFile string `toml:"history_file"`
	Prompt      string `toml:"prompt"`
	Color       bool   `toml:"color"`
}

// loadReplConfig returns the REPL configuration, merging ~/.spark.toml over
// the defaults. A missing file is not an error.
func loadReplConfig() replConfig {
	cfg := replConfig{
		Prompt: "spark> ",
		Color:  true,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	cfg.HistoryFile = filepath.Join(home, ".spark_history")

	path := filepath.Join(home, ".spark.toml")
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: cannot read %s: %v\n", path, err)
	}
	return cfg
}
