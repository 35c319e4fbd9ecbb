// Package config — .ressync.yaml project file support.
//
// When a .ressync.yaml file exists in the project root, it names the
// project, points at the resource root directory, and declares the
// locale tags the project is expected to carry. Everything in it is
// optional; a missing file means defaults throughout.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ressync/ressync/langtag"
)

// FileName is the default config file name.
const FileName = ".ressync.yaml"

// Config is the top-level .ressync.yaml structure.
type Config struct {
	// Project is the project identifier reported in export outcomes.
	// Defaults to the project directory's name.
	Project string `yaml:"project,omitempty"`
	// Root is the resource root directory, relative to the config file
	// (default ".").
	Root string `yaml:"root,omitempty"`
	// Languages lists the locale tags the project targets. Used for
	// status reporting only; import picks up whatever is on disk.
	Languages []string `yaml:"languages,omitempty"`
}

// Default returns the configuration used when no .ressync.yaml exists.
func Default(dir string) *Config {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return &Config{Project: filepath.Base(abs), Root: "."}
}

// Load reads .ressync.yaml from dir. It returns (nil, nil) when the
// file does not exist so callers can fall back to Default.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Project == "" {
		cfg.Project = Default(dir).Project
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}

	for _, tag := range cfg.Languages {
		if tag == "" || !langtag.Valid(tag) {
			return nil, fmt.Errorf("%s: invalid locale tag %q", path, tag)
		}
	}

	return &cfg, nil
}

// AbsRoot resolves the resource root against the config directory.
func (c *Config) AbsRoot(dir string) string {
	if filepath.IsAbs(c.Root) {
		return c.Root
	}
	return filepath.Join(dir, c.Root)
}
