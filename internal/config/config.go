// Package config loads texsplit settings from built-in defaults, an optional
// texsplit.yaml project file and TEXSPLIT_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the project file looked up in the root when no explicit
// config path is given.
const DefaultFile = "texsplit.yaml"

type Config struct {
	Root string `yaml:"root"`

	// Build artefacts, relative to Root
	TOC   string `yaml:"toc"`
	SecID string `yaml:"secid"`
	Aux   string `yaml:"aux"`
	Main  string `yaml:"main"`

	// Splitting
	Output             string `yaml:"output"`
	Extension          string `yaml:"extension"`
	IncludeSubsections bool   `yaml:"include_subsections"`
	RunValidation      bool   `yaml:"validate"`
	MaxInputDepth      int    `yaml:"max_input_depth"`
}

func Default() Config {
	return Config{
		Root:          ".",
		TOC:           "main.toc",
		SecID:         "main.secid",
		Aux:           "main.aux",
		Main:          "main.tex",
		Output:        "output",
		Extension:     ".tex",
		RunValidation: true,
		MaxInputDepth: 10,
	}
}

// Load builds a Config for the project at root. When path is empty the
// root's texsplit.yaml is read if present; an explicit path must exist.
// Environment variables override the file.
func Load(root, path string) (Config, error) {
	cfg := Default()
	if root != "" {
		cfg.Root = root
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.Root, DefaultFile)
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Root = envOr("TEXSPLIT_ROOT", c.Root)
	c.Output = envOr("TEXSPLIT_OUTPUT", c.Output)
	c.Extension = envOr("TEXSPLIT_EXTENSION", c.Extension)
	c.IncludeSubsections = envBool("TEXSPLIT_INCLUDE_SUBSECTIONS", c.IncludeSubsections)
	c.RunValidation = envBool("TEXSPLIT_VALIDATE", c.RunValidation)
	c.MaxInputDepth = envInt("TEXSPLIT_MAX_INPUT_DEPTH", c.MaxInputDepth)
}

func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	if c.MaxInputDepth <= 0 {
		return fmt.Errorf("max_input_depth must be positive, got %d", c.MaxInputDepth)
	}
	return nil
}

// Path resolves a project-relative path against Root.
func (c Config) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Root, rel)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
