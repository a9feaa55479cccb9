// Package config loads and validates the site configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Subject is one of the languages being compared. ID keys front matter
// entries; Name is the display form used on rendered pages.
type Subject struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Config is the site configuration loaded from langmatrix.yaml.
type Config struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	BaseURL     string    `yaml:"base_url"`
	ContentDir  string    `yaml:"content_dir"`
	OutputDir   string    `yaml:"output_dir"`
	Subjects    []Subject `yaml:"subjects"`
}

// ErrNoSubjects indicates the configuration declares no subjects to compare.
var ErrNoSubjects = errors.New("configuration must declare at least one subject")

// Load reads the configuration file, applies environment overrides, and
// validates the result. A .env file next to the working directory is loaded
// first when present; existing process environment always wins.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv overrides scalar fields from LANGMATRIX_* environment variables.
func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"LANGMATRIX_TITLE":       &c.Title,
		"LANGMATRIX_BASE_URL":    &c.BaseURL,
		"LANGMATRIX_CONTENT_DIR": &c.ContentDir,
		"LANGMATRIX_OUTPUT_DIR":  &c.OutputDir,
	}
	for key, field := range overrides {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
}

func (c *Config) normalize() {
	if c.Title == "" {
		c.Title = "Language Feature Matrix"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.OutputDir == "" {
		c.OutputDir = "site"
	}
	for i := range c.Subjects {
		if c.Subjects[i].Name == "" {
			c.Subjects[i].Name = c.Subjects[i].ID
		}
	}
}

func (c *Config) validate() error {
	if len(c.Subjects) == 0 {
		return ErrNoSubjects
	}
	seen := make(map[string]struct{}, len(c.Subjects))
	for _, s := range c.Subjects {
		if s.ID == "" {
			return errors.New("subject id must not be empty")
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate subject id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// SubjectIDs returns the configured subject ids in declaration order.
func (c *Config) SubjectIDs() []string {
	ids := make([]string, len(c.Subjects))
	for i, s := range c.Subjects {
		ids[i] = s.ID
	}
	return ids
}

const defaultConfig = `# langmatrix site configuration
title: "Language Feature Matrix"
description: "Feature-by-feature comparison"
base_url: "http://localhost:1380"
content_dir: "content"
output_dir: "site"

# Subjects are the languages being compared, in display order.
subjects:
  - id: rust
    name: Rust
  - id: swift
    name: Swift
`

// Init writes a starter configuration file. It refuses to overwrite an
// existing file unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}
	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}
