// Package config loads the mlnotes YAML configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/viant/mlnotes/normalize"
)

// Index kinds.
const (
	IndexBrute = "brute"
	IndexCover = "cover"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// Config holds classification defaults. Command-line flags override it.
type Config struct {
	K              int      `yaml:"k"`
	Normalize      string   `yaml:"normalize,omitempty"`
	Features       []string `yaml:"features,omitempty"`
	SkipDegenerate bool     `yaml:"skip_degenerate,omitempty"`
	Index          string   `yaml:"index,omitempty"`
	Database       string   `yaml:"database,omitempty"`
	Set            string   `yaml:"set,omitempty"`
	LogLevel       string   `yaml:"log_level,omitempty"`
}

// Default returns k=1, no normalization, brute-force search and info logging.
func Default() *Config {
	return &Config{
		K:         1,
		Normalize: "none",
		Index:     IndexBrute,
		LogLevel:  "info",
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "config: cannot expand ~")
	}
	return filepath.Join(home, p[1:]), nil
}

// Load reads path over the defaults. An empty or missing path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "config: cannot read %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: invalid YAML in %s", path)
	}
	if cfg.Database, err = ExpandPath(cfg.Database); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Validate checks k, the strategy name and the index kind.
func (c *Config) Validate() error {
	if c.K < 1 {
		return errors.Wrapf(ErrInvalid, "k must be positive, got %d", c.K)
	}
	if _, err := normalize.ParseStrategy(c.Normalize); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	switch c.Index {
	case "", IndexBrute, IndexCover:
	default:
		return errors.Wrapf(ErrInvalid, "unknown index %q", c.Index)
	}
	return nil
}
