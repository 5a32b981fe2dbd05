package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/swapify/pkg/swapify"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig is the content of swapify.yaml.
type ProjectConfig struct {
	Model   string   `yaml:"model,omitempty"`
	VarName string   `yaml:"var_name,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
	Workers int      `yaml:"workers,omitempty"`
}

const ConfigFileName = "swapify.yaml"

// Environment variables overriding swapify.yaml.
const (
	EnvModel   = "SWAPIFY_MODEL"
	EnvVarName = "SWAPIFY_VAR_NAME"
)

// Load reads swapify.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a swapify config from an explicit path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", swapify.ErrInvalidConfig, path, err)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: %s: workers must not be negative", swapify.ErrInvalidConfig, path)
	}
	return &cfg, nil
}

// ApplyEnv overrides the model and variable name from the environment.
// lookup is usually os.LookupEnv. Empty values are ignored.
func (c *ProjectConfig) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvModel); ok && v != "" {
		c.Model = v
	}
	if v, ok := lookup(EnvVarName); ok && v != "" {
		c.VarName = v
	}
}
