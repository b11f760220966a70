// Package config loads the YAML configuration file and generates a commented
// default when none exists. Command-line flags override file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Phoenix-code14/iPhoenix/internal/username"
)

// DefaultPath is where the config file is looked up unless --config points
// elsewhere.
const DefaultPath = "config.yaml"

type Config struct {
	Probe struct {
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		Concurrency    int    `yaml:"concurrency"`
		UserAgent      string `yaml:"user_agent"`
		PlatformsFile  string `yaml:"platforms_file"`
	} `yaml:"probe"`

	APIKeys struct {
		BreachDirectory string `yaml:"breach_directory"`
	} `yaml:"api_keys"`

	Output struct {
		CaseDir string `yaml:"case_dir"`
	} `yaml:"output"`
}

// Load reads the config at path, generating a default file first when the
// path is the default location and nothing exists there yet. A missing file
// at an explicit non-default path is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			if err := generateDefault(path); err != nil {
				return nil, fmt.Errorf("generating default config: %w", err)
			}
			data, err = os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading generated config: %w", err)
			}
		} else {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the built-in configuration used when no file is wanted.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Probe.TimeoutSeconds <= 0 {
		c.Probe.TimeoutSeconds = 10
	}
	if c.Probe.Concurrency <= 0 {
		c.Probe.Concurrency = username.DefaultConcurrency
	}
	if c.Probe.UserAgent == "" {
		c.Probe.UserAgent = username.DefaultUserAgent
	}
	if c.Output.CaseDir == "" {
		c.Output.CaseDir = "cases"
	}
}

// generateDefault writes a commented starter config.
func generateDefault(path string) error {
	defaultConfigContent := `# config.yaml

# Username probing settings
probe:
  timeout_seconds: 10     # Per-request timeout
  concurrency: 10         # Worker pool width
  user_agent: ""          # Leave empty for the built-in identifying agent
  platforms_file: ""      # Optional JSON file overriding the built-in platform registry

# API keys (leave empty to skip the corresponding check)
api_keys:
  breach_directory: ""    # BreachDirectory API key for email breach lookups

# Output settings
output:
  case_dir: "cases"       # Directory for saved case files
`
	return os.WriteFile(path, []byte(defaultConfigContent), 0o644)
}
