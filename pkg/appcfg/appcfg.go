package appcfg

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel             string        `yaml:"log_level"` // "debug"|"info"|"warn"|"error"
	LogFile              string        `yaml:"log_file"`  // optional, may contain {start} and {pid}
	HideSecretsInConsole bool          `yaml:"hide_secrets_in_console"`
	Cores                int           `yaml:"cores"`   // workers, 0 = all CPUs
	Network              string        `yaml:"network"` // default network for queries without one
	UpdateAmount         uint64        `yaml:"update_amount"`
	StatusInterval       time.Duration `yaml:"status_interval"`
	LowPriority          bool          `yaml:"low_priority"`
	Source               string        `yaml:"source"` // "private"|"mnemonics"
	DeriveN              int           `yaml:"derive_n"`
	Passphrase           string        `yaml:"passphrase"`
}

const (
	SourcePrivKey  = "private"
	SourceMnemonic = "mnemonics"
)

// Default is the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open app config %q: %w", path, err)
	}
	defer f.Close()

	var c Config
	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode app yaml %q: %w", path, err)
	}

	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("app config %q: %w", path, err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.UpdateAmount == 0 {
		c.UpdateAmount = 1000
	}
	if c.StatusInterval == 0 {
		c.StatusInterval = 10 * time.Second
	}
	if c.Source == "" {
		c.Source = SourcePrivKey
	}
	if c.DeriveN == 0 {
		c.DeriveN = 5
	}
}

func (c *Config) validate() error {
	if c.Cores < 0 {
		return errors.New("cores must be >= 0")
	}
	if c.DeriveN < 0 {
		return errors.New("derive_n must be >= 0")
	}
	if c.StatusInterval < 0 {
		return errors.New("status_interval must be >= 0")
	}
	switch c.Source {
	case SourcePrivKey, SourceMnemonic:
	default:
		return fmt.Errorf("source must be one of: %s, %s", SourcePrivKey, SourceMnemonic)
	}
	return nil
}
