package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the daemon configuration. Zero fields are filled from Default.
type Config struct {
	Listen         string        `yaml:"listen"`
	Slots          int           `yaml:"slots"`
	ClientTimeout  time.Duration `yaml:"client_timeout"`
	StatusInterval time.Duration `yaml:"status_interval"`
	TickInterval   time.Duration `yaml:"tick_interval"`
	AliveInterval  time.Duration `yaml:"alive_interval"`
	LogLevel       string        `yaml:"log_level"`
	Display        DisplayConfig `yaml:"display"`
	Network        NetworkConfig `yaml:"network"`
}

type DisplayConfig struct {
	Digits   int `yaml:"digits"`
	Decimals int `yaml:"decimals"`
}

// NetworkConfig is the static address stored at provisioning time.
// RSTNW wipes it.
type NetworkConfig struct {
	IP      string `yaml:"ip,omitempty"`
	Gateway string `yaml:"gateway,omitempty"`
	Subnet  string `yaml:"subnet,omitempty"`
}

func (n NetworkConfig) IsStatic() bool {
	return n.IP != ""
}

func Default() *Config {
	return &Config{
		Listen:         ":23",
		Slots:          4,
		ClientTimeout:  5000 * time.Millisecond,
		StatusInterval: 500 * time.Millisecond,
		TickInterval:   10 * time.Millisecond,
		AliveInterval:  5000 * time.Millisecond,
		LogLevel:       "info",
		Display: DisplayConfig{
			Digits:   4,
			Decimals: 2,
		},
	}
}

// Load reads the YAML file at path on top of the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Listen == "":
		return errors.New("listen address is empty")
	case c.Slots <= 0:
		return fmt.Errorf("slots must be positive, got %d", c.Slots)
	case c.ClientTimeout <= 0:
		return fmt.Errorf("client_timeout must be positive, got %s", c.ClientTimeout)
	case c.TickInterval <= 0:
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	case c.Display.Digits <= 0 || c.Display.Digits > 18:
		return fmt.Errorf("display digits out of range: %d", c.Display.Digits)
	case c.Display.Decimals < 0 || c.Display.Decimals >= c.Display.Digits:
		return fmt.Errorf("display decimals out of range: %d", c.Display.Decimals)
	}
	return nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResetNetwork forgets the stored network settings and persists the change.
func (c *Config) ResetNetwork(path string) error {
	c.Network = NetworkConfig{}
	if path == "" {
		return nil
	}
	return c.Save(path)
}
