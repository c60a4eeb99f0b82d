// Package config loads the client configuration file and watches the
// pieces of it that can change while the client runs.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the twoface.yaml file. Flags override anything set here.
type Config struct {
	Host       string          `yaml:"host"`
	Port       int             `yaml:"port"`
	Theme      string          `yaml:"theme"`
	Scrollback int             `yaml:"scrollback"`
	Highlights string          `yaml:"highlights"`
	Windows    map[string]bool `yaml:"windows"`
	Echo       bool            `yaml:"echo"`
	Log        string          `yaml:"log"`
}

// Default is the configuration used when no file exists: a Lich detached
// client on the usual local port, every side window but thoughts visible.
func Default() Config {
	return Config{
		Host:       "127.0.0.1",
		Port:       8000,
		Theme:      "ivory",
		Scrollback: 2000,
		Echo:       true,
		Windows: map[string]bool{
			"room":      true,
			"inventory": true,
			"spells":    true,
			"thoughts":  false,
		},
	}
}

// Load reads the YAML config at path over the defaults. A missing file is
// not an error; keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Scrollback < 100 {
		cfg.Scrollback = 100
	}
	return cfg, nil
}

// Addr is the relay address to dial.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
