package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the node's build version, set via linker flags at build time.
var Version string

// Config is the top-level node configuration, decoded from a single YAML
// document with one section per subsystem.
type Config struct {
	Mempool     Mempool     `yaml:"Mempool"`
	AddressBook AddressBook `yaml:"AddressBook"`
	Logger      Logger      `yaml:"Logger"`
}

// Validate returns an error if any section of the configuration is not
// usable.
func (c Config) Validate() error {
	if err := c.Mempool.Validate(); err != nil {
		return fmt.Errorf("Mempool: %w", err)
	}
	if err := c.AddressBook.Validate(); err != nil {
		return fmt.Errorf("AddressBook: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("Logger: %w", err)
	}
	return nil
}

// LoadFile reads and decodes the YAML config at path, rejecting unknown
// fields, then validates every section.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}

	cfg := Config{
		AddressBook: AddressBook{
			PeerConnectionLimit: 125,
		},
		Mempool: Mempool{
			CostBytesLimit: 80_000_000,
		},
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
