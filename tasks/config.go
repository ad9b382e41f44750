package tasks

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// BackendConfig configures a single task backend.
type BackendConfig struct {
	// Backend names the backend implementation. "dummy" is the only
	// built-in backend.
	Backend string `yaml:"backend"`
	// Queues lists the queues the backend accepts. Empty allows any.
	Queues []string `yaml:"queues"`
}

// Config maps backend aliases to their configuration.
type Config struct {
	Backends map[string]BackendConfig `yaml:"backends"`
}

// LoadConfig reads a YAML task configuration. Unknown fields are
// rejected.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("tasks: cannot decode config: %w", err)
	}
	return &cfg, nil
}

// Open constructs the configured backends, keyed by alias.
func (c *Config) Open() (map[string]Backend, error) {
	backends := make(map[string]Backend, len(c.Backends))
	for alias, bc := range c.Backends {
		switch bc.Backend {
		case "dummy":
			backends[alias] = NewDummyBackend(alias, bc.Queues...)
		default:
			return nil, fmt.Errorf("tasks: unknown backend %q for alias %q", bc.Backend, alias)
		}
	}
	return backends, nil
}
