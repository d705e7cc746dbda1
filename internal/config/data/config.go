package data

import "sync"

// Config represents an environment-specific configuration loaded from disk.
// This is the data structure for ~/.local/share/b9s/envs/{env}/config.yaml
type Config struct {
	Context *EnvContext  `yaml:"b9s"`
	mx      sync.RWMutex `yaml:"-"`
}

// NewConfig creates a new Config with the given environment context.
func NewConfig(ctx *EnvContext) *Config {
	return &Config{
		Context: ctx,
	}
}

// NewEmptyConfig creates a Config with nil context.
func NewEmptyConfig() *Config {
	return &Config{}
}

// GetContext returns the environment context, thread-safe.
func (c *Config) GetContext() *EnvContext {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.Context
}

// SetContext sets the environment context, thread-safe.
func (c *Config) SetContext(ctx *EnvContext) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.Context = ctx
}

// Validate ensures the Config has valid settings.
func (c *Config) Validate() {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Context != nil {
		c.Context.Validate()
	}
}

// Save writes the config to disk at the given path.
func (c *Config) Save(path string) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return SaveYAML(path, c)
}

// Load reads the config from disk at the given path.
func (c *Config) Load(path string) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if err := LoadYAML(path, c); err != nil {
		return err
	}

	return nil
}
