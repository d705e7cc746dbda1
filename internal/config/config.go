package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/b9s/b9s/internal/api"
	"github.com/b9s/b9s/internal/config/data"
)

// Config is the root configuration for the application.
type Config struct {
	B9s      *B9s `yaml:"b9s"`
	conn     api.Connection
	settings api.EnvSettings
	mx       sync.RWMutex
}

// NewConfig creates a new Config with the given environment settings.
func NewConfig(settings api.EnvSettings) *Config {
	return &Config{
		B9s:      NewB9s(),
		settings: settings,
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, the current config is kept.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !force {
			return nil
		}
		return fmt.Errorf("config file does not exist: %s", path)
	}

	if err := data.LoadYAML(path, c); err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if c.B9s != nil {
		c.B9s.Validate()
	}

	return nil
}

// Save saves the configuration to the given path.
// If force is false, only saves if the file already exists.
func (c *Config) Save(force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	path := AppConfigFile
	if path == "" {
		return fmt.Errorf("no config file path configured")
	}

	_, err := os.Stat(path)
	fileExists := err == nil

	if !force && !fileExists {
		return nil
	}

	if err := data.SaveYAML(path, c); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}

// Refine applies CLI flags and environment settings to determine the final configuration.
// Environment precedence: CLI --env > config defaultEnv > settings default.
func (c *Config) Refine(flags *data.Flags, settings api.EnvSettings) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.B9s == nil {
		return fmt.Errorf("config.B9s is nil")
	}

	c.settings = settings

	env := ""
	if flags != nil && flags.Env != nil && *flags.Env != "" {
		env = *flags.Env
	} else if c.B9s.DefaultEnv != "" {
		env = c.B9s.DefaultEnv
	} else {
		current, err := settings.CurrentEnvName()
		if err != nil {
			return fmt.Errorf("failed to get default environment: %w", err)
		}
		env = current
	}

	// Verify the environment exists
	if _, err := settings.GetEnv(env); err != nil {
		return fmt.Errorf("environment %q not found: %w", env, err)
	}

	if _, err := c.B9s.ActivateEnv(env); err != nil {
		return fmt.Errorf("failed to activate environment %q: %w", env, err)
	}

	if err := settings.SetActiveEnv(env); err != nil {
		return fmt.Errorf("failed to set active environment %q: %w", env, err)
	}

	if flags != nil {
		c.B9s.Override(flags)
	}

	return nil
}

// Connection returns the API connection.
func (c *Config) Connection() api.Connection {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.conn
}

// SetConnection sets the API connection.
func (c *Config) SetConnection(conn api.Connection) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.conn = conn
}

// Settings returns the environment settings.
func (c *Config) Settings() api.EnvSettings {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.settings
}
