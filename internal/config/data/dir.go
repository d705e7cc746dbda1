package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// defaultEnvsDir is set by the config package during initialization.
// This avoids a circular import between data and config packages.
var defaultEnvsDir string

// SetDefaultEnvsDir sets the default environments directory.
// This should be called by the config package during initialization.
func SetDefaultEnvsDir(dir string) {
	defaultEnvsDir = dir
}

// Dir manages the per-environment configuration directory structure.
// It handles loading and saving environment-specific configurations.
type Dir struct {
	root string // Base directory for all environments
	mx   sync.RWMutex
}

// NewDir creates a new Dir using the default environments directory.
// Note: SetDefaultEnvsDir must be called before using NewDir.
func NewDir() *Dir {
	return &Dir{
		root: defaultEnvsDir,
	}
}

// NewDirAt creates a new Dir at the specified root path.
func NewDirAt(root string) *Dir {
	return &Dir{
		root: root,
	}
}

// EnvPath returns the path to an environment's configuration directory.
// Returns: {root}/{env}/
func (d *Dir) EnvPath(env string) string {
	d.mx.RLock()
	defer d.mx.RUnlock()

	return filepath.Join(d.root, SanitizeEnvSubpath(env))
}

// ConfigPath returns the path to an environment's config.yaml file.
// Returns: {root}/{env}/config.yaml
func (d *Dir) ConfigPath(env string) string {
	return filepath.Join(d.EnvPath(env), "config.yaml")
}

// EnsureEnvDir creates the environment directory if it doesn't exist.
func (d *Dir) EnsureEnvDir(env string) error {
	d.mx.RLock()
	envPath := d.EnvPath(env)
	d.mx.RUnlock()

	_, err := EnsureDirPath(envPath, 0700)
	return err
}

// Load loads the configuration for an environment.
// Creates a new default config if the file doesn't exist.
func (d *Dir) Load(env string) (*Config, error) {
	d.mx.RLock()
	configPath := d.ConfigPath(env)
	d.mx.RUnlock()

	ctx := NewEnvContext(env)
	cfg := &Config{
		Context: ctx,
	}

	if err := LoadYAML(configPath, ctx); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ctx.Validate()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load env config: %w", err)
	}

	ctx.Validate()
	return cfg, nil
}

// Save saves the configuration for an environment.
func (d *Dir) Save(cfg *Config) error {
	if cfg == nil || cfg.Context == nil {
		return fmt.Errorf("cannot save nil config or context")
	}

	d.mx.RLock()
	configPath := d.ConfigPath(cfg.Context.EnvName)
	d.mx.RUnlock()

	if err := d.EnsureEnvDir(cfg.Context.EnvName); err != nil {
		return fmt.Errorf("failed to ensure env directory: %w", err)
	}

	if err := SaveYAML(configPath, cfg.Context); err != nil {
		return fmt.Errorf("failed to save env config: %w", err)
	}

	return nil
}

// ListEnvs returns all environments that have saved configs.
func (d *Dir) ListEnvs() ([]*EnvContext, error) {
	d.mx.RLock()
	root := d.root
	d.mx.RUnlock()

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read envs directory: %w", err)
	}

	var envs []*EnvContext

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		configPath := filepath.Join(root, entry.Name(), "config.yaml")
		if _, err := os.Stat(configPath); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}

		envs = append(envs, NewEnvContext(entry.Name()))
	}

	return envs, nil
}
