package api

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/ini.v1"
)

// EnvSettings abstracts the store of configured backend environments.
type EnvSettings interface {
	CurrentEnvName() (string, error)
	EnvNames() ([]string, error)
	GetEnv(name string) (*Environment, error)
	SetActiveEnv(name string) error
}

// Environment is one configured backend, e.g. staging or production.
type Environment struct {
	Name    string
	URL     string
	Token   string
	Default bool
}

// EnvManager loads environments from an ini file and tracks the active one.
type EnvManager struct {
	envs      map[string]*Environment
	activeEnv string
	mx        sync.RWMutex
}

// NewEnvManager reads the environments file and resolves the default
// environment. At least one environment must be configured.
func NewEnvManager(path string) (*EnvManager, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("environments file %q: %w", path, err)
	}
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load environments file: %w", err)
	}

	m := &EnvManager{envs: make(map[string]*Environment)}
	for _, section := range f.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		env := &Environment{
			Name:  section.Name(),
			URL:   section.Key("url").String(),
			Token: section.Key("token").String(),
		}
		if section.HasKey("default") {
			env.Default, _ = section.Key("default").Bool()
		}
		if env.URL == "" {
			return nil, fmt.Errorf("environment %q has no url", env.Name)
		}
		m.envs[env.Name] = env
		if env.Default && m.activeEnv == "" {
			m.activeEnv = env.Name
		}
	}
	if len(m.envs) == 0 {
		return nil, fmt.Errorf("no environments configured in %q", path)
	}
	if m.activeEnv == "" {
		names, _ := m.EnvNames()
		m.activeEnv = names[0]
	}

	return m, nil
}

// DefaultEnvFile returns the standard environments file location, honoring
// B9S_ENVS as an override.
func DefaultEnvFile() string {
	if p := os.Getenv("B9S_ENVS"); p != "" {
		return p
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "b9s", "environments.ini")
}

// CurrentEnvName returns the name of the active environment.
func (m *EnvManager) CurrentEnvName() (string, error) {
	m.mx.RLock()
	defer m.mx.RUnlock()

	if m.activeEnv == "" {
		return "", fmt.Errorf("no active environment set")
	}
	return m.activeEnv, nil
}

// EnvNames returns all configured environment names, sorted.
func (m *EnvManager) EnvNames() ([]string, error) {
	m.mx.RLock()
	defer m.mx.RUnlock()

	names := make([]string, 0, len(m.envs))
	for name := range m.envs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// GetEnv retrieves an environment by name.
func (m *EnvManager) GetEnv(name string) (*Environment, error) {
	m.mx.RLock()
	defer m.mx.RUnlock()

	env, ok := m.envs[name]
	if !ok {
		return nil, fmt.Errorf("environment %q not found", name)
	}
	clone := *env

	return &clone, nil
}

// SetActiveEnv makes name the active environment.
func (m *EnvManager) SetActiveEnv(name string) error {
	m.mx.Lock()
	defer m.mx.Unlock()

	if _, ok := m.envs[name]; !ok {
		return fmt.Errorf("environment %q not found", name)
	}
	m.activeEnv = name

	return nil
}

// OverrideURL replaces the active environment's URL. Backs the --endpoint
// CLI flag.
func (m *EnvManager) OverrideURL(rawURL string) error {
	m.mx.Lock()
	defer m.mx.Unlock()

	if rawURL == "" {
		return fmt.Errorf("endpoint override is empty")
	}
	env, ok := m.envs[m.activeEnv]
	if !ok {
		return fmt.Errorf("no active environment to override")
	}
	env.URL = rawURL

	return nil
}
