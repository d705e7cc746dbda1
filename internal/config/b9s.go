package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/b9s/b9s/internal/config/data"
)

// Default values
const (
	DefaultAPITimeout = 15 * time.Second
	DefaultView       = "orders"
	DefaultPageSize   = 25
)

// B9s represents the b9s global configuration.
type B9s struct {
	RefreshRate float32 `yaml:"refreshRate"`
	APITimeout  string  `yaml:"apiTimeout"`
	ReadOnly    bool    `yaml:"readOnly"`
	DefaultView string  `yaml:"defaultView"`
	DefaultEnv  string  `yaml:"defaultEnv"`
	PageSize    int     `yaml:"pageSize"`
	// SearchDebounce is the search debounce delay in milliseconds.
	// Zero selects the built-in default.
	SearchDebounce int         `yaml:"searchDebounce"`
	UI             data.UI     `yaml:"ui"`
	Logger         data.Logger `yaml:"logger"`

	// Internal state (not serialized)
	activeEnv    string
	activeConfig *data.Config
	dir          *data.Dir
	mx           sync.RWMutex
}

// NewB9s creates a B9s with default settings.
func NewB9s() *B9s {
	return &B9s{
		RefreshRate: DefaultRefreshRate,
		APITimeout:  DefaultAPITimeout.String(),
		ReadOnly:    false,
		DefaultView: DefaultView,
		PageSize:    DefaultPageSize,
		dir:         data.NewDir(),
	}
}

// Validate ensures B9s has valid settings.
func (b *B9s) Validate() {
	b.mx.Lock()
	defer b.mx.Unlock()

	if b.RefreshRate <= 0 {
		b.RefreshRate = DefaultRefreshRate
	}

	if b.APITimeout == "" {
		b.APITimeout = DefaultAPITimeout.String()
	}

	if b.DefaultView == "" {
		b.DefaultView = DefaultView
	}

	if b.PageSize <= 0 {
		b.PageSize = DefaultPageSize
	}

	if b.SearchDebounce < 0 {
		b.SearchDebounce = 0
	}
}

// ActiveEnv returns the currently active environment name.
func (b *B9s) ActiveEnv() string {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return b.activeEnv
}

// ActiveConfig returns the current environment-specific configuration.
func (b *B9s) ActiveConfig() *data.Config {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return b.activeConfig
}

// ActivateEnv activates an environment and loads its config.
func (b *B9s) ActivateEnv(env string) (*data.EnvContext, error) {
	if env == "" {
		return nil, fmt.Errorf("environment cannot be empty")
	}

	b.mx.Lock()
	defer b.mx.Unlock()

	cfg, err := b.dir.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config for env %q: %w", env, err)
	}

	b.activeEnv = env
	b.activeConfig = cfg

	return cfg.GetContext(), nil
}

// RecordView persists the active view for the current environment so the
// next session reopens where the user left off.
func (b *B9s) RecordView(name string) error {
	b.mx.Lock()
	defer b.mx.Unlock()

	if b.activeConfig == nil {
		return nil
	}
	envCtx := b.activeConfig.GetContext()
	if envCtx == nil {
		return nil
	}
	envCtx.SetView(&data.View{Active: name})

	return b.dir.Save(b.activeConfig)
}

// Override applies CLI flag overrides to the configuration.
func (b *B9s) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	b.mx.Lock()
	defer b.mx.Unlock()

	if flags.RefreshRate != nil && *flags.RefreshRate > 0 {
		b.RefreshRate = *flags.RefreshRate
	}

	if flags.ReadOnly != nil {
		b.ReadOnly = *flags.ReadOnly
	}

	// Write flag overrides ReadOnly
	if flags.Write != nil && *flags.Write {
		b.ReadOnly = false
	}

	if flags.Headless != nil && *flags.Headless {
		b.UI.Headless = true
	}

	if flags.Env != nil && *flags.Env != "" {
		b.DefaultEnv = *flags.Env
	}

	if flags.PageSize != nil && *flags.PageSize > 0 {
		b.PageSize = *flags.PageSize
	}
}

// GetAPITimeout returns the parsed API timeout duration.
func (b *B9s) GetAPITimeout() (time.Duration, error) {
	b.mx.RLock()
	timeoutStr := b.APITimeout
	b.mx.RUnlock()

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid API timeout %q: %w", timeoutStr, err)
	}

	return timeout, nil
}

// setActiveConfig sets the active configuration (internal).
func (b *B9s) setActiveConfig(cfg *data.Config) {
	b.mx.Lock()
	defer b.mx.Unlock()
	b.activeConfig = cfg
}
