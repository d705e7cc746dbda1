package data

import "sync"

// EnvContext represents the configuration context for a specific API environment.
// It stores per-environment settings that override global configuration.
type EnvContext struct {
	EnvName      string       `yaml:"env"`
	ReadOnly     *bool        `yaml:"readOnly,omitempty"`
	Skin         string       `yaml:"skin,omitempty"`
	View         *View        `yaml:"view,omitempty"`
	PageSize     int          `yaml:"pageSize,omitempty"`
	FeatureGates FeatureGates `yaml:"featureGates,omitempty"`
	mx           sync.RWMutex `yaml:"-"`
}

// NewEnvContext creates a new EnvContext with default settings.
func NewEnvContext(env string) *EnvContext {
	return &EnvContext{
		EnvName:      env,
		ReadOnly:     nil,
		Skin:         "",
		View:         nil,
		FeatureGates: NewFeatureGates(),
	}
}

// Validate ensures the EnvContext has valid settings.
func (c *EnvContext) Validate() {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.View != nil {
		c.View.Validate()
	}
	if c.PageSize < 0 {
		c.PageSize = 0
	}
}

// GetView returns the current view, creating a default if nil.
func (c *EnvContext) GetView() *View {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if c.View == nil {
		return NewView()
	}
	return c.View
}

// ActiveView returns the saved view name, empty when none was recorded.
func (c *EnvContext) ActiveView() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if c.View == nil {
		return ""
	}
	return c.View.Active
}

// SetView sets the current view.
func (c *EnvContext) SetView(v *View) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.View = v
}

// IsReadOnly returns whether this context is in read-only mode.
// Returns false if ReadOnly is nil.
func (c *EnvContext) IsReadOnly() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if c.ReadOnly == nil {
		return false
	}
	return *c.ReadOnly
}

// SetReadOnly sets the read-only mode for this context.
func (c *EnvContext) SetReadOnly(ro bool) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.ReadOnly = &ro
}

// ContextName returns the sanitized environment name used for paths.
func (c *EnvContext) ContextName() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return SanitizeEnvSubpath(c.EnvName)
}
