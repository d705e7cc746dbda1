package data

// FeatureGates controls optional features
type FeatureGates struct {
	// Refunds enables issuing refunds on orders
	Refunds bool `yaml:"refunds"`

	// Notifications enables sending notifications from the dashboard
	Notifications bool `yaml:"notifications"`

	// Exports enables exporting table data to disk
	Exports bool `yaml:"exports"`
}

// Gate names for optional features.
const (
	GateRefunds       = "refunds"
	GateNotifications = "notifications"
	GateExports       = "exports"
)

// NewFeatureGates creates FeatureGates with default settings (all disabled)
func NewFeatureGates() FeatureGates {
	return FeatureGates{
		Refunds:       false,
		Notifications: false,
		Exports:       false,
	}
}

// Enabled reports whether the named gate is on. Unknown gates are on.
func (f FeatureGates) Enabled(name string) bool {
	switch name {
	case GateRefunds:
		return f.Refunds
	case GateNotifications:
		return f.Notifications
	case GateExports:
		return f.Exports
	default:
		return true
	}
}

// Merge overlays another FeatureGates on top of this one
// Only enabled features in other will be applied
func (f *FeatureGates) Merge(other FeatureGates) {
	if other.Refunds {
		f.Refunds = true
	}
	if other.Notifications {
		f.Notifications = true
	}
	if other.Exports {
		f.Exports = true
	}
}
