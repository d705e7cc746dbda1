package config

import (
	"github.com/b9s/b9s/internal/config/data"
)

// DefaultRefreshRate is the default data refresh interval in seconds.
const DefaultRefreshRate = 2.0

// DefaultLogLevel is the default logging level.
const DefaultLogLevel = "info"

// NewFlags creates a new Flags instance with default values set.
func NewFlags() *data.Flags {
	refreshRate := float32(DefaultRefreshRate)
	logLevel := DefaultLogLevel
	logFile := AppLogFile
	headless := false
	command := ""
	readOnly := false
	write := false
	env := ""
	endpoint := ""
	pageSize := DefaultPageSize

	return &data.Flags{
		RefreshRate: &refreshRate,
		LogLevel:    &logLevel,
		LogFile:     &logFile,
		Headless:    &headless,
		Command:     &command,
		ReadOnly:    &readOnly,
		Write:       &write,
		Env:         &env,
		Endpoint:    &endpoint,
		PageSize:    &pageSize,
	}
}

// IsBoolSet returns true if a bool pointer is non-nil and true.
func IsBoolSet(b *bool) bool {
	return b != nil && *b
}

// IsStringSet returns true if a string pointer is non-nil and non-empty.
func IsStringSet(s *string) bool {
	return s != nil && *s != ""
}
