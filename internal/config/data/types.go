// Package data provides configuration data types and interfaces for the b9s application.
package data

// Flags represents CLI command-line flags for the b9s application.
type Flags struct {
	RefreshRate *float32 // Refresh rate in seconds
	LogLevel    *string  // Log level (e.g., debug, info, warn, error)
	LogFile     *string  // Path to log file
	Headless    *bool    // Hide the hint menu
	Command     *string  // Command to execute
	ReadOnly    *bool    // Run in read-only mode
	Write       *bool    // Enable write operations
	Env         *string  // API environment to use
	Endpoint    *string  // Override the active environment's API URL
	PageSize    *int     // Rows requested per page
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse bool   `yaml:"enableMouse"`
	Headless    bool   `yaml:"headless"`
	Crumbsless  bool   `yaml:"crumbsless"`
	Skin        string `yaml:"skin"`
}

// Logger represents logging configuration settings.
type Logger struct {
	LogLevel string `yaml:"logLevel"`
	LogFile  string `yaml:"logFile"`
}

// NewFlags creates a new Flags instance with all pointer fields initialized.
// All pointers are allocated but their values are not set.
func NewFlags() *Flags {
	return &Flags{
		RefreshRate: new(float32),
		LogLevel:    new(string),
		LogFile:     new(string),
		Headless:    new(bool),
		Command:     new(string),
		ReadOnly:    new(bool),
		Write:       new(bool),
		Env:         new(string),
		Endpoint:    new(string),
		PageSize:    new(int),
	}
}
