package config

import (
	"os"
	"path/filepath"

	"github.com/b9s/b9s/internal/config/data"
)

const AppName = "b9s"

var (
	// AppConfigDir is ~/.config/b9s
	AppConfigDir string

	// AppDataDir is ~/.local/share/b9s
	AppDataDir string

	// AppStateDir is ~/.local/state/b9s
	AppStateDir string

	// AppConfigFile is ~/.config/b9s/b9s.yaml
	AppConfigFile string

	// AppEnvsFile is ~/.config/b9s/environments.ini
	AppEnvsFile string

	// AppHotkeysFile is ~/.config/b9s/hotkeys.yaml
	AppHotkeysFile string

	// AppAliasesFile is ~/.config/b9s/aliases.yaml
	AppAliasesFile string

	// AppSkinsDir is ~/.config/b9s/skins
	AppSkinsDir string

	// AppEnvConfigsDir is ~/.local/share/b9s/envs
	AppEnvConfigsDir string

	// AppLogFile is ~/.local/state/b9s/b9s.log
	AppLogFile string

	// AppDumpsDir is ~/.local/state/b9s/screen-dumps
	AppDumpsDir string
)

// InitLocs initializes all application directory paths.
// It respects XDG environment variables if set.
func InitLocs() error {
	home := userHomeDir()

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	AppConfigDir = filepath.Join(configHome, AppName)
	AppDataDir = filepath.Join(dataHome, AppName)
	AppStateDir = filepath.Join(stateHome, AppName)

	AppConfigFile = filepath.Join(AppConfigDir, "b9s.yaml")
	AppEnvsFile = filepath.Join(AppConfigDir, "environments.ini")
	AppHotkeysFile = filepath.Join(AppConfigDir, "hotkeys.yaml")
	AppAliasesFile = filepath.Join(AppConfigDir, "aliases.yaml")
	AppSkinsDir = filepath.Join(AppConfigDir, "skins")

	AppEnvConfigsDir = filepath.Join(AppDataDir, "envs")
	AppLogFile = filepath.Join(AppStateDir, "b9s.log")
	AppDumpsDir = filepath.Join(AppStateDir, "screen-dumps")

	// Set default envs directory in data package to avoid circular import
	data.SetDefaultEnvsDir(AppEnvConfigsDir)

	dirs := []string{
		AppConfigDir,
		AppDataDir,
		AppStateDir,
		AppSkinsDir,
		AppEnvConfigsDir,
		AppDumpsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	return nil
}

// InitLogLoc ensures the log directory exists
func InitLogLoc() error {
	logDir := filepath.Dir(AppLogFile)
	return os.MkdirAll(logDir, 0700)
}

// userHomeDir returns the user's home directory
func userHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return home
}
