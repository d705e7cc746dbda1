package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/b9s/b9s/internal/api"
	"github.com/b9s/b9s/internal/config"
	"github.com/b9s/b9s/internal/config/data"
	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/logging"
	"github.com/b9s/b9s/internal/view"
)

const (
	appName    = "b9s"
	appVersion = "0.1.0"
)

var (
	b9sFlags *data.Flags
	rootCmd  = &cobra.Command{
		Use:   appName,
		Short: "A graphical CLI for commerce backoffice management",
		Long:  `b9s is a terminal-based UI for managing orders, products, promotions and notifications, inspired by k9s.`,
		RunE:  run,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
)

func init() {
	b9sFlags = config.NewFlags()
	initB9sFlags()
	rootCmd.AddCommand(versionCmd)
}

func initB9sFlags() {
	rootCmd.Flags().Float32VarP(b9sFlags.RefreshRate, "refresh", "r", config.DefaultRefreshRate, "Refresh rate in seconds")
	rootCmd.Flags().StringVarP(b9sFlags.LogLevel, "logLevel", "l", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(b9sFlags.LogFile, "logFile", *b9sFlags.LogFile, "Log file path")
	rootCmd.Flags().StringVarP(b9sFlags.Command, "command", "c", "", "Startup command/view")
	rootCmd.Flags().BoolVar(b9sFlags.ReadOnly, "readonly", false, "Enable read-only mode")
	rootCmd.Flags().BoolVar(b9sFlags.Write, "write", false, "Enable write mode (overrides readonly)")
	rootCmd.Flags().BoolVar(b9sFlags.Headless, "headless", false, "Run in headless mode")
	rootCmd.Flags().StringVar(b9sFlags.Env, "env", "", "Backend environment to use")
	rootCmd.Flags().StringVar(b9sFlags.Endpoint, "endpoint", "", "Override the active environment's API endpoint URL")
	rootCmd.Flags().IntVar(b9sFlags.PageSize, "pageSize", config.DefaultPageSize, "Rows requested per page")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// logFile resolves the log destination: CLI flag, then config, then default.
func logFile(cfg *config.Config) string {
	if config.IsStringSet(b9sFlags.LogFile) {
		return *b9sFlags.LogFile
	}
	if cfg.B9s != nil && cfg.B9s.Logger.LogFile != "" {
		return cfg.B9s.Logger.LogFile
	}
	return config.AppLogFile
}

func logLevel(cfg *config.Config) string {
	if config.IsStringSet(b9sFlags.LogLevel) && *b9sFlags.LogLevel != config.DefaultLogLevel {
		return *b9sFlags.LogLevel
	}
	if cfg.B9s != nil && cfg.B9s.Logger.LogLevel != "" {
		return cfg.B9s.Logger.LogLevel
	}
	return config.DefaultLogLevel
}

func run(cmd *cobra.Command, args []string) error {
	if err := config.InitLocs(); err != nil {
		return fmt.Errorf("failed to initialize locations: %w", err)
	}
	if err := config.InitLogLoc(); err != nil {
		return fmt.Errorf("failed to initialize log location: %w", err)
	}

	settings, err := api.NewEnvManager(config.AppEnvsFile)
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	cfg := config.NewConfig(settings)
	if err := cfg.Load(config.AppConfigFile, false); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logging.Init(logFile(cfg), logLevel(cfg)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if err := cfg.Refine(b9sFlags, settings); err != nil {
		return fmt.Errorf("failed to refine configuration: %w", err)
	}

	if config.IsStringSet(b9sFlags.Endpoint) {
		if err := settings.OverrideURL(*b9sFlags.Endpoint); err != nil {
			return fmt.Errorf("failed to override endpoint: %w", err)
		}
	}

	_ = cfg.Save(false)

	timeout, err := cfg.B9s.GetAPITimeout()
	if err != nil {
		timeout = config.DefaultAPITimeout
	}

	apiClient, err := api.NewAPIClient(settings, &api.ClientConfig{
		Env:     cfg.B9s.ActiveEnv(),
		Timeout: timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}
	cfg.SetConnection(apiClient)

	factory := dao.NewFactory(apiClient)

	app := view.NewApp(cfg, appVersion)
	app.SetFactory(factory)
	if config.IsStringSet(b9sFlags.Command) {
		app.SetStartupView(*b9sFlags.Command)
	}

	if err := app.Init(); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if apiClient.CheckConnectivity() {
		app.SetEnvInfo(apiClient.ActiveEnv(), apiClient.BaseURL())
	} else {
		app.Flash().Warnf("No connectivity to environment: %s", apiClient.ActiveEnv())
	}

	return app.Run()
}
