package controllers

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/autolicense/internal/domain/entities"
)

var errNoArguments = errors.New("this command takes no arguments")

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	baseURL    string
	timeout    time.Duration
	dryRun     bool
	verbose    bool
}

// AddGlobalFlags registers the persistent flags on the root command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("base-url", "",
		"GitHub API root (default: "+entities.DefaultBaseURL+")")
	cmd.PersistentFlags().Duration("timeout", 0,
		"Per-request HTTP timeout, 0 keeps the transport default")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
}

func readGlobalFlags(cmd *cobra.Command) globalFlags {
	configPath, _ := cmd.Flags().GetString("config")
	baseURL, _ := cmd.Flags().GetString("base-url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return globalFlags{
		configPath: configPath,
		baseURL:    baseURL,
		timeout:    timeout,
		dryRun:     dryRun,
		verbose:    verbose,
	}
}

// applyTo overrides settings with the flags that were explicitly set.
func (f globalFlags) applyTo(settings *entities.Settings) {
	if f.baseURL != "" {
		settings.BaseURL = f.baseURL
	}
	if f.timeout > 0 {
		settings.Timeout = f.timeout
	}
}

// loadSettings reads the config file named by --config or found in the
// default locations.
func loadSettings(flags globalFlags) (*entities.Settings, error) {
	cfgPath := flags.configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = entities.FindConfigFile()
		if err != nil {
			return nil, err
		}
	}

	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		return nil, err
	}
	flags.applyTo(settings)
	return settings, nil
}
