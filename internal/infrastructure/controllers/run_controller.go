package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/autolicense/internal/domain/commands"
	"github.com/rios0rios0/autolicense/internal/domain/entities"
)

// RunController handles the "run" subcommand (config file mode).
type RunController struct {
	command commands.Run
}

// NewRunController creates a new RunController.
func NewRunController(command commands.Run) *RunController {
	return &RunController{command: command}
}

// GetBind returns the Cobra command metadata for the run controller.
func (it *RunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run",
		Short: "Scan the organization using a config file",
		Long: `Fetch the configured license template, list the repositories of the
configured organization and open a pull request adding the license to
each repository that has none.

This is the mode intended to be used in a cronjob. Credentials may be
given inline, as ${ENV_VAR} references, or as paths to files.`,
	}
}

// AddFlags adds the run-specific flags to the given Cobra command.
func (it *RunController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("populate", false, "Create the configured fixture repositories before scanning")
}

// Execute loads the settings and runs the scan.
func (it *RunController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errNoArguments
	}

	flags := readGlobalFlags(cmd)
	populate, _ := cmd.Flags().GetBool("populate")

	settings, err := loadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nSpecify one with --config or create autolicense.yaml", err)
	}

	logger.Info("Starting autolicense run...")
	return runAndReport(cmd.Context(), it.command, settings, commands.RunOptions{
		DryRun:   flags.dryRun,
		Verbose:  flags.verbose,
		Populate: populate,
	})
}
