package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/autolicense/internal/domain/commands"
	"github.com/rios0rios0/autolicense/internal/domain/entities"
)

// CleanupController handles the "cleanup" subcommand.
type CleanupController struct {
	command commands.Cleanup
}

// NewCleanupController creates a new CleanupController.
func NewCleanupController(command commands.Cleanup) *CleanupController {
	return &CleanupController{command: command}
}

// GetBind returns the Cobra command metadata for the cleanup controller.
func (it *CleanupController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "cleanup",
		Short: "Delete the fixture repositories",
		Long: `Permanently delete the fixture repositories listed in the config file
(repo1, repo2 and repo3 by default). Nothing is deleted unless --yes is given.`,
	}
}

// AddFlags adds the cleanup-specific flags to the given Cobra command.
func (it *CleanupController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("yes", false, "Confirm that the fixture repositories must be deleted")
}

// Execute loads the settings and deletes the fixtures.
func (it *CleanupController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errNoArguments
	}

	flags := readGlobalFlags(cmd)
	confirm, _ := cmd.Flags().GetBool("yes")

	settings, err := loadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return it.command.Execute(ctx, settings, commands.CleanupOptions{
		Confirm: confirm,
		DryRun:  flags.dryRun,
	})
}
