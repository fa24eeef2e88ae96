package controllers

import (
	"context"
	"fmt"
	"strconv"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/autolicense/internal/domain/commands"
	"github.com/rios0rios0/autolicense/internal/domain/entities"
)

const (
	minScanArgs = 3
	maxScanArgs = 5
)

// ScanController handles the root command with positional credentials.
type ScanController struct {
	command commands.Run
}

// NewScanController creates a new ScanController.
func NewScanController(command commands.Run) *ScanController {
	return &ScanController{command: command}
}

// GetBind returns the Cobra command metadata for the scan controller.
func (it *ScanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "autolicense USERNAME PASSWORD ORGANIZATION [LICENSE] [POPULATE]",
		Short: "Open pull requests adding a license to unlicensed repositories",
		Long: `Scans every repository of a GitHub organization and, for each one without
a license, creates a branch, commits a LICENSE file and opens a pull request.

LICENSE is a license template key (default: apache-2.0).
POPULATE set to true creates the test repositories repo1, repo2 (licensed)
and repo3 before scanning.

Usage modes:
  autolicense USERNAME PASSWORD ORGANIZATION    Scan with basic auth
  autolicense run                               Scan using a config file
  autolicense cleanup --yes                     Delete the test repositories`,
	}
}

// AddFlags adds no flags; the scan uses the global ones.
func (it *ScanController) AddFlags(_ *cobra.Command) {}

// Execute validates the positional arguments and runs the scan.
func (it *ScanController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) < minScanArgs || len(args) > maxScanArgs {
		_ = cmd.Usage()
		return fmt.Errorf(
			"between %d and %d arguments are expected (username, password, organization, [license], [populate]), got %d",
			minScanArgs, maxScanArgs, len(args),
		)
	}

	settings := &entities.Settings{
		Username:     args[0],
		Password:     args[1],
		Organization: args[2],
	}
	if len(args) > minScanArgs {
		settings.License = args[3]
	}

	populate := false
	if len(args) > minScanArgs+1 {
		parsed, err := strconv.ParseBool(args[4])
		if err != nil {
			return fmt.Errorf("invalid POPULATE value %q: %w", args[4], err)
		}
		populate = parsed
	}

	flags := readGlobalFlags(cmd)
	flags.applyTo(settings)
	settings.ApplyDefaults()
	if err := entities.ValidateSettings(settings); err != nil {
		return err
	}

	return runAndReport(cmd.Context(), it.command, settings, commands.RunOptions{
		DryRun:   flags.dryRun,
		Verbose:  flags.verbose,
		Populate: populate,
	})
}

// runAndReport executes a run and logs every per-repository failure.
// Those failures do not fail the process; only run-level errors do.
func runAndReport(
	ctx context.Context,
	command commands.Run,
	settings *entities.Settings,
	opts commands.RunOptions,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := command.Execute(ctx, settings, opts)
	if err != nil {
		return err
	}

	for _, failure := range report.Failures() {
		logger.Warnf("Repository %q was not remediated: %v", failure.Repository, failure.Err)
	}
	return nil
}
