package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/rios0rios0/autolicense/internal/domain/entities"
	"github.com/rios0rios0/autolicense/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/autolicense/internal/infrastructure/repositories"
)

// Run is the interface for the run command (license scan and remediation).
type Run interface {
	Execute(ctx context.Context, settings *entities.Settings, opts RunOptions) (*entities.RunReport, error)
}

// RunOptions holds runtime options for a single run.
type RunOptions struct {
	DryRun   bool
	Verbose  bool
	Populate bool // Create the configured fixture repositories before scanning
}

// RunCommand orchestrates the license flow:
// fetch license text -> list repositories -> check each -> branch, file, pull request.
type RunCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
}

// NewRunCommand creates a new RunCommand with the given registry.
func NewRunCommand(providerRegistry *infraRepos.ProviderRegistry) *RunCommand {
	return &RunCommand{
		providerRegistry: providerRegistry,
	}
}

// Execute runs one sequential pass over the organization. Only provider setup,
// license template and repository listing failures abort the run; everything
// that goes wrong for a single repository is recorded in the report.
func (it *RunCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	runOpts RunOptions,
) (*entities.RunReport, error) {
	if runOpts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	provider, err := it.providerRegistry.Get(settings.Provider, settings.Credentials(), settings.ClientOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %q: %w", settings.Provider, err)
	}

	remediation := settings.RemediationOptions()
	logger.Infof("Checking organization %q on %s for licenses", provider.Organization(), provider.Name())
	logger.Infof(
		"Repositories with no license will get a pull request adding a(n) %q license",
		remediation.LicenseName,
	)

	if runOpts.Populate {
		it.populate(ctx, provider, settings.Fixtures, runOpts.DryRun)
	}

	license, err := provider.FetchLicenseTemplate(ctx, remediation.LicenseName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch license template %q: %w", remediation.LicenseName, err)
	}

	repos, err := provider.ListRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories of %q: %w", provider.Organization(), err)
	}
	logger.Infof("Found %d repositories in %q", len(repos), provider.Organization())

	excluded := sets.New[string](settings.Exclude...)
	report := &entities.RunReport{}
	for _, repo := range repos {
		report.Add(it.processRepository(ctx, provider, repo, license.Body, remediation, excluded, runOpts))
	}

	logger.Infof(
		"Run complete: %d repositories checked, %d already licensed, %d pull requests created, %d failures",
		len(report.Results),
		report.Count(entities.OutcomeLicensed),
		report.Count(entities.OutcomeRemediated),
		report.Count(entities.OutcomeFailed),
	)
	return report, nil
}

// processRepository checks a single repository and remediates it when needed.
func (it *RunCommand) processRepository(
	ctx context.Context,
	provider repositories.OrganizationRepository,
	repo entities.Repository,
	licenseText string,
	remediation entities.RemediationOptions,
	excluded sets.Set[string],
	runOpts RunOptions,
) entities.RepositoryResult {
	result := entities.RepositoryResult{Repository: repo.Name}

	if excluded.Has(repo.Name) {
		logger.Debugf("Skipping excluded repository %q", repo.Name)
		result.Outcome = entities.OutcomeExcluded
		return result
	}

	hasLicense, err := provider.HasLicense(ctx, repo)
	if err != nil {
		logger.WithError(err).WithField("repository", repo.Name).Error("Failed to check license")
		result.Outcome = entities.OutcomeFailed
		result.Err = fmt.Errorf("failed to check license: %w", err)
		return result
	}
	if hasLicense {
		logger.Debugf("Repository %q already has a license", repo.Name)
		result.Outcome = entities.OutcomeLicensed
		return result
	}

	if runOpts.DryRun {
		logger.Infof("[dry-run] Would create pull request for %q", repo.Name)
		result.Outcome = entities.OutcomeWouldRemediate
		return result
	}

	logger.Infof("Creating pull request for %q...", repo.Name)
	pr, err := remediate(ctx, provider, repo, licenseText, remediation)
	if err != nil {
		logger.WithError(err).WithField("repository", repo.Name).Error("Failed to add license")
		result.Outcome = entities.OutcomeFailed
		result.Err = err
		return result
	}

	logger.Infof("Creating pull request for %q... done (%s)", repo.Name, pr.URL)
	result.Outcome = entities.OutcomeRemediated
	result.PullRequest = pr
	return result
}

// remediate runs branch -> file -> pull request, stopping at the first failure.
func remediate(
	ctx context.Context,
	provider repositories.OrganizationRepository,
	repo entities.Repository,
	licenseText string,
	remediation entities.RemediationOptions,
) (*entities.PullRequest, error) {
	message := remediation.Message()

	if err := provider.CreateBranch(ctx, repo, entities.BranchRequest{
		BaseBranch: remediation.BaseBranch,
		NewBranch:  remediation.FeatureBranch,
	}); err != nil {
		return nil, fmt.Errorf("failed to create branch %q: %w", remediation.FeatureBranch, err)
	}

	if err := provider.CreateFile(ctx, repo, entities.FileRequest{
		Branch:  remediation.FeatureBranch,
		Path:    remediation.LicensePath,
		Content: licenseText,
		Message: message,
	}); err != nil {
		return nil, fmt.Errorf("failed to create %q: %w", remediation.LicensePath, err)
	}

	pr, err := provider.CreatePullRequest(ctx, repo, entities.PullRequestInput{
		SourceBranch: remediation.FeatureBranch,
		TargetBranch: remediation.BaseBranch,
		Title:        message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	return pr, nil
}

// populate creates the fixture repositories. Failures are logged and skipped.
func (it *RunCommand) populate(
	ctx context.Context,
	provider repositories.OrganizationRepository,
	fixtures []entities.Fixture,
	dryRun bool,
) {
	seen := sets.New[string]()
	for _, fixture := range fixtures {
		if seen.Has(fixture.Name) {
			continue
		}
		seen.Insert(fixture.Name)

		license := fixture.License
		if license == "" {
			license = "no"
		}
		if dryRun {
			logger.Infof("[dry-run] Would create repository %q with %s license", fixture.Name, license)
			continue
		}

		logger.Infof("Creating new repository %q with %s license...", fixture.Name, license)
		if err := provider.CreateRepository(ctx, fixture.Name, fixture.License); err != nil {
			logger.WithError(err).WithField("repository", fixture.Name).Error("Failed to create repository")
			continue
		}
		logger.Infof("Creating new repository %q with %s license... done", fixture.Name, license)
	}
}
