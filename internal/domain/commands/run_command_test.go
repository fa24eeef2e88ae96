//go:build unit

package commands_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/autolicense/internal/domain/commands"
	"github.com/rios0rios0/autolicense/internal/domain/entities"
	"github.com/rios0rios0/autolicense/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/autolicense/internal/infrastructure/repositories"
	"github.com/rios0rios0/autolicense/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/autolicense/test/infrastructure/repositorydoubles"
)

const licenseText = "Apache License\nVersion 2.0, January 2004\n"

func registryFor(provider repositories.OrganizationRepository) *infraRepos.ProviderRegistry {
	registry := infraRepos.NewProviderRegistry()
	registry.Register("github", func(
		_ entities.Credentials,
		_ entities.ClientOptions,
	) (repositories.OrganizationRepository, error) {
		return provider, nil
	})
	return registry
}

func reposNamed(names ...string) []entities.Repository {
	repos := make([]entities.Repository, 0, len(names))
	for _, name := range names {
		repos = append(repos, entities.Repository{Name: name, Organization: "test-org"})
	}
	return repos
}

func newSpy(names ...string) *doubles.SpyOrganizationRepository {
	return &doubles.SpyOrganizationRepository{
		ProviderName: "github",
		Org:          "test-org",
		License:      entities.LicenseTemplate{Key: "apache-2.0", Body: licenseText},
		Repositories: reposNamed(names...),
	}
}

func TestRunCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should remediate only the unlicensed repositories", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy("repo1", "repo2", "repo3")
		spy.LicensedRepos = map[string]bool{"repo2": true}
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"apache-2.0"}, spy.FetchedTemplates)
		assert.Equal(t, []string{"repo1", "repo2", "repo3"}, spy.CheckedRepos)

		require.Len(t, spy.BranchCalls, 2)
		require.Len(t, spy.FileCalls, 2)
		require.Len(t, spy.PRCalls, 2)
		for i, name := range []string{"repo1", "repo3"} {
			assert.Equal(t, name, spy.BranchCalls[i].Repo)
			assert.Equal(t, entities.BranchRequest{
				BaseBranch: "master",
				NewBranch:  "add-missing-license",
			}, spy.BranchCalls[i].Input)

			assert.Equal(t, name, spy.FileCalls[i].Repo)
			assert.Equal(t, entities.FileRequest{
				Branch:  "add-missing-license",
				Path:    "LICENSE",
				Content: licenseText,
				Message: "Added apache-2.0 license file.",
			}, spy.FileCalls[i].Input)

			assert.Equal(t, name, spy.PRCalls[i].Repo)
			assert.Equal(t, "add-missing-license", spy.PRCalls[i].Input.SourceBranch)
			assert.Equal(t, "master", spy.PRCalls[i].Input.TargetBranch)
			assert.Equal(t, "Added apache-2.0 license file.", spy.PRCalls[i].Input.Title)
		}

		assert.Equal(t, 2, report.Count(entities.OutcomeRemediated))
		assert.Equal(t, 1, report.Count(entities.OutcomeLicensed))
		assert.Empty(t, report.Failures())
	})

	t.Run("should finish each remediation before checking the next repository", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy("repo1", "repo2")
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			"check:repo1", "branch:repo1", "file:repo1", "pr:repo1",
			"check:repo2", "branch:repo2", "file:repo2", "pr:repo2",
		}, spy.Calls)
	})

	t.Run("should not touch repositories that already have a license", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy("repo1", "repo2")
		spy.LicensedRepos = map[string]bool{"repo1": true, "repo2": true}
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		require.NoError(t, err)
		assert.Empty(t, spy.BranchCalls)
		assert.Empty(t, spy.FileCalls)
		assert.Empty(t, spy.PRCalls)
		assert.Equal(t, 2, report.Count(entities.OutcomeLicensed))
	})

	t.Run("should succeed without remediation for an empty organization", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy()
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		require.NoError(t, err)
		assert.Empty(t, report.Results)
		assert.Empty(t, spy.CheckedRepos)
		assert.Empty(t, spy.Calls)
	})

	t.Run("should keep scanning after a branch creation failure", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy("repo1", "repo2", "repo3")
		spy.CreateBranchErrs = map[string]error{
			"repo1": &entities.APIError{Op: "create branch", StatusCode: http.StatusUnprocessableEntity},
		}
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"repo1", "repo2", "repo3"}, spy.CheckedRepos)
		require.Len(t, spy.FileCalls, 2)
		assert.Equal(t, "repo2", spy.FileCalls[0].Repo)
		assert.Equal(t, "repo3", spy.FileCalls[1].Repo)

		failures := report.Failures()
		require.Len(t, failures, 1)
		assert.Equal(t, "repo1", failures[0].Repository)
		var apiErr *entities.APIError
		require.ErrorAs(t, failures[0].Err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Equal(t, 2, report.Count(entities.OutcomeRemediated))
	})

	t.Run("should stop remediating a repository at the failing step", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy("repo1", "repo2")
		spy.CreateFileErrs = map[string]error{"repo1": errors.New("conflict")}
		spy.CreatePRErrs = map[string]error{"repo2": errors.New("validation failed")}
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		require.NoError(t, err)
		require.Len(t, spy.PRCalls, 1)
		assert.Equal(t, "repo2", spy.PRCalls[0].Repo)
		assert.Len(t, report.Failures(), 2)
		assert.Zero(t, report.Count(entities.OutcomeRemediated))
	})

	t.Run("should record a failed license check without remediating", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy("repo1", "repo2")
		spy.HasLicenseErrs = map[string]error{
			"repo1": &entities.APIError{Op: "check license", StatusCode: http.StatusInternalServerError},
		}
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		require.NoError(t, err)
		require.Len(t, spy.BranchCalls, 1)
		assert.Equal(t, "repo2", spy.BranchCalls[0].Repo)
		require.Len(t, report.Failures(), 1)
		assert.Equal(t, "repo1", report.Failures()[0].Repository)
	})

	t.Run("should fail the run when the license template cannot be fetched", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy("repo1")
		spy.FetchLicenseErr = &entities.ParseError{Op: "fetch license template", Field: "body"}
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		var parseErr *entities.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Nil(t, report)
		assert.Zero(t, spy.ListCalls)
		assert.Empty(t, spy.CheckedRepos)
	})

	t.Run("should fail the run when repositories cannot be listed", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy()
		spy.ListErr = &entities.NetworkError{Op: "list repositories", Err: errors.New("connection refused")}
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		var netErr *entities.NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Empty(t, spy.CheckedRepos)
	})

	t.Run("should fail when the provider is not registered", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewRunCommand(infraRepos.NewProviderRegistry())
		settings := entitybuilders.NewSettingsBuilder().WithProvider("bitbucket").BuildSettings()

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bitbucket")
	})

	t.Run("should use the configured license and layout", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy("repo1")
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().
			WithLicense("mit").
			WithBranches("main", "license/mit").
			WithLicensePath("LICENSE.md").
			BuildSettings()

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"mit"}, spy.FetchedTemplates)
		require.Len(t, spy.PRCalls, 1)
		assert.Equal(t, "main", spy.BranchCalls[0].Input.BaseBranch)
		assert.Equal(t, "license/mit", spy.FileCalls[0].Input.Branch)
		assert.Equal(t, "LICENSE.md", spy.FileCalls[0].Input.Path)
		assert.Equal(t, "Added mit license file.", spy.PRCalls[0].Input.Title)
	})

	t.Run("should only report would-be remediations in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy("repo1", "repo2")
		spy.LicensedRepos = map[string]bool{"repo2": true}
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.RunOptions{DryRun: true})

		// then
		require.NoError(t, err)
		assert.Len(t, spy.CheckedRepos, 2)
		assert.Empty(t, spy.BranchCalls)
		assert.Equal(t, 1, report.Count(entities.OutcomeWouldRemediate))
	})

	t.Run("should skip excluded repositories without calling the API", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy("repo1", ".github", "repo3")
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().WithExclude(".github").BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"repo1", "repo3"}, spy.CheckedRepos)
		assert.Equal(t, 1, report.Count(entities.OutcomeExcluded))
	})

	t.Run("should create fixture repositories before scanning when populating", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy("repo1", "repo2", "repo3")
		spy.LicensedRepos = map[string]bool{"repo2": true}
		spy.CreateRepoErrs = map[string]error{"repo1": errors.New("name already exists")}
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.RunOptions{Populate: true})

		// then
		require.NoError(t, err)
		assert.Equal(t, []doubles.CreateRepositoryCall{
			{Name: "repo1", License: ""},
			{Name: "repo2", License: "apache-2.0"},
			{Name: "repo3", License: ""},
		}, spy.CreatedRepos)
		assert.Equal(t, []string{"create:repo1", "create:repo2", "create:repo3", "check:repo1"}, spy.Calls[:4])
		assert.Len(t, spy.PRCalls, 2)
	})

	t.Run("should not create fixtures when populating is not requested", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy()
		cmd := commands.NewRunCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.RunOptions{})

		// then
		require.NoError(t, err)
		assert.Empty(t, spy.CreatedRepos)
	})
}
