package repositories

import (
	"context"

	"github.com/rios0rios0/autolicense/internal/domain/entities"
)

// OrganizationRepository abstracts the Git hosting API for a single organization.
// Every call blocks until the remote responds. Failures are reported as
// *entities.NetworkError, *entities.APIError (or *entities.AuthError) and
// *entities.ParseError.
type OrganizationRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// Organization returns the organization every call is scoped to.
	Organization() string

	// FetchLicenseTemplate resolves a license slug to its text. It is unauthenticated.
	FetchLicenseTemplate(ctx context.Context, name string) (entities.LicenseTemplate, error)

	// ListRepositories returns the repositories of a single response page.
	ListRepositories(ctx context.Context) ([]entities.Repository, error)

	// HasLicense reports whether the repository exposes a license. A missing
	// license is (false, nil); any other failure is returned as an error.
	HasLicense(ctx context.Context, repo entities.Repository) (bool, error)

	// HeadCommit returns the SHA of the latest commit on branch.
	HeadCommit(ctx context.Context, repo entities.Repository, branch string) (string, error)

	// CreateBranch creates a branch pointing at the head of the base branch.
	CreateBranch(ctx context.Context, repo entities.Repository, input entities.BranchRequest) error

	// CreateFile commits a single new file to an existing branch.
	CreateFile(ctx context.Context, repo entities.Repository, input entities.FileRequest) error

	// CreatePullRequest opens a pull request from SourceBranch into TargetBranch.
	CreatePullRequest(
		ctx context.Context,
		repo entities.Repository,
		input entities.PullRequestInput,
	) (*entities.PullRequest, error)

	// CreateRepository creates an auto-initialized repository, with a license
	// file when licenseTemplate is not empty.
	CreateRepository(ctx context.Context, name, licenseTemplate string) error
}

// DestructiveRepository is the separately gated capability to delete
// repositories. Only the cleanup command asserts it.
type DestructiveRepository interface {
	DeleteRepository(ctx context.Context, name string) error
}
