package github

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/autolicense/internal/domain/entities"
	"github.com/rios0rios0/autolicense/internal/domain/repositories"
)

const (
	providerName    = "github"
	perPage         = 100
	refsHeadsPrefix = "refs/heads/"
	branchRedirects = 1
)

// GitHubOrganizationRepository implements repositories.OrganizationRepository
// and repositories.DestructiveRepository for a GitHub organization.
type GitHubOrganizationRepository struct {
	organization string
	client       *gh.Client
	anonymous    *gh.Client
}

var (
	_ repositories.OrganizationRepository = (*GitHubOrganizationRepository)(nil)
	_ repositories.DestructiveRepository  = (*GitHubOrganizationRepository)(nil)
)

// NewOrganizationRepository creates a GitHub provider scoped to the organization
// in credentials. License templates are fetched without credentials.
func NewOrganizationRepository(
	credentials entities.Credentials,
	options entities.ClientOptions,
) (repositories.OrganizationRepository, error) {
	baseURL, err := parseBaseURL(options.BaseURL)
	if err != nil {
		return nil, err
	}

	return &GitHubOrganizationRepository{
		organization: credentials.Organization,
		client:       newClient(newAuthenticatedHTTPClient(credentials, options.Timeout), baseURL),
		anonymous:    newClient(newAnonymousHTTPClient(options.Timeout), baseURL),
	}, nil
}

func (p *GitHubOrganizationRepository) Name() string         { return providerName }
func (p *GitHubOrganizationRepository) Organization() string { return p.organization }

// FetchLicenseTemplate retrieves the text of a license template by its key.
func (p *GitHubOrganizationRepository) FetchLicenseTemplate(
	ctx context.Context,
	name string,
) (entities.LicenseTemplate, error) {
	const op = "fetch license template"

	license, resp, err := p.anonymous.Licenses.Get(ctx, name)
	if err != nil {
		return entities.LicenseTemplate{}, translateError(op, resp, err)
	}
	if license == nil || license.Body == nil {
		return entities.LicenseTemplate{}, &entities.ParseError{Op: op, Field: "body"}
	}

	return entities.LicenseTemplate{
		Key:  license.GetKey(),
		Name: license.GetName(),
		Body: license.GetBody(),
	}, nil
}

// ListRepositories lists the repositories of the organization from a single
// response page.
func (p *GitHubOrganizationRepository) ListRepositories(
	ctx context.Context,
) ([]entities.Repository, error) {
	const op = "list repositories"

	opts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}
	repos, resp, err := p.client.Repositories.ListByOrg(ctx, p.organization, opts)
	if err != nil {
		return nil, translateError(op, resp, err)
	}

	result := make([]entities.Repository, 0, len(repos))
	for i, r := range repos {
		if r.GetName() == "" {
			return nil, &entities.ParseError{Op: op, Field: fmt.Sprintf("[%d].name", i)}
		}

		defaultBranch := ""
		if r.GetDefaultBranch() != "" {
			defaultBranch = refsHeadsPrefix + r.GetDefaultBranch()
		}
		result = append(result, entities.Repository{
			ID:            strconv.FormatInt(r.GetID(), 10),
			Name:          r.GetName(),
			Organization:  p.organization,
			DefaultBranch: defaultBranch,
			RemoteURL:     r.GetCloneURL(),
			ProviderName:  providerName,
		})
	}

	if resp != nil && resp.NextPage != 0 {
		logger.Warnf(
			"Organization %q has more than %d repositories, only the first page is processed",
			p.organization, perPage,
		)
	}

	return result, nil
}

// HasLicense reports whether GitHub detected a license in the repository.
// A 404 means no license; every other failure is surfaced.
func (p *GitHubOrganizationRepository) HasLicense(
	ctx context.Context,
	repo entities.Repository,
) (bool, error) {
	_, resp, err := p.client.Repositories.License(ctx, p.organization, repo.Name)
	if err == nil {
		return true, nil
	}

	translated := translateError("check license", resp, err)
	if entities.IsNotFound(translated) {
		logger.Debugf("No license found in %s/%s", p.organization, repo.Name)
		return false, nil
	}
	return false, translated
}

// HeadCommit returns the SHA of the latest commit on the given branch.
func (p *GitHubOrganizationRepository) HeadCommit(
	ctx context.Context,
	repo entities.Repository,
	branch string,
) (string, error) {
	const op = "get branch head"

	ghBranch, resp, err := p.client.Repositories.GetBranch(
		ctx, p.organization, repo.Name, strings.TrimPrefix(branch, refsHeadsPrefix), branchRedirects,
	)
	if err != nil {
		return "", translateError(op, resp, err)
	}

	sha := ghBranch.GetCommit().GetSHA()
	if sha == "" {
		return "", &entities.ParseError{Op: op, Field: "commit.sha"}
	}
	return sha, nil
}

// CreateBranch creates input.NewBranch at the current head of input.BaseBranch.
func (p *GitHubOrganizationRepository) CreateBranch(
	ctx context.Context,
	repo entities.Repository,
	input entities.BranchRequest,
) error {
	baseSHA, err := p.HeadCommit(ctx, repo, input.BaseBranch)
	if err != nil {
		return fmt.Errorf("failed to resolve head of %q: %w", input.BaseBranch, err)
	}

	branchRef := refsHeadsPrefix + strings.TrimPrefix(input.NewBranch, refsHeadsPrefix)
	_, resp, err := p.client.Git.CreateRef(
		ctx, p.organization, repo.Name,
		&gh.Reference{
			Ref:    &branchRef,
			Object: &gh.GitObject{SHA: &baseSHA},
		},
	)
	if err != nil {
		return translateError("create branch", resp, err)
	}

	logger.Debugf("Created %s in %s/%s at %s", branchRef, p.organization, repo.Name, baseSHA)
	return nil
}

// CreateFile commits a new file to a branch. go-github serializes the byte
// content as base64, which is the encoding the contents API expects.
func (p *GitHubOrganizationRepository) CreateFile(
	ctx context.Context,
	repo entities.Repository,
	input entities.FileRequest,
) error {
	message := input.Message
	branch := strings.TrimPrefix(input.Branch, refsHeadsPrefix)
	_, resp, err := p.client.Repositories.CreateFile(
		ctx, p.organization, repo.Name, strings.TrimPrefix(input.Path, "/"),
		&gh.RepositoryContentFileOptions{
			Message: &message,
			Content: []byte(input.Content),
			Branch:  &branch,
		},
	)
	return translateError("create file", resp, err)
}

// CreatePullRequest opens a pull request from the source into the target branch.
func (p *GitHubOrganizationRepository) CreatePullRequest(
	ctx context.Context,
	repo entities.Repository,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	sourceBranch := strings.TrimPrefix(input.SourceBranch, refsHeadsPrefix)
	targetBranch := strings.TrimPrefix(input.TargetBranch, refsHeadsPrefix)
	title := input.Title

	newPR := &gh.NewPullRequest{
		Title: &title,
		Head:  &sourceBranch,
		Base:  &targetBranch,
	}
	if input.Description != "" {
		description := input.Description
		newPR.Body = &description
	}

	pr, resp, err := p.client.PullRequests.Create(ctx, p.organization, repo.Name, newPR)
	if err != nil {
		return nil, translateError("create pull request", resp, err)
	}

	return &entities.PullRequest{
		ID:     pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
		Status: pr.GetState(),
	}, nil
}

// CreateRepository creates an auto-initialized repository in the organization.
// The license_template field is omitted entirely when licenseTemplate is empty.
func (p *GitHubOrganizationRepository) CreateRepository(
	ctx context.Context,
	name string,
	licenseTemplate string,
) error {
	autoInit := true
	repo := &gh.Repository{
		Name:     &name,
		AutoInit: &autoInit,
	}
	if licenseTemplate != "" {
		repo.LicenseTemplate = &licenseTemplate
	}

	_, resp, err := p.client.Repositories.Create(ctx, p.organization, repo)
	return translateError("create repository", resp, err)
}

// DeleteRepository permanently deletes a repository of the organization.
func (p *GitHubOrganizationRepository) DeleteRepository(ctx context.Context, name string) error {
	resp, err := p.client.Repositories.Delete(ctx, p.organization, name)
	return translateError("delete repository", resp, err)
}
