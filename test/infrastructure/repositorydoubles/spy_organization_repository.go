//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/autolicense/internal/domain/entities"
	"github.com/rios0rios0/autolicense/internal/domain/repositories"
)

// SpyOrganizationRepository implements repositories.OrganizationRepository as a configurable spy.
// Per-repository failures are keyed by repository name.
type SpyOrganizationRepository struct {
	// --- identity ---
	ProviderName string
	Org          string

	// --- FetchLicenseTemplate ---
	License          entities.LicenseTemplate
	FetchLicenseErr  error
	FetchedTemplates []string

	// --- ListRepositories ---
	Repositories []entities.Repository
	ListErr      error
	ListCalls    int

	// --- HasLicense ---
	LicensedRepos  map[string]bool
	HasLicenseErrs map[string]error
	CheckedRepos   []string

	// --- HeadCommit ---
	HeadSHA string
	HeadErr error

	// --- CreateBranch ---
	CreateBranchErrs map[string]error
	BranchCalls      []BranchCall

	// --- CreateFile ---
	CreateFileErrs map[string]error
	FileCalls      []FileCall

	// --- CreatePullRequest ---
	CreatePRErrs map[string]error
	PRCalls      []PullRequestCall

	// --- CreateRepository ---
	CreateRepoErrs map[string]error
	CreatedRepos   []CreateRepositoryCall

	// spy: every mutating or checking call as "operation:repository", in order
	Calls []string
}

// BranchCall records a single invocation of CreateBranch.
type BranchCall struct {
	Repo  string
	Input entities.BranchRequest
}

// FileCall records a single invocation of CreateFile.
type FileCall struct {
	Repo  string
	Input entities.FileRequest
}

// PullRequestCall records a single invocation of CreatePullRequest.
type PullRequestCall struct {
	Repo  string
	Input entities.PullRequestInput
}

// CreateRepositoryCall records a single invocation of CreateRepository.
type CreateRepositoryCall struct {
	Name    string
	License string
}

var _ repositories.OrganizationRepository = (*SpyOrganizationRepository)(nil)

func (p *SpyOrganizationRepository) Name() string {
	if p.ProviderName == "" {
		return "spy"
	}
	return p.ProviderName
}

func (p *SpyOrganizationRepository) Organization() string { return p.Org }

func (p *SpyOrganizationRepository) FetchLicenseTemplate(
	_ context.Context, name string,
) (entities.LicenseTemplate, error) {
	p.FetchedTemplates = append(p.FetchedTemplates, name)
	return p.License, p.FetchLicenseErr
}

func (p *SpyOrganizationRepository) ListRepositories(_ context.Context) ([]entities.Repository, error) {
	p.ListCalls++
	return p.Repositories, p.ListErr
}

func (p *SpyOrganizationRepository) HasLicense(
	_ context.Context, repo entities.Repository,
) (bool, error) {
	p.CheckedRepos = append(p.CheckedRepos, repo.Name)
	p.Calls = append(p.Calls, "check:"+repo.Name)
	if err := p.HasLicenseErrs[repo.Name]; err != nil {
		return false, err
	}
	return p.LicensedRepos[repo.Name], nil
}

func (p *SpyOrganizationRepository) HeadCommit(
	_ context.Context, _ entities.Repository, _ string,
) (string, error) {
	if p.HeadErr != nil {
		return "", p.HeadErr
	}
	if p.HeadSHA == "" {
		return "0000000000000000000000000000000000000000", nil
	}
	return p.HeadSHA, nil
}

func (p *SpyOrganizationRepository) CreateBranch(
	_ context.Context, repo entities.Repository, input entities.BranchRequest,
) error {
	p.BranchCalls = append(p.BranchCalls, BranchCall{Repo: repo.Name, Input: input})
	p.Calls = append(p.Calls, "branch:"+repo.Name)
	return p.CreateBranchErrs[repo.Name]
}

func (p *SpyOrganizationRepository) CreateFile(
	_ context.Context, repo entities.Repository, input entities.FileRequest,
) error {
	p.FileCalls = append(p.FileCalls, FileCall{Repo: repo.Name, Input: input})
	p.Calls = append(p.Calls, "file:"+repo.Name)
	return p.CreateFileErrs[repo.Name]
}

func (p *SpyOrganizationRepository) CreatePullRequest(
	_ context.Context, repo entities.Repository, input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	p.PRCalls = append(p.PRCalls, PullRequestCall{Repo: repo.Name, Input: input})
	p.Calls = append(p.Calls, "pr:"+repo.Name)
	if err := p.CreatePRErrs[repo.Name]; err != nil {
		return nil, err
	}
	return &entities.PullRequest{
		ID:    len(p.PRCalls),
		Title: input.Title,
		URL:   fmt.Sprintf("https://example.com/%s/%s/pull/%d", p.Org, repo.Name, len(p.PRCalls)),
	}, nil
}

func (p *SpyOrganizationRepository) CreateRepository(
	_ context.Context, name, licenseTemplate string,
) error {
	p.CreatedRepos = append(p.CreatedRepos, CreateRepositoryCall{Name: name, License: licenseTemplate})
	p.Calls = append(p.Calls, "create:"+name)
	return p.CreateRepoErrs[name]
}

// SpyDestructiveRepository adds the delete capability to SpyOrganizationRepository.
type SpyDestructiveRepository struct {
	SpyOrganizationRepository

	DeleteErrs   map[string]error
	DeletedRepos []string
}

var _ repositories.DestructiveRepository = (*SpyDestructiveRepository)(nil)

func (p *SpyDestructiveRepository) DeleteRepository(_ context.Context, name string) error {
	p.DeletedRepos = append(p.DeletedRepos, name)
	return p.DeleteErrs[name]
}
