package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// PullRequestInput is re-exported from gitforge.
type PullRequestInput = gitforgeEntities.PullRequestInput

// PullRequest is re-exported from gitforge.
type PullRequest = gitforgeEntities.PullRequest

// BranchRequest describes a branch to be created from the head of another one.
type BranchRequest struct {
	BaseBranch string
	NewBranch  string
}

// FileRequest describes a single file committed to a branch.
// Content is the raw text; providers own the wire encoding.
type FileRequest struct {
	Branch  string
	Path    string
	Content string
	Message string
}
