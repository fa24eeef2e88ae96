package entities

// RemediationOptions holds the branch and file layout used when adding a
// missing license to a repository.
type RemediationOptions struct {
	LicenseName   string
	BaseBranch    string
	FeatureBranch string
	LicensePath   string
}

// Message returns the commit message, which doubles as the pull request title.
func (o RemediationOptions) Message() string {
	return CommitMessage(o.LicenseName)
}
