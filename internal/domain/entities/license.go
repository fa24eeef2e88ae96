package entities

import "fmt"

const (
	DefaultLicenseName   = "apache-2.0"
	DefaultBaseBranch    = "master"
	DefaultFeatureBranch = "add-missing-license"
	DefaultLicensePath   = "LICENSE"
)

// LicenseTemplate is a canonical license text published by the provider.
type LicenseTemplate struct {
	Key  string
	Name string
	Body string
}

// CommitMessage returns the message used both for the license commit and
// as the pull request title.
func CommitMessage(licenseName string) string {
	return fmt.Sprintf("Added %s license file.", licenseName)
}
