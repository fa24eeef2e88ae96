package entities

// Fixture is a scaffold repository created to exercise the scan.
// An empty License produces a repository without a license file.
type Fixture struct {
	Name    string `yaml:"name"`
	License string `yaml:"license"`
}

// DefaultFixtures returns two unlicensed repositories around a licensed one.
func DefaultFixtures(licenseName string) []Fixture {
	return []Fixture{
		{Name: "repo1"},
		{Name: "repo2", License: licenseName},
		{Name: "repo3"},
	}
}
