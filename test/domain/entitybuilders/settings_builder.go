//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	"github.com/rios0rios0/autolicense/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	provider      string
	organization  string
	username      string
	password      string
	token         string
	license       string
	baseBranch    string
	featureBranch string
	licensePath   string
	timeout       time.Duration
	exclude       []string
	fixtures      []entities.Fixture
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	b := &SettingsBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.setDefaults()
	return b
}

func (b *SettingsBuilder) setDefaults() {
	b.provider = "github"
	b.organization = "test-org"
	b.username = "test-user"
	b.password = "test-password"
	b.token = ""
	b.license = entities.DefaultLicenseName
	b.baseBranch = entities.DefaultBaseBranch
	b.featureBranch = entities.DefaultFeatureBranch
	b.licensePath = entities.DefaultLicensePath
	b.timeout = 0
	b.exclude = nil
	b.fixtures = nil
}

// WithProvider sets the provider type.
func (b *SettingsBuilder) WithProvider(provider string) *SettingsBuilder {
	b.provider = provider
	return b
}

// WithOrganization sets the organization name.
func (b *SettingsBuilder) WithOrganization(organization string) *SettingsBuilder {
	b.organization = organization
	return b
}

// WithBasicAuth sets username and password and clears the token.
func (b *SettingsBuilder) WithBasicAuth(username, password string) *SettingsBuilder {
	b.username = username
	b.password = password
	b.token = ""
	return b
}

// WithToken sets the token and clears username and password.
func (b *SettingsBuilder) WithToken(token string) *SettingsBuilder {
	b.token = token
	b.username = ""
	b.password = ""
	return b
}

// WithLicense sets the license template name.
func (b *SettingsBuilder) WithLicense(license string) *SettingsBuilder {
	b.license = license
	return b
}

// WithBranches sets the base and feature branches.
func (b *SettingsBuilder) WithBranches(baseBranch, featureBranch string) *SettingsBuilder {
	b.baseBranch = baseBranch
	b.featureBranch = featureBranch
	return b
}

// WithLicensePath sets the path of the committed license file.
func (b *SettingsBuilder) WithLicensePath(path string) *SettingsBuilder {
	b.licensePath = path
	return b
}

// WithTimeout sets the per-request timeout.
func (b *SettingsBuilder) WithTimeout(timeout time.Duration) *SettingsBuilder {
	b.timeout = timeout
	return b
}

// WithExclude sets the repositories skipped by the scan.
func (b *SettingsBuilder) WithExclude(names ...string) *SettingsBuilder {
	b.exclude = names
	return b
}

// WithFixtures sets the fixture repositories.
func (b *SettingsBuilder) WithFixtures(fixtures ...entities.Fixture) *SettingsBuilder {
	b.fixtures = fixtures
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
// Defaults are applied the same way the config loader does.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := &entities.Settings{
		Provider:      b.provider,
		Organization:  b.organization,
		Username:      b.username,
		Password:      b.password,
		Token:         b.token,
		License:       b.license,
		BaseBranch:    b.baseBranch,
		FeatureBranch: b.featureBranch,
		LicensePath:   b.licensePath,
		Timeout:       b.timeout,
		Exclude:       append([]string(nil), b.exclude...),
		Fixtures:      append([]entities.Fixture(nil), b.fixtures...),
	}
	settings.ApplyDefaults()
	return settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.setDefaults()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		provider:      b.provider,
		organization:  b.organization,
		username:      b.username,
		password:      b.password,
		token:         b.token,
		license:       b.license,
		baseBranch:    b.baseBranch,
		featureBranch: b.featureBranch,
		licensePath:   b.licensePath,
		timeout:       b.timeout,
		exclude:       append([]string(nil), b.exclude...),
		fixtures:      append([]entities.Fixture(nil), b.fixtures...),
	}
}
