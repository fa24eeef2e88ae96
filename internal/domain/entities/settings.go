package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProvider = "github"
	DefaultBaseURL  = "https://api.github.com/"
)

// Settings is the top-level configuration for autolicense.
type Settings struct {
	Provider      string        `yaml:"provider"`
	BaseURL       string        `yaml:"base_url"`
	Organization  string        `yaml:"organization"`
	Username      string        `yaml:"username"`
	Password      string        `yaml:"password"` // Inline, ${ENV_VAR}, or file path
	Token         string        `yaml:"token"`    // Inline, ${ENV_VAR}, or file path
	License       string        `yaml:"license"`
	BaseBranch    string        `yaml:"base_branch"`
	FeatureBranch string        `yaml:"feature_branch"`
	LicensePath   string        `yaml:"license_path"`
	Timeout       time.Duration `yaml:"timeout"`
	Exclude       []string      `yaml:"exclude"`
	Fixtures      []Fixture     `yaml:"fixtures"`
}

// Credentials identify the caller and the organization being scanned.
// A non-empty Token takes precedence over Username/Password.
type Credentials struct {
	Organization string
	Username     string
	Password     string
	Token        string
}

// ClientOptions tune the HTTP client behind a provider.
type ClientOptions struct {
	BaseURL string
	Timeout time.Duration
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables in secrets, applying defaults and validating the result.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Password = ResolveSecret(settings.Password)
	settings.Token = ResolveSecret(settings.Token)
	settings.ApplyDefaults()

	if validateErr := ValidateSettings(&settings); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// ApplyDefaults fills every optional field left empty.
func (s *Settings) ApplyDefaults() {
	if s.Provider == "" {
		s.Provider = DefaultProvider
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.License == "" {
		s.License = DefaultLicenseName
	}
	if s.BaseBranch == "" {
		s.BaseBranch = DefaultBaseBranch
	}
	if s.FeatureBranch == "" {
		s.FeatureBranch = DefaultFeatureBranch
	}
	if s.LicensePath == "" {
		s.LicensePath = DefaultLicensePath
	}
	if len(s.Fixtures) == 0 {
		s.Fixtures = DefaultFixtures(s.License)
	}
}

// Credentials returns the authentication material held by the settings.
func (s *Settings) Credentials() Credentials {
	return Credentials{
		Organization: s.Organization,
		Username:     s.Username,
		Password:     s.Password,
		Token:        s.Token,
	}
}

// ClientOptions returns the HTTP client options held by the settings.
func (s *Settings) ClientOptions() ClientOptions {
	return ClientOptions{BaseURL: s.BaseURL, Timeout: s.Timeout}
}

// RemediationOptions returns the branch and file layout used for pull requests.
func (s *Settings) RemediationOptions() RemediationOptions {
	return RemediationOptions{
		LicenseName:   s.License,
		BaseBranch:    s.BaseBranch,
		FeatureBranch: s.FeatureBranch,
		LicensePath:   s.LicensePath,
	}
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".autolicense.yaml",
		".autolicense.yml",
		"autolicense.yaml",
		"autolicense.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveSecret expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the secret from the file.
func ResolveSecret(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read secret file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read secret from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// ValidateSettings checks for required configuration values.
func ValidateSettings(settings *Settings) error {
	if settings.Organization == "" {
		return errors.New("organization is required")
	}
	if settings.Token == "" && (settings.Username == "" || settings.Password == "") {
		return errors.New(
			"credentials are required: set token, or both username and password " +
				"(inline, via ${ENV_VAR}, or as file path)",
		)
	}
	if settings.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", settings.Timeout)
	}

	for i, fixture := range settings.Fixtures {
		if fixture.Name == "" {
			return fmt.Errorf("fixtures[%d].name is required", i)
		}
	}

	return nil
}
