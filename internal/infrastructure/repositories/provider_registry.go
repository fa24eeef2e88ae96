package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/autolicense/internal/domain/entities"
	domainRepos "github.com/rios0rios0/autolicense/internal/domain/repositories"
)

// ProviderFactory builds an OrganizationRepository for the given credentials.
type ProviderFactory func(
	credentials entities.Credentials,
	options entities.ClientOptions,
) (domainRepos.OrganizationRepository, error)

// ProviderRegistry manages all registered Git provider implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "github").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Get returns a provider instance scoped to the organization in credentials.
func (r *ProviderRegistry) Get(
	name string,
	credentials entities.Credentials,
	options entities.ClientOptions,
) (domainRepos.OrganizationRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %q (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return factory(credentials, options)
}

// Names returns the sorted list of registered provider names.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
