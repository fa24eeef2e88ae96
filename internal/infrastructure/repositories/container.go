package repositories

import (
	ghRepo "github.com/rios0rios0/autolicense/internal/infrastructure/repositories/github"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewOrganizationRepository)
		return reg
	})
}
