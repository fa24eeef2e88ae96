package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/rios0rios0/autolicense/internal/domain/entities"
	"github.com/rios0rios0/autolicense/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/autolicense/internal/infrastructure/repositories"
)

// Cleanup is the interface for the cleanup command (fixture deletion).
type Cleanup interface {
	Execute(ctx context.Context, settings *entities.Settings, opts CleanupOptions) error
}

// CleanupOptions holds runtime options for the cleanup command.
type CleanupOptions struct {
	Confirm bool
	DryRun  bool
}

// CleanupCommand deletes the fixture repositories created by a populated run.
type CleanupCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
}

// NewCleanupCommand creates a new CleanupCommand with the given registry.
func NewCleanupCommand(providerRegistry *infraRepos.ProviderRegistry) *CleanupCommand {
	return &CleanupCommand{
		providerRegistry: providerRegistry,
	}
}

// Execute deletes every configured fixture. It refuses to run unless
// confirmed and the provider exposes the destructive capability.
func (it *CleanupCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts CleanupOptions,
) error {
	if !opts.Confirm && !opts.DryRun {
		return entities.ErrCleanupNotConfirmed
	}

	provider, err := it.providerRegistry.Get(settings.Provider, settings.Credentials(), settings.ClientOptions())
	if err != nil {
		return fmt.Errorf("failed to initialize provider %q: %w", settings.Provider, err)
	}

	destructive, ok := provider.(repositories.DestructiveRepository)
	if !ok {
		return fmt.Errorf("%w: %s", entities.ErrDestructiveNotSupported, provider.Name())
	}

	failures := 0
	deleted := sets.New[string]()
	for _, fixture := range settings.Fixtures {
		if deleted.Has(fixture.Name) {
			continue
		}
		deleted.Insert(fixture.Name)

		if opts.DryRun {
			logger.Infof("[dry-run] Would delete repository %q", fixture.Name)
			continue
		}

		logger.Infof("Deleting repository %q...", fixture.Name)
		if deleteErr := destructive.DeleteRepository(ctx, fixture.Name); deleteErr != nil {
			logger.WithError(deleteErr).WithField("repository", fixture.Name).Error("Failed to delete repository")
			failures++
			continue
		}
		logger.Infof("Deleting repository %q... done", fixture.Name)
	}

	if failures > 0 {
		return fmt.Errorf("failed to delete %d of %d repositories", failures, deleted.Len())
	}
	return nil
}
