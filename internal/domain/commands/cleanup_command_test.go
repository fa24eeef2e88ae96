//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/autolicense/internal/domain/commands"
	"github.com/rios0rios0/autolicense/internal/domain/entities"
	"github.com/rios0rios0/autolicense/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/autolicense/test/infrastructure/repositorydoubles"
)

func TestCleanupCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should refuse to delete without confirmation", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyDestructiveRepository{}
		cmd := commands.NewCleanupCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		err := cmd.Execute(context.Background(), settings, commands.CleanupOptions{})

		// then
		require.ErrorIs(t, err, entities.ErrCleanupNotConfirmed)
		assert.Empty(t, spy.DeletedRepos)
	})

	t.Run("should refuse when the provider cannot delete repositories", func(t *testing.T) {
		t.Parallel()

		// given
		spy := newSpy()
		cmd := commands.NewCleanupCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		err := cmd.Execute(context.Background(), settings, commands.CleanupOptions{Confirm: true})

		// then
		require.ErrorIs(t, err, entities.ErrDestructiveNotSupported)
	})

	t.Run("should delete every fixture once when confirmed", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyDestructiveRepository{}
		cmd := commands.NewCleanupCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().
			WithFixtures(
				entities.Fixture{Name: "repo1"},
				entities.Fixture{Name: "repo2", License: "mit"},
				entities.Fixture{Name: "repo1"},
			).
			BuildSettings()

		// when
		err := cmd.Execute(context.Background(), settings, commands.CleanupOptions{Confirm: true})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"repo1", "repo2"}, spy.DeletedRepos)
	})

	t.Run("should continue after a failed deletion and report it", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyDestructiveRepository{
			DeleteErrs: map[string]error{"repo1": errors.New("forbidden")},
		}
		cmd := commands.NewCleanupCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		err := cmd.Execute(context.Background(), settings, commands.CleanupOptions{Confirm: true})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 3")
		assert.Equal(t, []string{"repo1", "repo2", "repo3"}, spy.DeletedRepos)
	})

	t.Run("should not delete anything in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyDestructiveRepository{}
		cmd := commands.NewCleanupCommand(registryFor(spy))
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		err := cmd.Execute(context.Background(), settings, commands.CleanupOptions{DryRun: true})

		// then
		require.NoError(t, err)
		assert.Empty(t, spy.DeletedRepos)
	})
}
