package internal

import (
	"github.com/rios0rios0/autolicense/internal/domain/entities"
)

// AppInternal holds the controllers mounted as subcommands of the root command.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the application context from the controller list.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the subcommand controllers in registration order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
