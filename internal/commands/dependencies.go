package commands

import (
	"github.com/diogo/medilingua/internal/api"
	"github.com/diogo/medilingua/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(deps tui.Deps) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client is the translation backend client. When nil, one is built
	// from the effective configuration.
	Client api.BackendClient

	// TUI is the terminal user interface.
	TUI TUIInterface
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(deps tui.Deps) error {
	return tui.RunChat(deps)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI: &DefaultTUI{},
	}
}
