package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/parserinator/parserinator/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status
// on the right of the header, e.g. the score.
type StatusProvider interface {
	Status() string
}

// Leaver is an optional interface for screens that must flush state when
// they are removed from the stack or the program quits.
type Leaver interface {
	Leave()
}

// Resumer is an optional interface for screens that refresh when a screen
// opened on top of them closes.
type Resumer interface {
	Resume() tea.Cmd
}

// EscapeCapturer is an optional interface for screens that use Esc
// themselves, e.g. to dismiss a dialog, instead of leaving the screen.
type EscapeCapturer interface {
	CapturesEscape() bool
}
