package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/parserinator/parserinator/internal/session"
)

// revealTickMsg asks the controller to reveal one more character.
type revealTickMsg struct {
	gen int
}

// timerTickMsg asks the controller to count the answer timer down.
type timerTickMsg struct {
	gen int
}

// schedule turns a controller Tick into a delayed message. nil means nothing
// is pending.
func schedule(t *session.Tick) tea.Cmd {
	if t == nil {
		return nil
	}
	gen := t.Gen
	switch t.Kind {
	case session.TickReveal:
		return tea.Tick(t.Delay, func(time.Time) tea.Msg { return revealTickMsg{gen: gen} })
	case session.TickTimer:
		return tea.Tick(t.Delay, func(time.Time) tea.Msg { return timerTickMsg{gen: gen} })
	}
	return nil
}
