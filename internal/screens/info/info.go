// Package info is a read-only text screen used for the key reference and
// for explaining why a feature is unavailable.
package info

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parserinator/parserinator/internal/screen"
	"github.com/parserinator/parserinator/internal/ui/layout"
	"github.com/parserinator/parserinator/internal/ui/theme"
)

// InfoScreen shows a block of text, scrolling when it is taller than the
// content area.
type InfoScreen struct {
	title  string
	lines  []string
	offset int
}

var _ screen.Screen = (*InfoScreen)(nil)

// New creates an InfoScreen.
func New(title, body string) *InfoScreen {
	return &InfoScreen{title: title, lines: strings.Split(body, "\n")}
}

func (s *InfoScreen) Init() tea.Cmd { return nil }

func (s *InfoScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset = min(s.offset+1, max(len(s.lines)-1, 0))
		}
	}
	return s, nil
}

func (s *InfoScreen) View(width, height int) string {
	visible := s.lines[min(s.offset, len(s.lines)):]
	if len(visible) > height {
		visible = visible[:height]
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Body.Render(strings.Join(visible, "\n")))
}

func (s *InfoScreen) Title() string { return s.title }

func (s *InfoScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	if len(s.lines) > 1 {
		hints = append([]layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}, hints...)
	}
	return hints
}
