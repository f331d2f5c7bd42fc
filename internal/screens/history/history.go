// Package history lists recorded quiz sessions, newest first.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parserinator/parserinator/internal/router"
	"github.com/parserinator/parserinator/internal/screen"
	"github.com/parserinator/parserinator/internal/store"
	"github.com/parserinator/parserinator/internal/ui/layout"
	"github.com/parserinator/parserinator/internal/ui/theme"
)

// pageSize is how many sessions are loaded.
const pageSize = 50

type loadedMsg struct {
	sessions []store.SessionSummaryRecord
	err      error
}

// HistoryScreen is a scrolling table of sessions. Enter shows the subjects
// and session ID of the selected row.
type HistoryScreen struct {
	repo     store.EventRepo
	sessions []store.SessionSummaryRecord
	selected int
	open     int // row showing details, -1 for none
	state    string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New creates a HistoryScreen reading from repo.
func New(repo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo, open: -1, state: "Loading history..."}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		recs, err := s.repo.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: pageSize})
		return loadedMsg{sessions: recs, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		switch {
		case msg.err != nil:
			s.state = "Could not load history: " + msg.err.Error()
		case len(msg.sessions) == 0:
			s.state = "No sessions yet. Play a round!"
		default:
			s.sessions, s.state = msg.sessions, ""
		}
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back()
		case "up", "k":
			s.selected = max(s.selected-1, 0)
		case "down", "j":
			s.selected = min(s.selected+1, max(len(s.sessions)-1, 0))
		case "enter":
			if s.open == s.selected {
				s.open = -1
			} else {
				s.open = s.selected
			}
		}
	}
	return s, nil
}

const rowFormat = "%-2s%-18s  %-9s  %-4s  %5s  %5s"

func (s *HistoryScreen) View(width, height int) string {
	if s.state != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.state))
	}

	header := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).
		Render(fmt.Sprintf(rowFormat, "", "WHEN", "LEVEL", "YEAR", "SCORE", "TIME"))
	lines := []string{header}
	selectedLine := 0
	for i, rec := range s.sessions {
		cursor := ""
		style := lipgloss.NewStyle().Foreground(scoreColor(rec.Score, rec.Attempts))
		if i == s.selected {
			cursor, style = "▸", style.Bold(true)
			selectedLine = len(lines)
		}
		lines = append(lines, style.Render(fmt.Sprintf(rowFormat, cursor,
			rec.Timestamp.Local().Format("Jan 02 2006 15:04"), rec.Difficulty,
			fmt.Sprint(rec.Year), fmt.Sprintf("%d/%d", rec.Score, rec.Attempts),
			fmt.Sprintf("%d:%02d", rec.DurationSecs/60, rec.DurationSecs%60))))
		if i == s.open {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    "+subjectList(rec.Subjects)+" · "+shortID(rec.SessionID)))
		}
	}

	// Keep the selected row on screen; the header scrolls away first.
	if start := selectedLine - height + 1; start > 0 {
		lines = lines[start:]
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

func subjectList(joined string) string {
	if joined == "" {
		return "any subject"
	}
	return strings.ReplaceAll(joined, ";", ", ")
}

// scoreColor grades a session: at least half right is good, negative is bad.
func scoreColor(score, attempts int) color.Color {
	switch {
	case score < 0:
		return theme.Error
	case attempts > 0 && score*2 >= attempts:
		return theme.Success
	default:
		return theme.Text
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
