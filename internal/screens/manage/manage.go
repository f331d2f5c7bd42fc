// Package manage lists the question bank and deletes questions.
package manage

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/filter"
	"github.com/parserinator/parserinator/internal/screen"
	"github.com/parserinator/parserinator/internal/ui/components"
	"github.com/parserinator/parserinator/internal/ui/layout"
	"github.com/parserinator/parserinator/internal/ui/theme"
)

type deleteConfirmedMsg struct{ Text string }

type deleteCancelledMsg struct{}

// ManageScreen lists questions and removes them after confirmation.
type ManageScreen struct {
	env       *screen.Env
	questions []bank.Question
	selected  int
	filtered  bool

	confirm    *components.Confirm
	flash      string
	flashIsErr bool
}

var _ screen.Screen = (*ManageScreen)(nil)
var _ screen.KeyHintProvider = (*ManageScreen)(nil)
var _ screen.EscapeCapturer = (*ManageScreen)(nil)

// New creates a ManageScreen showing the whole bank.
func New(env *screen.Env) *ManageScreen {
	s := &ManageScreen{env: env}
	s.reload()
	return s
}

func (s *ManageScreen) Init() tea.Cmd {
	return nil
}

func (s *ManageScreen) Title() string {
	return "Manage Questions"
}

// CapturesEscape keeps Esc inside the screen while the dialog is open.
func (s *ManageScreen) CapturesEscape() bool {
	return s.confirm != nil
}

func (s *ManageScreen) KeyHints() []layout.KeyHint {
	if s.confirm != nil {
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Y/N", Description: "Answer"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "D", Description: "Delete"},
		{Key: "F", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ManageScreen) reload() {
	all := s.env.Bank.Questions()
	if s.filtered {
		all = filter.Apply(all, s.env.Settings.Criteria())
	}
	s.questions = all
	s.selected = min(s.selected, max(len(s.questions)-1, 0))
}

func (s *ManageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deleteConfirmedMsg:
		s.confirm = nil
		s.delete(msg.Text)
		return s, nil
	case deleteCancelledMsg:
		s.confirm = nil
		return s, nil
	}

	if s.confirm != nil {
		c, cmd := s.confirm.Update(msg)
		s.confirm = &c
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.questions)-1 {
			s.selected++
		}
	case "f":
		s.filtered = !s.filtered
		s.selected = 0
		s.reload()
	case "d", "delete":
		if len(s.questions) == 0 {
			return s, nil
		}
		text := s.questions[s.selected].Text
		c := components.NewConfirm(
			fmt.Sprintf("Delete %q?", truncate(text, 60)),
			func() tea.Cmd { return func() tea.Msg { return deleteConfirmedMsg{Text: text} } },
			func() tea.Cmd { return func() tea.Msg { return deleteCancelledMsg{} } },
		)
		s.confirm = &c
		s.flash = ""
	}
	return s, nil
}

func (s *ManageScreen) delete(text string) {
	n, err := s.env.Bank.Remove(bank.ByText(text))
	if err != nil {
		s.env.Log().Error("failed to delete question", "err", err)
		s.flash, s.flashIsErr = "Could not delete: "+err.Error(), true
		return
	}
	s.env.Log().Info("questions deleted", "count", n)
	s.flash, s.flashIsErr = fmt.Sprintf("Deleted %d question(s).", n), false
	s.reload()
}

func (s *ManageScreen) View(width, height int) string {
	if s.confirm != nil {
		dialog := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Error).
			Padding(1, 3).
			Render(s.confirm.View())
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
	}

	var b strings.Builder
	scope := "All questions"
	if s.filtered {
		scope = "Matching " + s.env.Settings.Criteria().Label()
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%s · %d", scope, len(s.questions))))
	b.WriteString("\n\n")

	if len(s.questions) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("No questions."))
	} else {
		rows := max(height-6, 1)
		start := 0
		if s.selected >= rows {
			start = s.selected - rows + 1
		}
		end := min(start+rows, len(s.questions))
		textWidth := max(width-44, 20)

		for i := start; i < end; i++ {
			q := s.questions[i]
			line := fmt.Sprintf("%-*s  %-16s %-9s %d",
				textWidth, truncate(q.Text, textWidth), truncate(q.Answer, 16), q.Difficulty, q.Year)
			style := lipgloss.NewStyle().Foreground(theme.Text)
			prefix := "  "
			if i == s.selected {
				style = style.Foreground(theme.Primary).Bold(true)
				prefix = "▸ "
			}
			b.WriteString(style.Render(prefix + line))
			b.WriteString("\n")
		}
	}

	if s.flash != "" {
		color := theme.Success
		if s.flashIsErr {
			color = theme.Error
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(s.flash))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
