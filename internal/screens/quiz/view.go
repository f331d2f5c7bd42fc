package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/parserinator/parserinator/internal/keybind"
	"github.com/parserinator/parserinator/internal/session"
	"github.com/parserinator/parserinator/internal/ui/components"
	"github.com/parserinator/parserinator/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	st := s.ctrl.State()
	inner := max(width-8, 20)

	var b strings.Builder
	b.WriteString(s.renderFilterBar(st, width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if st.Phase == session.PhaseEmpty {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("No questions match %s.\n\nChange the filter or add questions from the home screen.", st.Criteria.Label())))
		return b.String()
	}

	// Question text as revealed so far.
	question := st.Prefix
	if st.Phase == session.PhaseReading {
		question += lipgloss.NewStyle().Foreground(theme.Primary).Render("▌")
	}
	b.WriteString(lipgloss.NewStyle().
		Width(inner).
		MarginLeft(4).
		Foreground(theme.Text).
		Bold(true).
		Render(question))
	b.WriteString("\n\n")

	if st.Phase == session.PhaseTimerRunning {
		b.WriteString("    ")
		b.WriteString(renderTimerBar(st, inner))
		b.WriteString("\n\n")
	}

	b.WriteString("    Answer: " + s.input.View())
	b.WriteString("\n\n")

	if st.Phase == session.PhaseRevealed {
		b.WriteString(renderVerdict(st))
		b.WriteString("\n")
	}

	if s.flash != "" {
		b.WriteString("\n    " + theme.Hint.Render(s.flash) + "\n")
	}

	return b.String()
}

// renderFilterBar shows the criteria, position and score on one line.
func (s *QuizScreen) renderFilterBar(st session.State, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + st.Criteria.Label())

	position := "0/0"
	if st.Total > 0 {
		position = fmt.Sprintf("%d/%d", st.Index+1, st.Total)
	}
	timer := "timer off"
	if s.ctrl.TimerEnabled() {
		timer = fmt.Sprintf("timer %ds", s.ctrl.TimerSeconds())
	}
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %s  %s  Score %s",
			position,
			timer,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(scoreLabel(st.Score, st.Attempts)),
		))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}

	keys := s.env.Keys
	cycle := theme.Hint.Render(fmt.Sprintf("  %s year · %s level · %s subject · %s shuffle · %s reset · %s timer · %s theme · %s add · %s manage",
		keyLabel(keys.Key(keybind.CycleYear)),
		keyLabel(keys.Key(keybind.CycleDifficulty)),
		keyLabel(keys.Key(keybind.CycleSubject)),
		keyLabel(keys.Key(keybind.Randomize)),
		keyLabel(keys.Key(keybind.Reset)),
		keyLabel(keys.Key(keybind.ToggleTimer)),
		keyLabel(keys.Key(keybind.ToggleTheme)),
		keyLabel(keys.Key(keybind.AddQuestion)),
		keyLabel(keys.Key(keybind.ManageQuestions)),
	))
	return line + "\n" + cycle
}

func renderTimerBar(st session.State, width int) string {
	frac := 0.0
	if st.TimerDuration > 0 {
		frac = float64(st.TimerRemaining) / float64(st.TimerDuration)
	}
	bar := components.Bar{Label: "Time", Frac: frac, Suffix: fmt.Sprintf("%ds", st.TimerRemaining)}
	if st.TimerRemaining <= 3 {
		bar.Fill = theme.Error
	}
	return bar.View(width)
}

func renderVerdict(st session.State) string {
	answer := "    " + theme.Body.Render("Answer: ") +
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(st.Question.Answer)

	switch st.Verdict {
	case session.VerdictCorrect:
		return theme.Correct.Render("    Correct!") + "\n" + answer
	case session.VerdictIncorrect:
		return theme.Incorrect.Render("    Incorrect") + "\n" + answer
	}
	return theme.Hint.Render("    Time's up") + "\n" + answer
}

func scoreLabel(score, attempts int) string {
	return fmt.Sprintf("%d/%d", score, attempts)
}

// keyLabel renders a key binding for hints, e.g. "ctrl+n" as "Ctrl+N".
func keyLabel(k string) string {
	if k == "" {
		return "-"
	}
	parts := strings.Split(k, "+")
	for i, p := range parts {
		switch {
		case len(p) == 1:
			parts[i] = strings.ToUpper(p)
		case len(p) > 1:
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "+")
}
