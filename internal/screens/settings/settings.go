// Package settings implements the preferences screen.
package settings

import (
	"errors"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parserinator/parserinator/internal/screen"
	"github.com/parserinator/parserinator/internal/settings"
	"github.com/parserinator/parserinator/internal/ui/components"
	"github.com/parserinator/parserinator/internal/ui/layout"
	"github.com/parserinator/parserinator/internal/ui/theme"
)

const (
	fieldSpeed = iota
	fieldTimerEnabled
	fieldTimerSeconds
	fieldDarkMode
	fieldCount
)

const (
	on  = "On"
	off = "Off"
)

// speedOptions are the selectable reveal intervals, in seconds.
var speedOptions = []string{"0.01", "0.02", "0.03", "0.04", "0.05", "0.06", "0.07", "0.08", "0.09", "0.10"}

// SettingsScreen edits reading speed, the answer timer and the theme.
type SettingsScreen struct {
	env *screen.Env

	speed        components.Selector
	timerEnabled components.Selector
	timerSeconds components.TextInput
	darkMode     components.Selector

	focus  int
	errMsg string
	saved  bool
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the screen from the current settings.
func New(env *screen.Env) *SettingsScreen {
	st := env.Settings
	s := &SettingsScreen{
		env:          env,
		speed:        components.NewSelector("Reading speed (s/char)", speedOptions, strconv.FormatFloat(st.ReadingSpeed, 'f', 2, 64)),
		timerEnabled: components.NewSelector("Answer timer", []string{on, off}, onOff(st.TimerEnabled)),
		timerSeconds: components.NewTextInput("seconds", true, 3),
		darkMode:     components.NewSelector("Dark mode", []string{on, off}, onOff(st.DarkMode)),
	}
	s.timerSeconds.SetValue(strconv.Itoa(st.TimerSeconds))
	s.setFocus(fieldSpeed)
	return s
}

func onOff(b bool) string {
	if b {
		return on
	}
	return off
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "down", "tab":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "up", "shift+tab":
			return s, s.setFocus((s.focus - 1 + fieldCount) % fieldCount)
		case "enter", "ctrl+s":
			s.save()
			return s, nil
		}
		s.saved = false
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldSpeed:
		s.speed, cmd = s.speed.Update(msg)
	case fieldTimerEnabled:
		s.timerEnabled, cmd = s.timerEnabled.Update(msg)
	case fieldTimerSeconds:
		s.timerSeconds, cmd = s.timerSeconds.Update(msg)
	case fieldDarkMode:
		s.darkMode, cmd = s.darkMode.Update(msg)
		theme.SetDark(s.darkMode.Value() == on)
	}
	return s, cmd
}

func (s *SettingsScreen) setFocus(field int) tea.Cmd {
	s.focus = field
	s.speed.Focused = field == fieldSpeed
	s.timerEnabled.Focused = field == fieldTimerEnabled
	s.darkMode.Focused = field == fieldDarkMode
	if field == fieldTimerSeconds {
		return s.timerSeconds.Focus()
	}
	s.timerSeconds.Blur()
	return nil
}

// save validates the form and writes it to disk. Invalid values leave the
// current settings untouched.
func (s *SettingsScreen) save() {
	s.errMsg, s.saved = "", false

	next := *s.env.Settings
	next.ReadingSpeed, _ = strconv.ParseFloat(s.speed.Value(), 64)
	next.TimerEnabled = s.timerEnabled.Value() == on
	next.DarkMode = s.darkMode.Value() == on

	secs, err := strconv.Atoi(strings.TrimSpace(s.timerSeconds.Value()))
	if err != nil {
		s.errMsg = "Timer seconds must be a number"
		return
	}
	next.TimerSeconds = secs

	if err := next.Validate(); err != nil {
		var ferr *settings.FieldError
		if errors.As(err, &ferr) {
			s.errMsg = ferr.Reason
		} else {
			s.errMsg = err.Error()
		}
		return
	}

	*s.env.Settings = next
	s.env.SaveSettings()
	theme.SetDark(next.DarkMode)
	s.env.Log().Info("settings saved", "reading_speed", next.ReadingSpeed, "timer_seconds", next.TimerSeconds, "timer_enabled", next.TimerEnabled)
	s.saved = true
}

func (s *SettingsScreen) View(width, height int) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.focus == fieldTimerSeconds {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}

	rows := []string{
		s.speed.View(),
		s.timerEnabled.View(),
		labelStyle.Render("Timer length: ") + s.timerSeconds.View(),
		s.darkMode.View(),
	}

	var b strings.Builder
	b.WriteString(strings.Join(rows, "\n\n"))
	b.WriteString("\n\n")
	switch {
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("✗ " + s.errMsg))
	case s.saved:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("✓ Saved"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 3).
		Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
