package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/parserinator/parserinator/internal/router"
	"github.com/parserinator/parserinator/internal/screen"
	"github.com/parserinator/parserinator/internal/screens/home"
	"github.com/parserinator/parserinator/internal/screens/quiz"
	"github.com/parserinator/parserinator/internal/ui/layout"
	"github.com/parserinator/parserinator/internal/ui/theme"
)

// Options control how the program starts.
type Options struct {
	// StartQuiz opens the quiz screen on top of the home screen.
	StartQuiz bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	env    *screen.Env
	start  []screen.Screen
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen at the bottom of
// the stack.
func newAppModel(env *screen.Env, opts Options) AppModel {
	theme.SetDark(env.Settings.DarkMode)
	m := AppModel{
		router: router.New(home.New(env)),
		env:    env,
	}
	if opts.StartQuiz {
		m.start = append(m.start, quiz.New(env))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	for _, s := range m.start {
		cmds = append(cmds, m.router.Push(s))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.LeaveAll()
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var frame layout.Frame
	if active != nil {
		frame.Title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			frame.Status = sp.Status()
		}
	}

	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	switch kp, ok := active.(screen.KeyHintProvider); {
	case ok:
		frame.Hints = append(kp.KeyHints(), quit)
	case m.router.Depth() > 1:
		frame.Hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	default:
		frame.Hints = []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}, quit}
	}

	v.SetContent(frame.Render(m.width, m.height, m.router.View))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(env *screen.Env, opts Options) error {
	p := tea.NewProgram(newAppModel(env, opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
