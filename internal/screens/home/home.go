package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/parserinator/parserinator/internal/filter"
	"github.com/parserinator/parserinator/internal/keybind"
	"github.com/parserinator/parserinator/internal/router"
	"github.com/parserinator/parserinator/internal/screen"
	"github.com/parserinator/parserinator/internal/screens/addquestion"
	"github.com/parserinator/parserinator/internal/screens/history"
	"github.com/parserinator/parserinator/internal/screens/info"
	"github.com/parserinator/parserinator/internal/screens/manage"
	"github.com/parserinator/parserinator/internal/screens/quiz"
	settingsscreen "github.com/parserinator/parserinator/internal/screens/settings"
	"github.com/parserinator/parserinator/internal/store"
	"github.com/parserinator/parserinator/internal/ui/components"
)

// lastSessionMsg carries the most recent recorded session.
type lastSessionMsg struct {
	Label string
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	env         *screen.Env
	menu        components.Menu
	menuLabels  []string
	lastSession string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd { return router.Open(build()) }
	}

	menuLabels := []string{"PLAY", "ADD QUESTION", "MANAGE QUESTIONS", "SETTINGS", "HISTORY", "KEYS", "QUIT"}
	items := []components.MenuItem{
		{Label: menuLabels[0], Action: push(func() screen.Screen { return quiz.New(env) })},
		{Label: menuLabels[1], Action: push(func() screen.Screen { return addquestion.New(env) })},
		{Label: menuLabels[2], Action: push(func() screen.Screen { return manage.New(env) })},
		{Label: menuLabels[3], Action: push(func() screen.Screen { return settingsscreen.New(env) })},
		{Label: menuLabels[4], Action: push(func() screen.Screen {
			if env.EventRepo == nil {
				return info.New("History", "Session history needs the database.\nCheck the log for the error that disabled it.")
			}
			return history.New(env.EventRepo)
		})},
		{Label: menuLabels[5], Action: push(func() screen.Screen {
			return info.New("Keys", keyHelp(env.Keys))
		})},
		{Label: menuLabels[6], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		env:        env,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	repo := h.env.EventRepo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		recs, err := repo.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: 1})
		if err != nil || len(recs) == 0 {
			return lastSessionMsg{}
		}
		r := recs[0]
		return lastSessionMsg{Label: fmt.Sprintf("%d/%d on %s", r.Score, r.Attempts, r.Timestamp.Local().Format("Jan 2"))}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(lastSessionMsg); ok {
		h.lastSession = m.Label
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 28 || width < 100
	cw := sectionWidth(width)
	criteria := h.env.Settings.Criteria()
	questions := h.env.Bank.Questions()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if len(h.env.Notices) > 0 {
		sections = append(sections, renderNotices(h.env.Notices, cw))
	}
	sections = append(sections, renderStatsBar(
		len(questions), len(filter.Apply(questions, criteria)), criteria.Label(), h.lastSession, cw, compact))
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return cabinet(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// keyHelp lists the active key bindings.
func keyHelp(keys keybind.Map) string {
	var b strings.Builder
	for _, a := range keybind.Actions {
		fmt.Fprintf(&b, "%-18s %s\n", a, keys.Key(a))
	}
	if c := keys.Conflicts(); len(c) > 0 {
		fmt.Fprintf(&b, "\nConflicting keys: %s\n", strings.Join(c, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
