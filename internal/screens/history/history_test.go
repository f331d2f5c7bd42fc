package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/parserinator/parserinator/internal/router"
	"github.com/parserinator/parserinator/internal/store"
)

type mockEventRepo struct {
	store.EventRepo
	sessions []store.SessionSummaryRecord
	err      error
	limit    int
}

func (m *mockEventRepo) QuerySessionSummaries(_ context.Context, opts store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	m.limit = opts.Limit
	return m.sessions, m.err
}

func record(score, attempts int, subjects string) store.SessionSummaryRecord {
	return store.SessionSummaryRecord{
		Timestamp: time.Now(),
		SessionEventData: store.SessionEventData{
			SessionID:    "0123456789abcdef",
			Difficulty:   "Regional",
			Year:         2023,
			Subjects:     subjects,
			Score:        score,
			Attempts:     attempts,
			DurationSecs: 125,
		},
	}
}

func TestHistory_LoadAndExpand(t *testing.T) {
	repo := &mockEventRepo{sessions: []store.SessionSummaryRecord{
		record(3, 4, "Science;Math"),
		record(-1, 2, ""),
	}}
	s := New(repo)
	s.Update(s.Init()())
	if repo.limit != pageSize {
		t.Errorf("limit = %d, want %d", repo.limit, pageSize)
	}

	view := s.View(120, 30)
	for _, want := range []string{"Regional", "2023", "3/4", "2:05", "WHEN"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "Science, Math") {
		t.Error("expanded row should list subjects")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if strings.Contains(s.View(120, 30), "Science, Math") {
		t.Error("second enter should hide details")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	if view := s.View(120, 1); !strings.Contains(view, "-1/2") {
		t.Errorf("short view should scroll to the selected row: %q", view)
	}
}

func TestHistory_Empty(t *testing.T) {
	s := New(&mockEventRepo{})
	if !strings.Contains(s.View(80, 20), "Loading") {
		t.Error("expected loading view before data arrives")
	}
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 20), "No sessions yet") {
		t.Error("expected empty view")
	}
}

func TestHistory_Error(t *testing.T) {
	s := New(&mockEventRepo{err: errors.New("db locked")})
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 20), "db locked") {
		t.Error("expected error view")
	}
}

func TestHistory_EscPops(t *testing.T) {
	s := New(&mockEventRepo{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestScoreColor(t *testing.T) {
	if scoreColor(-1, 3) == scoreColor(2, 3) {
		t.Error("negative and good scores should differ")
	}
}
