package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v", tt.w, tt.h, got)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Quiz", "Score 3/5", 80)
	for _, want := range []string{"Parserinator", "Quiz", "Score 3/5"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
	if h := lipgloss.Height(out); h != 3 {
		t.Errorf("header should be one bordered row, got %d lines", h)
	}
}

func TestFrameRender(t *testing.T) {
	var gotW, gotH int
	f := Frame{Title: "History", Hints: []KeyHint{{Key: "Esc", Description: "Back"}}}
	out := f.Render(80, 24, func(w, h int) string {
		gotW, gotH = w, h
		return "body"
	})

	if gotW != 80 || gotH != 24-6 {
		t.Errorf("body got %dx%d, want 80x18", gotW, gotH)
	}
	if h := lipgloss.Height(out); h != 24 {
		t.Errorf("frame height = %d, want 24", h)
	}
	if !strings.Contains(out, "Esc") || !strings.Contains(out, "body") {
		t.Errorf("frame = %s", out)
	}
}
