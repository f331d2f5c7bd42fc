package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/filter"
	"github.com/parserinator/parserinator/internal/keybind"
)

func filterCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addFilterFlags(cmd)
	for k, v := range flags {
		if err := cmd.Flags().Set(k, v); err != nil {
			t.Fatalf("set --%s: %v", k, err)
		}
	}
	return cmd
}

func TestCriteriaFromFlags(t *testing.T) {
	base := filter.Criteria{Year: 2023, Difficulty: bank.DifficultyDistrict, Subjects: []string{"Math"}}

	got, err := criteriaFromFlags(filterCmd(t, nil), base)
	if err != nil || got.Year != 2023 || got.Difficulty != bank.DifficultyDistrict || len(got.Subjects) != 1 {
		t.Errorf("no flags should keep base, got %+v, %v", got, err)
	}

	got, err = criteriaFromFlags(filterCmd(t, map[string]string{"difficulty": "state", "subject": ""}), base)
	if err != nil {
		t.Fatalf("criteriaFromFlags: %v", err)
	}
	if got.Difficulty != bank.DifficultyState || got.Year != 2023 || got.Subjects != nil {
		t.Errorf("got %+v", got)
	}

	if _, err := criteriaFromFlags(filterCmd(t, map[string]string{"difficulty": "national"}), base); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestFilterPartial(t *testing.T) {
	qs := []bank.Question{
		{Text: "a", Difficulty: bank.DifficultyDistrict, Year: 2023, Subjects: []string{"Math"}},
		{Text: "b", Difficulty: bank.DifficultyState, Year: 2023, Subjects: []string{"Science"}},
		{Text: "c", Difficulty: bank.DifficultyState, Year: 2024, Subjects: []string{"Math"}},
	}

	tests := []struct {
		flags map[string]string
		want  string
	}{
		{map[string]string{"year": "2023"}, "ab"},
		{map[string]string{"difficulty": "State"}, "bc"},
		{map[string]string{"subject": "Math"}, "ac"},
		{map[string]string{"subject": "Math", "year": "2024"}, "c"},
	}
	for _, tt := range tests {
		cmd := filterCmd(t, tt.flags)
		c, err := criteriaFromFlags(cmd, filter.Criteria{})
		if err != nil {
			t.Fatalf("%v: %v", tt.flags, err)
		}
		var got strings.Builder
		for _, q := range filterPartial(qs, cmd, c) {
			got.WriteString(q.Text)
		}
		if got.String() != tt.want {
			t.Errorf("%v: got %q, want %q", tt.flags, got.String(), tt.want)
		}
	}
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, bank.DefaultFileName), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("data-dir", dir, "")
	cmd.Flags().Bool("verbose", true, "")

	rt, err := setup(cmd)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer rt.Close()

	if rt.DataDir != dir || rt.Store == nil || rt.Env.EventRepo == nil {
		t.Errorf("runtime = %+v", rt)
	}
	if requireStore(rt) != nil {
		t.Error("store should be available")
	}
	if len(rt.Env.Notices) == 0 || !strings.Contains(strings.Join(rt.Env.Notices, "\n"), "question bank") {
		t.Errorf("corrupt bank should become a notice, got %v", rt.Env.Notices)
	}
	if _, err := os.Stat(filepath.Join(dir, LogFileName)); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestSetup_PrintableKeybind(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, keybind.DefaultFileName), []byte(`{"randomize": "r"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("data-dir", dir, "")
	cmd.Flags().Bool("verbose", false, "")

	rt, err := setup(cmd)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer rt.Close()

	if !strings.Contains(strings.Join(rt.Env.Notices, "\n"), `keybind "r" also types a character`) {
		t.Errorf("notices = %v", rt.Env.Notices)
	}
}

func TestFormatting(t *testing.T) {
	if got := truncate("Which planet is largest?", 10); got != "Which pla…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := formatDuration(125); got != "2:05" {
		t.Errorf("formatDuration = %q", got)
	}
	if got := formatCost(0.0021); got != "$0.0021" {
		t.Errorf("formatCost = %q", got)
	}
	if got := formatCost(1.5); got != "$1.50" {
		t.Errorf("formatCost = %q", got)
	}
	if buildVersion() == "" {
		t.Error("buildVersion should never be empty")
	}
}
