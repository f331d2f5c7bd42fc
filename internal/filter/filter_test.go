package filter

import (
	"testing"

	"github.com/parserinator/parserinator/internal/bank"
)

func testBank() []bank.Question {
	return []bank.Question{
		{Text: "q1", Answer: "a", Subjects: []string{"Math"}, Difficulty: bank.DifficultyDistrict, Year: 2024},
		{Text: "q2", Answer: "a", Subjects: []string{"Science", "Math"}, Difficulty: bank.DifficultyDistrict, Year: 2024},
		{Text: "q3", Answer: "a", Subjects: []string{"Science"}, Difficulty: bank.DifficultyDistrict, Year: 2023},
		{Text: "q4", Answer: "a", Subjects: []string{"Language Arts"}, Difficulty: bank.DifficultyState, Year: 2024},
		{Text: "q5", Answer: "a", Subjects: []string{"Language Arts"}, Difficulty: bank.DifficultyDistrict, Year: 2024},
	}
}

func texts(qs []bank.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Text
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "any subject keeps bank order",
			criteria: Criteria{Difficulty: bank.DifficultyDistrict, Year: 2024},
			want:     []string{"q1", "q2", "q5"},
		},
		{
			name:     "subject intersection",
			criteria: Criteria{Subjects: []string{"Science"}, Difficulty: bank.DifficultyDistrict, Year: 2024},
			want:     []string{"q2"},
		},
		{
			name:     "multiple subjects",
			criteria: Criteria{Subjects: []string{"Math", "Language Arts"}, Difficulty: bank.DifficultyDistrict, Year: 2024},
			want:     []string{"q1", "q2", "q5"},
		},
		{
			name:     "year must match exactly",
			criteria: Criteria{Difficulty: bank.DifficultyDistrict, Year: 2023},
			want:     []string{"q3"},
		},
		{
			name:     "no match",
			criteria: Criteria{Difficulty: bank.DifficultyRegional, Year: 2024},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(Apply(testBank(), tt.criteria))
			if len(got) != len(tt.want) {
				t.Fatalf("Apply() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Apply()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Every returned question satisfies the criteria and nothing matching is dropped.
func TestApply_Exhaustive(t *testing.T) {
	subjectSets := [][]string{nil, {"Math"}, {"Science"}, {"Language Arts", "Science"}, {"Arts and Humanities"}}
	for _, d := range bank.Difficulties {
		for _, y := range []int{2023, 2024} {
			for _, ss := range subjectSets {
				c := Criteria{Subjects: ss, Difficulty: d, Year: y}
				got := Apply(testBank(), c)
				matched := 0
				for _, q := range testBank() {
					if c.Matches(q) {
						matched++
					}
				}
				if len(got) != matched {
					t.Errorf("%+v: got %d questions, want %d", c, len(got), matched)
				}
				for _, q := range got {
					if q.Difficulty != d || q.Year != y {
						t.Errorf("%+v: returned %q with %s/%d", c, q.Text, q.Difficulty, q.Year)
					}
				}
			}
		}
	}
}

func TestApply_EmptyBank(t *testing.T) {
	got := Apply(nil, Criteria{Difficulty: bank.DifficultyState, Year: 2024})
	if len(got) != 0 {
		t.Errorf("Apply(nil) = %v, want empty", got)
	}
}

func TestValidate(t *testing.T) {
	ok := Criteria{Subjects: []string{"Math"}, Difficulty: bank.DifficultyState, Year: 2020}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	bad := []Criteria{
		{Difficulty: "Easy", Year: 2020},
		{Difficulty: bank.DifficultyState, Year: 10},
		{Subjects: []string{"Cooking"}, Difficulty: bank.DifficultyState, Year: 2020},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", c)
		}
	}
}

func TestYears(t *testing.T) {
	got := Years(DefaultFromYear, DefaultToYear)
	if len(got) != 8 || got[0] != 2024 || got[7] != 2017 {
		t.Errorf("Years() = %v", got)
	}
	if got := Years(2020, 2018); len(got) != 3 || got[0] != 2020 {
		t.Errorf("Years(reversed) = %v", got)
	}
}

func TestCycle(t *testing.T) {
	if got := Cycle(bank.Difficulties, bank.DifficultyState); got != bank.DifficultyDistrict {
		t.Errorf("Cycle wrap = %s", got)
	}
	if got := Cycle(bank.Difficulties, "unknown"); got != bank.DifficultyDistrict {
		t.Errorf("Cycle missing = %s", got)
	}
}

func TestNextSubject(t *testing.T) {
	var cur []string
	seen := []string{}
	for range len(bank.Subjects) + 1 {
		cur = NextSubject(cur)
		if len(cur) == 0 {
			seen = append(seen, "")
		} else {
			seen = append(seen, cur[0])
		}
	}
	if seen[0] != bank.Subjects[0] || seen[len(seen)-1] != "" {
		t.Errorf("NextSubject cycle = %v", seen)
	}
}
