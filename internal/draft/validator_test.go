package draft

import (
	"strings"
	"testing"

	"github.com/parserinator/parserinator/internal/bank"
)

func validQuestion() bank.Question {
	return bank.Question{
		Text:       "Which planet is largest?",
		Answer:     "Jupiter",
		Subjects:   []string{"Science"},
		Difficulty: bank.DifficultyRegional,
		Year:       2023,
	}
}

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}
	in := Input{Criteria: testCriteria()}

	if err := v.Validate(validQuestion(), in, nil); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	q := validQuestion()
	q.Answer = strings.Repeat("x", MaxAnswerLen+1)
	if err := v.Validate(q, in, nil); err == nil {
		t.Error("long answer accepted")
	}

	q = validQuestion()
	q.Subjects = nil
	err := v.Validate(q, in, nil)
	if err == nil || !strings.Contains(err.Message, "subjects") {
		t.Errorf("missing subject: got %v", err)
	}
}

func TestCriteriaValidator(t *testing.T) {
	v := &CriteriaValidator{}
	in := Input{Criteria: testCriteria()}

	q := validQuestion()
	q.Subjects = []string{"Astrology"}
	if err := v.Validate(q, in, nil); err == nil || !strings.Contains(err.Message, "unknown subject") {
		t.Errorf("unknown subject: got %v", err)
	}

	q = validQuestion()
	q.Year = 2020
	if err := v.Validate(q, in, nil); err == nil {
		t.Error("wrong year accepted")
	}
}

func TestDuplicateValidator(t *testing.T) {
	v := &DuplicateValidator{}
	seen := map[string]bool{dedupKey("Which  PLANET is largest?"): true}

	if err := v.Validate(validQuestion(), Input{}, seen); err == nil {
		t.Error("duplicate accepted")
	}
	if err := v.Validate(validQuestion(), Input{}, map[string]bool{}); err != nil {
		t.Errorf("unexpected rejection: %v", err)
	}
}
