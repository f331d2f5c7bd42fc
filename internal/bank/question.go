package bank

import (
	"slices"
	"strings"
)

// Difficulty is the competition level a question was written for.
type Difficulty string

const (
	DifficultyDistrict Difficulty = "District"
	DifficultyRegional Difficulty = "Regional"
	DifficultyState    Difficulty = "State"
)

// Difficulties lists every legal difficulty in display order.
var Difficulties = []Difficulty{DifficultyDistrict, DifficultyRegional, DifficultyState}

// Subjects lists the subjects offered when writing or filtering questions.
var Subjects = []string{
	"Language Arts",
	"Social Studies",
	"Arts and Humanities",
	"Math",
	"Science",
}

// Year bounds accepted for a question.
const (
	MinYear = 1900
	MaxYear = 9999
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return slices.Contains(Difficulties, d)
}

// ParseDifficulty resolves a difficulty name case-insensitively.
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Difficulties {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

// Question is a single quiz question. Field order is the on-disk JSON order.
type Question struct {
	Text       string     `json:"text"`
	Answer     string     `json:"answer"`
	Subjects   []string   `json:"subjects"`
	Difficulty Difficulty `json:"difficulty"`
	Year       int        `json:"year"`
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	q.Subjects = slices.Clone(q.Subjects)
	return q
}

// HasSubject reports whether q is tagged with subject.
func (q Question) HasSubject(subject string) bool {
	return slices.Contains(q.Subjects, subject)
}

// Normalize trims surrounding whitespace from text, answer and subjects and
// drops blank subjects.
func (q Question) Normalize() Question {
	q.Text = strings.TrimSpace(q.Text)
	q.Answer = strings.TrimSpace(q.Answer)
	subjects := make([]string, 0, len(q.Subjects))
	for _, s := range q.Subjects {
		if s = strings.TrimSpace(s); s != "" {
			subjects = append(subjects, s)
		}
	}
	q.Subjects = subjects
	return q
}

// Validate checks the required fields of q.
// Returns a *ValidationError naming the first offending field.
func (q Question) Validate() error {
	switch {
	case strings.TrimSpace(q.Text) == "":
		return &ValidationError{Field: "text", Message: "question text cannot be empty"}
	case strings.TrimSpace(q.Answer) == "":
		return &ValidationError{Field: "answer", Message: "answer cannot be empty"}
	case len(q.Subjects) == 0:
		return &ValidationError{Field: "subjects", Message: "at least one subject is required"}
	case !q.Difficulty.Valid():
		return &ValidationError{Field: "difficulty", Message: "unknown difficulty " + `"` + string(q.Difficulty) + `"`}
	case q.Year < MinYear || q.Year > MaxYear:
		return &ValidationError{Field: "year", Message: "year out of range"}
	}
	return nil
}
