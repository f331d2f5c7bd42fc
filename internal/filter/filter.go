// Package filter selects the active subset of the question bank.
package filter

import (
	"fmt"
	"slices"

	"github.com/parserinator/parserinator/internal/bank"
)

// Default year range offered for filtering.
const (
	DefaultFromYear = 2017
	DefaultToYear   = 2024
)

// Criteria narrows the bank to the questions eligible for play.
// An empty Subjects list matches any subject.
type Criteria struct {
	Subjects   []string
	Difficulty bank.Difficulty
	Year       int
}

// Matches reports whether q satisfies c.
func (c Criteria) Matches(q bank.Question) bool {
	if q.Difficulty != c.Difficulty || q.Year != c.Year {
		return false
	}
	if len(c.Subjects) == 0 {
		return true
	}
	for _, s := range c.Subjects {
		if q.HasSubject(s) {
			return true
		}
	}
	return false
}

// Apply returns the questions of bank that match c, in bank order.
// The result may be empty.
func Apply(questions []bank.Question, c Criteria) []bank.Question {
	var out []bank.Question
	for _, q := range questions {
		if c.Matches(q) {
			out = append(out, q.Clone())
		}
	}
	return out
}

// Validate checks that c only uses known difficulties and subjects.
func (c Criteria) Validate() error {
	if !c.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", c.Difficulty)
	}
	if c.Year < bank.MinYear || c.Year > bank.MaxYear {
		return fmt.Errorf("year %d out of range", c.Year)
	}
	for _, s := range c.Subjects {
		if !slices.Contains(bank.Subjects, s) {
			return fmt.Errorf("unknown subject %q", s)
		}
	}
	return nil
}

// Label renders c for status lines, e.g. "District 2024 · Math".
func (c Criteria) Label() string {
	subject := "Any subject"
	if len(c.Subjects) > 0 {
		subject = c.Subjects[0]
		if len(c.Subjects) > 1 {
			subject = fmt.Sprintf("%s +%d", subject, len(c.Subjects)-1)
		}
	}
	return fmt.Sprintf("%s %d · %s", c.Difficulty, c.Year, subject)
}

// Years returns the inclusive range from..to, newest first.
func Years(from, to int) []int {
	if from > to {
		from, to = to, from
	}
	out := make([]int, 0, to-from+1)
	for y := to; y >= from; y-- {
		out = append(out, y)
	}
	return out
}

// Cycle returns the element after cur in opts, wrapping around.
// If cur is not present the first option is returned.
func Cycle[T comparable](opts []T, cur T) T {
	if len(opts) == 0 {
		return cur
	}
	i := slices.Index(opts, cur)
	return opts[(i+1)%len(opts)]
}

// NextSubject cycles through "any subject" followed by each known subject.
func NextSubject(cur []string) []string {
	if len(cur) == 0 {
		return []string{bank.Subjects[0]}
	}
	i := slices.Index(bank.Subjects, cur[0])
	if i < 0 || i == len(bank.Subjects)-1 {
		return nil
	}
	return []string{bank.Subjects[i+1]}
}
