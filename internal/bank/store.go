package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/parserinator/parserinator/internal/persist"
)

// DefaultFileName is the question bank file name inside the data directory.
const DefaultFileName = "questions.json"

// Store is the in-memory question bank backed by a JSON file.
// Every mutation rewrites the whole file.
type Store struct {
	path      string
	questions []Question
	rev       int
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates an empty Store bound to path. Call Load to read the file.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory bank with the file contents.
//
// A missing file yields an empty bank and no error. A file that is not valid
// JSON, or does not match the bank schema, yields an empty bank and a
// *persist.CorruptDataError; the caller decides how to surface it.
func (s *Store) Load() ([]Question, error) {
	s.questions = nil

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("question bank not found, starting empty", "path", s.path)
		return s.Questions(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	questions, err := decode(data)
	if err != nil {
		s.logger.Warn("question bank is corrupt", "path", s.path, "err", err)
		return s.Questions(), &persist.CorruptDataError{Path: s.path, Err: err}
	}

	s.questions = questions
	s.rev++
	s.logger.Debug("question bank loaded", "path", s.path, "count", len(questions))
	return s.Questions(), nil
}

// decode parses and schema-checks a bank document.
func decode(data []byte) ([]Question, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Save writes the full bank to disk atomically.
func (s *Store) Save() error {
	out := s.questions
	if out == nil {
		out = []Question{}
	}
	if err := persist.WriteJSON(s.path, out); err != nil {
		return fmt.Errorf("save question bank: %w", err)
	}
	s.logger.Debug("question bank saved", "path", filepath.Base(s.path), "count", len(out))
	return nil
}

// Add validates q, appends it and persists the bank.
// On a write failure the append is rolled back.
func (s *Store) Add(q Question) error {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return err
	}

	prev := s.questions
	s.questions = append(slices.Clip(prev), q)
	if err := s.Save(); err != nil {
		s.questions = prev
		return err
	}
	s.rev++
	return nil
}

// Remove deletes every question matching pred and persists the bank.
// Returns the number of questions removed; nothing is written when none match.
func (s *Store) Remove(pred func(Question) bool) (int, error) {
	kept := make([]Question, 0, len(s.questions))
	for _, q := range s.questions {
		if !pred(q) {
			kept = append(kept, q)
		}
	}
	removed := len(s.questions) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	prev := s.questions
	s.questions = kept
	if err := s.Save(); err != nil {
		s.questions = prev
		return 0, err
	}
	s.rev++
	return removed, nil
}

// Questions returns a deep copy of the bank in file order.
func (s *Store) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = q.Clone()
	}
	return out
}

// Revision changes whenever the in-memory bank does.
func (s *Store) Revision() int {
	return s.rev
}

// Len returns the number of questions in the bank.
func (s *Store) Len() int {
	return len(s.questions)
}

// ByText returns a predicate matching questions with exactly this text.
func ByText(text string) func(Question) bool {
	return func(q Question) bool { return q.Text == text }
}
