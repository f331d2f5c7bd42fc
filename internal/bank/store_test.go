package bank

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parserinator/parserinator/internal/persist"
)

func sampleQuestions() []Question {
	return []Question{
		{Text: "What is 2+2?", Answer: "4", Subjects: []string{"Math"}, Difficulty: DifficultyDistrict, Year: 2020},
		{Text: "Capital of France?", Answer: "Paris", Subjects: []string{"Social Studies"}, Difficulty: DifficultyDistrict, Year: 2020},
		{Text: "H2O is?", Answer: "water", Subjects: []string{"Science"}, Difficulty: DifficultyState, Year: 2021},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), DefaultFileName))
}

func TestLoad_MissingFile(t *testing.T) {
	s := newTestStore(t)
	qs, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, qs)
	assert.Equal(t, 0, s.Len())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	for _, q := range sampleQuestions() {
		require.NoError(t, s.Add(q))
	}

	reloaded := NewStore(s.Path())
	qs, err := reloaded.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleQuestions(), qs)
}

func TestSave_FileFormat(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add(Question{
		Text:       "Is 1 < 2 & 3 > 2?",
		Answer:     "yes",
		Subjects:   []string{"Math"},
		Difficulty: DifficultyRegional,
		Year:       2019,
	}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	want := `[
    {
        "text": "Is 1 < 2 & 3 > 2?",
        "answer": "yes",
        "subjects": [
            "Math"
        ],
        "difficulty": "Regional",
        "year": 2019
    }
]
`
	assert.Equal(t, want, string(data))
}

func TestSave_EmptyBankWritesArray(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestLoad_CorruptJSON(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`[{"text": "oops"`), 0o644))

	qs, err := s.Load()
	assert.Empty(t, qs)

	var corrupt *persist.CorruptDataError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, s.Path(), corrupt.Path)
}

func TestLoad_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an array", `{"text": "q"}`},
		{"missing answer", `[{"text": "q", "subjects": ["Math"], "difficulty": "State", "year": 2020}]`},
		{"unknown difficulty", `[{"text": "q", "answer": "a", "subjects": ["Math"], "difficulty": "National", "year": 2020}]`},
		{"year as string", `[{"text": "q", "answer": "a", "subjects": ["Math"], "difficulty": "State", "year": "2020"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.doc), 0o644))

			qs, err := s.Load()
			assert.Empty(t, qs)
			assert.True(t, persist.IsCorrupt(err), "expected corrupt data error, got %v", err)
		})
	}
}

func TestAdd_Validation(t *testing.T) {
	valid := sampleQuestions()[0]

	tests := []struct {
		name  string
		edit  func(*Question)
		field string
	}{
		{"empty text", func(q *Question) { q.Text = "   " }, "text"},
		{"empty answer", func(q *Question) { q.Answer = "" }, "answer"},
		{"no subjects", func(q *Question) { q.Subjects = []string{" "} }, "subjects"},
		{"bad difficulty", func(q *Question) { q.Difficulty = "Easy" }, "difficulty"},
		{"year too small", func(q *Question) { q.Year = 12 }, "year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			q := valid.Clone()
			tt.edit(&q)

			err := s.Add(q)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 0, s.Len())

			_, statErr := os.Stat(s.Path())
			assert.True(t, os.IsNotExist(statErr), "rejected question must not touch disk")
		})
	}
}

func TestAdd_TrimsFields(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add(Question{
		Text:       "  Who wrote Hamlet?  ",
		Answer:     " Shakespeare ",
		Subjects:   []string{" Language Arts ", ""},
		Difficulty: DifficultyState,
		Year:       2018,
	}))

	q := s.Questions()[0]
	assert.Equal(t, "Who wrote Hamlet?", q.Text)
	assert.Equal(t, "Shakespeare", q.Answer)
	assert.Equal(t, []string{"Language Arts"}, q.Subjects)
}

func TestAdd_RollbackOnWriteFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the rename fail.
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0o644))

	s := NewStore(path)
	err := s.Add(sampleQuestions()[0])
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	for _, q := range sampleQuestions() {
		require.NoError(t, s.Add(q))
	}

	n, err := s.Remove(ByText("Capital of France?"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	reloaded := NewStore(s.Path())
	qs, err := reloaded.Load()
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "What is 2+2?", qs[0].Text)
	assert.Equal(t, "H2O is?", qs[1].Text)

	n, err = s.Remove(ByText("missing"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestQuestions_ReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add(sampleQuestions()[0]))

	qs := s.Questions()
	qs[0].Text = "changed"
	qs[0].Subjects[0] = "Science"

	got := s.Questions()[0]
	assert.Equal(t, "What is 2+2?", got.Text)
	assert.Equal(t, []string{"Math"}, got.Subjects)
}

func TestParseDifficulty(t *testing.T) {
	d, ok := ParseDifficulty(" regional ")
	assert.True(t, ok)
	assert.Equal(t, DifficultyRegional, d)

	_, ok = ParseDifficulty("national")
	assert.False(t, ok)
}

func TestRevision(t *testing.T) {
	s := newTestStore(t)
	start := s.Revision()

	q := sampleQuestions()[0]
	require.NoError(t, s.Add(q))
	afterAdd := s.Revision()
	assert.NotEqual(t, start, afterAdd)

	assert.Error(t, s.Add(Question{Text: "no answer"}))
	assert.Equal(t, afterAdd, s.Revision(), "rejected add must not change the revision")

	n, err := s.Remove(ByText("missing"))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, afterAdd, s.Revision())

	n, err = s.Remove(ByText(q.Text))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotEqual(t, afterAdd, s.Revision())
}
