package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/filter"
	"github.com/parserinator/parserinator/internal/persist"
)

func TestDefault_IsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, 50*time.Millisecond, s.ReadingInterval())
	assert.Len(t, s.YearOptions(), 8)
}

func TestLoad_Missing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	s := Default()
	s.ReadingSpeed = 0.02
	s.TimerEnabled = false
	s.SetCriteria(filter.Criteria{Subjects: []string{"Science"}, Difficulty: bank.DifficultyState, Year: 2019})
	require.NoError(t, s.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.Equal(t, []string{"Science"}, got.Criteria().Subjects)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("timer_seconds: 30\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, s.TimerSeconds)
	assert.True(t, s.TimerEnabled)
	assert.Equal(t, Default().Years, s.Years)
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("timer_seconds: [1, 2\n"), 0o644))

	s, err := Load(path)
	assert.True(t, persist.IsCorrupt(err))
	assert.Equal(t, Default(), s)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvReadingSpeed, "0.08")
	t.Setenv(EnvTimerSeconds, "45")
	t.Setenv(EnvTimerEnabled, "false")
	t.Setenv(EnvDarkMode, "0")

	s := Default()
	require.NoError(t, s.ApplyEnv())
	assert.Equal(t, 0.08, s.ReadingSpeed)
	assert.Equal(t, 45, s.TimerSeconds)
	assert.False(t, s.TimerEnabled)
	assert.False(t, s.DarkMode)
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv(EnvTimerSeconds, "soon")

	s := Default()
	err := s.ApplyEnv()
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, EnvTimerSeconds, fe.Field)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvTimerSeconds+"=12\n"), 0o644))
	t.Setenv(EnvTimerSeconds, "")
	os.Unsetenv(EnvTimerSeconds)

	LoadEnvFiles(dir)
	t.Cleanup(func() { os.Unsetenv(EnvTimerSeconds) })

	s := Default()
	require.NoError(t, s.ApplyEnv())
	assert.Equal(t, 12, s.TimerSeconds)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Settings)
		field string
	}{
		{"speed too fast", func(s *Settings) { s.ReadingSpeed = 0.001 }, "reading_speed"},
		{"speed too slow", func(s *Settings) { s.ReadingSpeed = 1 }, "reading_speed"},
		{"timer zero", func(s *Settings) { s.TimerSeconds = 0 }, "timer_seconds"},
		{"timer too long", func(s *Settings) { s.TimerSeconds = 600 }, "timer_seconds"},
		{"years reversed", func(s *Settings) { s.Years = YearRange{From: 2024, To: 2017} }, "years"},
		{"unknown difficulty", func(s *Settings) { s.Filter.Difficulty = "Easy" }, "filter"},
		{"unknown subject", func(s *Settings) { s.Filter.Subject = "Cooking" }, "filter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.edit(&s)
			var fe *FieldError
			require.True(t, errors.As(s.Validate(), &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}
