// Package settings holds user preferences stored in settings.yaml.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/filter"
	"github.com/parserinator/parserinator/internal/persist"
	"github.com/parserinator/parserinator/internal/reveal"
	"github.com/parserinator/parserinator/internal/timer"
)

// DefaultFileName is the settings file name inside the data directory.
const DefaultFileName = "settings.yaml"

// Environment overrides.
const (
	EnvReadingSpeed = "PARSERINATOR_READING_SPEED"
	EnvTimerSeconds = "PARSERINATOR_TIMER_SECONDS"
	EnvTimerEnabled = "PARSERINATOR_TIMER_ENABLED"
	EnvDarkMode     = "PARSERINATOR_DARK_MODE"
)

// Settings are the persisted user preferences.
type Settings struct {
	// ReadingSpeed is the delay between revealed characters, in seconds.
	ReadingSpeed float64   `yaml:"reading_speed"`
	TimerSeconds int       `yaml:"timer_seconds"`
	TimerEnabled bool      `yaml:"timer_enabled"`
	DarkMode     bool      `yaml:"dark_mode"`
	Filter       Filter    `yaml:"filter"`
	Years        YearRange `yaml:"years"`
}

// Filter is the last used question filter.
type Filter struct {
	Year       int    `yaml:"year"`
	Difficulty string `yaml:"difficulty"`
	Subject    string `yaml:"subject,omitempty"`
}

// YearRange bounds the years offered by the year selector.
type YearRange struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// FieldError reports an invalid setting.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		ReadingSpeed: reveal.DefaultInterval.Seconds(),
		TimerSeconds: timer.DefaultSeconds,
		TimerEnabled: true,
		DarkMode:     true,
		Filter: Filter{
			Year:       filter.DefaultToYear,
			Difficulty: string(bank.DifficultyDistrict),
		},
		Years: YearRange{From: filter.DefaultFromYear, To: filter.DefaultToYear},
	}
}

// Load reads settings from path on top of the defaults.
// A missing file yields the defaults. A malformed file yields the defaults
// and a *persist.CorruptDataError.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), &persist.CorruptDataError{Path: path, Err: err}
	}
	return s, nil
}

// Save writes s to path.
func (s Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := persist.WriteFile(path, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// LoadEnvFiles loads .env from the working directory and from dataDir.
// Variables already set in the environment win. Missing files are ignored.
func LoadEnvFiles(dataDir string) {
	_ = godotenv.Load()
	if dataDir != "" {
		_ = godotenv.Load(filepath.Join(dataDir, ".env"))
	}
}

// ApplyEnv overrides fields from PARSERINATOR_* environment variables.
func (s *Settings) ApplyEnv() error {
	if v := os.Getenv(EnvReadingSpeed); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &FieldError{Field: EnvReadingSpeed, Value: v, Reason: "not a number"}
		}
		s.ReadingSpeed = f
	}
	if v := os.Getenv(EnvTimerSeconds); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &FieldError{Field: EnvTimerSeconds, Value: v, Reason: "not an integer"}
		}
		s.TimerSeconds = n
	}
	if v := os.Getenv(EnvTimerEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &FieldError{Field: EnvTimerEnabled, Value: v, Reason: "not a boolean"}
		}
		s.TimerEnabled = b
	}
	if v := os.Getenv(EnvDarkMode); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &FieldError{Field: EnvDarkMode, Value: v, Reason: "not a boolean"}
		}
		s.DarkMode = b
	}
	return nil
}

// Validate checks every field against its allowed range.
func (s Settings) Validate() error {
	minSpeed, maxSpeed := reveal.MinInterval.Seconds(), reveal.MaxInterval.Seconds()
	if s.ReadingSpeed < minSpeed || s.ReadingSpeed > maxSpeed {
		return &FieldError{Field: "reading_speed", Value: s.ReadingSpeed, Reason: fmt.Sprintf("must be between %.2f and %.2f", minSpeed, maxSpeed)}
	}
	if s.TimerSeconds < timer.MinSeconds || s.TimerSeconds > timer.MaxSeconds {
		return &FieldError{Field: "timer_seconds", Value: s.TimerSeconds, Reason: fmt.Sprintf("must be between %d and %d", timer.MinSeconds, timer.MaxSeconds)}
	}
	if s.Years.From < bank.MinYear || s.Years.To > bank.MaxYear || s.Years.From > s.Years.To {
		return &FieldError{Field: "years", Value: fmt.Sprintf("%d-%d", s.Years.From, s.Years.To), Reason: "invalid range"}
	}
	if err := s.Criteria().Validate(); err != nil {
		return &FieldError{Field: "filter", Value: s.Filter, Reason: err.Error()}
	}
	return nil
}

// ReadingInterval returns ReadingSpeed as a duration.
func (s Settings) ReadingInterval() time.Duration {
	return time.Duration(math.Round(s.ReadingSpeed * float64(time.Second)))
}

// Criteria converts the stored filter.
func (s Settings) Criteria() filter.Criteria {
	c := filter.Criteria{
		Difficulty: bank.Difficulty(s.Filter.Difficulty),
		Year:       s.Filter.Year,
	}
	if s.Filter.Subject != "" {
		c.Subjects = []string{s.Filter.Subject}
	}
	return c
}

// SetCriteria stores c as the last used filter. Only the first subject is kept.
func (s *Settings) SetCriteria(c filter.Criteria) {
	s.Filter = Filter{Year: c.Year, Difficulty: string(c.Difficulty)}
	if len(c.Subjects) > 0 {
		s.Filter.Subject = c.Subjects[0]
	}
}

// YearOptions returns the selectable years, newest first.
func (s Settings) YearOptions() []int {
	return filter.Years(s.Years.From, s.Years.To)
}
