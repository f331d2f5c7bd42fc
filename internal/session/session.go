// Package session drives a quiz run: it reveals each question, runs the
// answer countdown, checks answers and keeps the score.
//
// The Controller is not safe for concurrent use. It is meant to be owned by
// a single event loop that feeds it user actions and the Ticks it asks for.
package session

import (
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/filter"
	"github.com/parserinator/parserinator/internal/reveal"
	"github.com/parserinator/parserinator/internal/timer"
)

// DefaultNextCooldown is the minimum time between two accepted Next calls.
const DefaultNextCooldown = 1500 * time.Millisecond

// Controller owns the session state machine.
type Controller struct {
	questions []bank.Question
	criteria  filter.Criteria
	active    []bank.Question

	index    int
	score    int
	attempts int

	submitted    bool
	scoreUpdated bool
	verdict      Verdict
	phase        Phase

	reveal    reveal.Reveal
	countdown timer.Countdown
	gen       int

	readingSpeed time.Duration
	timerEnabled bool
	timerSeconds int

	cooldown time.Duration
	lastNext time.Time
	started  time.Time

	now    func() time.Time
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source used for the Next cooldown.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithRand sets the random source used by Randomize.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithReadingSpeed sets the delay between revealed runes.
func WithReadingSpeed(d time.Duration) Option {
	return func(c *Controller) { c.readingSpeed = reveal.ClampInterval(d) }
}

// WithTimer configures the answer countdown.
func WithTimer(enabled bool, seconds int) Option {
	return func(c *Controller) {
		c.timerEnabled = enabled
		c.timerSeconds = timer.ClampSeconds(seconds)
	}
}

// WithCooldown overrides DefaultNextCooldown.
func WithCooldown(d time.Duration) Option {
	return func(c *Controller) { c.cooldown = d }
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController creates a controller over questions, filtered by criteria.
// Call Start to begin reading the first question.
func NewController(questions []bank.Question, criteria filter.Criteria, opts ...Option) *Controller {
	c := &Controller{
		questions:    questions,
		criteria:     criteria,
		readingSpeed: reveal.DefaultInterval,
		timerEnabled: true,
		timerSeconds: timer.DefaultSeconds,
		cooldown:     DefaultNextCooldown,
		now:          time.Now,
		logger:       slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(uint64(c.now().UnixNano()), 0))
	}
	c.active = filter.Apply(c.questions, c.criteria)
	c.started = c.now()
	c.phase = PhaseEmpty
	return c
}

// Start begins reading the first question of the active subset.
func (c *Controller) Start() *Tick {
	return c.restart()
}

// SetCriteria replaces the filter and restarts at the first matching question.
// Score and attempts are kept.
func (c *Controller) SetCriteria(criteria filter.Criteria) *Tick {
	c.criteria = criteria
	c.active = filter.Apply(c.questions, criteria)
	c.logger.Debug("criteria changed", "criteria", criteria.Label(), "matches", len(c.active))
	return c.restart()
}

// SetQuestions replaces the bank after an edit and refilters.
func (c *Controller) SetQuestions(questions []bank.Question) *Tick {
	c.questions = questions
	return c.SetCriteria(c.criteria)
}

// Randomize shuffles the active subset and restarts at its first question.
func (c *Controller) Randomize() *Tick {
	c.rng.Shuffle(len(c.active), func(i, j int) {
		c.active[i], c.active[j] = c.active[j], c.active[i]
	})
	return c.restart()
}

// Reset zeroes score and attempts and restarts at the first question.
func (c *Controller) Reset() *Tick {
	c.score = 0
	c.attempts = 0
	c.started = c.now()
	c.lastNext = time.Time{}
	return c.restart()
}

// Next advances to the following question. It is a silent no-op at the last
// question and within the cooldown of the previous accepted Next.
func (c *Controller) Next() *Tick {
	if len(c.active) == 0 || c.index >= len(c.active)-1 {
		return nil
	}
	now := c.now()
	if !c.lastNext.IsZero() && now.Sub(c.lastNext) < c.cooldown {
		return nil
	}
	c.lastNext = now
	c.attempts++
	c.index++
	return c.startQuestion()
}

// restart goes back to the first question of the active subset.
func (c *Controller) restart() *Tick {
	c.index = 0
	if len(c.active) == 0 {
		c.stopActivity()
		c.clearQuestionFlags()
		c.gen++
		c.phase = PhaseEmpty
		return nil
	}
	return c.startQuestion()
}

func (c *Controller) startQuestion() *Tick {
	c.stopActivity()
	c.clearQuestionFlags()
	c.gen++

	c.reveal.Start(c.active[c.index].Text)
	if c.reveal.Done() {
		return c.revealComplete()
	}
	c.phase = PhaseReading
	return c.revealTick()
}

func (c *Controller) stopActivity() {
	c.reveal.Cancel()
	c.countdown.Reset()
}

func (c *Controller) clearQuestionFlags() {
	c.submitted = false
	c.scoreUpdated = false
	c.verdict = VerdictNone
}

// RevealTick shows one more rune of the current question if gen is current
// and reading is still active.
func (c *Controller) RevealTick(gen int) *Tick {
	if gen != c.gen || c.phase != PhaseReading || !c.reveal.Active() {
		return nil
	}
	if c.reveal.Tick() {
		return c.revealComplete()
	}
	return c.revealTick()
}

func (c *Controller) revealComplete() *Tick {
	if !c.timerEnabled {
		c.phase = PhaseAwaitingAnswer
		return nil
	}
	c.countdown.Start(c.timerSeconds)
	c.phase = PhaseTimerRunning
	return &Tick{Kind: TickTimer, Gen: c.gen, Delay: timer.TickInterval}
}

func (c *Controller) revealTick() *Tick {
	return &Tick{Kind: TickReveal, Gen: c.gen, Delay: c.readingSpeed}
}

// TimerTick counts the answer timer down by one second if gen is current.
// On expiry the answer is revealed without changing the score.
func (c *Controller) TimerTick(gen int) *Tick {
	if gen != c.gen || c.phase != PhaseTimerRunning {
		return nil
	}
	if c.countdown.Tick() {
		c.phase = PhaseRevealed
		c.logger.Debug("timer expired", "index", c.index)
		return nil
	}
	return &Tick{Kind: TickTimer, Gen: c.gen, Delay: timer.TickInterval}
}

// Resume restarts the pending tick chain after ticks were dropped, e.g.
// while another screen was open. Ticks already in flight become stale.
func (c *Controller) Resume() *Tick {
	c.gen++
	switch c.phase {
	case PhaseReading:
		return c.revealTick()
	case PhaseTimerRunning:
		return &Tick{Kind: TickTimer, Gen: c.gen, Delay: timer.TickInterval}
	}
	return nil
}

// Submit checks answer against the current question, case-insensitively.
// Only the first submission per question counts; later calls, calls after
// the answer was revealed and calls on an empty subset return VerdictNone.
func (c *Controller) Submit(answer string) Verdict {
	if c.submitted {
		return VerdictNone
	}
	switch c.phase {
	case PhaseReading, PhaseAwaitingAnswer, PhaseTimerRunning:
	default:
		return VerdictNone
	}

	c.submitted = true
	c.reveal.Finish()
	c.countdown.Stop()
	c.phase = PhaseRevealed

	if CheckAnswer(answer, c.active[c.index].Answer) {
		c.score++
		c.verdict = VerdictCorrect
	} else {
		c.verdict = VerdictIncorrect
	}
	c.logger.Debug("answer submitted", "index", c.index, "correct", c.verdict == VerdictCorrect)
	return c.verdict
}

// CheckAnswer compares a typed answer with the expected one ignoring case.
func CheckAnswer(got, want string) bool {
	return strings.ToLower(got) == strings.ToLower(want)
}

// Mark manually scores the current question +1 or -1. It applies at most once
// per question, independently of Submit. Returns whether the score changed.
func (c *Controller) Mark(correct bool) bool {
	if len(c.active) == 0 || c.scoreUpdated {
		return false
	}
	c.scoreUpdated = true
	if correct {
		c.score++
	} else {
		c.score--
	}
	return true
}

// SetReadingSpeed changes the delay used for subsequent reveal ticks.
func (c *Controller) SetReadingSpeed(d time.Duration) {
	c.readingSpeed = reveal.ClampInterval(d)
}

// SetTimer changes the countdown settings. A countdown already running keeps
// going; the change applies from the next question.
func (c *Controller) SetTimer(enabled bool, seconds int) {
	c.timerEnabled = enabled
	c.timerSeconds = timer.ClampSeconds(seconds)
}

// TimerEnabled reports whether the countdown starts after each reveal.
func (c *Controller) TimerEnabled() bool { return c.timerEnabled }

// TimerSeconds returns the configured countdown length.
func (c *Controller) TimerSeconds() int { return c.timerSeconds }

// ReadingSpeed returns the delay between revealed runes.
func (c *Controller) ReadingSpeed() time.Duration { return c.readingSpeed }

// Criteria returns the active filter.
func (c *Controller) Criteria() filter.Criteria { return c.criteria }

// Gen returns the current tick generation.
func (c *Controller) Gen() int { return c.gen }

// State returns a snapshot for rendering.
func (c *Controller) State() State {
	s := State{
		Phase:          c.phase,
		Criteria:       c.criteria,
		Index:          c.index,
		Total:          len(c.active),
		Score:          c.score,
		Attempts:       c.attempts,
		Submitted:      c.submitted,
		ScoreUpdated:   c.scoreUpdated,
		Verdict:        c.verdict,
		TimerEnabled:   c.timerEnabled,
		TimerRemaining: c.countdown.Remaining(),
		TimerDuration:  c.countdown.Duration(),
	}
	if len(c.active) > 0 {
		s.Question = c.active[c.index].Clone()
		s.Prefix = c.reveal.Prefix()
		s.RevealProgress = c.reveal.Progress()
	}
	return s
}

// Tally summarises the run so far.
func (c *Controller) Tally() Tally {
	return Tally{
		Criteria:  c.criteria,
		Score:     c.score,
		Attempts:  c.attempts,
		StartedAt: c.started,
		Duration:  c.now().Sub(c.started),
	}
}
