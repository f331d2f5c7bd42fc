package session

import (
	"time"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/filter"
)

// Phase represents where the current question is in its lifecycle.
type Phase int

const (
	PhaseEmpty          Phase = iota // No questions match the criteria
	PhaseReading                     // Question text is being revealed
	PhaseAwaitingAnswer              // Text fully shown, timer disabled
	PhaseTimerRunning                // Text fully shown, countdown running
	PhaseRevealed                    // Answer shown after submit or timeout
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseReading:
		return "reading"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseTimerRunning:
		return "timer-running"
	case PhaseRevealed:
		return "revealed"
	}
	return "unknown"
}

// Verdict is the outcome of a submitted answer.
type Verdict int

const (
	VerdictNone Verdict = iota // Not yet submitted
	VerdictCorrect
	VerdictIncorrect
)

// TickKind identifies which scheduled callback a Tick drives.
type TickKind int

const (
	TickReveal TickKind = iota
	TickTimer
)

// Tick asks the caller to invoke RevealTick or TimerTick with Gen after Delay.
// A tick whose generation is no longer current is ignored.
type Tick struct {
	Kind  TickKind
	Gen   int
	Delay time.Duration
}

// State is a read-only view of the controller for rendering.
type State struct {
	Phase    Phase
	Criteria filter.Criteria

	// Question is the current question; zero when Phase is PhaseEmpty.
	Question bank.Question
	Index    int
	Total    int

	Score    int
	Attempts int

	Submitted    bool
	ScoreUpdated bool
	Verdict      Verdict

	// Prefix is the revealed part of the question text.
	Prefix         string
	RevealProgress int

	TimerEnabled   bool
	TimerRemaining int
	TimerDuration  int
}

// AtLast reports whether the current question is the last of the subset.
func (s State) AtLast() bool {
	return s.Total == 0 || s.Index == s.Total-1
}

// Tally is the score summary recorded when a session ends.
type Tally struct {
	Criteria  filter.Criteria
	Score     int
	Attempts  int
	StartedAt time.Time
	Duration  time.Duration
}
