// Package reveal progressively uncovers question text one rune at a time.
package reveal

import (
	"iter"
	"time"
)

// Reading speed bounds, as the delay between two revealed runes.
const (
	MinInterval     = 10 * time.Millisecond
	MaxInterval     = 100 * time.Millisecond
	DefaultInterval = 50 * time.Millisecond
)

// ClampInterval limits d to [MinInterval, MaxInterval].
func ClampInterval(d time.Duration) time.Duration {
	return min(max(d, MinInterval), MaxInterval)
}

type state int

const (
	stateIdle state = iota
	stateReading
	stateDone
	stateCancelled
)

// Reveal tracks how much of a text has been shown.
// The zero value is idle with nothing to show.
type Reveal struct {
	runes []rune
	pos   int
	state state
	gen   int
}

// Start begins revealing text from the empty prefix. Any reveal in progress
// is abandoned. Empty text completes immediately.
func (r *Reveal) Start(text string) {
	r.runes = []rune(text)
	r.pos = 0
	r.gen++
	r.state = stateReading
	if len(r.runes) == 0 {
		r.state = stateDone
	}
}

// Tick reveals one more rune. It returns true on the tick that completes the
// text. Ticks while not reading do nothing.
func (r *Reveal) Tick() bool {
	if r.state != stateReading {
		return false
	}
	r.pos++
	if r.pos >= len(r.runes) {
		r.pos = len(r.runes)
		r.state = stateDone
		return true
	}
	return false
}

// Cancel halts the reveal at its current prefix.
func (r *Reveal) Cancel() {
	if r.state == stateReading {
		r.state = stateCancelled
	}
}

// Finish shows the whole text at once and stops reading.
func (r *Reveal) Finish() {
	r.pos = len(r.runes)
	r.state = stateDone
}

// Active reports whether further ticks will reveal more text.
func (r *Reveal) Active() bool { return r.state == stateReading }

// Done reports whether the whole text is shown.
func (r *Reveal) Done() bool { return r.state == stateDone }

// Prefix returns the currently revealed text.
func (r *Reveal) Prefix() string { return string(r.runes[:r.pos]) }

// Progress returns the number of runes revealed so far.
func (r *Reveal) Progress() int { return r.pos }

// Len returns the rune length of the text being revealed.
func (r *Reveal) Len() int { return len(r.runes) }

// Prefixes yields every prefix of the started text, from "" to the full
// text, len+1 values in all. Each iteration restarts from the empty prefix.
// The sequence ends early once the reveal is cancelled or restarted.
func (r *Reveal) Prefixes() iter.Seq[string] {
	runes, gen := r.runes, r.gen
	return func(yield func(string) bool) {
		for i := 0; i <= len(runes); i++ {
			if r.state == stateCancelled || r.gen != gen {
				return
			}
			if !yield(string(runes[:i])) {
				return
			}
		}
	}
}
