// Package timer implements the per-question answer countdown.
package timer

import "time"

// Duration bounds in seconds.
const (
	MinSeconds     = 1
	MaxSeconds     = 120
	DefaultSeconds = 10
)

// TickInterval is the countdown granularity.
const TickInterval = time.Second

// State is the countdown lifecycle stage.
type State int

const (
	Idle State = iota
	Running
	Expired
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// Countdown counts whole seconds down to zero.
// The configured duration is kept apart from the remaining count.
type Countdown struct {
	duration  int
	remaining int
	state     State
}

// Start begins a countdown of the given seconds. It does nothing unless the
// countdown is idle. Returns whether the countdown started.
func (c *Countdown) Start(seconds int) bool {
	if c.state != Idle || seconds <= 0 {
		return false
	}
	c.duration = seconds
	c.remaining = seconds
	c.state = Running
	return true
}

// Tick removes one second. It returns true exactly once, on the tick that
// reaches zero.
func (c *Countdown) Tick() bool {
	if c.state != Running {
		return false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.state = Expired
		return true
	}
	return false
}

// Stop returns a running countdown to Idle.
func (c *Countdown) Stop() {
	if c.state == Running {
		c.state = Idle
	}
}

// Reset returns the countdown to Idle from any state.
func (c *Countdown) Reset() {
	c.state = Idle
	c.remaining = 0
}

// State returns the current lifecycle stage.
func (c *Countdown) State() State { return c.state }

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int { return c.remaining }

// Duration returns the seconds the last countdown started with.
func (c *Countdown) Duration() int { return c.duration }

// Fraction returns the share of time left in [0, 1].
func (c *Countdown) Fraction() float64 {
	if c.duration == 0 {
		return 0
	}
	return float64(c.remaining) / float64(c.duration)
}

// ClampSeconds limits s to [MinSeconds, MaxSeconds].
func ClampSeconds(s int) int {
	return min(max(s, MinSeconds), MaxSeconds)
}
