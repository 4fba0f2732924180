package stock

import (
	"errors"
	"fmt"
	"time"
)

const (
	PhaseActive   = "active"
	PhaseCooldown = "cooldown"
)

var ErrInvalidConfig = errors.New("invalid stock decay config")

// Config drives the simulated stock level: linear decay over Window, a
// Cooldown at zero, then a refill to RefillPercent of the maximum.
type Config struct {
	Window        time.Duration
	Cooldown      time.Duration
	RefillPercent int
}

func (c Config) Validate() error {
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive", ErrInvalidConfig)
	}
	if c.Cooldown < 0 {
		return fmt.Errorf("%w: cooldown must not be negative", ErrInvalidConfig)
	}
	if c.RefillPercent < 1 || c.RefillPercent > 100 {
		return fmt.Errorf("%w: refill percent %d not in 1..100", ErrInvalidConfig, c.RefillPercent)
	}
	return nil
}

// State is what gets persisted per product variant.
type State struct {
	Max        int       `json:"max"`
	Level      int       `json:"level"`
	CycleStart time.Time `json:"cycle_start"`
}

func NewState(max int, now time.Time) State {
	return State{Max: max, Level: max, CycleStart: now}
}

type Snapshot struct {
	Value        int       `json:"value"`
	Max          int       `json:"max"`
	Phase        string    `json:"phase"`
	NextRefillAt time.Time `json:"next_refill_at"`
}

// ceilDiv returns ceil(a/b) for a >= 0, b > 0.
func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

func (c Config) refillLevel(max int) int {
	return int(ceilDiv(int64(max)*int64(c.RefillPercent), 100))
}

func (c Config) cycleLength() time.Duration {
	return c.Window + c.Cooldown
}

// Advance rolls s forward through every cycle that has fully elapsed by now.
// It reports whether the state changed.
func (c Config) Advance(s State, now time.Time) (State, bool) {
	cycle := c.cycleLength()
	elapsed := now.Sub(s.CycleStart)
	if elapsed < cycle {
		return s, false
	}
	n := elapsed / cycle
	s.CycleStart = s.CycleStart.Add(n * cycle)
	s.Level = c.refillLevel(s.Max)
	return s, true
}

// Value is ceil(level * (1 - elapsed/window)) clamped at zero. It does not
// roll cycles over; call Advance first.
func (c Config) Value(s State, now time.Time) int {
	elapsed := now.Sub(s.CycleStart)
	if elapsed <= 0 {
		return s.Level
	}
	if elapsed >= c.Window {
		return 0
	}
	remaining := (c.Window - elapsed).Milliseconds()
	window := c.Window.Milliseconds()
	if window == 0 {
		return 0
	}
	return int(ceilDiv(int64(s.Level)*remaining, window))
}

// Current advances s and returns the visible value with the new state.
func (c Config) Current(s State, now time.Time) (Snapshot, State, bool) {
	next, changed := c.Advance(s, now)
	v := c.Value(next, now)
	phase := PhaseActive
	if now.Sub(next.CycleStart) >= c.Window {
		phase = PhaseCooldown
	}
	return Snapshot{
		Value:        v,
		Max:          next.Max,
		Phase:        phase,
		NextRefillAt: next.CycleStart.Add(c.cycleLength()),
	}, next, changed
}
