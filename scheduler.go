package drift

import "time"

// Mode is the render loop cadence.
type Mode uint8

const (
	// ModeIdle schedules nothing; the grid is at rest and nothing plays.
	ModeIdle Mode = iota
	// ModeHigh steps once per display refresh; some motion or animation
	// is in flight.
	ModeHigh
	// ModeLow steps on a fixed ~67ms timer; media plays but no navigation
	// animation is running.
	ModeLow
)

// String returns the mode name for debugging and test output.
func (m Mode) String() string {
	switch m {
	case ModeHigh:
		return "high"
	case ModeLow:
		return "low"
	default:
		return "idle"
	}
}

// Activity is the set of liveness flags the cadence decision reads.
type Activity struct {
	Dragging  bool
	Coasting  bool
	Snapping  bool
	Animating bool
	Playing   bool
}

// ModeFor is the pure cadence predicate: any motion or animation wants the
// full refresh rate; playback alone wants the low cadence; otherwise idle.
func ModeFor(a Activity) Mode {
	if a.Dragging || a.Coasting || a.Snapping || a.Animating {
		return ModeHigh
	}
	if a.Playing {
		return ModeLow
	}
	return ModeIdle
}

// Scheduler gates per-frame work at one of three cadences. The host calls
// Reevaluate after every frame and on every external state change, and asks
// ShouldStep before doing frame work.
type Scheduler struct {
	mode        Mode
	lowInterval time.Duration
	nextLow     time.Time
	detached    bool
}

// NewScheduler creates a scheduler in ModeIdle.
func NewScheduler(cfg Config) *Scheduler {
	cfg.Validate()
	return &Scheduler{lowInterval: ms(cfg.Scheduler.LowCadenceMs)}
}

// Mode returns the current cadence.
func (s *Scheduler) Mode() Mode { return s.mode }

// Reevaluate recomputes the cadence from the given activity. Switching modes
// cancels the previous schedule before installing the new one; entering
// ModeLow arms the timer to fire immediately.
func (s *Scheduler) Reevaluate(a Activity, now time.Time) {
	if s.detached {
		return
	}
	next := ModeFor(a)
	if next == s.mode {
		return
	}
	s.mode = next
	if next == ModeLow {
		s.nextLow = now
	}
}

// ShouldStep reports whether the current frame should do work. In ModeLow it
// consumes the pending timer slot, re-arming it one interval out.
func (s *Scheduler) ShouldStep(now time.Time) bool {
	switch s.mode {
	case ModeHigh:
		return true
	case ModeLow:
		if now.Before(s.nextLow) {
			return false
		}
		s.nextLow = now.Add(s.lowInterval)
		return true
	default:
		return false
	}
}

// Detach cancels any pending schedule. Idempotent; a detached scheduler
// stays in ModeIdle regardless of later Reevaluate calls.
func (s *Scheduler) Detach() {
	s.detached = true
	s.mode = ModeIdle
}
