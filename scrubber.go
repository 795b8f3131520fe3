package drift

import "math"

const twoPi = 2 * math.Pi

// Scrubber captures angular drags on a circular progress control. Angles are
// in radians, [0, 2π), measured like the progress ring itself: 0 at the top
// of the dial equals progress 0, just under 2π equals progress 1.
//
// Seam policy: an update that appears to cross the 0/2π seam (the incoming
// angle differs from the last accepted angle by more than π) is clamped to
// the nearest boundary rather than rejected, so overshooting past either end
// pins the playhead there instead of wrapping around.
type Scrubber struct {
	dragging bool
	angle    float64
	last     float64
}

// NewScrubber creates a scrubber resting at progress 0.
func NewScrubber() *Scrubber {
	return &Scrubber{}
}

// Dragging reports whether an angular drag is in progress.
func (s *Scrubber) Dragging() bool { return s.dragging }

// Angle returns the current angle in [0, 2π).
func (s *Scrubber) Angle() float64 { return s.angle }

// Progress returns the current position as angle / 2π, in [0, 1].
func (s *Scrubber) Progress() float64 { return s.angle / twoPi }

// SetProgress moves the resting angle to match external playback progress.
// Ignored while a drag is in progress; the drag owns the angle. Progress 1
// rests at the full mark just under 2π, not wrapped back to 0, so a finished
// ring renders full.
func (s *Scrubber) SetProgress(p float64) {
	if s.dragging {
		return
	}
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	a := p * twoPi
	if a >= twoPi {
		a = math.Nextafter(twoPi, 0)
	}
	s.angle = a
	s.last = s.angle
}

// StartDrag begins an angular drag at the given angle.
func (s *Scrubber) StartDrag(angle float64) {
	s.dragging = true
	s.angle = normalizeAngle(angle)
	s.last = s.angle
}

// UpdateDrag moves the playhead to the given angle, clamping seam crossings.
func (s *Scrubber) UpdateDrag(angle float64) {
	if !s.dragging {
		return
	}
	a := normalizeAngle(angle)
	if math.Abs(a-s.last) > math.Pi {
		// Crossing the seam: pin to whichever boundary the previous
		// accepted angle is nearer.
		if s.last < math.Pi {
			a = 0
		} else {
			a = math.Nextafter(twoPi, 0)
		}
	}
	s.angle = a
	s.last = a
}

// EndDrag concludes the drag and returns the final progress in [0, 1].
// Calling it without an active drag returns the resting progress unchanged.
func (s *Scrubber) EndDrag() float64 {
	s.dragging = false
	return s.Progress()
}

// normalizeAngle wraps an angle into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}
