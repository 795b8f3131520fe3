package drift

import (
	"math"
	"time"
)

const (
	// mousePointerID is the pointer slot used by the mouse.
	mousePointerID = 0
	// touchSuppressWindow drops mouse events that closely follow touch
	// events, so synthetic mouse events on touch devices don't double-fire.
	touchSuppressWindow = 500 * time.Millisecond
	// tapGraceWindow suppresses the duplicate synthetic click that hosts
	// deliver after a handled tap.
	tapGraceWindow = 300 * time.Millisecond
)

// routerPointer is the state of the single in-flight gesture.
type routerPointer struct {
	startX, startY float64
	lastX, lastY   float64
	startedAt      time.Time
	onActionTarget bool
	onScrubber     bool
	touch          bool
}

// Router disambiguates raw pointer and touch events into taps, drags, and
// circular scrubber drags, and forwards them to the navigator and scrubber.
// One gesture is tracked at a time; extra simultaneous pointers are ignored.
type Router struct {
	cfg   Config
	nav   *Navigator
	scrub *Scrubber

	// ActionRegion is the action button's hit region; a quick press-release
	// inside it with no direction lock is a tap.
	ActionRegion HitShape
	// ScrubberRegion routes presses to the circular progress controller
	// instead of the drag path. ScrubberCenter is the angle origin.
	ScrubberRegion HitShape
	ScrubberCenter Vec2

	// OnActionTap fires when a press-release qualifies as a tap.
	OnActionTap func()
	// OnDragEnd fires after a non-tap release, once the navigator's drag
	// state is cleared; the receiver decides coast versus snap.
	OnDragEnd func(now time.Time)
	// OnSeek fires with final progress when a scrubber drag ends.
	OnSeek func(progress float64)

	active    bool
	activeID  int
	pointer   routerPointer
	lastTouch time.Time
	handledTo time.Time
}

// NewRouter creates a router feeding the given navigator and scrubber.
func NewRouter(cfg Config, nav *Navigator, scrub *Scrubber) *Router {
	cfg.Validate()
	return &Router{cfg: cfg, nav: nav, scrub: scrub, activeID: -1}
}

// suppressMouse reports whether a mouse event should be dropped because a
// touch event was seen within the suppression window.
func (r *Router) suppressMouse(touch bool, now time.Time) bool {
	return !touch && now.Sub(r.lastTouch) < touchSuppressWindow
}

// PointerDown begins a gesture at (x, y). Presses inside the scrubber region
// start an angular drag; everything else starts a navigation drag, noting
// whether the press landed on the action target.
func (r *Router) PointerDown(id int, x, y float64, touch bool, now time.Time) {
	if touch {
		r.lastTouch = now
	} else if r.suppressMouse(touch, now) {
		return
	}
	if r.active {
		return
	}

	r.active = true
	r.activeID = id
	r.pointer = routerPointer{
		startX:    x,
		startY:    y,
		lastX:     x,
		lastY:     y,
		startedAt: now,
		touch:     touch,
	}

	if r.ScrubberRegion != nil && r.ScrubberRegion.Contains(x, y) {
		r.pointer.onScrubber = true
		r.scrub.StartDrag(r.angleAt(x, y))
		return
	}

	r.pointer.onActionTarget = r.ActionRegion != nil && r.ActionRegion.Contains(x, y)
	r.nav.StartDrag(x, y, r.pointer.onActionTarget, now)
}

// PointerMove forwards movement to whichever controller owns the gesture.
func (r *Router) PointerMove(id int, x, y float64, touch bool, now time.Time) {
	if touch {
		r.lastTouch = now
	}
	if !r.active || id != r.activeID {
		return
	}
	p := &r.pointer

	if p.onScrubber {
		r.scrub.UpdateDrag(r.angleAt(x, y))
	} else {
		r.nav.UpdateDrag(x-p.lastX, y-p.lastY, now)
	}
	p.lastX = x
	p.lastY = y
}

// PointerUp concludes the gesture: a qualifying press-release on the action
// target becomes a tap, a scrubber drag reports its final progress, and
// anything else is a drag end handed to OnDragEnd.
func (r *Router) PointerUp(id int, x, y float64, touch bool, now time.Time) {
	if touch {
		r.lastTouch = now
	}
	if !r.active || id != r.activeID {
		return
	}
	p := r.pointer
	r.active = false
	r.activeID = -1

	if p.onScrubber {
		progress := r.scrub.EndDrag()
		if r.OnSeek != nil {
			r.OnSeek(progress)
		}
		return
	}

	if r.isTap(p, x, y, now) {
		r.nav.EndDrag()
		r.handledTo = now.Add(tapGraceWindow)
		if r.OnActionTap != nil {
			r.OnActionTap()
		}
		return
	}

	r.nav.EndDrag()
	if r.OnDragEnd != nil {
		r.OnDragEnd(now)
	}
}

// isTap applies the full tap predicate: started on the action target,
// finished within the time and distance thresholds, and direction never
// locked. Exceeding any bound disqualifies the release.
func (r *Router) isTap(p routerPointer, x, y float64, now time.Time) bool {
	if !p.onActionTarget {
		return false
	}
	if now.Sub(p.startedAt) >= ms(r.cfg.Gesture.TapTimeMs) {
		return false
	}
	if math.Hypot(x-p.startX, y-p.startY) >= r.cfg.Gesture.TapDistance {
		return false
	}
	return r.nav.Direction() == DirectionNone
}

// Click handles a host-delivered click event. Clicks within the grace window
// of a handled tap are duplicates of that tap and are dropped.
func (r *Router) Click(x, y float64, now time.Time) {
	if now.Before(r.handledTo) {
		return
	}
	if r.ActionRegion != nil && r.ActionRegion.Contains(x, y) && r.OnActionTap != nil {
		r.OnActionTap()
	}
}

// GestureActive reports whether a gesture is currently being tracked.
func (r *Router) GestureActive() bool { return r.active }

// angleAt converts a surface point into a scrubber angle: zero at the top of
// the dial, increasing clockwise, in [0, 2π).
func (r *Router) angleAt(x, y float64) float64 {
	dx := x - r.ScrubberCenter.X
	dy := y - r.ScrubberCenter.Y
	return normalizeAngle(math.Atan2(dx, -dy))
}
