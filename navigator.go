package drift

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// --- Constants ---

const (
	// historyCap bounds the velocity sample ring buffer.
	historyCap = 5
	// velocitySamples is how many of the newest samples feed the velocity fit.
	velocitySamples = 3
	// velocityFrameMs scales velocity to grid units per 60Hz frame.
	velocityFrameMs = 1000.0 / 60.0
)

// --- Motion regime variant ---

// regime tags which motion regime currently owns the axis offset. Exactly one
// regime is active at any time; the tag is the single source of truth.
type regime uint8

const (
	regimeIdle regime = iota
	regimeDrag
	regimeCoast
	regimeSnap
)

type dragState struct {
	originX, originY float64
	baseX, baseY     float64 // offset carried over from a superseded coast/snap
	travelX, travelY float64 // cumulative pixel travel since origin
	startedAt        time.Time
	onActionTarget   bool
	direction        Direction
}

type coastState struct {
	x, y             *gween.Tween
	targetX, targetY float64
	duration         time.Duration
	lastUpdate       time.Time
}

type snapState struct {
	x, y       *gween.Tween
	lastUpdate time.Time
}

// --- Velocity history ---

type velocitySample struct {
	x, y float64
	at   time.Time
}

// sampleRing is a fixed-capacity ring buffer of pointer samples.
type sampleRing struct {
	buf  [historyCap]velocitySample
	head int // index of the next write
	n    int
}

func (r *sampleRing) reset() {
	r.head = 0
	r.n = 0
}

func (r *sampleRing) push(s velocitySample) {
	r.buf[r.head] = s
	r.head = (r.head + 1) % historyCap
	if r.n < historyCap {
		r.n++
	}
}

// at returns the i-th newest sample (0 = newest). i must be < n.
func (r *sampleRing) at(i int) velocitySample {
	idx := (r.head - 1 - i + 2*historyCap) % historyCap
	return r.buf[idx]
}

// --- Navigator ---

// Navigator is the gesture state machine for the two-axis grid: direct drag
// tracking, post-release momentum (coast), and spring-like settle (snap).
// The three regimes are mutually exclusive by construction.
//
// All methods are no-ops when called while the regime they belong to is not
// active, so callers never need to guard.
type Navigator struct {
	cfg Config

	regime regime
	drag   dragState
	coast  coastState
	snap   snapState

	offsetX, offsetY float64

	history sampleRing

	verticalMode   bool
	horizontalMode bool
}

// NewNavigator creates a navigator with the given tuning. The config is
// copied; later mutation of the caller's copy has no effect.
func NewNavigator(cfg Config) *Navigator {
	cfg.Validate()
	return &Navigator{cfg: cfg}
}

// Offset returns the current axis offset in grid units, whatever regime
// owns it.
func (n *Navigator) Offset() (x, y float64) {
	return n.offsetX, n.offsetY
}

// Direction returns the locked gesture direction, or DirectionNone.
func (n *Navigator) Direction() Direction {
	return n.drag.direction
}

// Dragging reports whether a drag is in progress.
func (n *Navigator) Dragging() bool { return n.regime == regimeDrag }

// Coasting reports whether a momentum animation is in flight.
func (n *Navigator) Coasting() bool { return n.regime == regimeCoast }

// Snapping reports whether a snap animation is in flight.
func (n *Navigator) Snapping() bool { return n.regime == regimeSnap }

// Active reports whether any motion regime owns the offset.
func (n *Navigator) Active() bool { return n.regime != regimeIdle }

// StartedOnActionTarget reports whether the current (or last) drag began on
// the action button's hit region.
func (n *Navigator) StartedOnActionTarget() bool { return n.drag.onActionTarget }

// VerticalDragMode reports whether the UI should show item-axis overlays.
// Set when a gesture locks vertically; cleared by ClearDragModes.
func (n *Navigator) VerticalDragMode() bool { return n.verticalMode }

// HorizontalDragMode reports whether the UI should show series-axis overlays.
func (n *Navigator) HorizontalDragMode() bool { return n.horizontalMode }

// ClearDragModes resets both axis overlay flags. Called by the host once the
// gesture and its settle animation have concluded.
func (n *Navigator) ClearDragModes() {
	n.verticalMode = false
	n.horizontalMode = false
}

// StartDrag begins a new drag at surface point (x, y), superseding any
// in-flight coast or snap. The live offset is carried into the drag base so
// grabbing a moving grid introduces no positional jump. Direction starts
// unlocked.
func (n *Navigator) StartDrag(x, y float64, onActionTarget bool, now time.Time) {
	n.drag = dragState{
		originX:        x,
		originY:        y,
		baseX:          n.offsetX,
		baseY:          n.offsetY,
		startedAt:      now,
		onActionTarget: onActionTarget,
		direction:      DirectionNone,
	}
	n.coast = coastState{}
	n.snap = snapState{}
	n.regime = regimeDrag
	n.history.reset()
	n.history.push(velocitySample{x: x, y: y, at: now})
}

// UpdateDrag applies a pointer delta in pixels. Once cumulative travel on
// either axis exceeds the lock threshold the gesture locks to the larger
// axis and never changes for the remainder of the gesture. The locked axis
// delta becomes grid-unit offset; the orthogonal axis is forced to zero.
func (n *Navigator) UpdateDrag(dx, dy float64, now time.Time) {
	if n.regime != regimeDrag {
		return
	}
	d := &n.drag
	d.travelX += dx
	d.travelY += dy
	n.history.push(velocitySample{
		x:  d.originX + d.travelX,
		y:  d.originY + d.travelY,
		at: now,
	})

	if d.direction == DirectionNone {
		ax, ay := math.Abs(d.travelX), math.Abs(d.travelY)
		if math.Max(ax, ay) > n.cfg.Gesture.LockThreshold {
			if ax >= ay {
				d.direction = DirectionHorizontal
				n.horizontalMode = true
			} else {
				d.direction = DirectionVertical
				n.verticalMode = true
			}
		}
	}

	switch d.direction {
	case DirectionHorizontal:
		n.offsetX = d.baseX + d.travelX/n.cfg.Grid.SeriesSpacing
		n.offsetY = 0
	case DirectionVertical:
		n.offsetY = d.baseY + d.travelY/n.cfg.Grid.ItemSpacing
		n.offsetX = 0
	}
}

// EndDrag concludes the drag and returns the regime to idle. It does not
// decide coast versus snap; the caller does, based on Velocity and the
// target distance. The sample history survives until the next StartDrag so
// Velocity stays valid across the handoff.
func (n *Navigator) EndDrag() {
	if n.regime != regimeDrag {
		return
	}
	n.regime = regimeIdle
}

// Velocity estimates pointer velocity over the newest samples, in grid units
// per 60Hz frame per axis. Fewer than two usable samples, or duplicate
// timestamps, yield zero rather than a division error.
func (n *Navigator) Velocity() Vec2 {
	count := n.history.n
	if count > velocitySamples {
		count = velocitySamples
	}
	if count < 2 {
		return Vec2{}
	}
	newest := n.history.at(0)
	oldest := n.history.at(count - 1)
	dt := newest.at.Sub(oldest.at)
	if dt <= 0 {
		return Vec2{}
	}
	dtMs := float64(dt) / float64(time.Millisecond)
	perFrame := velocityFrameMs / dtMs
	return Vec2{
		X: (newest.x - oldest.x) * perFrame / n.cfg.Grid.SeriesSpacing,
		Y: (newest.y - oldest.y) * perFrame / n.cfg.Grid.ItemSpacing,
	}
}

// momentumDuration maps release speed (grid units per frame) onto the
// configured duration range with a saturating logarithmic curve: faster
// flicks animate longer, bounded above.
func (n *Navigator) momentumDuration(speed float64) time.Duration {
	min := ms(n.cfg.Motion.MomentumMinMs)
	max := ms(n.cfg.Motion.MomentumMaxMs)
	if speed <= 0 {
		return min
	}
	t := math.Log1p(speed) / math.Log1p(n.cfg.Motion.CoastSpeedRef)
	if t > 1 {
		t = 1
	}
	return min + time.Duration(t*float64(max-min))
}

// StartMomentum begins a coast from the given start offset to the target
// offset. Both are expressed in the current reference frame; the caller is
// responsible for rebasing across a selection change before calling this.
// Position advances by cubic ease-out and lands exactly on the target.
func (n *Navigator) StartMomentum(targetX, targetY, startX, startY float64, now time.Time) {
	v := n.Velocity()
	speed := math.Max(math.Abs(v.X), math.Abs(v.Y))
	d := n.momentumDuration(speed)
	sec := float32(d.Seconds())

	n.coast = coastState{
		x:          gween.New(float32(startX), float32(targetX), sec, ease.OutCubic),
		y:          gween.New(float32(startY), float32(targetY), sec, ease.OutCubic),
		targetX:    targetX,
		targetY:    targetY,
		duration:   d,
		lastUpdate: now,
	}
	n.drag = dragState{onActionTarget: n.drag.onActionTarget, direction: n.drag.direction}
	n.snap = snapState{}
	n.regime = regimeCoast
	n.offsetX = startX
	n.offsetY = startY
}

// UpdateMomentum advances the coast and reports whether it is still running.
// On completion the offset equals the declared target with no residual error.
func (n *Navigator) UpdateMomentum(now time.Time) bool {
	if n.regime != regimeCoast {
		return false
	}
	c := &n.coast
	dt := float32(now.Sub(c.lastUpdate).Seconds())
	if dt < 0 {
		dt = 0
	}
	c.lastUpdate = now

	vx, doneX := c.x.Update(dt)
	vy, doneY := c.y.Update(dt)
	n.offsetX = float64(vx)
	n.offsetY = float64(vy)

	if doneX && doneY {
		n.offsetX = c.targetX
		n.offsetY = c.targetY
		n.regime = regimeIdle
		return false
	}
	return true
}

// StartSnap begins a spring-like settle from the given start offset to zero.
// The start offset must already be expressed in the post-selection-change
// reference frame. A non-positive duration falls back to the configured one.
func (n *Navigator) StartSnap(startX, startY float64, d time.Duration, now time.Time) {
	if d <= 0 {
		d = ms(n.cfg.Motion.SnapMs)
	}
	sec := float32(d.Seconds())
	n.snap = snapState{
		x:          gween.New(float32(startX), 0, sec, ease.OutCubic),
		y:          gween.New(float32(startY), 0, sec, ease.OutCubic),
		lastUpdate: now,
	}
	n.drag = dragState{onActionTarget: n.drag.onActionTarget, direction: n.drag.direction}
	n.coast = coastState{}
	n.regime = regimeSnap
	n.offsetX = startX
	n.offsetY = startY
}

// UpdateSnap advances the snap and reports whether it is still running.
// On completion the offset is exactly (0, 0).
func (n *Navigator) UpdateSnap(now time.Time) bool {
	if n.regime != regimeSnap {
		return false
	}
	s := &n.snap
	dt := float32(now.Sub(s.lastUpdate).Seconds())
	if dt < 0 {
		dt = 0
	}
	s.lastUpdate = now

	vx, doneX := s.x.Update(dt)
	vy, doneY := s.y.Update(dt)
	n.offsetX = float64(vx)
	n.offsetY = float64(vy)

	if doneX && doneY {
		n.offsetX = 0
		n.offsetY = 0
		n.regime = regimeIdle
		return false
	}
	return true
}
