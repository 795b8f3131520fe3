package drift

import (
	"math"
	"time"
)

// Engine hosts the full navigation/animation/layout triad: it owns the
// controllers, the selection reference frame, and the per-frame ordering
// guarantee (input, then animation advancement, then layout projection).
//
// Single-threaded by contract: all mutation happens inside input handlers or
// Update, which the host serializes.
type Engine struct {
	cfg     Config
	catalog Catalog

	nav   *Navigator
	anim  *Animator
	scrub *Scrubber
	rt    *Router
	sched *Scheduler

	selection    Selection
	gestureStart Selection

	// LabelColor is the reference hue labels interpolate from.
	LabelColor Color

	playing  bool
	detached bool

	lastDirection Direction

	// OnSelectionChanged fires when a drag/coast/snap sequence concludes on
	// a different selection than it started.
	OnSelectionChanged func(series, item int)
	// OnSeek fires with final progress when a circular drag ends.
	OnSeek func(progress float64)
	// OnActionTap fires when the action button is tapped.
	OnActionTap func()
}

// NewEngine creates an engine over the given catalog. The selection starts
// on series 0 at its current item.
func NewEngine(cfg Config, catalog Catalog) *Engine {
	cfg.Validate()
	e := &Engine{
		cfg:        cfg,
		catalog:    catalog,
		nav:        NewNavigator(cfg),
		anim:       NewAnimator(cfg),
		scrub:      NewScrubber(),
		sched:      NewScheduler(cfg),
		LabelColor: DefaultLabelColor,
	}
	e.rt = NewRouter(cfg, e.nav, e.scrub)
	e.rt.OnDragEnd = e.finishDrag
	e.rt.OnSeek = func(p float64) {
		if e.OnSeek != nil {
			e.OnSeek(p)
		}
	}
	e.rt.OnActionTap = func() {
		if e.OnActionTap != nil {
			e.OnActionTap()
		}
	}
	if catalog != nil && catalog.SeriesCount() > 0 {
		e.selection = Selection{Series: 0, Item: clampIndex(catalog.CurrentItem(0), catalog.ItemCount(0))}
	}
	e.gestureStart = e.selection
	return e
}

// Router returns the input coordinator so the host can attach hit regions
// and feed it events.
func (e *Engine) Router() *Router { return e.rt }

// Navigator returns the gesture state machine.
func (e *Engine) Navigator() *Navigator { return e.nav }

// Animator returns the secondary animation controller.
func (e *Engine) Animator() *Animator { return e.anim }

// Scrubber returns the circular progress controller.
func (e *Engine) Scrubber() *Scrubber { return e.scrub }

// Scheduler returns the render loop scheduler.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

// Selection returns the current reference frame origin.
func (e *Engine) Selection() Selection { return e.selection }

// Select moves the selection directly. Out-of-range requests are rejected
// and report false; no layout glitch, nothing moves.
func (e *Engine) Select(series, item int) bool {
	if e.catalog == nil {
		return false
	}
	if series < 0 || series >= e.catalog.SeriesCount() {
		return false
	}
	if item < 0 || item >= e.catalog.ItemCount(series) {
		return false
	}
	e.selection = Selection{Series: series, Item: item}
	e.gestureStart = e.selection
	return true
}

// SetPlaying updates external playback state, starting the bounce morph in
// the matching direction and reevaluating the cadence.
func (e *Engine) SetPlaying(playing bool, now time.Time) {
	if e.playing == playing {
		return
	}
	e.playing = playing
	e.anim.StartBounce(playing, now)
	e.sched.Reevaluate(e.activity(), now)
}

// Playing reports the last playback state set by the host.
func (e *Engine) Playing() bool { return e.playing }

// SetPlaybackProgress moves the scrubber's resting angle to match external
// playback progress. Ignored while the scrubber is being dragged.
func (e *Engine) SetPlaybackProgress(p float64) {
	e.scrub.SetProgress(p)
}

// Detach cancels any pending schedule. Idempotent; a detached engine does
// no further frame work.
func (e *Engine) Detach() {
	e.detached = true
	e.sched.Detach()
}

// activity snapshots the liveness flags the scheduler predicate reads.
func (e *Engine) activity() Activity {
	return Activity{
		Dragging:  e.nav.Dragging() || e.scrub.Dragging(),
		Coasting:  e.nav.Coasting(),
		Snapping:  e.nav.Snapping(),
		Animating: e.anim.Active(),
		Playing:   e.playing,
	}
}

// Update advances one frame and reports whether the visual state changed.
// Input events have already been applied by the router; animation
// advancement runs before any layout the caller projects afterwards, never
// interleaved.
func (e *Engine) Update(now time.Time) bool {
	if e.detached {
		return false
	}
	// Input handlers may have started activity since the last frame;
	// re-evaluate before gating so a fresh gesture wakes the loop.
	e.sched.Reevaluate(e.activity(), now)
	if !e.sched.ShouldStep(now) {
		return false
	}

	// A freshly locked gesture reveals the matching axis overlay.
	if d := e.nav.Direction(); d != e.lastDirection {
		if e.lastDirection == DirectionNone && e.nav.Dragging() {
			switch d {
			case DirectionVertical:
				e.anim.StartVerticalFade(true, now)
			case DirectionHorizontal:
				e.anim.StartHorizontalFade(true, now)
			}
		}
		e.lastDirection = d
	}

	changed := e.anim.Update(now)

	switch {
	case e.nav.Dragging():
		changed = true
	case e.nav.Coasting():
		changed = true
		if !e.nav.UpdateMomentum(now) {
			e.settleConcluded(now)
		}
	case e.nav.Snapping():
		changed = true
		if !e.nav.UpdateSnap(now) {
			e.settleConcluded(now)
		}
	}

	if e.scrub.Dragging() {
		changed = true
	}

	e.sched.Reevaluate(e.activity(), now)
	return changed
}

// settleConcluded runs when a coast or snap lands: overlays fade out, drag
// modes clear, and a selection change is reported if the whole gesture moved
// the reference frame.
func (e *Engine) settleConcluded(now time.Time) {
	if e.anim.VerticalFade() > 0 {
		e.anim.StartVerticalFade(false, now)
	}
	if e.anim.HorizontalFade() > 0 {
		e.anim.StartHorizontalFade(false, now)
	}
	e.nav.ClearDragModes()
	e.lastDirection = DirectionNone

	if e.selection != e.gestureStart {
		if e.OnSelectionChanged != nil {
			e.OnSelectionChanged(e.selection.Series, e.selection.Item)
		}
		e.gestureStart = e.selection
	}
}

// finishDrag decides coast versus snap after a non-tap release. The drag
// state is already cleared; offset and velocity survive the handoff.
func (e *Engine) finishDrag(now time.Time) {
	dir := e.nav.Direction()
	offX, offY := e.nav.Offset()
	vel := e.nav.Velocity()

	if dir == DirectionNone || e.catalog == nil {
		// Never locked: settle whatever residual offset exists.
		e.nav.StartSnap(offX, offY, 0, now)
		return
	}

	e.gestureStart = e.selection

	var raw, v float64
	if dir == DirectionHorizontal {
		raw, v = offX, vel.X
	} else {
		raw, v = offY, vel.Y
	}

	coasting := math.Abs(v) >= e.cfg.Motion.CoastVelocityThreshold
	delta := e.releaseDelta(raw, v, coasting)
	delta = e.clampDelta(dir, delta)

	// Reference-frame shift: re-express the raw offset in the new frame.
	// This is the single place the transformation happens.
	start := rebaseOffset(raw, delta)

	if dir == DirectionHorizontal {
		e.selection.Series += delta
		e.selection.Item = clampIndex(e.catalog.CurrentItem(e.selection.Series), e.catalog.ItemCount(e.selection.Series))
		if coasting {
			e.nav.StartMomentum(0, 0, start, 0, now)
		} else {
			e.nav.StartSnap(start, 0, 0, now)
		}
	} else {
		e.selection.Item += delta
		if coasting {
			e.nav.StartMomentum(0, 0, 0, start, now)
		} else {
			e.nav.StartSnap(0, start, 0, now)
		}
	}
}

// releaseDelta converts a release offset into a selection index delta.
// Offsets grow negative as the selection index should grow, hence the sign
// flip. A low-velocity release advances one step per unit travelled past the
// advance threshold; a coasting release advances at least one step in the
// flick direction.
func (e *Engine) releaseDelta(raw, vel float64, coasting bool) int {
	m := math.Abs(raw)
	steps := int(math.Floor(m + 1 - e.cfg.Motion.AdvanceThreshold))
	if coasting && steps < 1 {
		steps = 1
	}
	if steps == 0 {
		return 0
	}
	sign := raw
	if coasting {
		sign = vel
	}
	if sign > 0 {
		return -steps
	}
	return steps
}

// clampDelta shrinks a selection delta so the target index stays inside the
// catalog on the locked axis.
func (e *Engine) clampDelta(dir Direction, delta int) int {
	var index, count int
	if dir == DirectionHorizontal {
		index, count = e.selection.Series, e.catalog.SeriesCount()
	} else {
		index, count = e.selection.Item, e.catalog.ItemCount(e.selection.Series)
	}
	target := clampIndex(index+delta, count)
	return target - index
}

// rebaseOffset re-expresses an axis offset after the selection moved by
// delta indices: newStart = raw + delta. Applied exactly once, immediately
// after the selection update and before the settle animation starts.
func rebaseOffset(raw float64, delta int) float64 {
	return raw + float64(delta)
}

// clampIndex clamps an index to [0, count-1]. A non-positive count yields 0.
func clampIndex(i, count int) int {
	if count <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= count {
		return count - 1
	}
	return i
}

// layoutValid reports whether the selection is a valid index pair. Nothing
// is projected this frame when it is not.
func (e *Engine) layoutValid() bool {
	if e.catalog == nil {
		return false
	}
	if e.selection.Series < 0 || e.selection.Series >= e.catalog.SeriesCount() {
		return false
	}
	return e.selection.Item >= 0 && e.selection.Item < e.catalog.ItemCount(e.selection.Series)
}

// LayoutParams snapshots the current frame's projection input.
func (e *Engine) LayoutParams() LayoutParams {
	offX, offY := e.nav.Offset()
	push := e.anim.BounceProgress()
	if push < 0 {
		push = 0
	}
	return LayoutParams{
		Grid:           e.cfg.Grid,
		Selection:      e.selection,
		OffsetX:        offX,
		OffsetY:        offY,
		PushProgress:   push,
		VerticalFade:   e.anim.VerticalFade(),
		HorizontalFade: e.anim.HorizontalFade(),
		ReferenceColor: e.LabelColor,
	}
}

// AppendLayout projects the current state into per-item drawable attributes,
// appending to buf (which may be nil) and returning it. Series outside the
// fade range are culled; within the selected series, vertical neighbors in
// range are included, while other series contribute only their resting item.
// An invalid selection appends nothing.
func (e *Engine) AppendLayout(buf []ItemLayout) []ItemLayout {
	if !e.layoutValid() {
		return buf
	}
	p := e.LayoutParams()
	reach := int(math.Ceil(p.Grid.FadeRange)) + 1

	for series := 0; series < e.catalog.SeriesCount(); series++ {
		dx := float64(series-p.Selection.Series) + p.OffsetX
		if math.Abs(dx) > p.Grid.FadeRange+1 {
			continue
		}
		current := clampIndex(e.catalog.CurrentItem(series), e.catalog.ItemCount(series))

		lo, hi := current, current
		if series == p.Selection.Series {
			lo = clampIndex(p.Selection.Item-reach, e.catalog.ItemCount(series))
			hi = clampIndex(p.Selection.Item+reach, e.catalog.ItemCount(series))
		}
		for item := lo; item <= hi; item++ {
			buf = append(buf, e.projectItem(p, series, item, current))
		}
	}
	return buf
}

// projectItem builds one item's full drawable projection.
func (e *Engine) projectItem(p LayoutParams, series, item, current int) ItemLayout {
	placement := CalculateItemLayout(p, series, item, current)
	out := ItemLayout{
		Series:  series,
		Item:    item,
		X:       placement.X,
		Y:       placement.Y,
		Scale:   placement.Scale,
		Opacity: CalculateOpacity(p, series, item, current),
	}
	if label, ok := CalculateLabelLayout(p, series, item, current); ok {
		out.Label = label
		out.HasLabel = true
	}
	return out
}
