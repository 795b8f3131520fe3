package drift

import (
	"math"
	"testing"
	"time"
)

type routerFixture struct {
	rt       *Router
	nav      *Navigator
	scrub    *Scrubber
	taps     int
	dragEnds int
	seeks    []float64
}

func newRouterFixture(cfg Config) *routerFixture {
	f := &routerFixture{
		nav:   NewNavigator(cfg),
		scrub: NewScrubber(),
	}
	f.rt = NewRouter(cfg, f.nav, f.scrub)
	f.rt.ActionRegion = HitRect{X: 0, Y: 0, Width: 50, Height: 50}
	f.rt.ScrubberRegion = HitCircle{CenterX: 200, CenterY: 200, Radius: 40}
	f.rt.ScrubberCenter = Vec2{X: 200, Y: 200}
	f.rt.OnActionTap = func() { f.taps++ }
	f.rt.OnDragEnd = func(time.Time) { f.dragEnds++ }
	f.rt.OnSeek = func(p float64) { f.seeks = append(f.seeks, p) }
	return f
}

// --- Tap classification ---

func TestTapOnActionTarget(t *testing.T) {
	f := newRouterFixture(DefaultConfig())

	f.rt.PointerDown(0, 10, 10, false, at(0))
	f.rt.PointerMove(0, 12, 11, false, at(50))
	f.rt.PointerUp(0, 12, 11, false, at(100))

	if f.taps != 1 {
		t.Errorf("taps = %d, want 1", f.taps)
	}
	if f.dragEnds != 0 {
		t.Errorf("dragEnds = %d, want 0 for a tap", f.dragEnds)
	}
}

func TestTapRejectedWhenTooSlow(t *testing.T) {
	f := newRouterFixture(DefaultConfig())

	f.rt.PointerDown(0, 10, 10, false, at(0))
	f.rt.PointerUp(0, 10, 10, false, at(260)) // past the 250ms default

	if f.taps != 0 {
		t.Errorf("taps = %d, want 0 for a slow press", f.taps)
	}
	if f.dragEnds != 1 {
		t.Errorf("dragEnds = %d, want 1", f.dragEnds)
	}
}

func TestTapRejectedWhenTooFar(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gesture.LockThreshold = 100 // keep direction unlocked for this case
	f := newRouterFixture(cfg)

	f.rt.PointerDown(0, 10, 10, false, at(0))
	f.rt.PointerMove(0, 25, 10, false, at(50))
	f.rt.PointerUp(0, 25, 10, false, at(100))

	if f.taps != 0 {
		t.Errorf("taps = %d, want 0 when travel exceeds the distance bound", f.taps)
	}
	if f.dragEnds != 1 {
		t.Errorf("dragEnds = %d, want 1", f.dragEnds)
	}
}

func TestTapRejectedWhenDirectionLocked(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gesture.TapDistance = 1000 // isolate the lock condition
	f := newRouterFixture(cfg)

	f.rt.PointerDown(0, 10, 10, false, at(0))
	f.rt.PointerMove(0, 40, 10, false, at(50))
	f.rt.PointerUp(0, 40, 10, false, at(100))

	if f.taps != 0 {
		t.Errorf("taps = %d, want 0 once direction locked", f.taps)
	}
	if f.dragEnds != 1 {
		t.Errorf("dragEnds = %d, want 1", f.dragEnds)
	}
}

func TestTapRejectedOffActionTarget(t *testing.T) {
	f := newRouterFixture(DefaultConfig())

	f.rt.PointerDown(0, 100, 100, false, at(0))
	f.rt.PointerUp(0, 100, 100, false, at(50))

	if f.taps != 0 {
		t.Errorf("taps = %d, want 0 off the action target", f.taps)
	}
	if f.dragEnds != 1 {
		t.Errorf("dragEnds = %d, want 1", f.dragEnds)
	}
}

// --- Duplicate click suppression ---

func TestClickSuppressedAfterHandledTap(t *testing.T) {
	f := newRouterFixture(DefaultConfig())

	f.rt.PointerDown(0, 10, 10, false, at(0))
	f.rt.PointerUp(0, 10, 10, false, at(50))
	if f.taps != 1 {
		t.Fatalf("taps = %d, want 1", f.taps)
	}

	// The synthetic click that follows a handled tap is a duplicate.
	f.rt.Click(10, 10, at(100))
	if f.taps != 1 {
		t.Errorf("taps = %d, want still 1 inside the grace window", f.taps)
	}

	// A click outside the grace window is genuine.
	f.rt.Click(10, 10, at(1000))
	if f.taps != 2 {
		t.Errorf("taps = %d, want 2 after the grace window", f.taps)
	}
}

// --- Touch/mouse reconciliation ---

func TestMouseSuppressedAfterTouch(t *testing.T) {
	f := newRouterFixture(DefaultConfig())

	f.rt.PointerDown(1, 10, 10, true, at(0))
	f.rt.PointerUp(1, 10, 10, true, at(50))
	if f.taps != 1 {
		t.Fatalf("touch tap should register, taps = %d", f.taps)
	}

	// Synthetic mouse press 100ms later is dropped.
	f.rt.PointerDown(0, 10, 10, false, at(150))
	if f.rt.GestureActive() {
		t.Error("mouse press within 500ms of touch should be suppressed")
	}

	// A mouse press after the window behaves normally.
	f.rt.PointerDown(0, 10, 10, false, at(600))
	if !f.rt.GestureActive() {
		t.Error("mouse press after the suppression window should start a gesture")
	}
}

// --- Drag routing ---

func TestDragForwardsDeltasToNavigator(t *testing.T) {
	f := newRouterFixture(DefaultConfig())

	f.rt.PointerDown(0, 300, 100, false, at(0))
	f.rt.PointerMove(0, 260, 100, false, at(16))
	f.rt.PointerMove(0, 222, 100, false, at(32))

	if f.nav.Direction() != DirectionHorizontal {
		t.Fatalf("Direction() = %v, want horizontal", f.nav.Direction())
	}
	x, _ := f.nav.Offset()
	want := -78.0 / DefaultConfig().Grid.SeriesSpacing
	if math.Abs(x-want) > 1e-9 {
		t.Errorf("offsetX = %v, want %v", x, want)
	}

	f.rt.PointerUp(0, 222, 100, false, at(48))
	if f.nav.Dragging() {
		t.Error("drag should be cleared before OnDragEnd")
	}
	if f.dragEnds != 1 {
		t.Errorf("dragEnds = %d, want 1", f.dragEnds)
	}
}

func TestSecondPointerIgnoredDuringGesture(t *testing.T) {
	f := newRouterFixture(DefaultConfig())

	f.rt.PointerDown(1, 300, 100, true, at(0))
	f.rt.PointerDown(2, 500, 300, true, at(10))
	f.rt.PointerMove(2, 400, 300, true, at(20))
	f.rt.PointerUp(2, 400, 300, true, at(30))

	x, y := f.nav.Offset()
	if x != 0 || y != 0 {
		t.Errorf("offset = (%v, %v), second pointer must not move the grid", x, y)
	}
	if !f.rt.GestureActive() {
		t.Error("first gesture should survive the second pointer's release")
	}
}

// --- Scrubber routing ---

func TestScrubberRegionRoutesToCircularDrag(t *testing.T) {
	f := newRouterFixture(DefaultConfig())

	// Press right of center: quarter turn, progress 0.25.
	f.rt.PointerDown(0, 235, 200, false, at(0))
	if !f.scrub.Dragging() {
		t.Fatal("press inside the scrubber region should start an angular drag")
	}
	if f.nav.Dragging() {
		t.Error("scrubber press must not start a navigation drag")
	}
	if got := f.scrub.Progress(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("Progress() = %v, want 0.25", got)
	}

	// Drag to the bottom: half turn.
	f.rt.PointerMove(0, 200, 235, false, at(50))
	f.rt.PointerUp(0, 200, 235, false, at(100))

	if len(f.seeks) != 1 || math.Abs(f.seeks[0]-0.5) > 1e-9 {
		t.Errorf("seeks = %v, want [0.5]", f.seeks)
	}
	if f.dragEnds != 0 {
		t.Errorf("dragEnds = %d, want 0 for a scrubber drag", f.dragEnds)
	}
}

func TestAngleAtConvention(t *testing.T) {
	f := newRouterFixture(DefaultConfig())

	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"top is zero", 200, 160, 0},
		{"right is quarter", 240, 200, math.Pi / 2},
		{"bottom is half", 200, 240, math.Pi},
		{"left is three quarters", 160, 200, 3 * math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.rt.angleAt(tt.x, tt.y); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("angleAt(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
