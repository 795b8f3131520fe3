// Package drift is a gesture-driven spatial navigation and animation engine
// for a two-axis item grid, built for [Ebitengine] hosts.
//
// Drift converts raw pointer and touch input into a continuously evolving
// visual layout — per-item position, scale, and opacity, plus per-label
// color and opacity — while coordinating three mutually-exclusive motion
// regimes: free drag, physics-based momentum ("coast"), and spring-like
// settle ("snap"). Independent secondary animations run alongside: a bounce
// morph when playback starts or stops, directional fade overlays that reveal
// side labels during navigation, and a wraparound-safe angular drag for a
// circular progress scrubber.
//
// Drift does not paint, decode audio, fetch content, or persist anything;
// it produces drawable attributes for an external renderer every frame.
//
// # Quick start
//
//	cfg := drift.DefaultConfig()
//	engine := drift.NewEngine(cfg, catalog)
//	engine.Router().ActionRegion = drift.HitCircle{CenterX: 320, CenterY: 240, Radius: 48}
//	poller := drift.NewPoller(engine.Router())
//
//	// Inside your ebiten.Game Update:
//	now := time.Now()
//	poller.Poll(now)
//	engine.Update(now)
//
//	// Inside Draw:
//	items := engine.AppendLayout(buf[:0])
//	// ... render each item ...
//
// The engine is host-agnostic below the [Poller]: every operation takes an
// explicit timestamp, so tests and non-ebiten hosts drive it directly.
//
// # Motion regimes
//
// A gesture starts as an unlocked drag. Once travel on either axis exceeds
// the lock threshold, the gesture locks to that axis for its remainder: the
// horizontal axis navigates between series, the vertical axis between items
// of the selected series. On release, the [Engine] compares pointer velocity
// against the coast threshold and either coasts (momentum with a cubic
// ease-out that lands exactly on the target) or snaps back. At most one
// regime is ever active.
//
// # Scheduling
//
// The [Scheduler] trades frame rate for CPU: full refresh rate whenever any
// motion or animation is in flight, a ~67ms cadence while media plays at
// rest, and nothing at all when idle. The cadence is a pure function of the
// current activity flags.
//
// [Ebitengine]: https://ebitengine.org
package drift
