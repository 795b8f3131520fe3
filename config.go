package drift

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every tunable of the engine. All durations are expressed in
// milliseconds so config files stay readable. Zero or negative values are
// clamped to safe minimums by Validate.
type Config struct {
	Grid      GridConfig      `toml:"grid"`
	Gesture   GestureConfig   `toml:"gesture"`
	Motion    MotionConfig    `toml:"motion"`
	Animation AnimationConfig `toml:"animation"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

// GridConfig controls spatial projection: spacing, visibility, and scaling.
type GridConfig struct {
	// SeriesSpacing is the pixel distance between adjacent series (1.0 grid units).
	SeriesSpacing float64 `toml:"series_spacing"`
	// ItemSpacing is the pixel distance between adjacent items in a series.
	ItemSpacing float64 `toml:"item_spacing"`
	// FadeRange is the series-axis distance (grid units) over which
	// non-current items fade to invisible.
	FadeRange float64 `toml:"fade_range"`
	// MinScale and MaxScale bound item scale; ScaleDistance is the
	// center distance (grid units) over which one unit of scale is lost.
	MinScale      float64 `toml:"min_scale"`
	MaxScale      float64 `toml:"max_scale"`
	ScaleDistance float64 `toml:"scale_distance"`
	// PushDistance is the pixel displacement of non-centered items at full
	// bounce progress.
	PushDistance float64 `toml:"push_distance"`
}

// GestureConfig controls input disambiguation.
type GestureConfig struct {
	// LockThreshold is the pixel travel after which a drag locks to an axis.
	LockThreshold float64 `toml:"lock_threshold"`
	// TapTimeMs and TapDistance bound what still counts as a tap on the
	// action target.
	TapTimeMs   float64 `toml:"tap_time_ms"`
	TapDistance float64 `toml:"tap_distance"`
}

// MotionConfig controls the coast and snap regimes.
type MotionConfig struct {
	MomentumMinMs float64 `toml:"momentum_min_ms"`
	MomentumMaxMs float64 `toml:"momentum_max_ms"`
	SnapMs        float64 `toml:"snap_ms"`
	// CoastVelocityThreshold is the release speed (grid units per frame)
	// above which a release coasts instead of snapping.
	CoastVelocityThreshold float64 `toml:"coast_velocity_threshold"`
	// CoastSpeedRef is the speed at which the logarithmic duration mapping
	// saturates at MomentumMaxMs.
	CoastSpeedRef float64 `toml:"coast_speed_ref"`
	// AdvanceThreshold is the minimum |offset| (grid units) for a
	// low-velocity release to advance the selection by one.
	AdvanceThreshold float64 `toml:"advance_threshold"`
}

// AnimationConfig controls the secondary animations.
type AnimationConfig struct {
	BounceMs float64 `toml:"bounce_ms"`
	FadeMs   float64 `toml:"fade_ms"`
}

// SchedulerConfig controls the render loop cadence.
type SchedulerConfig struct {
	// LowCadenceMs is the frame interval while media plays with no
	// navigation animation in flight.
	LowCadenceMs float64 `toml:"low_cadence_ms"`
}

// DefaultConfig returns the tuning the engine ships with.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			SeriesSpacing: 130,
			ItemSpacing:   130,
			FadeRange:     2.5,
			MinScale:      0.5,
			MaxScale:      1.0,
			ScaleDistance: 3.0,
			PushDistance:  60,
		},
		Gesture: GestureConfig{
			LockThreshold: 10,
			TapTimeMs:     250,
			TapDistance:   10,
		},
		Motion: MotionConfig{
			MomentumMinMs:          300,
			MomentumMaxMs:          700,
			SnapMs:                 300,
			CoastVelocityThreshold: 0.08,
			CoastSpeedRef:          3.0,
			AdvanceThreshold:       0.75,
		},
		Animation: AnimationConfig{
			BounceMs: 350,
			FadeMs:   200,
		},
		Scheduler: SchedulerConfig{
			LowCadenceMs: 67,
		},
	}
}

// LoadConfig parses a TOML document over the defaults, so partial files only
// override the keys they name.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Validate()
	return cfg, nil
}

// Validate clamps degenerate values in place so the engine never divides by
// zero or runs a non-positive-duration animation.
func (c *Config) Validate() {
	clampMin(&c.Grid.SeriesSpacing, 1)
	clampMin(&c.Grid.ItemSpacing, 1)
	clampMin(&c.Grid.FadeRange, 0.1)
	clampMin(&c.Grid.ScaleDistance, 0.1)
	clampMin(&c.Grid.MaxScale, 0.01)
	if c.Grid.MinScale < 0 {
		c.Grid.MinScale = 0
	}
	if c.Grid.MinScale > c.Grid.MaxScale {
		c.Grid.MinScale = c.Grid.MaxScale
	}
	if c.Grid.PushDistance < 0 {
		c.Grid.PushDistance = 0
	}

	clampMin(&c.Gesture.LockThreshold, 1)
	clampMin(&c.Gesture.TapTimeMs, 1)
	clampMin(&c.Gesture.TapDistance, 1)

	clampMin(&c.Motion.MomentumMinMs, 1)
	clampMin(&c.Motion.MomentumMaxMs, c.Motion.MomentumMinMs)
	clampMin(&c.Motion.SnapMs, 1)
	clampMin(&c.Motion.CoastVelocityThreshold, 0.001)
	clampMin(&c.Motion.CoastSpeedRef, 0.001)
	clampMin(&c.Motion.AdvanceThreshold, 0.01)

	clampMin(&c.Animation.BounceMs, 1)
	clampMin(&c.Animation.FadeMs, 1)

	clampMin(&c.Scheduler.LowCadenceMs, 1)
}

func clampMin(v *float64, min float64) {
	if *v < min {
		*v = min
	}
}

// ms converts a millisecond tunable into a time.Duration.
func ms(v float64) time.Duration {
	return time.Duration(v * float64(time.Millisecond))
}
