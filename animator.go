package drift

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// timedAnim is one timer-driven value animation. Inactive once the tween
// completes; restartable at any time from its current value.
type timedAnim struct {
	tween      *gween.Tween
	lastUpdate time.Time
	value      float64
	target     float64
	active     bool
}

func (a *timedAnim) start(target float64, d time.Duration, fn ease.TweenFunc, now time.Time) {
	a.tween = gween.New(float32(a.value), float32(target), float32(d.Seconds()), fn)
	a.lastUpdate = now
	a.target = target
	a.active = true
}

// update advances the animation and reports whether the value changed.
// The final value lands exactly on the target.
func (a *timedAnim) update(now time.Time) bool {
	if !a.active {
		return false
	}
	dt := float32(now.Sub(a.lastUpdate).Seconds())
	if dt < 0 {
		dt = 0
	}
	a.lastUpdate = now

	v, done := a.tween.Update(dt)
	a.value = float64(v)
	if done {
		a.value = a.target
		a.active = false
	}
	return true
}

// Animator drives the secondary animations that are independent of spatial
// navigation: the play/pause bounce morph and the two directional fade
// overlays. The three never interact; each can be restarted at any time
// without affecting the others.
type Animator struct {
	cfg Config

	bounce        timedAnim
	towardPlaying bool

	verticalFade   timedAnim
	horizontalFade timedAnim
}

// NewAnimator creates an animator with the given tuning.
func NewAnimator(cfg Config) *Animator {
	cfg.Validate()
	return &Animator{cfg: cfg}
}

// StartBounce begins the playback transition morph. Toward playing the
// progress overshoots then settles (ease-out-back); toward paused it pulls
// back before moving (ease-in-back). Progress clamps to exactly 1 or 0 on
// completion.
func (a *Animator) StartBounce(towardPlaying bool, now time.Time) {
	a.towardPlaying = towardPlaying
	d := ms(a.cfg.Animation.BounceMs)
	if towardPlaying {
		a.bounce.start(1, d, ease.OutBack, now)
	} else {
		a.bounce.start(0, d, ease.InBack, now)
	}
}

// BounceProgress returns the current bounce value. May transiently leave
// [0, 1] mid-animation; that overshoot is the morph.
func (a *Animator) BounceProgress() float64 { return a.bounce.value }

// BounceActive reports whether the bounce morph is running.
func (a *Animator) BounceActive() bool { return a.bounce.active }

// TowardPlaying reports the bounce direction of the last StartBounce.
func (a *Animator) TowardPlaying() bool { return a.towardPlaying }

// StartVerticalFade begins the item-axis overlay fade, linearly toward 1
// when entering or toward 0 when leaving.
func (a *Animator) StartVerticalFade(entering bool, now time.Time) {
	a.startFade(&a.verticalFade, entering, now)
}

// StartHorizontalFade begins the series-axis overlay fade.
func (a *Animator) StartHorizontalFade(entering bool, now time.Time) {
	a.startFade(&a.horizontalFade, entering, now)
}

func (a *Animator) startFade(f *timedAnim, entering bool, now time.Time) {
	target := 0.0
	if entering {
		target = 1.0
	}
	f.start(target, ms(a.cfg.Animation.FadeMs), ease.Linear, now)
}

// VerticalFade returns the item-axis overlay progress in [0, 1].
func (a *Animator) VerticalFade() float64 { return a.verticalFade.value }

// HorizontalFade returns the series-axis overlay progress in [0, 1].
func (a *Animator) HorizontalFade() float64 { return a.horizontalFade.value }

// Active reports whether any sub-animation is running.
func (a *Animator) Active() bool {
	return a.bounce.active || a.verticalFade.active || a.horizontalFade.active
}

// Update advances every active sub-animation and reports whether any value
// changed, i.e. whether the host needs a visual update.
func (a *Animator) Update(now time.Time) bool {
	changed := a.bounce.update(now)
	changed = a.verticalFade.update(now) || changed
	changed = a.horizontalFade.update(now) || changed
	return changed
}
