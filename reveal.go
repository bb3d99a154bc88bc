package cascade

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RevealState is the lifecycle of a local reveal animation.
type RevealState uint8

const (
	RevealHidden    RevealState = iota // below the visibility threshold
	RevealAnimating                    // visible, tween running
	RevealSettled                      // visible, tween finished
)

func (s RevealState) String() string {
	switch s {
	case RevealHidden:
		return "Hidden"
	case RevealAnimating:
		return "Animating"
	case RevealSettled:
		return "Settled"
	}
	return "RevealState(?)"
}

// Default reveal timing, matching the count-up numbers on the original page.
const (
	DefaultRevealThreshold = 0.3
	DefaultRevealDuration  = 1.5 // seconds
)

// Reveal is a small timer-driven state machine for per-component entrance
// animations. It runs on its own clock, independent of the scroll offset:
// visibility only starts and cancels it. Callers feed it a visible fraction
// (see RenderDirective.VisibleFraction) and advance it with Update(dt), like
// any other tween.
type Reveal struct {
	// Threshold is the visible fraction at or above which the reveal starts.
	Threshold float64
	// Duration is the animation length in seconds.
	Duration float32
	// Ease shapes the progress curve. Nil means ease.Linear.
	Ease ease.TweenFunc

	state    RevealState
	tween    *gween.Tween
	progress float64
}

// NewReveal returns a Reveal with the default threshold and duration.
func NewReveal() *Reveal {
	return &Reveal{
		Threshold: DefaultRevealThreshold,
		Duration:  DefaultRevealDuration,
		Ease:      ease.Linear,
	}
}

// SetVisibleFraction reports how much of the component is visible. Crossing
// the threshold upwards starts the animation from zero; dropping below it
// resets to Hidden so the next appearance replays it.
func (r *Reveal) SetVisibleFraction(f float64) {
	visible := f >= r.Threshold && f > 0
	switch {
	case visible && r.state == RevealHidden:
		fn := r.Ease
		if fn == nil {
			fn = ease.Linear
		}
		r.tween = gween.New(0, 1, r.Duration, fn)
		r.progress = 0
		r.state = RevealAnimating
		if r.Duration <= 0 {
			r.progress = 1
			r.state = RevealSettled
		}
	case !visible && r.state != RevealHidden:
		r.state = RevealHidden
		r.tween = nil
		r.progress = 0
	}
}

// Update advances the animation by dt seconds. It does nothing unless the
// reveal is animating.
func (r *Reveal) Update(dt float32) {
	if r.state != RevealAnimating || r.tween == nil {
		return
	}
	v, done := r.tween.Update(dt)
	r.progress = clamp01(float64(v))
	if done {
		r.progress = 1
		r.state = RevealSettled
		r.tween = nil
	}
}

// State returns the current lifecycle state.
func (r *Reveal) State() RevealState { return r.state }

// Progress returns the eased progress in [0, 1].
func (r *Reveal) Progress() float64 { return r.progress }

// Counter animates an integer from zero up to Target while its Reveal runs.
type Counter struct {
	Reveal
	Target int
}

// NewCounter returns a Counter with the default reveal timing.
func NewCounter(target int) *Counter {
	return &Counter{Reveal: *NewReveal(), Target: target}
}

// Value returns floor(Target · progress).
func (c *Counter) Value() int {
	return int(math.Floor(float64(c.Target) * c.progress))
}
