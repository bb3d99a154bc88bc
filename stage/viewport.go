package stage

import (
	"math"

	"github.com/phanxgames/cascade"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultScrollDuration is the length of a ScrollToSection animation.
const DefaultScrollDuration = 0.6

type viewportListener struct {
	id uint32
	l  cascade.ViewportListener
}

// Viewport is the stage's scroll container. It owns the scroll offset,
// clamps it to [0, MaxOffset] and reports every change to its listeners
// synchronously. It implements cascade.Viewport.
type Viewport struct {
	offset   float64
	height   float64 // last usable height
	reported float64 // last height passed to SetHeight
	sections int

	listeners []viewportListener
	nextID    uint32

	scroll *gween.Tween
}

// NewViewport creates a viewport for sections stacked sections, each one
// viewport tall.
func NewViewport(sections int, height float64) *Viewport {
	return &Viewport{sections: max(sections, 1), height: height, reported: height}
}

// ScrollOffset implements cascade.Viewport.
func (v *Viewport) ScrollOffset() float64 { return v.offset }

// ViewportHeight implements cascade.Viewport.
func (v *Viewport) ViewportHeight() float64 { return v.height }

// Listen implements cascade.Viewport.
func (v *Viewport) Listen(l cascade.ViewportListener) func() {
	v.nextID++
	id := v.nextID
	v.listeners = append(v.listeners, viewportListener{id: id, l: l})
	return func() {
		for i, h := range v.listeners {
			if h.id == id {
				v.listeners = append(v.listeners[:i], v.listeners[i+1:]...)
				return
			}
		}
	}
}

// MaxOffset is the furthest the viewport scrolls: the top of the last
// section.
func (v *Viewport) MaxOffset() float64 {
	if !(v.height > 0) {
		return 0
	}
	return float64(v.sections-1) * v.height
}

// SetHeight reports a new visible height. Unusable heights (non-positive,
// NaN or infinite) are passed through to listeners as-is so the sampler can
// reject them, but the viewport keeps scrolling against its last usable
// height. A usable height re-clamps the offset.
func (v *Viewport) SetHeight(h float64) {
	if h == v.reported {
		return
	}
	v.reported = h
	usable := h > 0 && !math.IsInf(h, 1)
	if usable {
		v.height = h
	}
	for _, ln := range v.listeners {
		ln.l.ViewportResized(h)
	}
	if usable {
		v.setOffset(v.offset)
	}
}

// ScrollTo jumps to offset, cancelling any running scroll animation.
func (v *Viewport) ScrollTo(offset float64) {
	v.scroll = nil
	v.setOffset(offset)
}

// ScrollBy moves the offset by delta pixels.
func (v *Viewport) ScrollBy(delta float64) {
	v.ScrollTo(v.offset + delta)
}

// ScrollToSection animates to the top of section i over duration seconds.
// A nil easeFn uses ease.InOutCubic.
func (v *Viewport) ScrollToSection(i int, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.InOutCubic
	}
	i = min(max(i, 0), v.sections-1)
	target := float64(i) * v.height
	if duration <= 0 {
		v.ScrollTo(target)
		return
	}
	v.scroll = gween.New(float32(v.offset), float32(target), duration, easeFn)
}

// Scrolling reports whether a ScrollToSection animation is running.
func (v *Viewport) Scrolling() bool { return v.scroll != nil }

// Section returns the index of the section whose top is nearest the
// current offset.
func (v *Viewport) Section() int {
	if !(v.height > 0) {
		return 0
	}
	return min(int(math.Round(v.offset/v.height)), v.sections-1)
}

// update advances a running scroll animation by dt seconds.
func (v *Viewport) update(dt float32) {
	if v.scroll == nil {
		return
	}
	val, done := v.scroll.Update(dt)
	if done {
		v.scroll = nil
	}
	v.setOffset(float64(val))
}

func (v *Viewport) setOffset(o float64) {
	if math.IsNaN(o) {
		return
	}
	o = math.Max(0, math.Min(o, v.MaxOffset()))
	if o == v.offset {
		return
	}
	v.offset = o
	for _, ln := range v.listeners {
		ln.l.ViewportScrolled(o)
	}
}
