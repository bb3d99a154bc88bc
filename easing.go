package cascade

import "github.com/tanema/gween/ease"

// Ramp returns how far offset has travelled through [start, start+span],
// clamped to [0, 1]. A non-positive span is a step at start.
func Ramp(offset, start, span float64) float64 {
	if span <= 0 {
		if offset >= start {
			return 1
		}
		return 0
	}
	return clamp01((offset - start) / span)
}

// Eased applies a gween easing function to a progress value in [0, 1].
// A nil fn returns p unchanged.
func Eased(p float64, fn ease.TweenFunc) float64 {
	p = clamp01(p)
	if fn == nil {
		return p
	}
	return float64(fn(float32(p), 0, 1, 1))
}

// Stagger splits a parent progress into count consecutive slots and returns
// the progress of slot index: slot i advances while p moves through
// [i/count, (i+1)/count]. Used for cards that stack up one after another
// inside a single section.
func Stagger(p float64, index, count int) float64 {
	if count <= 0 || index < 0 || index >= count {
		return 0
	}
	slot := 1 / float64(count)
	return clamp01((p - float64(index)*slot) / slot)
}
