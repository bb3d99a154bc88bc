package stage

import (
	"time"

	"github.com/phanxgames/cascade"
)

// frameStats holds per-frame timing and draw metrics.
// Only populated when debug mode is on.
type frameStats struct {
	stepTime time.Duration
	drawTime time.Duration
	onScreen int
	visible  int
}

// debugLog reports the current frame's stats at debug level.
func (s *Stage) debugLog() {
	if !s.debug {
		return
	}
	st := s.stats
	cascade.Logger().Debug("frame",
		"offset", s.viewport.ScrollOffset(),
		"step", st.stepTime,
		"draw", st.drawTime,
		"total", st.stepTime+st.drawTime,
		"visible", st.visible,
		"drawn", st.onScreen,
		"transientErrors", s.sampler.TransientErrors())
}

// countDrawn returns how many directives intersect the viewport and how many
// are marked visible. Fully exited sections count as visible but not drawn.
func countDrawn(ds []cascade.RenderDirective) (onScreen, visible int) {
	for _, d := range ds {
		if d.Visible {
			visible++
		}
		if d.OnScreen() {
			onScreen++
		}
	}
	return onScreen, visible
}
