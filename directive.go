package cascade

import "math"

// RenderDirective tells a renderer where and how to draw one section this
// frame. TranslateFraction is in viewport heights: +1 is fully below the
// viewport, 0 is seated, -1 is fully above.
type RenderDirective struct {
	Index             int
	TranslateFraction float64
	Opacity           float64
	ZIndex            int
	Visible           bool
}

// OnScreen reports whether any part of the section intersects the viewport.
// Sections that have fully exited stay Visible (their phase is Exiting) but
// need no drawing.
func (d RenderDirective) OnScreen() bool {
	return d.Visible && math.Abs(d.TranslateFraction) < 1 && d.Opacity > 0
}

// VisibleFraction is the share of the viewport the section covers, in [0, 1].
// It is the local visibility input for Reveal.
func (d RenderDirective) VisibleFraction() float64 {
	if !d.Visible {
		return 0
	}
	return clamp01(1 - math.Abs(d.TranslateFraction))
}

// Offset converts TranslateFraction to pixels for a viewport height.
func (d RenderDirective) Offset(viewportHeight float64) float64 {
	return d.TranslateFraction * viewportHeight
}

// DirectiveStyle holds the configuration the transform step depends on.
type DirectiveStyle struct {
	BaseZIndex int
	Fade       bool
}

// ResolveDirective maps a section state to a render directive.
func ResolveDirective(s SectionState, style DirectiveStyle) RenderDirective {
	d := RenderDirective{
		Index:   s.Index,
		ZIndex:  style.BaseZIndex + s.Index,
		Visible: s.Phase != PhaseHidden,
	}
	switch s.Phase {
	case PhaseHidden:
		d.TranslateFraction = 1
		d.Opacity = 0
	case PhaseEntering:
		d.TranslateFraction = 1 - s.EnterProgress
		d.Opacity = 1
		if style.Fade {
			d.Opacity = s.EnterProgress
		}
	case PhaseActive:
		d.TranslateFraction = 0
		d.Opacity = 1
	case PhaseExiting:
		d.TranslateFraction = -s.ExitProgress
		d.Opacity = 1
		if style.Fade {
			d.Opacity = 1 - s.ExitProgress
		}
	}
	return d
}

// ResolveDirectives maps every state, reusing dst's backing array when it is
// large enough.
func ResolveDirectives(dst []RenderDirective, states []SectionState, style DirectiveStyle) []RenderDirective {
	if cap(dst) < len(states) {
		dst = make([]RenderDirective, len(states))
	}
	dst = dst[:len(states)]
	for i := range states {
		dst[i] = ResolveDirective(states[i], style)
	}
	return dst
}
