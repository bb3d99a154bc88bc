package cascade

import (
	"fmt"
	"math"
)

// Invariant names used in Violation.Invariant.
const (
	InvariantZOrder     = "z-order"
	InvariantOverlap    = "overlap"
	InvariantContinuity = "continuity"
	InvariantStart      = "start"
	InvariantEnd        = "end"
)

// Violation is one failed check at one offset.
type Violation struct {
	Invariant string  `yaml:"invariant"`
	Offset    float64 `yaml:"offset"`
	Detail    string  `yaml:"detail"`
}

// SweepReport summarises a Sweep.
type SweepReport struct {
	ViewportHeight float64     `yaml:"viewportHeight"`
	MaxOffset      float64     `yaml:"maxOffset"`
	Samples        int         `yaml:"samples"`
	MaxStep        float64     `yaml:"maxStep"` // largest per-sample change in translateFraction
	Violations     []Violation `yaml:"violations,omitempty"`
}

// OK reports whether the sweep found no violations.
func (r SweepReport) OK() bool { return len(r.Violations) == 0 }

const sweepEpsilon = 1e-9

// Sweep resolves every offset from 0 to MaxOffset in increments of step and
// checks the engine's invariants: strictly increasing z-order among visible
// sections, at most one adjacent pair mid-transition, continuity (overlapping
// policy only), and the boundary states at 0 and MaxOffset.
func Sweep(cfg Config, viewportHeight, step float64) (SweepReport, error) {
	zm, err := BuildZoneMap(viewportHeight, cfg)
	if err != nil {
		return SweepReport{}, err
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return SweepReport{}, fmt.Errorf("cascade: sweep step must be positive, got %s", formatFloat(step))
	}

	style := cfg.directiveStyle()
	report := SweepReport{ViewportHeight: viewportHeight, MaxOffset: zm.MaxOffset()}

	// Steepest legal slope of translateFraction per pixel of scroll.
	continuous := cfg.LayoutPolicy == PolicyOverlapping
	var maxSlope float64
	if continuous {
		maxSlope = 1 / (cfg.bandFraction() * viewportHeight)
	}

	var states []SectionState
	var cur, prev []RenderDirective
	prevOffset := 0.0
	add := func(inv string, offset float64, format string, args ...any) {
		report.Violations = append(report.Violations, Violation{
			Invariant: inv, Offset: offset, Detail: fmt.Sprintf(format, args...),
		})
	}

	end := zm.MaxOffset()
	for i := 0; ; i++ {
		offset := math.Min(float64(i)*step, end)
		sample := ScrollSample{Offset: offset, ViewportHeight: viewportHeight}
		states = ResolveInto(states, sample, zm)
		cur = ResolveDirectives(cur, states, style)
		report.Samples++

		checkFrame(cur, offset, add)

		if prev != nil {
			for j := range cur {
				d := math.Abs(cur[j].TranslateFraction - prev[j].TranslateFraction)
				report.MaxStep = math.Max(report.MaxStep, d)
				limit := maxSlope*(offset-prevOffset) + sweepEpsilon
				if continuous && d > limit {
					add(InvariantContinuity, offset, "section %d translate jumped %.6f (limit %.6f)", j, d, limit)
				}
				o := math.Abs(cur[j].Opacity - prev[j].Opacity)
				if continuous && cfg.Fade && o > limit {
					add(InvariantContinuity, offset, "section %d opacity jumped %.6f (limit %.6f)", j, o, limit)
				}
			}
		}

		if i == 0 {
			checkStart(states, cur, add)
		}
		if offset >= end {
			checkEnd(states, cur, offset, add)
			break
		}
		prev = append(prev[:0], cur...)
		prevOffset = offset
	}
	return report, nil
}

// CheckInvariants checks one frame of directives, in section order, for
// z-order and overlap violations. offset is recorded on each Violation.
func CheckInvariants(ds []RenderDirective, offset float64) []Violation {
	var out []Violation
	checkFrame(ds, offset, func(inv string, offset float64, format string, args ...any) {
		out = append(out, Violation{Invariant: inv, Offset: offset, Detail: fmt.Sprintf(format, args...)})
	})
	return out
}

type violationFunc func(inv string, offset float64, format string, args ...any)

func checkFrame(ds []RenderDirective, offset float64, add violationFunc) {
	lastZ, lastVisible := 0, -1
	partial := make([]int, 0, 2)
	for _, d := range ds {
		if !d.Visible {
			continue
		}
		if lastVisible >= 0 && d.ZIndex <= lastZ {
			add(InvariantZOrder, offset, "section %d z=%d not above section %d z=%d", d.Index, d.ZIndex, lastVisible, lastZ)
		}
		lastZ, lastVisible = d.ZIndex, d.Index
		t := math.Abs(d.TranslateFraction)
		if (t > 0 && t < 1) || (d.Opacity > 0 && d.Opacity < 1) {
			partial = append(partial, d.Index)
		}
	}
	switch {
	case len(partial) > 2:
		add(InvariantOverlap, offset, "%d sections mid-transition: %v", len(partial), partial)
	case len(partial) == 2 && partial[1]-partial[0] != 1:
		add(InvariantOverlap, offset, "non-adjacent sections mid-transition: %v", partial)
	}
}

func checkStart(states []SectionState, ds []RenderDirective, add violationFunc) {
	if states[0].Phase != PhaseActive || states[0].EnterProgress != 1 || ds[0].TranslateFraction != 0 {
		add(InvariantStart, 0, "section 0 is %v (enter %.3f, translate %.3f), want Active at 0",
			states[0].Phase, states[0].EnterProgress, ds[0].TranslateFraction)
	}
	for _, s := range states[1:] {
		if s.Phase != PhaseHidden {
			add(InvariantStart, 0, "section %d is %v, want Hidden", s.Index, s.Phase)
		}
	}
}

func checkEnd(states []SectionState, ds []RenderDirective, offset float64, add violationFunc) {
	last := len(states) - 1
	if states[last].Phase != PhaseActive || ds[last].TranslateFraction != 0 {
		add(InvariantEnd, offset, "last section is %v (translate %.3f), want Active at 0",
			states[last].Phase, ds[last].TranslateFraction)
	}
	for _, s := range states[:last] {
		if s.ExitProgress != 1 || ds[s.Index].TranslateFraction != -1 {
			add(InvariantEnd, offset, "section %d exit %.3f translate %.3f, want fully exited",
				s.Index, s.ExitProgress, ds[s.Index].TranslateFraction)
		}
	}
}
