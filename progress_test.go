package cascade

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func mustZones(t testing.TB, h float64, cfg Config) *ZoneMap {
	t.Helper()
	zm, err := BuildZoneMap(h, cfg)
	if err != nil {
		t.Fatalf("BuildZoneMap: %v", err)
	}
	return zm
}

func TestResolveOverlappingMidBand(t *testing.T) {
	zm := mustZones(t, 1000, overlapping(2, 0.25))
	states := Resolve(ScrollSample{Offset: 750, ViewportHeight: 1000}, zm)

	s0, s1 := states[0], states[1]
	if !(s0.ExitProgress > 0 && s0.ExitProgress < 1) {
		t.Errorf("section0 ExitProgress = %f, want strictly inside (0,1)", s0.ExitProgress)
	}
	if !(s1.EnterProgress > 0 && s1.EnterProgress < 1) {
		t.Errorf("section1 EnterProgress = %f, want strictly inside (0,1)", s1.EnterProgress)
	}
	if s0.Phase != PhaseExiting || s1.Phase != PhaseEntering {
		t.Errorf("phases = %v/%v, want Exiting/Entering", s0.Phase, s1.Phase)
	}

	ds := ResolveDirectives(nil, states, DirectiveStyle{BaseZIndex: 10})
	if !ds[0].Visible || !ds[1].Visible {
		t.Errorf("visible = %v/%v, want both", ds[0].Visible, ds[1].Visible)
	}
	if ds[1].ZIndex <= ds[0].ZIndex {
		t.Errorf("zIndex %d not above %d", ds[1].ZIndex, ds[0].ZIndex)
	}
	if !approxEqual(ds[0].TranslateFraction, -0.5, epsilon) || !approxEqual(ds[1].TranslateFraction, 0.5, epsilon) {
		t.Errorf("translate = %f/%f, want -0.5/0.5", ds[0].TranslateFraction, ds[1].TranslateFraction)
	}
}

func TestResolveDiscreteScenario(t *testing.T) {
	zm := mustZones(t, 800, discrete(3))
	style := DirectiveStyle{BaseZIndex: 10}

	tests := []struct {
		offset    float64
		phases    [3]Phase
		translate [3]float64
	}{
		{0, [3]Phase{PhaseActive, PhaseHidden, PhaseHidden}, [3]float64{0, 1, 1}},
		{799, [3]Phase{PhaseActive, PhaseHidden, PhaseHidden}, [3]float64{0, 1, 1}},
		{800, [3]Phase{PhaseExiting, PhaseActive, PhaseHidden}, [3]float64{-1, 0, 1}},
		{1600, [3]Phase{PhaseExiting, PhaseExiting, PhaseActive}, [3]float64{-1, -1, 0}},
	}
	for _, tt := range tests {
		states := Resolve(ScrollSample{Offset: tt.offset, ViewportHeight: 800}, zm)
		ds := ResolveDirectives(nil, states, style)
		for i := range states {
			if states[i].Phase != tt.phases[i] {
				t.Errorf("offset %v section %d phase = %v, want %v", tt.offset, i, states[i].Phase, tt.phases[i])
			}
			if ds[i].TranslateFraction != tt.translate[i] {
				t.Errorf("offset %v section %d translate = %f, want %f", tt.offset, i, ds[i].TranslateFraction, tt.translate[i])
			}
		}
	}
}

func TestResolveBoundaries(t *testing.T) {
	zm := mustZones(t, 1000, overlapping(5, 0.25))

	start := Resolve(ScrollSample{Offset: 0, ViewportHeight: 1000}, zm)
	if start[0].Phase != PhaseActive || start[0].EnterProgress != 1 {
		t.Errorf("section0 at 0 = %+v, want Active", start[0])
	}
	for _, s := range start[1:] {
		if s.Phase != PhaseHidden {
			t.Errorf("section %d at 0 = %v, want Hidden", s.Index, s.Phase)
		}
	}

	end := Resolve(ScrollSample{Offset: zm.MaxOffset(), ViewportHeight: 1000}, zm)
	last := end[len(end)-1]
	if last.Phase != PhaseActive || last.ExitProgress != 0 {
		t.Errorf("last section at max = %+v, want Active", last)
	}
	for _, s := range end[:len(end)-1] {
		if s.ExitProgress != 1 {
			t.Errorf("section %d ExitProgress at max = %f, want 1", s.Index, s.ExitProgress)
		}
	}

	// Overscroll keeps the final state.
	past := Resolve(ScrollSample{Offset: zm.MaxOffset() * 3, ViewportHeight: 1000}, zm)
	for i := range past {
		if past[i] != end[i] {
			t.Errorf("section %d past max = %+v, want %+v", i, past[i], end[i])
		}
	}
}

func TestResolveProgressMonotonic(t *testing.T) {
	zm := mustZones(t, 1000, overlapping(4, 0.3))
	prev := Resolve(ScrollSample{ViewportHeight: 1000}, zm)
	for off := 1.0; off <= zm.MaxOffset(); off++ {
		cur := Resolve(ScrollSample{Offset: off, ViewportHeight: 1000}, zm)
		for i := range cur {
			if cur[i].EnterProgress < prev[i].EnterProgress || cur[i].ExitProgress < prev[i].ExitProgress {
				t.Fatalf("section %d progress decreased at offset %v", i, off)
			}
		}
		prev = cur
	}
}

func TestResolveDeterministic(t *testing.T) {
	zm := mustZones(t, 900, DefaultConfig())
	sample := ScrollSample{Offset: 1234.5, ViewportHeight: 900}
	a := Resolve(sample, zm)
	// Resolve something else in between; the resolver keeps no memory.
	Resolve(ScrollSample{Offset: 3000, ViewportHeight: 900}, zm)
	b := Resolve(sample, zm)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("section %d: %+v then %+v", i, a[i], b[i])
		}
	}
}

func TestPhaseTieGoesToExiting(t *testing.T) {
	if got := phaseOf(1, 0.0001); got != PhaseExiting {
		t.Errorf("phaseOf(1, 0.0001) = %v, want Exiting", got)
	}
	if got := phaseOf(0.5, 1); got != PhaseExiting {
		t.Errorf("phaseOf(0.5, 1) = %v, want Exiting", got)
	}
}

func TestRangeProgress(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		offset, start, end, want float64
	}{
		{-10, 0, 100, 0},
		{50, 0, 100, 0.5},
		{150, 0, 100, 1},
		{99, 100, 100, 0},
		{100, 100, 100, 1},
		{1e12, inf, inf, 0},
	}
	for _, tt := range tests {
		if got := rangeProgress(tt.offset, tt.start, tt.end); got != tt.want {
			t.Errorf("rangeProgress(%v, %v, %v) = %v, want %v", tt.offset, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestResolveIntoDoesNotAllocate(t *testing.T) {
	zm := mustZones(t, 1000, DefaultConfig())
	states := make([]SectionState, zm.Len())
	directives := make([]RenderDirective, zm.Len())
	style := DirectiveStyle{BaseZIndex: 10, Fade: true}
	off := 0.0
	allocs := testing.AllocsPerRun(100, func() {
		off += 37
		states = ResolveInto(states, ScrollSample{Offset: off, ViewportHeight: 1000}, zm)
		directives = ResolveDirectives(directives, states, style)
	})
	if allocs != 0 {
		t.Errorf("allocs per frame = %v, want 0", allocs)
	}
}
