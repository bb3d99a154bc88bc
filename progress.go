package cascade

import "math"

// SectionState is one section's progress through its zone for one frame.
// It is recomputed from scratch every frame and never mutated in place.
type SectionState struct {
	Index         int
	EnterProgress float64 // 0 = not entered, 1 = fully seated
	ExitProgress  float64 // 0 = not leaving, 1 = fully gone
	Phase         Phase
}

// Resolve computes the state of every section for a sample. It allocates a
// new slice; use ResolveInto on the per-frame path.
func Resolve(sample ScrollSample, zm *ZoneMap) []SectionState {
	return ResolveInto(nil, sample, zm)
}

// ResolveInto computes the state of every section, reusing dst's backing
// array when it is large enough. Only sample.Offset is read; the zone map
// already encodes the viewport height.
func ResolveInto(dst []SectionState, sample ScrollSample, zm *ZoneMap) []SectionState {
	n := len(zm.zones)
	if cap(dst) < n {
		dst = make([]SectionState, n)
	}
	dst = dst[:n]
	for i := range zm.zones {
		dst[i] = resolveZone(&zm.zones[i], sample.Offset)
	}
	return dst
}

func resolveZone(z *Zone, offset float64) SectionState {
	enter := rangeProgress(offset, z.EnterStart, z.EnterEnd)
	exit := rangeProgress(offset, z.ExitStart, z.ExitEnd)
	return SectionState{
		Index:         z.Index,
		EnterProgress: enter,
		ExitProgress:  exit,
		Phase:         phaseOf(enter, exit),
	}
}

// rangeProgress is clamp((offset-start)/(end-start), 0, 1), with a zero-width
// range acting as a step at start.
func rangeProgress(offset, start, end float64) float64 {
	if math.IsInf(start, 1) {
		return 0
	}
	if end == start {
		if offset >= start {
			return 1
		}
		return 0
	}
	return clamp01((offset - start) / (end - start))
}

// phaseOf derives the phase. Exiting wins any tie so a departing section
// never renders at full strength alongside an arriving one.
func phaseOf(enter, exit float64) Phase {
	switch {
	case exit > 0:
		return PhaseExiting
	case enter == 0:
		return PhaseHidden
	case enter == 1:
		return PhaseActive
	default:
		return PhaseEntering
	}
}
