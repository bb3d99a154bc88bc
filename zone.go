package cascade

import (
	"fmt"
	"math"
)

// Zone is the scroll-offset window over which one section enters and exits.
// All bounds are in pixels of scroll offset and satisfy
// EnterStart <= EnterEnd <= ExitStart <= ExitEnd. A section with no exit
// range (the last one) has ExitStart == ExitEnd == +Inf.
type Zone struct {
	Index      int     `yaml:"index"`
	EnterStart float64 `yaml:"enterStart"`
	EnterEnd   float64 `yaml:"enterEnd"`
	ExitStart  float64 `yaml:"exitStart"`
	ExitEnd    float64 `yaml:"exitEnd"`
}

// HasExit reports whether the zone ever exits.
func (z Zone) HasExit() bool {
	return !math.IsInf(z.ExitStart, 1)
}

// ZoneMap is the ordered set of zones for one viewport height. It is
// immutable once built; a resize produces a new map.
type ZoneMap struct {
	zones          []Zone
	viewportHeight float64
}

// BuildZoneMap lays out cfg.SectionCount zones for the given viewport height.
//
// The transition between sections i and i+1 occupies the band
// [(i+1)·h − w, (i+1)·h] with w = 2·f·h (zero for PolicyDiscrete): the
// incoming section is fully seated exactly at its nominal start and the
// outgoing one leaves across the same band. Section 0 starts active and the
// last section never exits.
func BuildZoneMap(viewportHeight float64, cfg Config) (*ZoneMap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !validHeight(viewportHeight) {
		return nil, configErr("viewportHeight", viewportHeight, "must be a positive finite number")
	}

	h := viewportHeight
	w := cfg.bandFraction() * h
	n := cfg.SectionCount
	zones := make([]Zone, n)
	for i := range zones {
		z := Zone{Index: i}
		if i > 0 {
			z.EnterEnd = float64(i) * h
			z.EnterStart = z.EnterEnd - w
		}
		if i < n-1 {
			z.ExitEnd = float64(i+1) * h
			z.ExitStart = z.ExitEnd - w
		} else {
			z.ExitStart = math.Inf(1)
			z.ExitEnd = math.Inf(1)
		}
		zones[i] = z
	}

	// Construction above cannot violate the invariants for a valid config,
	// but the same checks guard hand-built maps so run them here too.
	return NewZoneMap(h, zones)
}

// NewZoneMap validates hand-authored zones and wraps them in a ZoneMap. The
// slice is copied.
func NewZoneMap(viewportHeight float64, zones []Zone) (*ZoneMap, error) {
	if !validHeight(viewportHeight) {
		return nil, configErr("viewportHeight", viewportHeight, "must be a positive finite number")
	}
	if len(zones) == 0 {
		return nil, configErr("zones", nil, "at least one zone is required")
	}
	for i, z := range zones {
		if err := validateZone(i, z, len(zones)); err != nil {
			return nil, err
		}
		if i >= 2 && z.EnterStart < zones[i-2].ExitEnd {
			return nil, configErr(fmt.Sprintf("zones[%d]", i), z.EnterStart,
				fmt.Sprintf("enterStart precedes zones[%d].exitEnd %s; three sections would transition at once",
					i-2, formatFloat(zones[i-2].ExitEnd)))
		}
		if i >= 1 && z.EnterStart < zones[i-1].EnterEnd {
			return nil, configErr(fmt.Sprintf("zones[%d]", i), z.EnterStart,
				"enterStart precedes the previous zone's enterEnd")
		}
	}
	zm := &ZoneMap{
		zones:          make([]Zone, len(zones)),
		viewportHeight: viewportHeight,
	}
	copy(zm.zones, zones)
	return zm, nil
}

func validateZone(i int, z Zone, n int) error {
	field := fmt.Sprintf("zones[%d]", i)
	if z.Index != i {
		return configErr(field, z.Index, fmt.Sprintf("index must equal position %d", i))
	}
	for _, v := range [...]float64{z.EnterStart, z.EnterEnd} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return configErr(field, v, "enter bounds must be finite")
		}
	}
	for _, v := range [...]float64{z.ExitStart, z.ExitEnd} {
		if math.IsNaN(v) || math.IsInf(v, -1) {
			return configErr(field, v, "exit bounds must not be NaN or -Inf")
		}
	}
	if math.IsInf(z.ExitStart, 1) != math.IsInf(z.ExitEnd, 1) {
		return configErr(field, nil, "exitStart and exitEnd must both be finite or both be +Inf")
	}
	if !(z.EnterStart <= z.EnterEnd && z.EnterEnd <= z.ExitStart && z.ExitStart <= z.ExitEnd) {
		return configErr(field, fmt.Sprintf("[%s %s %s %s]",
			formatFloat(z.EnterStart), formatFloat(z.EnterEnd), formatFloat(z.ExitStart), formatFloat(z.ExitEnd)),
			"bounds must satisfy enterStart <= enterEnd <= exitStart <= exitEnd")
	}
	if i == n-1 && z.HasExit() {
		return configErr(field, z.ExitStart, "the last zone must not exit")
	}
	// At offset 0 the first section is seated and every other one hidden.
	if i == 0 && z.EnterEnd > 0 {
		return configErr(field, z.EnterEnd, "the first zone must be entered by offset 0")
	}
	if i > 0 && (z.EnterStart < 0 || z.EnterEnd <= 0) {
		return configErr(field, fmt.Sprintf("[%s %s]", formatFloat(z.EnterStart), formatFloat(z.EnterEnd)),
			"only the first zone may be entered at offset 0")
	}
	return nil
}

// Len returns the number of zones.
func (m *ZoneMap) Len() int { return len(m.zones) }

// Zone returns the zone at index i.
func (m *ZoneMap) Zone(i int) Zone { return m.zones[i] }

// Zones returns a copy of all zones in index order.
func (m *ZoneMap) Zones() []Zone {
	out := make([]Zone, len(m.zones))
	copy(out, m.zones)
	return out
}

// ViewportHeight returns the height the map was built for.
func (m *ZoneMap) ViewportHeight() float64 { return m.viewportHeight }

// MaxOffset is the largest meaningful scroll offset: the point where the last
// section has finished entering.
func (m *ZoneMap) MaxOffset() float64 {
	return m.zones[len(m.zones)-1].EnterEnd
}

// ContentHeight is the total scrollable height, MaxOffset plus one viewport.
func (m *ZoneMap) ContentHeight() float64 {
	return m.MaxOffset() + m.viewportHeight
}

// Equal reports whether two maps describe identical zones for the same
// viewport height.
func (m *ZoneMap) Equal(other *ZoneMap) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.viewportHeight != other.viewportHeight || len(m.zones) != len(other.zones) {
		return false
	}
	for i := range m.zones {
		if m.zones[i] != other.zones[i] {
			return false
		}
	}
	return true
}
