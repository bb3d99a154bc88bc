package cascade

import (
	"fmt"
	"math"
	"strings"
)

// ScrollSample is one coalesced reading of the viewport, produced at most once
// per frame. Offset is the raw scroll position in pixels (never negative) and
// ViewportHeight is the visible height in pixels (always positive).
type ScrollSample struct {
	Offset         float64
	ViewportHeight float64
}

// LayoutPolicy selects how transition windows are laid out between sections.
type LayoutPolicy uint8

const (
	PolicyOverlapping LayoutPolicy = iota // adjacent sections share a transition band
	PolicyDiscrete                        // sections snap in and out at boundaries
)

var policyNames = [...]string{
	PolicyOverlapping: "overlapping",
	PolicyDiscrete:    "discrete",
}

// String returns the lower-case policy name used in config files.
func (p LayoutPolicy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("LayoutPolicy(%d)", uint8(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p LayoutPolicy) MarshalText() ([]byte, error) {
	if int(p) >= len(policyNames) {
		return nil, fmt.Errorf("cascade: unknown layout policy %d", uint8(p))
	}
	return []byte(policyNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is
// case-insensitive.
func (p *LayoutPolicy) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range policyNames {
		if n == name {
			*p = LayoutPolicy(i)
			return nil
		}
	}
	return configErr("layoutPolicy", string(text), "must be \"discrete\" or \"overlapping\"")
}

// Phase is the discrete lifecycle state of a section for one frame.
type Phase uint8

const (
	PhaseHidden   Phase = iota // not yet entered; drawn nowhere
	PhaseEntering              // sliding in from below
	PhaseActive                // fully seated in the viewport
	PhaseExiting               // sliding out above (or fully gone)
)

var phaseNames = [...]string{"Hidden", "Entering", "Active", "Exiting"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func validHeight(h float64) bool {
	return h > 0 && !math.IsInf(h, 0) && !math.IsNaN(h)
}
