package cascade

// PhaseEvent records a section changing phase between two resolved frames.
type PhaseEvent struct {
	Index  int
	From   Phase
	To     Phase
	Offset float64 // scroll offset of the frame where To was first observed
}

// EventSink receives phase events. The ecs package provides a Donburi-backed
// implementation.
type EventSink interface {
	EmitPhase(event PhaseEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(PhaseEvent)

// EmitPhase calls f(event).
func (f EventSinkFunc) EmitPhase(event PhaseEvent) { f(event) }

// PhaseTracker diffs consecutive frames of section states and emits a
// PhaseEvent for every section whose phase changed. It lives outside the
// resolvers, which stay memoryless; the tracker is the only thing that
// remembers the previous frame.
type PhaseTracker struct {
	sink   EventSink
	phases []Phase
	primed bool
}

// NewPhaseTracker returns a tracker emitting to sink.
func NewPhaseTracker(sink EventSink) *PhaseTracker {
	return &PhaseTracker{sink: sink}
}

// Observe compares states with the previous call. The first call only
// records a baseline. A change in section count re-baselines silently.
func (t *PhaseTracker) Observe(states []SectionState, offset float64) {
	if !t.primed || len(states) != len(t.phases) {
		t.phases = t.phases[:0]
		for _, s := range states {
			t.phases = append(t.phases, s.Phase)
		}
		t.primed = true
		return
	}
	for i, s := range states {
		if s.Phase == t.phases[i] {
			continue
		}
		if t.sink != nil {
			t.sink.EmitPhase(PhaseEvent{Index: s.Index, From: t.phases[i], To: s.Phase, Offset: offset})
		}
		t.phases[i] = s.Phase
	}
}

// Reset forgets the baseline; the next Observe records a new one.
func (t *PhaseTracker) Reset() {
	t.primed = false
	t.phases = t.phases[:0]
}
