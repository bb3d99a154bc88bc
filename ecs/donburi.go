package ecs

import (
	"github.com/phanxgames/cascade"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PhaseEventType is the Donburi event type for section phase changes.
// Subscribe to this in your ECS systems to react when a section enters,
// settles or leaves.
var PhaseEventType = events.NewEventType[cascade.PhaseEvent]()

// SectionPhase mirrors the latest known phase of one section.
type SectionPhase struct {
	Index  int
	Phase  cascade.Phase
	Offset float64 // scroll offset at which Phase was reached
}

// SectionPhaseComponent holds a SectionPhase. The sink creates one entity
// carrying it per section, the first time that section changes phase.
var SectionPhaseComponent = donburi.NewComponentType[SectionPhase]()

type donburiSink struct {
	world    donburi.World
	sections map[int]donburi.Entity
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Each phase
// change is published to PhaseEventType, to be consumed with
// events.Subscribe and ProcessEvents, and is also written to the section's
// SectionPhaseComponent entity so systems can query current phases directly.
func NewDonburiSink(world donburi.World) cascade.EventSink {
	return &donburiSink{world: world, sections: make(map[int]donburi.Entity)}
}

func (s *donburiSink) EmitPhase(event cascade.PhaseEvent) {
	PhaseEventType.Publish(s.world, event)

	e, ok := s.sections[event.Index]
	if !ok || !s.world.Valid(e) {
		e = s.world.Create(SectionPhaseComponent)
		s.sections[event.Index] = e
	}
	SectionPhaseComponent.Set(s.world.Entry(e), &SectionPhase{
		Index:  event.Index,
		Phase:  event.To,
		Offset: event.Offset,
	})
}
