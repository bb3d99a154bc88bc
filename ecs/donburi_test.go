package ecs

import (
	"testing"

	"github.com/phanxgames/cascade"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitPhase(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []cascade.PhaseEvent
	PhaseEventType.Subscribe(world, func(w donburi.World, e cascade.PhaseEvent) {
		received = append(received, e)
	})

	sink.EmitPhase(cascade.PhaseEvent{Index: 0, From: cascade.PhaseActive, To: cascade.PhaseExiting, Offset: 750})
	sink.EmitPhase(cascade.PhaseEvent{Index: 1, From: cascade.PhaseHidden, To: cascade.PhaseEntering, Offset: 750})

	// Events are queued until processed.
	PhaseEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Index != 0 || e.To != cascade.PhaseExiting || e.Offset != 750 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Index != 1 || e.From != cascade.PhaseHidden {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_MirrorsCurrentPhase(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	sink.EmitPhase(cascade.PhaseEvent{Index: 1, From: cascade.PhaseHidden, To: cascade.PhaseEntering, Offset: 600})
	sink.EmitPhase(cascade.PhaseEvent{Index: 1, From: cascade.PhaseEntering, To: cascade.PhaseActive, Offset: 800})
	sink.EmitPhase(cascade.PhaseEvent{Index: 0, From: cascade.PhaseActive, To: cascade.PhaseExiting, Offset: 600})

	phases := map[int]SectionPhase{}
	donburi.NewQuery(filter.Contains(SectionPhaseComponent)).Each(world, func(e *donburi.Entry) {
		p := SectionPhaseComponent.Get(e)
		phases[p.Index] = *p
	})

	if len(phases) != 2 {
		t.Fatalf("expected 2 section entities, got %d", len(phases))
	}
	if p := phases[1]; p.Phase != cascade.PhaseActive || p.Offset != 800 {
		t.Errorf("section 1 = %+v, want Active at 800", p)
	}
	if p := phases[0]; p.Phase != cascade.PhaseExiting {
		t.Errorf("section 0 = %+v, want Exiting", p)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink cascade.EventSink = NewDonburiSink(world)
	_ = sink
}

func TestDonburiSink_WithPhaseTracker(t *testing.T) {
	world := donburi.NewWorld()
	tracker := cascade.NewPhaseTracker(NewDonburiSink(world))

	cfg := cascade.DefaultConfig()
	cfg.SectionCount = 2
	zm, err := cascade.BuildZoneMap(1000, cfg)
	if err != nil {
		t.Fatal(err)
	}

	var count1, count2 int
	PhaseEventType.Subscribe(world, func(w donburi.World, e cascade.PhaseEvent) {
		count1++
	})
	PhaseEventType.Subscribe(world, func(w donburi.World, e cascade.PhaseEvent) {
		count2++
	})

	for _, off := range []float64{0, 1000} {
		tracker.Observe(cascade.Resolve(cascade.ScrollSample{Offset: off, ViewportHeight: 1000}, zm), off)
	}
	events.ProcessAllEvents(world)

	if count1 != 2 || count2 != 2 {
		t.Errorf("expected both subscribers called twice, got %d and %d", count1, count2)
	}
}
