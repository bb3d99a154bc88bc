// Package ecs provides ECS adapters for cascade's section phase events.
//
// The primary adapter is [NewDonburiSink], which bridges phase changes
// (Hidden, Entering, Active, Exiting) into a [Donburi] world as typed
// events. Subscribe to [PhaseEventType] in your ECS systems to receive them,
// or query entities with [SectionPhaseComponent] for each section's current
// phase.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	st.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
