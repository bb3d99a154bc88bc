// Package cascade turns a one-dimensional scroll offset into stacked,
// full-viewport section transitions.
//
// A page is a list of sections, each one viewport tall. As the user scrolls,
// the next section slides up over the current one instead of the whole page
// scrolling as a single document. cascade computes, for every frame, where
// each section sits, how opaque it is and in which order sections stack. It
// never draws anything itself.
//
// # Pipeline
//
// Every frame flows one way and synchronously:
//
//	Viewport events → ScrollSampler → ResolveInto → ResolveDirectives → SectionRenderer
//
// [ScrollSampler] coalesces scroll and resize events into at most one
// [ScrollSample] per frame. [BuildZoneMap] derives each section's transition
// window from the viewport height and a [Config]. [Resolve] maps a sample to
// one [SectionState] per section, and [ResolveDirective] maps a state to a
// [RenderDirective] the renderer can apply directly.
//
// The resolvers are pure: identical inputs always give bitwise-identical
// outputs and nothing is carried between frames except the raw scroll offset,
// which the [Viewport] owns.
//
// # Quick start
//
//	cfg := cascade.DefaultConfig()
//	cfg.SectionCount = 4
//
//	layout, err := cascade.NewLayout(cfg)
//	if err != nil {
//		// layout is a DocumentLayout fallback; keep rendering with it.
//		log.Printf("stacking disabled: %v", err)
//	}
//
//	sampler := cascade.NewScrollSampler(viewport, cascade.SamplerOptions{})
//	defer sampler.Close()
//
//	sub := cascade.Bind(sampler, layout, renderer)
//	defer sub.Remove()
//
//	// once per display frame:
//	sampler.Frame()
//
// The [github.com/phanxgames/cascade/stage] package hosts the engine in an
// Ebitengine window.
//
// # Layout policies
//
// [PolicyDiscrete] snaps each section fully in or out at its boundary.
// [PolicyOverlapping] gives each adjacent pair a shared transition band
// 2·f viewport heights wide that ends at the incoming section's nominal
// start, so the outgoing and incoming sections move together. f must lie in
// (0, 0.5]; larger values would let three sections transition at once.
//
// # Reveals
//
// Local, timer-driven reveal animations (count-up numbers and similar) are
// deliberately not part of the zone map. Use [Reveal] and [Counter], fed by
// [RenderDirective.VisibleFraction] and advanced with your own frame delta.
package cascade
