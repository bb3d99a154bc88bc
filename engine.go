package cascade

import "math"

// SectionRenderer draws sections. It receives one directive per section per
// frame, in index order, and must not feed anything back into the engine.
type SectionRenderer interface {
	RenderSection(d RenderDirective)
}

// SectionRendererFunc adapts a function to SectionRenderer.
type SectionRendererFunc func(d RenderDirective)

// RenderSection calls f(d).
func (f SectionRendererFunc) RenderSection(d RenderDirective) { f(d) }

// Layout maps a scroll sample to one directive per section.
type Layout interface {
	// SectionCount returns how many directives Step produces.
	SectionCount() int
	// Step resolves one frame. The returned slice belongs to the layout and
	// is only valid until the next call.
	Step(sample ScrollSample) []RenderDirective
}

// Engine is the stacking Layout: zone map, progress resolver and transform
// resolver behind one per-frame call. The zone map is rebuilt whenever a
// sample arrives with a new viewport height; no other state survives a frame.
type Engine struct {
	cfg        Config
	style      DirectiveStyle
	zones      *ZoneMap
	states     []SectionState
	directives []RenderDirective
	rebuilds   int
}

// NewEngine validates cfg and builds the initial zone map for
// cfg.DefaultViewportHeight. Any error is a *ConfigError.
func NewEngine(cfg Config) (*Engine, error) {
	zm, err := BuildZoneMap(cfg.DefaultViewportHeight, cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:        cfg,
		style:      cfg.directiveStyle(),
		zones:      zm,
		states:     make([]SectionState, cfg.SectionCount),
		directives: make([]RenderDirective, cfg.SectionCount),
	}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// SectionCount implements Layout.
func (e *Engine) SectionCount() int { return e.cfg.SectionCount }

// ZoneMap returns the zone map used by the most recent Step.
func (e *Engine) ZoneMap() *ZoneMap { return e.zones }

// States returns the section states computed by the most recent Step. The
// slice is reused on the next Step.
func (e *Engine) States() []SectionState { return e.states }

// Rebuilds returns how many times the zone map was rebuilt after a resize.
func (e *Engine) Rebuilds() int { return e.rebuilds }

// Step implements Layout. A sample with a new, usable viewport height swaps
// in a freshly built zone map before anything is resolved, so no section ever
// sees a mix of old and new zones. The raw offset is then resolved against
// the new map as is.
func (e *Engine) Step(sample ScrollSample) []RenderDirective {
	if validHeight(sample.ViewportHeight) && sample.ViewportHeight != e.zones.viewportHeight {
		if zm, err := BuildZoneMap(sample.ViewportHeight, e.cfg); err == nil {
			e.zones = zm
			e.rebuilds++
			Logger().Info("zone map rebuilt",
				"viewportHeight", sample.ViewportHeight,
				"maxOffset", zm.MaxOffset(),
				"sections", zm.Len())
		}
	}
	e.states = ResolveInto(e.states, sample, e.zones)
	e.directives = ResolveDirectives(e.directives, e.states, e.style)
	return e.directives
}

// DocumentLayout is the fallback used when the stacking configuration is
// invalid: sections simply follow one another down the page like a plain
// document, each one viewport tall.
type DocumentLayout struct {
	Sections   int
	BaseZIndex int

	directives []RenderDirective
}

// SectionCount implements Layout.
func (l *DocumentLayout) SectionCount() int { return l.Sections }

// Step implements Layout. Section i sits i viewport heights down the page.
func (l *DocumentLayout) Step(sample ScrollSample) []RenderDirective {
	n := max(l.Sections, 0)
	if cap(l.directives) < n {
		l.directives = make([]RenderDirective, n)
	}
	l.directives = l.directives[:n]

	h := sample.ViewportHeight
	if !validHeight(h) {
		h = DefaultViewportHeight
	}
	scrolled := sample.Offset / h
	for i := range l.directives {
		t := float64(i) - scrolled
		l.directives[i] = RenderDirective{
			Index:             i,
			TranslateFraction: t,
			Opacity:           1,
			ZIndex:            l.BaseZIndex + i,
			Visible:           math.Abs(t) < 1,
		}
	}
	return l.directives
}

// NewLayout returns a stacking Engine for a valid cfg. For an invalid cfg it
// returns the *ConfigError together with a DocumentLayout, so a host can keep
// rendering a plain page instead of stacking with undefined z-order.
func NewLayout(cfg Config) (Layout, error) {
	e, err := NewEngine(cfg)
	if err != nil {
		Logger().Warn("stacking disabled, using document layout", "err", err)
		return &DocumentLayout{Sections: max(cfg.SectionCount, 0), BaseZIndex: cfg.BaseZIndex}, err
	}
	return e, nil
}

// Bind connects a sampler to a layout and a renderer: every sample the
// sampler delivers is stepped through the layout and each resulting directive
// handed to r, all within the sampler's Frame call. The current sample is
// rendered immediately. Remove the returned Subscription to unbind.
func Bind(s *ScrollSampler, l Layout, r SectionRenderer) Subscription {
	return s.Subscribe(func(sample ScrollSample) {
		for _, d := range l.Step(sample) {
			r.RenderSection(d)
		}
	})
}
