package stage

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/cascade"
)

// Stage is an ebiten.Game that stacks full-viewport sections and drives
// them with a cascade layout. It owns the viewport, the sampler and the
// per-section offscreen images; sections only paint their own content.
type Stage struct {
	// ClearColor fills the screen before sections are composited. Nil skips
	// the fill.
	ClearColor color.Color
	// ScrollDuration is the length of keyboard and injected section jumps.
	ScrollDuration float32
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	cfg      cascade.Config
	layout   cascade.Layout
	engine   *cascade.Engine // nil when running the document fallback
	viewport *Viewport
	sampler  *cascade.ScrollSampler
	binding  cascade.Subscription
	tracker  *cascade.PhaseTracker
	sections []*Section

	frame     []cascade.RenderDirective // latest directives, index order
	drawOrder []cascade.RenderDirective

	updateFunc      func() error
	overlayFunc     OverlayFunc
	injectQueue     []syntheticScroll
	testRunner      *TestRunner
	screenshotQueue []string

	showFPS    bool
	overlay    *ebiten.Image
	overlayAge int
	debug      bool
	stats      frameStats
	closed     bool
}

// NewStage builds a stage for the given sections; cfg.SectionCount is taken
// from len(sections). If the configuration is invalid the returned stage
// still works, laid out as a plain document, and the *cascade.ConfigError
// is returned alongside it.
func NewStage(cfg cascade.Config, sections ...*Section) (*Stage, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("stage: at least one section is required")
	}
	cfg.SectionCount = len(sections)

	s := &Stage{
		ClearColor:     color.Black,
		ScrollDuration: DefaultScrollDuration,
		ScreenshotDir:  "screenshots",
		cfg:            cfg,
		sections:       sections,
		frame:          make([]cascade.RenderDirective, len(sections)),
	}

	layout, err := cascade.NewLayout(cfg)
	s.layout = layout
	s.engine, _ = layout.(*cascade.Engine)

	h := cfg.DefaultViewportHeight
	if !(h > 0) {
		h = cascade.DefaultViewportHeight
	}
	s.viewport = NewViewport(len(sections), h)
	s.sampler = cascade.NewScrollSampler(s.viewport, cascade.SamplerOptions{DefaultViewportHeight: h})
	s.binding = cascade.Bind(s.sampler, s.layout, cascade.SectionRendererFunc(s.collect))
	return s, err
}

// collect stores one directive from the layout.
func (s *Stage) collect(d cascade.RenderDirective) {
	if d.Index >= 0 && d.Index < len(s.frame) {
		s.frame[d.Index] = d
	}
}

// Viewport returns the stage's scroll container.
func (s *Stage) Viewport() *Viewport { return s.viewport }

// StackLayout returns the layout in use: a *cascade.Engine, or a
// *cascade.DocumentLayout after a configuration error.
func (s *Stage) StackLayout() cascade.Layout { return s.layout }

// Engine returns the stacking engine, or nil in document fallback mode.
func (s *Stage) Engine() *cascade.Engine { return s.engine }

// Sections returns the stage's sections. The slice must not be mutated.
func (s *Stage) Sections() []*Section { return s.sections }

// Directives returns the directives of the most recent frame, in section
// order. The slice is reused every frame.
func (s *Stage) Directives() []cascade.RenderDirective { return s.frame }

// SetUpdateFunc installs a callback run at the end of every Update. A
// non-nil error (including ebiten.Termination) ends the game.
func (s *Stage) SetUpdateFunc(fn func() error) { s.updateFunc = fn }

// SetOverlayFunc installs fn to draw after the sections and before the FPS
// overlay. Nil removes it.
func (s *Stage) SetOverlayFunc(fn OverlayFunc) { s.overlayFunc = fn }

// SetEventSink starts reporting section phase changes to sink. A nil sink
// stops reporting. Phase events need the stacking engine; in document
// fallback mode nothing is emitted.
func (s *Stage) SetEventSink(sink cascade.EventSink) {
	if sink == nil {
		s.tracker = nil
		return
	}
	s.tracker = cascade.NewPhaseTracker(sink)
	if s.engine != nil {
		s.tracker.Observe(s.engine.States(), s.sampler.Sample().Offset)
	}
}

// SetDebugMode enables per-frame timing stats, logged at debug level through
// cascade.Logger.
func (s *Stage) SetDebugMode(enabled bool) { s.debug = enabled }

// Update implements ebiten.Game.
func (s *Stage) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.advance(dt)
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// advance runs the scroll animation, resolves at most one frame and then
// calls each section's OnUpdate hook.
func (s *Stage) advance(dt float32) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.viewport.update(dt)
	if s.sampler.Frame() && s.tracker != nil && s.engine != nil {
		s.tracker.Observe(s.engine.States(), s.sampler.Sample().Offset)
	}
	for i, sec := range s.sections {
		if sec.OnUpdate != nil {
			sec.OnUpdate(dt, s.frame[i])
		}
	}

	if s.debug {
		s.stats.stepTime = time.Since(t0)
	}
}

// Draw implements ebiten.Game. Sections are composited in ascending z-index;
// those entirely off screen are skipped.
func (s *Stage) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.ClearColor != nil {
		screen.Fill(s.ClearColor)
	}
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()

	s.drawOrder = append(s.drawOrder[:0], s.frame...)
	slices.SortStableFunc(s.drawOrder, func(x, y cascade.RenderDirective) int {
		return cmp.Compare(x.ZIndex, y.ZIndex)
	})
	for _, d := range s.drawOrder {
		if d.OnScreen() {
			s.sections[d.Index].render(screen, d, w, h)
		}
	}
	if s.overlayFunc != nil {
		s.overlayFunc(screen, s.sampler.Sample())
	}

	if s.showFPS {
		s.drawOverlay(screen)
	}
	s.flushScreenshots(screen)

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.onScreen, s.stats.visible = countDrawn(s.frame)
		s.debugLog()
	}
}

// Layout implements ebiten.Game. The outside height becomes the viewport
// height; the sampler picks the change up on the next Update.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.viewport.SetHeight(float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Close unbinds the layout, stops the sampler and frees section images.
// Safe to call more than once.
func (s *Stage) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.binding.Remove()
	s.sampler.Close()
	for _, sec := range s.sections {
		sec.dispose()
	}
	if s.overlay != nil {
		s.overlay.Deallocate()
		s.overlay = nil
	}
}
