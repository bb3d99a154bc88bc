// Package stage hosts a cascade section stack in an Ebitengine window.
//
// A [Stage] is an ebiten.Game. It owns a [Viewport] that turns mouse wheel
// and keyboard input into a clamped scroll offset, feeds that offset through
// a cascade.ScrollSampler once per Update, and composites each [Section]
// from its own offscreen image using the resolved cascade.RenderDirective.
//
// Quick start:
//
//	st, err := stage.NewStage(cascade.DefaultConfig(),
//		stage.NewSection("hero", color.Black, drawHero),
//		stage.NewSection("about", color.White, drawAbout),
//	)
//	if err != nil {
//		log.Printf("stacking disabled: %v", err) // st still runs as a plain page
//	}
//	if err := stage.Run(st, stage.RunConfig{Title: "Demo", Width: 1024, Height: 720}); err != nil {
//		log.Fatal(err)
//	}
//
// # Automated runs
//
// [Stage.InjectScroll], [Stage.InjectScrollTo], [Stage.InjectSection] and
// [Stage.InjectResize] queue synthetic input that is consumed one event per
// frame. A [TestRunner] loaded from JSON with [LoadTestScript] sequences those
// events and [Stage.Screenshot] captures, so a scroll session can be replayed
// and recorded without a human at the wheel.
package stage
