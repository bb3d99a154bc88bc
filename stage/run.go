package stage

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	Debug   bool
}

// Run opens a resizable window and runs the stage until the window closes or
// the update func returns an error. The stage is closed on return.
func Run(s *Stage, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 1024
	}
	if h <= 0 {
		h = int(s.viewport.ViewportHeight())
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	s.showFPS = cfg.ShowFPS
	if cfg.Debug {
		s.SetDebugMode(true)
	}
	defer s.Close()
	return ebiten.RunGame(s)
}
