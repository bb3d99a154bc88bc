package stage

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayRefresh is how often, in frames, the overlay text is redrawn.
const overlayRefresh = 30

// drawOverlay prints FPS, TPS and scroll position in the top-left corner.
// The text is rendered into a small cached image every overlayRefresh
// frames.
func (s *Stage) drawOverlay(screen *ebiten.Image) {
	if s.overlay == nil {
		// 120x64 fits four lines of DebugPrint text.
		s.overlay = ebiten.NewImage(120, 64)
		s.overlayAge = overlayRefresh
	}
	s.overlayAge++
	if s.overlayAge >= overlayRefresh {
		s.overlayAge = 0
		s.overlay.Clear()
		// Semi-transparent background for readability
		s.overlay.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(s.overlay, overlayText(
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			s.viewport.ScrollOffset(), s.viewport.Section()))
	}
	screen.DrawImage(s.overlay, nil)
}

func overlayText(fps, tps, offset float64, section int) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nY: %.0f\nSection: %d", fps, tps, offset, section)
}
