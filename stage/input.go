package stage

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WheelStep is how many pixels one wheel notch scrolls.
const WheelStep = 60.0

// scrollKey maps a navigation key to a scroll action.
type scrollKey struct {
	key ebiten.Key
	act func(v *Viewport, duration float32)
}

var scrollKeys = []scrollKey{
	{ebiten.KeyPageDown, func(v *Viewport, d float32) { v.ScrollToSection(v.Section()+1, d, nil) }},
	{ebiten.KeySpace, func(v *Viewport, d float32) { v.ScrollToSection(v.Section()+1, d, nil) }},
	{ebiten.KeyPageUp, func(v *Viewport, d float32) { v.ScrollToSection(v.Section()-1, d, nil) }},
	{ebiten.KeyHome, func(v *Viewport, d float32) { v.ScrollToSection(0, d, nil) }},
	{ebiten.KeyEnd, func(v *Viewport, d float32) { v.ScrollToSection(v.sections-1, d, nil) }},
	{ebiten.KeyArrowDown, func(v *Viewport, _ float32) { v.ScrollBy(WheelStep) }},
	{ebiten.KeyArrowUp, func(v *Viewport, _ float32) { v.ScrollBy(-WheelStep) }},
}

// processInput feeds injected events when any are queued, otherwise the
// real mouse wheel and keyboard.
func (s *Stage) processInput() {
	if s.processInjectedInput() {
		return
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		// Wheel down reports negative dy; scrolling down increases the offset.
		s.viewport.ScrollBy(-dy * WheelStep)
	}
	for _, k := range scrollKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			k.act(s.viewport, s.ScrollDuration)
		}
	}
}
