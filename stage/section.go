package stage

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/cascade"
)

// DrawFunc paints a section's content onto dst, which is exactly one
// viewport in size and already filled with the section background. The
// directive is the one the section is composited with this frame; use
// d.VisibleFraction() to drive a cascade.Reveal.
type DrawFunc func(dst *ebiten.Image, d cascade.RenderDirective)

// UpdateFunc runs once per Update with the section's latest directive.
// Typical use is feeding d.VisibleFraction() into a cascade.Reveal.
type UpdateFunc func(dt float32, d cascade.RenderDirective)

// OverlayFunc paints fixed chrome, such as a navigation bar, above every
// section. sample is the one the current frame was resolved from.
type OverlayFunc func(dst *ebiten.Image, sample cascade.ScrollSample)

// Section is one full-viewport panel in the stack.
type Section struct {
	Name       string
	Background color.Color
	Draw       DrawFunc
	OnUpdate   UpdateFunc

	img *ebiten.Image
}

// NewSection creates a section with a solid background and optional content.
func NewSection(name string, bg color.Color, draw DrawFunc) *Section {
	return &Section{Name: name, Background: bg, Draw: draw}
}

// render paints the section into its offscreen image and composites it onto
// dst at the directive's offset and opacity.
func (sec *Section) render(dst *ebiten.Image, d cascade.RenderDirective, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if sec.img != nil {
		if b := sec.img.Bounds(); b.Dx() != w || b.Dy() != h {
			sec.img.Deallocate()
			sec.img = nil
		}
	}
	if sec.img == nil {
		sec.img = ebiten.NewImage(w, h)
	}

	sec.img.Clear()
	if sec.Background != nil {
		sec.img.Fill(sec.Background)
	}
	if sec.Draw != nil {
		sec.Draw(sec.img, d)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, d.Offset(float64(h)))
	op.ColorScale.ScaleAlpha(float32(d.Opacity))
	dst.DrawImage(sec.img, op)
}

// dispose frees the offscreen image.
func (sec *Section) dispose() {
	if sec.img != nil {
		sec.img.Deallocate()
		sec.img = nil
	}
}
