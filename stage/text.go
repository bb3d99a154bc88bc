package stage

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font wraps Ebitengine's text/v2 for TrueType text in section content.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("stage: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

// Align selects horizontal text alignment relative to the x passed to Draw.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Draw renders s with its top edge at y. alpha multiplies the color's
// alpha, so content can fade with a reveal.
func (f *Font) Draw(dst *ebiten.Image, s string, x, y float64, align Align, clr color.Color, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.LineSpacing = f.lh
	switch align {
	case AlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case AlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	text.Draw(dst, s, f.face, op)
}
