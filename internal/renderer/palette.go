// Package renderer draws the document onto a cell-grid backend for the
// terminal preview. It is a debugging frontend, not the product UI;
// the editing core never depends on it.
package renderer

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple in the 0..255 range.
type Color struct {
	R, G, B uint8
}

// Fixed UI colors.
var (
	ColorSelection = Color{R: 0x00, G: 0xbf, B: 0xff}
	ColorGuide     = Color{R: 0xff, G: 0x45, B: 0x00}
	ColorSnapped   = Color{R: 0x00, G: 0xcc, B: 0x66}
	ColorDimension = Color{R: 0xaa, G: 0xaa, B: 0xaa}
)

// goldenRatioConjugate spaces successive hues so nearby layers never
// share similar colors.
const goldenRatioConjugate = 0.618033988749895

// LayerColor returns a deterministic color for the layer at the given
// index. The same index always yields the same color, so layer colors
// are stable across sessions without being stored.
func LayerColor(index int) Color {
	if index < 0 {
		index = 0
	}
	hue := math.Mod(float64(index)*goldenRatioConjugate, 1.0) * 360.0
	c := colorful.Hsv(hue, 0.65, 0.95)
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}
}
