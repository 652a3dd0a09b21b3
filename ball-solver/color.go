package ball

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the two endpoint colours a ball oscillates between.
type Palette struct {
	From, To colorful.Color
}

// DefaultPalette fades from red to blue.
var DefaultPalette = Palette{
	From: colorful.Color{R: 1},
	To:   colorful.Color{B: 1},
}

// ParsePalette builds a palette out of two "#rrggbb" colours.
func ParsePalette(from, to string) (Palette, error) {
	f, err := colorful.Hex(from)
	if err != nil {
		return Palette{}, fmt.Errorf("start colour %q: %w", from, err)
	}
	t, err := colorful.Hex(to)
	if err != nil {
		return Palette{}, fmt.Errorf("end colour %q: %w", to, err)
	}
	return Palette{From: f, To: t}, nil
}

// At returns the colour at phase factor, linearly interpolated in RGB.
func (pl Palette) At(factor float64) (r, g, b uint8) {
	return pl.From.BlendRgb(pl.To, factor).RGB255()
}
