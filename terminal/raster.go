package terminal

import (
	"math"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	ball "github.com/esimov/ascii-balls/ball-solver"
)

const glyph = '█'

// rasterize paints every body of f into buf as filled cells. A cell is
// covered when its centre lies inside the circle; balls smaller than a
// cell still light up the cell holding their centre.
func rasterize(buf []termbox.Cell, w, h int, sc Scale, f ball.Frame) {
	for i := range buf {
		buf[i] = termbox.Cell{Ch: ' ', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault}
	}

	for _, b := range f.Bodies {
		fg := rgbTo256(b.R, b.G, b.B)
		c0 := int(math.Floor((b.X - b.Radius) / sc.X))
		c1 := int(math.Floor((b.X + b.Radius) / sc.X))
		r0 := int(math.Floor((b.Y - b.Radius) / sc.Y))
		r1 := int(math.Floor((b.Y + b.Radius) / sc.Y))

		painted := false
		for row := max(r0, 0); row <= min(r1, h-1); row++ {
			for col := max(c0, 0); col <= min(c1, w-1); col++ {
				cx := (float64(col) + 0.5) * sc.X
				cy := (float64(row) + 0.5) * sc.Y
				if (cx-b.X)*(cx-b.X)+(cy-b.Y)*(cy-b.Y) <= b.Radius*b.Radius {
					buf[row*w+col] = termbox.Cell{Ch: glyph, Fg: fg, Bg: termbox.ColorDefault}
					painted = true
				}
			}
		}
		if !painted {
			col, row := int(math.Floor(b.X/sc.X)), int(math.Floor(b.Y/sc.Y))
			if col >= 0 && col < w && row >= 0 && row < h {
				buf[row*w+col] = termbox.Cell{Ch: glyph, Fg: fg, Bg: termbox.ColorDefault}
			}
		}
	}
}

// drawStatus writes text on the bottom row, reversed, clipped to the width.
func drawStatus(buf []termbox.Cell, w, h int, text string) {
	if h == 0 {
		return
	}
	col := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if col+rw > w {
			break
		}
		buf[(h-1)*w+col] = termbox.Cell{Ch: r, Fg: termbox.ColorDefault | termbox.AttrReverse, Bg: termbox.ColorDefault}
		col += max(rw, 1)
	}
}

// rgbTo256 maps a colour onto the 6x6x6 cube of the 256 colour palette.
// In Output256 mode attribute n selects palette entry n-1.
func rgbTo256(r, g, b uint8) termbox.Attribute {
	level := func(c uint8) int {
		return (int(c)*5 + 127) / 255
	}
	idx := 16 + 36*level(r) + 6*level(g) + level(b)
	return termbox.Attribute(idx + 1)
}
