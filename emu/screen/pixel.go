package screen

import (
	"chyp8/emu/display"

	"github.com/faiface/pixel"
	"golang.org/x/image/colornames"
)

var (
	background = colornames.Black
	foreground = colornames.White
)

// Render redraws every lit pixel and swaps buffers.
func (w *Window) Render() {
	w.imd.Clear()
	w.imd.Color = foreground

	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			if !w.IsPixelOn(x, y) {
				continue
			}
			lo, hi := w.pixelRect(x, y)
			w.imd.Push(lo, hi)
			w.imd.Rectangle(0)
		}
	}

	w.win.Clear(background)
	w.imd.Draw(w.win)
	w.win.Update()
}

// pixelRect returns the corners of a CHIP-8 pixel. pixel's origin is the
// bottom left corner, so rows are flipped.
func (w *Window) pixelRect(x, y int) (pixel.Vec, pixel.Vec) {
	left := float64(x) * w.scale
	bottom := float64(display.Height-1-y) * w.scale
	return pixel.V(left, bottom), pixel.V(left+w.scale, bottom+w.scale)
}
