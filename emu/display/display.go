// Package display holds the 64x32 monochrome frame and the 16-key keypad
// state shared by the front-ends.
package display

const (
	Width  = 64
	Height = 32
)

// Frame is the display memory. Coordinates must already be wrapped.
type Frame struct {
	pixels [Width * Height]bool
}

func (f *Frame) Clear() {
	f.pixels = [Width * Height]bool{}
}

func (f *Frame) IsPixelOn(x, y int) bool {
	return f.pixels[y*Width+x]
}

func (f *Frame) DrawPixel(x, y int, on bool) {
	f.pixels[y*Width+x] = on
}

// Render is a no-op for a bare frame; front-ends override it.
func (f *Frame) Render() {}

// Lit returns the number of pixels currently on.
func (f *Frame) Lit() int {
	n := 0
	for _, on := range f.pixels {
		if on {
			n++
		}
	}
	return n
}
