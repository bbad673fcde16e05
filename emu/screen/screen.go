// Package screen is the pixelgl window front-end.
package screen

import (
	"fmt"

	"chyp8/emu/display"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
)

// DefaultScale is the size in screen pixels of one CHIP-8 pixel.
const DefaultScale = 10

// buttons holds the QWERTY keys in display.ScanOrder.
var buttons = [16]pixelgl.Button{
	pixelgl.Key1, pixelgl.Key2, pixelgl.Key3, pixelgl.Key4,
	pixelgl.KeyQ, pixelgl.KeyW, pixelgl.KeyE, pixelgl.KeyR,
	pixelgl.KeyA, pixelgl.KeyS, pixelgl.KeyD, pixelgl.KeyF,
	pixelgl.KeyZ, pixelgl.KeyX, pixelgl.KeyC, pixelgl.KeyV,
}

// Window renders the display into an OpenGL window and reads the keypad
// from the keyboard. All methods must be called from the function passed
// to Run.
type Window struct {
	display.Frame
	display.Keys

	win    *pixelgl.Window
	imd    *imdraw.IMDraw
	keyMap map[uint8]pixelgl.Button
	scale  float64
}

// Run hands the main OS thread to pixelgl and calls f on it.
func Run(f func()) {
	pixelgl.Run(f)
}

func NewWindow(scale float64) (*Window, error) {
	if scale <= 0 {
		scale = DefaultScale
	}
	cfg := pixelgl.WindowConfig{
		Title:  "Chyp8",
		Bounds: pixel.R(0, 0, display.Width*scale, display.Height*scale),
		VSync:  false,
	}

	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w := &Window{
		win:    win,
		imd:    imdraw.New(nil),
		keyMap: make(map[uint8]pixelgl.Button, len(buttons)),
		scale:  scale,
	}
	for i, key := range display.ScanOrder {
		w.keyMap[key] = buttons[i]
	}
	w.Render()
	return w, nil
}

// Poll refreshes the keyboard state. Escape closes the window.
func (w *Window) Poll() {
	w.win.UpdateInput()
	for key, button := range w.keyMap {
		w.Set(key, w.win.Pressed(button))
	}
	if w.win.JustPressed(pixelgl.KeyEscape) {
		w.win.SetClosed(true)
	}
}

func (w *Window) Closed() bool {
	return w.win.Closed()
}

func (w *Window) Destroy() {
	w.win.Destroy()
}
