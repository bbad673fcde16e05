package cpu

// Display is the 64x32 surface instructions draw on.
type Display interface {
	Clear()
	IsPixelOn(x, y int) bool
	DrawPixel(x, y int, on bool)
	Render()
}

// Keypad reports the state of the 16 hex keys.
type Keypad interface {
	IsPressed(key uint8) bool
	// AnyPressed returns a held key, ok is false when none is held.
	AnyPressed() (key uint8, ok bool)
}

// Frontend is the window or terminal the machine runs in.
type Frontend interface {
	Display
	Keypad
	// Poll refreshes the input state once per cycle.
	Poll()
	// Closed reports whether the user asked to quit.
	Closed() bool
}

// Buzzer plays a tone while the sound timer is nonzero.
type Buzzer interface {
	Toggle(on bool)
}
