// Package term is a tcell front-end that draws the display with half-block
// characters, two CHIP-8 rows per terminal row.
package term

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"chyp8/emu/display"

	"github.com/gdamore/tcell"
)

// Terminals only report key presses, so a key counts as held for this long
// after its last press or auto-repeat.
const keyRepeatDuration = time.Second / 5

// Terminal implements cpu.Frontend on a tcell screen.
type Terminal struct {
	display.Frame
	display.Keys

	screen tcell.Screen
	style  tcell.Style
	closed atomic.Bool
	now    func() time.Time

	mu     sync.Mutex
	held   [16]time.Time
	keyMap map[rune]uint8
}

// New opens the controlling terminal.
func New() (*Terminal, error) {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	return newTerminal(s)
}

func newTerminal(s tcell.Screen) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal screen: %w", err)
	}
	s.HideCursor()
	s.DisableMouse()
	s.Clear()

	t := &Terminal{
		screen: s,
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		now:    time.Now,
		keyMap: make(map[rune]uint8, len(display.QWERTY)),
	}
	for i, r := range display.QWERTY {
		t.keyMap[r] = display.ScanOrder[i]
	}

	go t.pollEvents()
	return t, nil
}

func (t *Terminal) pollEvents() {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				t.closed.Store(true)
			case tcell.KeyRune:
				t.press(ev.Rune())
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Terminal) press(r rune) {
	key, ok := t.keyMap[unicode.ToLower(r)]
	if !ok {
		return
	}
	t.mu.Lock()
	t.held[key] = t.now()
	t.mu.Unlock()
}

// Poll snapshots which keys are held for the coming cycle.
func (t *Terminal) Poll() {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()
	for key, at := range t.held {
		held := !at.IsZero() && now.Sub(at) < keyRepeatDuration
		t.Set(uint8(key), held)
	}
}

func (t *Terminal) Closed() bool {
	return t.closed.Load()
}

// Render draws the frame and shows it.
func (t *Terminal) Render() {
	for y := 0; y < display.Height; y += 2 {
		for x := 0; x < display.Width; x++ {
			t.screen.SetContent(x, y/2, cell(t.IsPixelOn(x, y), t.IsPixelOn(x, y+1)), nil, t.style)
		}
	}
	t.screen.Show()
}

func cell(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}
