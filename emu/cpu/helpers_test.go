package cpu

import (
	"testing"

	"chyp8/emu/display"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type headless struct {
	display.Frame
	display.Keys

	renders int
	polls   int
	closeAt int
	closed  bool
}

func (h *headless) Render() {
	h.renders++
}

func (h *headless) Poll() {
	h.polls++
	if h.closeAt > 0 && h.polls >= h.closeAt {
		h.closed = true
	}
}

func (h *headless) Closed() bool {
	return h.closed
}

type toggleRecorder struct {
	states []bool
}

func (r *toggleRecorder) Toggle(on bool) {
	r.states = append(r.states, on)
}

func newTestEMU(t *testing.T, quirks Quirks, opts ...Option) (*EMU, *headless) {
	t.Helper()

	cfg := log.DefaultConfig()
	cfg.Level = log.ErrorLevel
	opts = append([]Option{WithLogger(log.NewWithConfig(cfg))}, opts...)

	frontend := &headless{}
	emu, err := NewEMU(Config{Frequency: DefaultFrequency, Quirks: quirks}, frontend, opts...)
	assert.NoError(t, err)
	return emu, frontend
}

// step places opcode at PC and runs one full cycle.
func step(t *testing.T, emu *EMU, opcode uint16) error {
	t.Helper()

	pc := emu.registers.PC.Peek()
	assert.NoError(t, emu.memory.PokeBytes(pc, []uint8{uint8(opcode >> 8), uint8(opcode)}))
	return emu.EmulateCycle()
}

func mustStep(t *testing.T, emu *EMU, opcodes ...uint16) {
	t.Helper()

	for _, op := range opcodes {
		assert.NoError(t, step(t, emu, op))
	}
}
