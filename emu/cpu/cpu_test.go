package cpu

import (
	"context"
	"errors"
	"testing"

	"chyp8/emu/rom"

	"github.com/retroenv/retrogolib/assert"
)

func TestNewEMU(t *testing.T) {
	for _, frequency := range []int{0, -60} {
		_, err := NewEMU(Config{Frequency: frequency}, &headless{})
		assert.True(t, errors.Is(err, ErrInvalidFrequency))
	}

	emu, _ := newTestEMU(t, Quirks{})
	assert.Equal(t, uint16(0x200), emu.Registers().PC.Peek())
	b, err := emu.Memory().Peek(0)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xF0), b)
}

func TestLoadROM(t *testing.T) {
	emu, _ := newTestEMU(t, Quirks{})

	assert.NoError(t, emu.LoadROM(make([]byte, rom.MaxSize)))

	err := emu.LoadROM(make([]byte, rom.MaxSize+1))
	assert.True(t, errors.Is(err, rom.ErrTooLarge))
}

func TestRunStopsWhenClosed(t *testing.T) {
	emu, frontend := newTestEMU(t, Quirks{})
	frontend.closeAt = 3
	assert.NoError(t, emu.LoadROM([]uint8{0x12, 0x00}))

	assert.NoError(t, emu.Run(context.Background()))
	assert.Equal(t, 3, frontend.polls)
	assert.Equal(t, uint16(0x200), emu.registers.PC.Peek())
}

func TestRunStopsOnCancel(t *testing.T) {
	emu, _ := newTestEMU(t, Quirks{})
	assert.NoError(t, emu.LoadROM([]uint8{0x12, 0x00}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := emu.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunReportsFatalError(t *testing.T) {
	emu, _ := newTestEMU(t, Quirks{})
	assert.NoError(t, emu.LoadROM([]uint8{0x60, 0x01, 0xFF, 0xFF}))

	err := emu.Run(context.Background())
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
	assert.Equal(t, uint8(1), emu.registers.V[0].Peek())
}

func TestBuzzerFollowsSoundTimer(t *testing.T) {
	buzzer := &toggleRecorder{}
	emu, _ := newTestEMU(t, Quirks{}, WithBuzzer(buzzer))
	// V0 = 2, ST = V0, then spin.
	assert.NoError(t, emu.LoadROM([]uint8{0x60, 0x02, 0xF0, 0x18, 0x12, 0x04}))

	// 500 Hz decrements the timers every 8 cycles.
	for i := 0; i < 30; i++ {
		assert.NoError(t, emu.EmulateCycle())
	}
	assert.Equal(t, uint8(0), emu.registers.ST.Peek())
	assert.Equal(t, []bool{true, false}, buzzer.states)
}
