package cpu

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"chyp8/emu/memory"

	"github.com/retroenv/retrogolib/assert"
)

func TestFromOpcode(t *testing.T) {
	tests := []struct {
		opcode uint16
		mask   uint16
		want   uint16
	}{
		{0x6789, MaskAddress, 0x789},
		{0x6789, MaskByte, 0x89},
		{0x6789, MaskFamily, 0x6},
		{0x6789, MaskX, 0x7},
		{0x6789, MaskY, 0x8},
		{0x6789, MaskNibble, 0x9},
		{0xFFFF, MaskAddress, 0xFFF},
		{0xFFFF, MaskByte, 0xFF},
		{0xFFFF, MaskFamily, 0xF},
		{0xFFFF, MaskX, 0xF},
		{0xFFFF, MaskY, 0xF},
		{0xFFFF, MaskNibble, 0xF},
		{0x0000, MaskAddress, 0x0},
		{0x0000, MaskFamily, 0x0},
	}

	for _, tt := range tests {
		got, err := FromOpcode(tt.opcode, tt.mask)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	for _, mask := range []uint16{0xFFFF, 0xF00F, 0x0000, 0xFF00, 0x0F0F, 0xF0F0} {
		_, err := FromOpcode(0x6789, mask)
		assert.True(t, errors.Is(err, ErrInvalidMask))
	}
}

func TestFetch(t *testing.T) {
	emu, _ := newTestEMU(t, Quirks{})
	assert.NoError(t, emu.LoadROM([]uint8{0xAB, 0xCD}))

	opcode, err := emu.decoder.Fetch()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xABCD), opcode)
	assert.Equal(t, uint16(0x202), emu.registers.PC.Peek())

	emu.registers.PC.Poke(memory.MaxAddress)
	_, err = emu.decoder.Fetch()
	assert.True(t, errors.Is(err, memory.ErrAddressOutOfRange))
	assert.Equal(t, uint16(memory.MaxAddress), emu.registers.PC.Peek())
}

func TestDecodeUnknownOpcode(t *testing.T) {
	emu, _ := newTestEMU(t, Quirks{})

	for _, opcode := range []uint16{0x5121, 0x8008, 0x800F, 0x9001, 0xE000, 0xE19F, 0xF0FF, 0xF166} {
		err := emu.decoder.Decode(opcode)
		assert.True(t, errors.Is(err, ErrUnknownOpcode))
		assert.True(t, strings.Contains(err.Error(), fmt.Sprintf("0x%04X", opcode)))
	}
}

func TestSystemIsIgnored(t *testing.T) {
	emu, frontend := newTestEMU(t, Quirks{})
	frontend.DrawPixel(3, 3, true)

	mustStep(t, emu, 0x0123)
	assert.Equal(t, uint16(0x202), emu.registers.PC.Peek())
	assert.True(t, frontend.IsPixelOn(3, 3))
}
