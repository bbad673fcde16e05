package memory

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	m := New()

	for addr := uint16(0); addr < uint16(len(Font)); addr++ {
		b, err := m.Peek(addr)
		assert.NoError(t, err)
		assert.Equal(t, Font[addr], b)
	}
	for addr := uint16(len(Font)); addr <= MaxAddress; addr++ {
		b, err := m.Peek(addr)
		assert.NoError(t, err)
		assert.Equal(t, uint8(0), b)
	}
}

func TestPeekPoke(t *testing.T) {
	m := New()

	tests := []struct {
		name    string
		address uint16
		value   uint8
		err     bool
	}{
		{"program start", ProgramStart, 0xAB, false},
		{"last address", MaxAddress, 0xFF, false},
		{"font overwrite", 0x000, 0x12, false},
		{"one past the end", Size, 0x01, true},
		{"far out of range", 0xFFFF, 0x01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Poke(tt.address, tt.value)
			if tt.err {
				assert.True(t, errors.Is(err, ErrAddressOutOfRange))
				_, err = m.Peek(tt.address)
				assert.True(t, errors.Is(err, ErrAddressOutOfRange))
				return
			}
			assert.NoError(t, err)
			b, err := m.Peek(tt.address)
			assert.NoError(t, err)
			assert.Equal(t, tt.value, b)
		})
	}
}

func TestPokeBytes(t *testing.T) {
	m := New()

	assert.NoError(t, m.PokeBytes(ProgramStart, []uint8{0x00, 0xE0, 0x12, 0x00}))
	for i, want := range []uint8{0x00, 0xE0, 0x12, 0x00} {
		b, err := m.Peek(ProgramStart + uint16(i))
		assert.NoError(t, err)
		assert.Equal(t, want, b)
	}

	err := m.PokeBytes(MaxAddress-1, []uint8{1, 2, 3})
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
	b, err := m.Peek(MaxAddress)
	assert.NoError(t, err)
	assert.Equal(t, uint8(2), b)
}
