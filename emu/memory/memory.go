// Package memory implements the 4 KiB CHIP-8 address space.
package memory

import (
	"errors"
	"fmt"
)

const (
	Size       = 0x1000
	MaxAddress = Size - 1

	// FontAddress is where the hexadecimal glyphs live; each glyph is GlyphSize bytes tall.
	FontAddress = 0x000
	GlyphSize   = 5

	// ProgramStart is where ROM images are loaded and where execution begins.
	ProgramStart = 0x200
)

var ErrAddressOutOfRange = errors.New("memory address out of range")

// Font holds the 16 built-in glyphs 0-F, one bit per pixel, MSB leftmost.
var Font = [80]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat byte-addressable store. Every access is bounds checked.
type Memory struct {
	cells [Size]uint8
}

// New returns zeroed memory with the font table written at FontAddress.
func New() *Memory {
	m := &Memory{}
	m.loadFont()
	return m
}

func (m *Memory) loadFont() {
	for i, b := range Font {
		m.cells[FontAddress+i] = b
	}
}

// Peek returns the byte stored at address.
func (m *Memory) Peek(address uint16) (uint8, error) {
	if err := validate(address); err != nil {
		return 0, err
	}
	return m.cells[address], nil
}

// Poke stores value at address.
func (m *Memory) Poke(address uint16, value uint8) error {
	if err := validate(address); err != nil {
		return err
	}
	m.cells[address] = value
	return nil
}

// PokeBytes writes values contiguously starting at address. Bytes before the
// first invalid address are written.
func (m *Memory) PokeBytes(address uint16, values []uint8) error {
	for i, v := range values {
		next := int(address) + i
		if next > MaxAddress {
			return fmt.Errorf("%w: 0x%X", ErrAddressOutOfRange, next)
		}
		if err := m.Poke(uint16(next), v); err != nil {
			return err
		}
	}
	return nil
}

func validate(address uint16) error {
	if address > MaxAddress {
		return fmt.Errorf("%w: 0x%04X", ErrAddressOutOfRange, address)
	}
	return nil
}
