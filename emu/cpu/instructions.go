package cpu

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"chyp8/emu/display"
	"chyp8/emu/memory"
	"chyp8/emu/register"
)

const flag = 0xF

var ErrValueOutOfRange = errors.New("value out of range")

// InstructionSet implements the semantics of every CHIP-8 opcode on top of
// a single memory and register file it does not own.
type InstructionSet struct {
	memory    *memory.Memory
	registers *register.File
	display   Display
	keypad    Keypad
	quirks    Quirks
	rand      *rand.Rand
}

func NewInstructionSet(mem *memory.Memory, registers *register.File, d Display, k Keypad, quirks Quirks) *InstructionSet {
	return &InstructionSet{
		memory:    mem,
		registers: registers,
		display:   d,
		keypad:    k,
		quirks:    quirks,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (is *InstructionSet) v(x uint8) *register.Register[uint8] {
	return &is.registers.V[x]
}

func (is *InstructionSet) check(indices ...uint8) error {
	for _, n := range indices {
		if err := is.registers.CheckIndex(n); err != nil {
			return err
		}
	}
	return nil
}

func (is *InstructionSet) skipIf(cond bool) {
	if cond {
		is.registers.PC.Increment(2)
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// System is 0nnn, a call into host machine code. It is ignored.
func (is *InstructionSet) System(addr uint16) error {
	return nil
}

// ClearScreen is 00E0.
func (is *InstructionSet) ClearScreen() error {
	is.display.Clear()
	is.display.Render()
	return nil
}

// Return is 00EE.
func (is *InstructionSet) Return() error {
	addr, err := is.registers.Stack.Pop()
	if err != nil {
		return fmt.Errorf("return at PC 0x%04X: %w", is.registers.PC.Peek(), err)
	}
	is.registers.PC.Poke(addr)
	is.registers.SP.Decrement(1)
	return nil
}

// Jump is 1nnn.
func (is *InstructionSet) Jump(addr uint16) error {
	is.registers.PC.Poke(addr)
	return nil
}

// Call is 2nnn.
func (is *InstructionSet) Call(addr uint16) error {
	if err := is.registers.Stack.Push(is.registers.PC.Peek()); err != nil {
		return err
	}
	is.registers.SP.Increment(1)
	is.registers.PC.Poke(addr)
	return nil
}

// SkipEqualByte is 3xkk.
func (is *InstructionSet) SkipEqualByte(x, kk uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	is.skipIf(is.v(x).Peek() == kk)
	return nil
}

// SkipNotEqualByte is 4xkk.
func (is *InstructionSet) SkipNotEqualByte(x, kk uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	is.skipIf(is.v(x).Peek() != kk)
	return nil
}

// SkipEqual is 5xy0.
func (is *InstructionSet) SkipEqual(x, y uint8) error {
	if err := is.check(x, y); err != nil {
		return err
	}
	is.skipIf(is.v(x).Peek() == is.v(y).Peek())
	return nil
}

// LoadByte is 6xkk.
func (is *InstructionSet) LoadByte(x, kk uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	is.v(x).Poke(kk)
	return nil
}

// AddByte is 7xkk. VF is not affected.
func (is *InstructionSet) AddByte(x, kk uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	is.v(x).Increment(kk)
	return nil
}

// Move is 8xy0.
func (is *InstructionSet) Move(x, y uint8) error {
	if err := is.check(x, y); err != nil {
		return err
	}
	is.v(x).Poke(is.v(y).Peek())
	return nil
}

// Or is 8xy1.
func (is *InstructionSet) Or(x, y uint8) error {
	return is.logic(x, y, func(a, b uint8) uint8 { return a | b })
}

// And is 8xy2.
func (is *InstructionSet) And(x, y uint8) error {
	return is.logic(x, y, func(a, b uint8) uint8 { return a & b })
}

// Xor is 8xy3.
func (is *InstructionSet) Xor(x, y uint8) error {
	return is.logic(x, y, func(a, b uint8) uint8 { return a ^ b })
}

func (is *InstructionSet) logic(x, y uint8, op func(a, b uint8) uint8) error {
	if err := is.check(x, y); err != nil {
		return err
	}
	is.v(x).Poke(op(is.v(x).Peek(), is.v(y).Peek()))
	if is.quirks.LogicResetsVF {
		is.v(flag).Poke(0)
	}
	return nil
}

// Add is 8xy4. VF is the carry.
//
// The flag ops in this family write Vx before VF, so with x = F the flag
// is what remains in VF.
func (is *InstructionSet) Add(x, y uint8) error {
	if err := is.check(x, y); err != nil {
		return err
	}
	sum := uint16(is.v(x).Peek()) + uint16(is.v(y).Peek())
	is.v(x).Poke(uint8(sum))
	is.v(flag).Poke(boolToFlag(sum > 0xFF))
	return nil
}

// Sub is 8xy5. VF is set when no borrow occurs.
func (is *InstructionSet) Sub(x, y uint8) error {
	if err := is.check(x, y); err != nil {
		return err
	}
	a, b := is.v(x).Peek(), is.v(y).Peek()
	is.v(x).Poke(a - b)
	is.v(flag).Poke(boolToFlag(a > b))
	return nil
}

// ShiftRight is 8xy6. VF receives the bit shifted out.
func (is *InstructionSet) ShiftRight(x, y uint8) error {
	if err := is.check(x, y); err != nil {
		return err
	}
	if is.quirks.ShiftUsesVY {
		is.v(x).Poke(is.v(y).Peek())
	}
	value := is.v(x).Peek()
	is.v(x).Poke(value >> 1)
	is.v(flag).Poke(value & 0x1)
	return nil
}

// SubN is 8xy7, Vx = Vy - Vx.
func (is *InstructionSet) SubN(x, y uint8) error {
	if err := is.check(x, y); err != nil {
		return err
	}
	a, b := is.v(x).Peek(), is.v(y).Peek()
	is.v(x).Poke(b - a)
	is.v(flag).Poke(boolToFlag(b > a))
	return nil
}

// ShiftLeft is 8xyE. VF receives the bit shifted out.
func (is *InstructionSet) ShiftLeft(x, y uint8) error {
	if err := is.check(x, y); err != nil {
		return err
	}
	if is.quirks.ShiftUsesVY {
		is.v(x).Poke(is.v(y).Peek())
	}
	value := is.v(x).Peek()
	is.v(x).Poke(value << 1)
	is.v(flag).Poke(value >> 7)
	return nil
}

// SkipNotEqual is 9xy0.
func (is *InstructionSet) SkipNotEqual(x, y uint8) error {
	if err := is.check(x, y); err != nil {
		return err
	}
	is.skipIf(is.v(x).Peek() != is.v(y).Peek())
	return nil
}

// LoadIndex is Annn.
func (is *InstructionSet) LoadIndex(addr uint16) error {
	is.registers.I.Poke(addr)
	return nil
}

// JumpOffset is Bnnn, or Bxnn when the quirk is set.
func (is *InstructionSet) JumpOffset(addr uint16) error {
	var x uint8
	if is.quirks.JumpOffsetUsesVX {
		x = uint8(addr>>8) & 0xF
	}
	is.registers.PC.Poke(addr + uint16(is.v(x).Peek()))
	return nil
}

// Random is Cxkk.
func (is *InstructionSet) Random(x, kk uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	is.v(x).Poke(uint8(is.rand.Intn(256)) & kk)
	return nil
}

// Draw is Dxyn. It XORs an n-row sprite read from I onto the display at
// (Vx, Vy), wrapping around the edges, and sets VF on collision.
func (is *InstructionSet) Draw(x, y, n uint8) error {
	if err := is.check(x, y); err != nil {
		return err
	}
	originX := int(is.v(x).Peek()) % display.Width
	originY := int(is.v(y).Peek()) % display.Height
	base := is.registers.I.Peek()

	collision := false
	for row := 0; row < int(n); row++ {
		sprite, err := is.memory.Peek(base + uint16(row))
		if err != nil {
			return fmt.Errorf("sprite row %d: %w", row, err)
		}
		py := (originY + row) % display.Height
		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			px := (originX + col) % display.Width
			if is.display.IsPixelOn(px, py) {
				is.display.DrawPixel(px, py, false)
				collision = true
			} else {
				is.display.DrawPixel(px, py, true)
			}
		}
	}
	is.v(flag).Poke(boolToFlag(collision))
	is.display.Render()
	return nil
}

// SkipPressed is Ex9E.
func (is *InstructionSet) SkipPressed(x uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	is.skipIf(is.keypad.IsPressed(is.v(x).Peek()))
	return nil
}

// SkipNotPressed is ExA1.
func (is *InstructionSet) SkipNotPressed(x uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	is.skipIf(!is.keypad.IsPressed(is.v(x).Peek()))
	return nil
}

// LoadDelay is Fx07.
func (is *InstructionSet) LoadDelay(x uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	is.v(x).Poke(is.registers.DT.Peek())
	return nil
}

// WaitKey is Fx0A. Without a held key it rewinds PC so the instruction runs
// again next cycle.
func (is *InstructionSet) WaitKey(x uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	key, ok := is.keypad.AnyPressed()
	if !ok {
		is.registers.PC.Decrement(2)
		return nil
	}
	if key > 0xF {
		return fmt.Errorf("%w: key 0x%02X", ErrValueOutOfRange, key)
	}
	is.v(x).Poke(key)
	return nil
}

// SetDelay is Fx15.
func (is *InstructionSet) SetDelay(x uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	is.registers.DT.Poke(is.v(x).Peek())
	return nil
}

// SetSound is Fx18.
func (is *InstructionSet) SetSound(x uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	is.registers.ST.Poke(is.v(x).Peek())
	return nil
}

// AddIndex is Fx1E. VF is set when I leaves the 12-bit address space.
func (is *InstructionSet) AddIndex(x uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	sum := uint32(is.registers.I.Peek()) + uint32(is.v(x).Peek())
	is.registers.I.Poke(uint16(sum & memory.MaxAddress))
	is.v(flag).Poke(boolToFlag(sum > memory.MaxAddress))
	return nil
}

// LoadFont is Fx29, pointing I at the glyph for the low nibble of Vx.
func (is *InstructionSet) LoadFont(x uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	digit := uint16(is.v(x).Peek() & 0xF)
	is.registers.I.Poke(memory.FontAddress + digit*memory.GlyphSize)
	return nil
}

// StoreBCD is Fx33.
func (is *InstructionSet) StoreBCD(x uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	value := is.v(x).Peek()
	i := is.registers.I.Peek()
	digits := []uint8{value / 100, value / 10 % 10, value % 10}
	if err := is.memory.PokeBytes(i, digits); err != nil {
		return fmt.Errorf("storing BCD of V%X: %w", x, err)
	}
	return nil
}

// StoreRegisters is Fx55, writing V0..Vx to memory at I.
func (is *InstructionSet) StoreRegisters(x uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	i := is.registers.I.Peek()
	for n := uint8(0); n <= x; n++ {
		if err := is.memory.Poke(i+uint16(n), is.v(n).Peek()); err != nil {
			return fmt.Errorf("storing V%X: %w", n, err)
		}
	}
	if is.quirks.LoadStoreIncrementsI {
		is.registers.I.Increment(uint16(x) + 1)
	}
	return nil
}

// LoadRegisters is Fx65, reading V0..Vx from memory at I.
func (is *InstructionSet) LoadRegisters(x uint8) error {
	if err := is.check(x); err != nil {
		return err
	}
	i := is.registers.I.Peek()
	for n := uint8(0); n <= x; n++ {
		b, err := is.memory.Peek(i + uint16(n))
		if err != nil {
			return fmt.Errorf("loading V%X: %w", n, err)
		}
		is.v(n).Poke(b)
	}
	if is.quirks.LoadStoreIncrementsI {
		is.registers.I.Increment(uint16(x) + 1)
	}
	return nil
}
