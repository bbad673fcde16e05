package cpu

import (
	"errors"
	"fmt"
	"math/bits"

	"chyp8/emu/memory"
	"chyp8/emu/register"
)

// Operand masks understood by FromOpcode.
const (
	MaskFamily  = 0xF000
	MaskAddress = 0x0FFF
	MaskByte    = 0x00FF
	MaskX       = 0x0F00
	MaskY       = 0x00F0
	MaskNibble  = 0x000F
)

var (
	ErrUnknownOpcode = errors.New("unknown opcode")
	ErrInvalidMask   = errors.New("invalid opcode mask")
)

// FromOpcode extracts the field selected by mask, shifted down to bit 0.
func FromOpcode(opcode, mask uint16) (uint16, error) {
	switch mask {
	case MaskFamily, MaskAddress, MaskByte, MaskX, MaskY, MaskNibble:
	default:
		return 0, fmt.Errorf("%w: 0x%04X", ErrInvalidMask, mask)
	}
	return (opcode & mask) >> bits.TrailingZeros16(mask), nil
}

// operands is an opcode split into every field at once. The masks are
// constant and valid, so extraction cannot fail.
type operands struct {
	family uint8
	addr   uint16
	kk     uint8
	x      uint8
	y      uint8
	n      uint8
}

func split(opcode uint16) operands {
	field := func(mask uint16) uint16 {
		v, _ := FromOpcode(opcode, mask)
		return v
	}
	return operands{
		family: uint8(field(MaskFamily)),
		addr:   field(MaskAddress),
		kk:     uint8(field(MaskByte)),
		x:      uint8(field(MaskX)),
		y:      uint8(field(MaskY)),
		n:      uint8(field(MaskNibble)),
	}
}

// Decoder fetches opcodes at PC and dispatches them to the instruction set.
type Decoder struct {
	memory       *memory.Memory
	registers    *register.File
	instructions *InstructionSet
}

func NewDecoder(mem *memory.Memory, registers *register.File, instructions *InstructionSet) *Decoder {
	return &Decoder{
		memory:       mem,
		registers:    registers,
		instructions: instructions,
	}
}

// Fetch reads the big-endian opcode at PC and advances PC past it.
func (d *Decoder) Fetch() (uint16, error) {
	pc := d.registers.PC.Peek()
	hi, err := d.memory.Peek(pc)
	if err != nil {
		return 0, fmt.Errorf("fetching at PC 0x%04X: %w", pc, err)
	}
	lo, err := d.memory.Peek(pc + 1)
	if err != nil {
		return 0, fmt.Errorf("fetching at PC 0x%04X: %w", pc, err)
	}
	d.registers.PC.Increment(2)
	return uint16(hi)<<8 | uint16(lo), nil
}

// Decode executes opcode.
func (d *Decoder) Decode(opcode uint16) error {
	is := d.instructions
	op := split(opcode)

	switch op.family {
	case 0x0:
		switch opcode {
		case 0x00E0:
			return is.ClearScreen()
		case 0x00EE:
			return is.Return()
		default:
			return is.System(op.addr)
		}
	case 0x1:
		return is.Jump(op.addr)
	case 0x2:
		return is.Call(op.addr)
	case 0x3:
		return is.SkipEqualByte(op.x, op.kk)
	case 0x4:
		return is.SkipNotEqualByte(op.x, op.kk)
	case 0x5:
		if op.n == 0x0 {
			return is.SkipEqual(op.x, op.y)
		}
	case 0x6:
		return is.LoadByte(op.x, op.kk)
	case 0x7:
		return is.AddByte(op.x, op.kk)
	case 0x8:
		switch op.n {
		case 0x0:
			return is.Move(op.x, op.y)
		case 0x1:
			return is.Or(op.x, op.y)
		case 0x2:
			return is.And(op.x, op.y)
		case 0x3:
			return is.Xor(op.x, op.y)
		case 0x4:
			return is.Add(op.x, op.y)
		case 0x5:
			return is.Sub(op.x, op.y)
		case 0x6:
			return is.ShiftRight(op.x, op.y)
		case 0x7:
			return is.SubN(op.x, op.y)
		case 0xE:
			return is.ShiftLeft(op.x, op.y)
		}
	case 0x9:
		if op.n == 0x0 {
			return is.SkipNotEqual(op.x, op.y)
		}
	case 0xA:
		return is.LoadIndex(op.addr)
	case 0xB:
		return is.JumpOffset(op.addr)
	case 0xC:
		return is.Random(op.x, op.kk)
	case 0xD:
		return is.Draw(op.x, op.y, op.n)
	case 0xE:
		switch op.kk {
		case 0x9E:
			return is.SkipPressed(op.x)
		case 0xA1:
			return is.SkipNotPressed(op.x)
		}
	case 0xF:
		switch op.kk {
		case 0x07:
			return is.LoadDelay(op.x)
		case 0x0A:
			return is.WaitKey(op.x)
		case 0x15:
			return is.SetDelay(op.x)
		case 0x18:
			return is.SetSound(op.x)
		case 0x1E:
			return is.AddIndex(op.x)
		case 0x29:
			return is.LoadFont(op.x)
		case 0x33:
			return is.StoreBCD(op.x)
		case 0x55:
			return is.StoreRegisters(op.x)
		case 0x65:
			return is.LoadRegisters(op.x)
		}
	}

	return fmt.Errorf("%w: 0x%04X", ErrUnknownOpcode, opcode)
}
