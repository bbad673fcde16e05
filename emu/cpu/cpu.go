// Package cpu implements the CHIP-8 instruction set, opcode decoder and the
// fixed-frequency cycle driver.
package cpu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chyp8/emu/memory"
	"chyp8/emu/register"
	"chyp8/emu/rom"

	"github.com/retroenv/retrogolib/log"
)

const DefaultFrequency = 500

var ErrInvalidFrequency = errors.New("frequency must be greater than zero")

// Config is fixed for the lifetime of a run.
type Config struct {
	// Frequency is the number of instructions executed per second.
	Frequency int
	Quirks    Quirks
}

// Option configures optional EMU collaborators.
type Option func(*EMU)

// WithBuzzer attaches a tone generator driven by the sound timer.
func WithBuzzer(b Buzzer) Option {
	return func(emu *EMU) {
		emu.buzzer = b
	}
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *log.Logger) Option {
	return func(emu *EMU) {
		emu.logger = logger
	}
}

// WithTrace logs every executed opcode at debug level.
func WithTrace(trace bool) Option {
	return func(emu *EMU) {
		emu.trace = trace
	}
}

// EMU owns one machine and steps it at a fixed frequency.
type EMU struct {
	memory       *memory.Memory
	registers    *register.File
	instructions *InstructionSet
	decoder      *Decoder
	frontend     Frontend
	buzzer       Buzzer
	logger       *log.Logger

	frequency int
	trace     bool
	buzzing   bool
	cycles    uint64
}

// NewEMU builds a machine with the font loaded and PC at the program start.
func NewEMU(cfg Config, frontend Frontend, opts ...Option) (*EMU, error) {
	if cfg.Frequency <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrequency, cfg.Frequency)
	}

	mem := memory.New()
	registers := register.NewFile(cfg.Frequency)
	instructions := NewInstructionSet(mem, registers, frontend, frontend, cfg.Quirks)

	emu := &EMU{
		memory:       mem,
		registers:    registers,
		instructions: instructions,
		decoder:      NewDecoder(mem, registers, instructions),
		frontend:     frontend,
		frequency:    cfg.Frequency,
	}
	for _, opt := range opts {
		opt(emu)
	}
	if emu.logger == nil {
		emu.logger = log.NewWithConfig(log.DefaultConfig())
	}
	return emu, nil
}

// LoadROM copies a program image into memory at the program start.
func (emu *EMU) LoadROM(program []byte) error {
	if len(program) > rom.MaxSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", rom.ErrTooLarge, len(program), rom.MaxSize)
	}
	if err := emu.memory.PokeBytes(memory.ProgramStart, program); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	emu.logger.Debug("ROM loaded", log.Int("size", len(program)))
	return nil
}

// Run steps the machine until the front-end closes, ctx is cancelled or an
// instruction fails. A closed front-end is not an error.
func (emu *EMU) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(emu.frequency)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer emu.toggleBuzzer(false)

	emu.logger.Info("Starting emulation", log.Int("frequency", emu.frequency))

	for {
		if emu.frontend.Closed() {
			emu.logger.Info("Front-end closed", log.String("cycles", fmt.Sprint(emu.cycles)))
			return nil
		}
		if err := emu.EmulateCycle(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// EmulateCycle runs one step: timers, buzzer, input, then one instruction.
func (emu *EMU) EmulateCycle() error {
	emu.registers.TriggerTimers()
	emu.toggleBuzzer(emu.registers.ST.Peek() > 0)
	emu.frontend.Poll()

	pc := emu.registers.PC.Peek()
	opcode, err := emu.decoder.Fetch()
	if err != nil {
		return err
	}
	emu.cycles++

	if emu.trace {
		emu.logger.Debug("Executing",
			log.String("pc", fmt.Sprintf("0x%04X", pc)),
			log.String("opcode", fmt.Sprintf("0x%04X", opcode)))
	}

	if err := emu.decoder.Decode(opcode); err != nil {
		return fmt.Errorf("executing 0x%04X at PC 0x%04X: %w", opcode, pc, err)
	}
	return nil
}

func (emu *EMU) toggleBuzzer(on bool) {
	if emu.buzzer == nil || on == emu.buzzing {
		return
	}
	emu.buzzing = on
	emu.buzzer.Toggle(on)
}

// Registers exposes the register file for inspection.
func (emu *EMU) Registers() *register.File {
	return emu.registers
}

// Memory exposes the address space for inspection.
func (emu *EMU) Memory() *memory.Memory {
	return emu.memory
}
