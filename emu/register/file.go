package register

import (
	"errors"
	"fmt"

	"chyp8/emu/memory"
)

// TimerFrequency is the fixed rate in Hz at which DT and ST count down.
const TimerFrequency = 60

var ErrRegisterOutOfRange = errors.New("register index out of range")

// File is the complete register state of the machine.
type File struct {
	V  [16]Register[uint8] // VF doubles as carry, borrow and collision flag
	I  Register[uint16]
	DT Register[uint8]
	ST Register[uint8]
	PC Register[uint16]
	SP Register[uint8]

	Stack *Stack

	counter  int
	interval int
}

// NewFile returns a zeroed register file with PC at the program start.
// frequency is the instruction rate in Hz, used to derive the timer cadence.
func NewFile(frequency int) *File {
	f := &File{
		Stack:    NewStack(StackDepth),
		interval: frequency / TimerFrequency,
	}
	if f.interval < 1 {
		f.interval = 1
	}
	f.PC.Poke(memory.ProgramStart)
	return f
}

// TriggerTimers is called once per cycle and decrements DT and ST every
// frequency/60 calls.
func (f *File) TriggerTimers() {
	f.counter++
	if f.counter < f.interval {
		return
	}
	f.counter = 0

	if f.DT.Peek() > 0 {
		f.DT.Decrement(1)
	}
	if f.ST.Peek() > 0 {
		f.ST.Decrement(1)
	}
}

// CheckIndex reports whether n names one of V0..VF.
func (f *File) CheckIndex(n uint8) error {
	if int(n) >= len(f.V) {
		return fmt.Errorf("%w: V%X", ErrRegisterOutOfRange, n)
	}
	return nil
}
