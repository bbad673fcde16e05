package register

import (
	"errors"
	"fmt"
)

// StackDepth is the number of nested subroutine calls the machine supports.
const StackDepth = 16

var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
)

// Stack is the bounded return address stack.
type Stack struct {
	values   []uint16
	capacity int
}

func NewStack(capacity int) *Stack {
	return &Stack{
		values:   make([]uint16, 0, capacity),
		capacity: capacity,
	}
}

// Push stores a return address. It fails once capacity entries are held.
func (s *Stack) Push(address uint16) error {
	if len(s.values) >= s.capacity {
		return fmt.Errorf("%w: %d entries, pushing 0x%04X", ErrStackOverflow, s.capacity, address)
	}
	s.values = append(s.values, address)
	return nil
}

// Pop removes and returns the most recently pushed address.
func (s *Stack) Pop() (uint16, error) {
	if len(s.values) == 0 {
		return 0, ErrStackUnderflow
	}
	top := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return top, nil
}

func (s *Stack) Size() int {
	return len(s.values)
}
