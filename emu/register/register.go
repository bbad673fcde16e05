// Package register holds the CHIP-8 register file, call stack and timers.
package register

// Register is a single fixed-width register. Arithmetic wraps at the width of T.
type Register[T uint8 | uint16] struct {
	value T
}

func (r *Register[T]) Peek() T {
	return r.value
}

func (r *Register[T]) Poke(value T) {
	r.value = value
}

func (r *Register[T]) Increment(step T) {
	r.value += step
}

func (r *Register[T]) Decrement(step T) {
	r.value -= step
}
