package cpu

import "errors"

// StackSize is the maximum call depth.
const StackSize = 16

var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
)

// Stack holds return addresses of subroutine calls.
type Stack struct {
	entries [StackSize]uint16
	sp      int
}

// Push stores a return address.
func (s *Stack) Push(addr uint16) error {
	if s.sp >= StackSize {
		return ErrStackOverflow
	}
	s.entries[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the most recent return address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Len returns the number of return addresses held.
func (s *Stack) Len() int {
	return s.sp
}

func (s *Stack) Reset() {
	s.sp = 0
	clear(s.entries[:])
}
