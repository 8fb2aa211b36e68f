package vm

import "errors"

// Fatal precondition violations. The operation that returns one of these
// errors does not modify the machine state.
var (
	ErrProgramTooLarge = errors.New("program too large for memory")
	ErrStackOverflow   = errors.New("call stack overflow")
	ErrStackUnderflow  = errors.New("call stack underflow")
)
