package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned when a CALL is executed with all 16 stack slots in use.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned when a RET is executed on an empty stack.
	ErrStackUnderflow = errors.New("call stack underflow")
	// ErrProgramTooLarge is returned by Load when a program does not fit between 0x200 and 0xFFF.
	ErrProgramTooLarge = errors.New("program too large")
)

// UnimplementedOpcodeError reports an instruction word the interpreter
// does not execute, together with where it was found.
type UnimplementedOpcodeError struct {
	Address uint16
	Bytes   [2]byte
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode 0x%02X%02X at address 0x%04X", e.Bytes[0], e.Bytes[1], e.Address)
}

// AddressError reports an access outside of the 4096 byte address space.
type AddressError struct {
	Address uint16
	// Access names the operation, eg "fetch" or "sprite read".
	Access string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s out of range at address 0x%04X", e.Access, e.Address)
}
