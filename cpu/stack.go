package cpu

const stackDepth = 16

// Stack is the Chip8 call stack: 16 return addresses and a pointer to the
// next free slot.
type Stack struct {
	slots [stackDepth]uint16
	sp    uint8
}

func (s *Stack) push(addr uint16) error {
	if int(s.sp) >= stackDepth {
		return ErrStackOverflow
	}
	s.slots[s.sp] = addr
	s.sp++
	return nil
}

func (s *Stack) pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.slots[s.sp], nil
}

// Depth returns the number of return addresses on the stack.
func (s *Stack) Depth() int {
	return int(s.sp)
}

// Addresses returns a copy of the used slots, oldest first.
func (s *Stack) Addresses() []uint16 {
	out := make([]uint16, s.sp)
	copy(out, s.slots[:s.sp])
	return out
}
