package cpu

import "fmt"

const (
	memorySize = 4096
	// highestMemoryAddress is the last addressable byte.
	highestMemoryAddress uint16 = 0xFFF
	// ProgramAddress is where programs are loaded and where execution starts.
	ProgramAddress uint16 = 0x200
	// FontAddress is where the 16 hex digit glyphs live.
	FontAddress uint16 = 0x050
	// MaxProgramSize is the largest program that fits between ProgramAddress and the end of memory.
	MaxProgramSize = memorySize - int(ProgramAddress)

	glyphSize = 5
)

var fontSpriteData = [16 * glyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4K byte store of the Chip8: interpreter font data
// below 0x200, the loaded program from 0x200 upwards.
//
// All accessors check the address against the end of memory and return an
// *AddressError instead of wrapping around, a runaway I or pc is a broken
// program and not something to paper over.
type Memory [memorySize]byte

// reset zeroes the memory and seeds the font glyphs.
func (m *Memory) reset() {
	*m = Memory{}
	copy(m[FontAddress:], fontSpriteData[:])
}

// load copies a program verbatim to ProgramAddress.
func (m *Memory) load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, at most %d fit", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(m[ProgramAddress:], program)
	return nil
}

// Read returns the byte at addr.
func (m *Memory) Read(addr uint16, access string) (byte, error) {
	if addr > highestMemoryAddress {
		return 0, &AddressError{Address: addr, Access: access}
	}
	return m[addr], nil
}

// Slice returns the n bytes starting at addr. The returned slice aliases the memory.
func (m *Memory) Slice(addr, n uint16, access string) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	end := uint32(addr) + uint32(n) - 1
	if end > uint32(highestMemoryAddress) {
		return nil, &AddressError{Address: uint16(end), Access: access}
	}
	return m[addr : uint32(addr)+uint32(n)], nil
}
