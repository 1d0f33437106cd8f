// Package disasm lists Chip-8 programs in assembler syntax.
package disasm

import (
	"fmt"
	"strings"

	"github.com/mpingram/chip8vm/cpu"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic returns the instruction name of the word from the retrogolib
// Chip-8 opcode table, or false if the word is not an instruction.
func Mnemonic(word uint16) (string, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name, true
		}
	}
	return "", false
}

// Line formats a single instruction word found at address, eg
// "0200: 6A02  ld VA, 0x02". Words that are not instructions are shown
// as data.
func Line(address, word uint16) string {
	name, ok := Mnemonic(word)
	if !ok {
		return fmt.Sprintf("%04X: %04X  dw 0x%04X", address, word, word)
	}

	// the operand formatting comes from the interpreter decoder, the
	// mnemonic from the opcode table
	text := cpu.Decode(word).String()
	if i := strings.IndexByte(text, ' '); i >= 0 {
		return fmt.Sprintf("%04X: %04X  %s%s", address, word, strings.ToLower(name), text[i:])
	}
	return fmt.Sprintf("%04X: %04X  %s", address, word, strings.ToLower(name))
}

// Program lists a program that is loaded at cpu.ProgramAddress, one line
// per instruction word. A trailing odd byte is listed as a data byte.
func Program(program []byte) []string {
	lines := make([]string, 0, len(program)/2+1)
	address := cpu.ProgramAddress
	for i := 0; i+1 < len(program); i += 2 {
		word := uint16(program[i])<<8 | uint16(program[i+1])
		lines = append(lines, Line(address, word))
		address += 2
	}
	if len(program)%2 == 1 {
		b := program[len(program)-1]
		lines = append(lines, fmt.Sprintf("%04X: %02X    db 0x%02X", address, b, b))
	}
	return lines
}
