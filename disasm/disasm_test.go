package disasm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMnemonic(t *testing.T) {
	name, ok := Mnemonic(0x00ee)
	assert.True(t, ok)
	assert.Equal(t, "ret", name)

	name, ok = Mnemonic(0x2345)
	assert.True(t, ok)
	assert.Equal(t, "call", name)

	_, ok = Mnemonic(0xffff)
	assert.False(t, ok)
}

func TestLine(t *testing.T) {
	tests := []struct {
		name    string
		address uint16
		word    uint16
		want    string
	}{
		{"register load", 0x200, 0x6a02, "0200: 6A02  ld VA, 0x02"},
		{"no operands", 0x202, 0x00ee, "0202: 00EE  ret"},
		{"draw", 0x204, 0xd125, "0204: D125  drw V1, V2, 5"},
		{"data", 0x206, 0xffff, "0206: FFFF  dw 0xFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line(tt.address, tt.word))
		})
	}
}

func TestProgram(t *testing.T) {
	lines := Program([]byte{0x12, 0x00, 0xa2, 0x2a, 0x07})

	assert.Equal(t, []string{
		"0200: 1200  jp 0x200",
		"0202: A22A  ld I, 0x22A",
		"0204: 07    db 0x07",
	}, lines)
}

func TestProgram_Empty(t *testing.T) {
	assert.Empty(t, Program(nil))
}
