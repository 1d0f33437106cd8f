package cpu

import "fmt"

// Kind identifies the operation an instruction word decodes to.
type Kind uint8

const (
	KindUnknown Kind = iota
	ClearScreen
	Return
	Jump
	Call
	SkipEqualImmediate
	SkipNotEqualImmediate
	SkipEqualRegister
	LoadImmediate
	AddImmediate
	Move
	Or
	And
	Xor
	AddRegister
	SubRegister
	ShiftRight
	SubReverse
	ShiftLeft
	SkipNotEqualRegister
	SetIndex
	JumpOffset
	Random
	Draw
	SkipKeyDown
	SkipKeyUp
	LoadDelay
	WaitKey
	SetDelay
	SetSound
	AddIndex
	LoadFont
	StoreBCD
	StoreRegisters
	LoadRegisters

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:           "???",
	ClearScreen:           "CLS",
	Return:                "RET",
	Jump:                  "JP",
	Call:                  "CALL",
	SkipEqualImmediate:    "SE",
	SkipNotEqualImmediate: "SNE",
	SkipEqualRegister:     "SE",
	LoadImmediate:         "LD",
	AddImmediate:          "ADD",
	Move:                  "LD",
	Or:                    "OR",
	And:                   "AND",
	Xor:                   "XOR",
	AddRegister:           "ADD",
	SubRegister:           "SUB",
	ShiftRight:            "SHR",
	SubReverse:            "SUBN",
	ShiftLeft:             "SHL",
	SkipNotEqualRegister:  "SNE",
	SetIndex:              "LD",
	JumpOffset:            "JP",
	Random:                "RND",
	Draw:                  "DRW",
	SkipKeyDown:           "SKP",
	SkipKeyUp:             "SKNP",
	LoadDelay:             "LD",
	WaitKey:               "LD",
	SetDelay:              "LD",
	SetSound:              "LD",
	AddIndex:              "ADD",
	LoadFont:              "LD",
	StoreBCD:              "LD",
	StoreRegisters:        "LD",
	LoadRegisters:         "LD",
}

// String returns the assembler mnemonic of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Instruction is a decoded instruction word.
//
// key:
// ------
// nnn - low 12 bits of the word
// n - low 4 bits of the word
// x - low 4 bits of the word's high byte
// y - high 4 bits of the word's low byte
// kk - the word's low byte
type Instruction struct {
	Kind Kind
	Word uint16
	X    uint8
	Y    uint8
	N    uint8
	KK   uint8
	NNN  uint16
}

// Decode splits an instruction word into its operand fields and resolves
// which operation it encodes. Words that do not encode a Chip8 instruction
// decode to KindUnknown.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		X:    uint8(word >> 8 & 0x0f),
		Y:    uint8(word >> 4 & 0x0f),
		N:    uint8(word & 0x000f),
		KK:   uint8(word & 0x00ff),
		NNN:  word & 0x0fff,
	}
	ins.Kind = decodeKind(word, ins.N, ins.KK)
	return ins
}

func decodeKind(word uint16, n, kk uint8) Kind {
	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00e0:
			return ClearScreen
		case 0x00ee:
			return Return
		}
	case 0x1:
		return Jump
	case 0x2:
		return Call
	case 0x3:
		return SkipEqualImmediate
	case 0x4:
		return SkipNotEqualImmediate
	case 0x5:
		if n == 0 {
			return SkipEqualRegister
		}
	case 0x6:
		return LoadImmediate
	case 0x7:
		return AddImmediate
	case 0x8:
		switch n {
		case 0x0:
			return Move
		case 0x1:
			return Or
		case 0x2:
			return And
		case 0x3:
			return Xor
		case 0x4:
			return AddRegister
		case 0x5:
			return SubRegister
		case 0x6:
			return ShiftRight
		case 0x7:
			return SubReverse
		case 0xe:
			return ShiftLeft
		}
	case 0x9:
		if n == 0 {
			return SkipNotEqualRegister
		}
	case 0xa:
		return SetIndex
	case 0xb:
		return JumpOffset
	case 0xc:
		return Random
	case 0xd:
		return Draw
	case 0xe:
		switch kk {
		case 0x9e:
			return SkipKeyDown
		case 0xa1:
			return SkipKeyUp
		}
	case 0xf:
		switch kk {
		case 0x07:
			return LoadDelay
		case 0x0a:
			return WaitKey
		case 0x15:
			return SetDelay
		case 0x18:
			return SetSound
		case 0x1e:
			return AddIndex
		case 0x29:
			return LoadFont
		case 0x33:
			return StoreBCD
		case 0x55:
			return StoreRegisters
		case 0x65:
			return LoadRegisters
		}
	}
	return KindUnknown
}

// String formats the instruction in assembler syntax, eg "DRW V1, V2, 5".
func (ins Instruction) String() string {
	m := ins.Kind.String()
	switch ins.Kind {
	case ClearScreen, Return:
		return m
	case Jump, Call:
		return fmt.Sprintf("%s 0x%03X", m, ins.NNN)
	case JumpOffset:
		return fmt.Sprintf("%s V0, 0x%03X", m, ins.NNN)
	case SkipEqualImmediate, SkipNotEqualImmediate, LoadImmediate, AddImmediate, Random:
		return fmt.Sprintf("%s V%X, 0x%02X", m, ins.X, ins.KK)
	case SkipEqualRegister, SkipNotEqualRegister, Move, Or, And, Xor,
		AddRegister, SubRegister, ShiftRight, SubReverse, ShiftLeft:
		return fmt.Sprintf("%s V%X, V%X", m, ins.X, ins.Y)
	case SetIndex:
		return fmt.Sprintf("%s I, 0x%03X", m, ins.NNN)
	case Draw:
		return fmt.Sprintf("%s V%X, V%X, %d", m, ins.X, ins.Y, ins.N)
	case SkipKeyDown, SkipKeyUp:
		return fmt.Sprintf("%s V%X", m, ins.X)
	case LoadDelay:
		return fmt.Sprintf("%s V%X, DT", m, ins.X)
	case WaitKey:
		return fmt.Sprintf("%s V%X, K", m, ins.X)
	case SetDelay:
		return fmt.Sprintf("%s DT, V%X", m, ins.X)
	case SetSound:
		return fmt.Sprintf("%s ST, V%X", m, ins.X)
	case AddIndex:
		return fmt.Sprintf("%s I, V%X", m, ins.X)
	case LoadFont:
		return fmt.Sprintf("%s F, V%X", m, ins.X)
	case StoreBCD:
		return fmt.Sprintf("%s B, V%X", m, ins.X)
	case StoreRegisters:
		return fmt.Sprintf("%s [I], V%X", m, ins.X)
	case LoadRegisters:
		return fmt.Sprintf("%s V%X, [I]", m, ins.X)
	default:
		return fmt.Sprintf("%s 0x%04X", m, ins.Word)
	}
}

// InstructionSet selects which decoded kinds the interpreter executes.
type InstructionSet uint8

const (
	// CoreSet is the instruction subset Pong era programs are validated against.
	// Every other kind is reported as unimplemented.
	CoreSet InstructionSet = iota
	// CompleteSet adds the remaining classic Chip8 instructions.
	CompleteSet
)

var coreKinds = map[Kind]bool{
	Return:                true,
	Jump:                  true,
	Call:                  true,
	SkipEqualImmediate:    true,
	SkipNotEqualImmediate: true,
	LoadImmediate:         true,
	AddImmediate:          true,
	Move:                  true,
	And:                   true,
	AddRegister:           true,
	SubRegister:           true,
	SetIndex:              true,
	Random:                true,
	Draw:                  true,
	SkipKeyDown:           true,
	SkipKeyUp:             true,
	LoadDelay:             true,
	SetDelay:              true,
	LoadFont:              true,
	StoreBCD:              true,
	LoadRegisters:         true,
}

// Supports reports whether instructions of kind k are executed under s.
func (s InstructionSet) Supports(k Kind) bool {
	switch {
	case k == KindUnknown || k >= kindCount:
		return false
	case s == CompleteSet:
		return true
	default:
		return coreKinds[k]
	}
}

// ParseInstructionSet converts "core" or "complete" to an InstructionSet.
func ParseInstructionSet(name string) (InstructionSet, error) {
	switch name {
	case "core":
		return CoreSet, nil
	case "complete":
		return CompleteSet, nil
	default:
		return CoreSet, fmt.Errorf("unsupported instruction set '%s'", name)
	}
}

func (s InstructionSet) String() string {
	if s == CompleteSet {
		return "complete"
	}
	return "core"
}
