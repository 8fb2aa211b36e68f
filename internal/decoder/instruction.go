package decoder

// Kind identifies the operation encoded by an instruction word.
type Kind uint8

// Instruction kinds, named after the operation they perform.
const (
	Unknown Kind = iota

	ClearScreen           // 00E0
	Return                // 00EE
	Jump                  // 1NNN
	Call                  // 2NNN
	SkipEqualImmediate    // 3XNN
	SkipNotEqualImmediate // 4XNN
	SkipEqualRegister     // 5XY0
	LoadImmediate         // 6XNN
	AddImmediate          // 7XNN
	Assign                // 8XY0
	Or                    // 8XY1
	And                   // 8XY2
	Xor                   // 8XY3
	AddRegister           // 8XY4
	Subtract              // 8XY5
	ShiftRight            // 8XY6
	SubtractReverse       // 8XY7
	ShiftLeft             // 8XYE
	SkipNotEqualRegister  // 9XY0
	LoadIndex             // ANNN
	JumpOffset            // BNNN
	Random                // CXNN
	Draw                  // DXYN
	SkipKeyPressed        // EX9E
	SkipKeyNotPressed     // EXA1
	LoadDelayTimer        // FX07
	WaitKey               // FX0A
	SetDelayTimer         // FX15
	SetSoundTimer         // FX18
	AddIndex              // FX1E
	LoadFont              // FX29
	StoreBCD              // FX33
	StoreRegisters        // FX55
	LoadRegisters         // FX65
)

var kindMnemonics = [...]string{
	Unknown:               "unknown",
	ClearScreen:           "cls",
	Return:                "ret",
	Jump:                  "jp",
	Call:                  "call",
	SkipEqualImmediate:    "se",
	SkipNotEqualImmediate: "sne",
	SkipEqualRegister:     "se",
	LoadImmediate:         "ld",
	AddImmediate:          "add",
	Assign:                "ld",
	Or:                    "or",
	And:                   "and",
	Xor:                   "xor",
	AddRegister:           "add",
	Subtract:              "sub",
	ShiftRight:            "shr",
	SubtractReverse:       "subn",
	ShiftLeft:             "shl",
	SkipNotEqualRegister:  "sne",
	LoadIndex:             "ld",
	JumpOffset:            "jp",
	Random:                "rnd",
	Draw:                  "drw",
	SkipKeyPressed:        "skp",
	SkipKeyNotPressed:     "sknp",
	LoadDelayTimer:        "ld",
	WaitKey:               "ld",
	SetDelayTimer:         "ld",
	SetSoundTimer:         "ld",
	AddIndex:              "add",
	LoadFont:              "ld",
	StoreBCD:              "ld",
	StoreRegisters:        "ld",
	LoadRegisters:         "ld",
}

// String returns the assembler mnemonic of the kind.
func (k Kind) String() string {
	if int(k) < len(kindMnemonics) {
		return kindMnemonics[k]
	}
	return kindMnemonics[Unknown]
}

// Instruction is a decoded instruction word with all operand fields extracted.
// Fields that the kind does not use are still filled from the word.
type Instruction struct {
	Kind Kind
	Word uint16
	X    uint8
	Y    uint8
	N    uint8
	NN   uint8
	NNN  uint16
}

// Decode classifies an instruction word.
func Decode(word uint16) Instruction {
	return Instruction{
		Kind: decodeKind(word),
		Word: word,
		X:    X(word),
		Y:    Y(word),
		N:    N(word),
		NN:   NN(word),
		NNN:  NNN(word),
	}
}

// decodeKind is the primary dispatch table keyed by the top nibble.
func decodeKind(word uint16) Kind {
	switch Family(word) {
	case 0x0:
		return decodeSystem(word)
	case 0x1:
		return Jump
	case 0x2:
		return Call
	case 0x3:
		return SkipEqualImmediate
	case 0x4:
		return SkipNotEqualImmediate
	case 0x5:
		if N(word) == 0 {
			return SkipEqualRegister
		}
	case 0x6:
		return LoadImmediate
	case 0x7:
		return AddImmediate
	case 0x8:
		return decodeArithmetic(word)
	case 0x9:
		if N(word) == 0 {
			return SkipNotEqualRegister
		}
	case 0xA:
		return LoadIndex
	case 0xB:
		return JumpOffset
	case 0xC:
		return Random
	case 0xD:
		return Draw
	case 0xE:
		return decodeKeyboard(word)
	case 0xF:
		return decodeMisc(word)
	}
	return Unknown
}

// decodeSystem handles the 0 family. 0NNN machine code calls are not supported.
func decodeSystem(word uint16) Kind {
	switch word {
	case 0x00E0:
		return ClearScreen
	case 0x00EE:
		return Return
	default:
		return Unknown
	}
}

// decodeArithmetic is the sub-table for the 8 family, keyed by the low nibble.
func decodeArithmetic(word uint16) Kind {
	switch N(word) {
	case 0x0:
		return Assign
	case 0x1:
		return Or
	case 0x2:
		return And
	case 0x3:
		return Xor
	case 0x4:
		return AddRegister
	case 0x5:
		return Subtract
	case 0x6:
		return ShiftRight
	case 0x7:
		return SubtractReverse
	case 0xE:
		return ShiftLeft
	default:
		return Unknown
	}
}

// decodeKeyboard is the sub-table for the E family, keyed by the low byte.
func decodeKeyboard(word uint16) Kind {
	switch NN(word) {
	case 0x9E:
		return SkipKeyPressed
	case 0xA1:
		return SkipKeyNotPressed
	default:
		return Unknown
	}
}

// decodeMisc is the sub-table for the F family, keyed by the low byte.
func decodeMisc(word uint16) Kind {
	switch NN(word) {
	case 0x07:
		return LoadDelayTimer
	case 0x0A:
		return WaitKey
	case 0x15:
		return SetDelayTimer
	case 0x18:
		return SetSoundTimer
	case 0x1E:
		return AddIndex
	case 0x29:
		return LoadFont
	case 0x33:
		return StoreBCD
	case 0x55:
		return StoreRegisters
	case 0x65:
		return LoadRegisters
	default:
		return Unknown
	}
}
