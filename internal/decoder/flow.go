package decoder

import "github.com/retroenv/retrogolib/arch/cpu/chip8"

// IsSkip returns whether the word conditionally skips the next instruction.
func IsSkip(word uint16) bool {
	op, ok := knownOpcode(word)
	if !ok {
		return false
	}
	return chip8.SkipInstructions.Contains(op.Instruction.Name)
}

// IsControlFlow returns whether the word sets the program counter directly.
func IsControlFlow(word uint16) bool {
	op, ok := knownOpcode(word)
	if !ok {
		return false
	}

	switch op.Instruction {
	case chip8.JpInst, chip8.CallInst, chip8.RetInst:
		return true
	default:
		return false
	}
}

// knownOpcode returns the opcode table entry of a word that decodes to a
// supported instruction.
func knownOpcode(word uint16) (chip8.Opcode, bool) {
	if Decode(word).Kind == Unknown {
		return chip8.Opcode{}, false
	}
	return lookupOpcode(word)
}
