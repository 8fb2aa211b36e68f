package decoder

import (
	"fmt"
	"math/bits"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Format renders an instruction word as assembly text, for example
// "drw V1, V2, $3". Unknown words are rendered as a data word.
func Format(word uint16) string {
	ins := Decode(word)
	if ins.Kind == Unknown {
		return fmt.Sprintf(".word $%04X", word)
	}

	name := Mnemonic(word)
	if params := formatOperands(ins); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// Mnemonic returns the instruction name of a word. The name is taken from the
// retrogolib opcode table when the word matches an entry there, otherwise from
// the decoded kind.
func Mnemonic(word uint16) string {
	if op, ok := lookupOpcode(word); ok {
		return op.Instruction.Name
	}
	return Decode(word).Kind.String()
}

// lookupOpcode finds the retrogolib opcode entry for a word. Entries of a
// family can overlap, the one with the most specific mask wins.
func lookupOpcode(word uint16) (chip8.Opcode, bool) {
	var (
		found    chip8.Opcode
		bestBits = -1
	)
	for _, op := range chip8.Opcodes[int(Family(word))] {
		if op.Instruction == nil || op.Info.Mask&word != op.Info.Value {
			continue
		}
		if n := bits.OnesCount16(op.Info.Mask); n > bestBits {
			found = op
			bestBits = n
		}
	}
	return found, bestBits >= 0
}

// formatOperands formats the operand list of a decoded instruction.
func formatOperands(ins Instruction) string {
	switch ins.Kind {
	case ClearScreen, Return:
		return ""

	case Jump, Call:
		return fmt.Sprintf("$%03X", ins.NNN)

	case JumpOffset:
		return fmt.Sprintf("V0, $%03X", ins.NNN)

	case SkipEqualImmediate, SkipNotEqualImmediate, LoadImmediate, AddImmediate, Random:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)

	case SkipEqualRegister, SkipNotEqualRegister, Assign, Or, And, Xor,
		AddRegister, Subtract, SubtractReverse:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)

	case ShiftRight, ShiftLeft, SkipKeyPressed, SkipKeyNotPressed:
		return fmt.Sprintf("V%X", ins.X)

	case LoadIndex:
		return fmt.Sprintf("I, $%03X", ins.NNN)

	case Draw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)

	default:
		return formatMiscOperands(ins)
	}
}

// formatMiscOperands formats the F family, which shares the ld and add names.
func formatMiscOperands(ins Instruction) string {
	switch ins.Kind {
	case LoadDelayTimer:
		return fmt.Sprintf("V%X, DT", ins.X)
	case WaitKey:
		return fmt.Sprintf("V%X, K", ins.X)
	case SetDelayTimer:
		return fmt.Sprintf("DT, V%X", ins.X)
	case SetSoundTimer:
		return fmt.Sprintf("ST, V%X", ins.X)
	case AddIndex:
		return fmt.Sprintf("I, V%X", ins.X)
	case LoadFont:
		return fmt.Sprintf("F, V%X", ins.X)
	case StoreBCD:
		return fmt.Sprintf("B, V%X", ins.X)
	case StoreRegisters:
		return fmt.Sprintf("[I], V%X", ins.X)
	case LoadRegisters:
		return fmt.Sprintf("V%X, [I]", ins.X)
	default:
		return ""
	}
}
