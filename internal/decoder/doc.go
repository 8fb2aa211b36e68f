// Package decoder extracts the operand fields of CHIP-8 instruction words and
// classifies them into instruction kinds.
//
// # Encoding
//
// Every CHIP-8 instruction is a big-endian 16-bit word, conventionally read as
// four nibbles. The fields used by the instruction set are:
//
//	F000  top nibble, selects the instruction family
//	0F00  X, first register selector
//	00F0  Y, second register selector
//	000F  N, 4-bit immediate (sprite height, arithmetic sub-operation)
//	00FF  NN, 8-bit immediate (constants, masks, F family sub-operation)
//	0FFF  NNN, 12-bit address
//
// # Dispatch
//
// Decode resolves a word in two levels. The top nibble selects the family;
// the 0, 8, E and F families multiplex on a secondary field:
//
//	0x0  low byte: 00E0 cls, 00EE ret
//	0x8  low nibble: 9 register-to-register operations
//	0xE  low byte: 9E skp, A1 sknp
//	0xF  low byte: 07, 0A, 15, 18, 1E, 29, 33, 55, 65
//
// Words that match no family or sub-operation decode to Unknown.
//
// # Mnemonics
//
// Format renders a word as assembly text. Instruction names come from the
// retrogolib CHIP-8 opcode tables so they match the names used by the
// retroenv disassembler and assembler.
package decoder
