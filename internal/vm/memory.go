package vm

import (
	"fmt"
	"slices"
)

const (
	fontAddress = 0x000
	glyphSize   = 5
)

// fontSet contains the 4x5 pixel glyphs of the hex digits 0-F.
var fontSet = [16 * glyphSize]byte{
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

// Load copies a raw program image into memory at ProgramStart. Images that
// do not fit are rejected with ErrProgramTooLarge and memory is left as is.
func (v *VM) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("loading %d bytes, maximum is %d: %w", len(program), MaxProgramSize, ErrProgramTooLarge)
	}

	v.program = slices.Clone(program)
	copy(v.memory[ProgramStart:], v.program)
	return nil
}

// Memory returns the byte at the given address.
func (v *VM) Memory(address uint16) byte {
	return v.read(address)
}

// read and write wrap addresses into the 4KB address space.
func (v *VM) read(address uint16) byte {
	return v.memory[address&addressMask]
}

func (v *VM) write(address uint16, value byte) {
	v.memory[address&addressMask] = value
}
