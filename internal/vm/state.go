package vm

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/decoder"
)

// PC returns the program counter.
func (v *VM) PC() uint16 {
	return v.pc
}

// I returns the index register.
func (v *VM) I() uint16 {
	return v.i
}

// SP returns the stack pointer, the number of pending return addresses.
func (v *VM) SP() uint16 {
	return v.sp
}

// Stack returns the pending return addresses, oldest first.
func (v *VM) Stack() []uint16 {
	stack := make([]uint16, v.sp)
	copy(stack, v.stack[:v.sp])
	return stack
}

// Register returns the value of register Vn.
func (v *VM) Register(n uint8) uint8 {
	return v.v[n&(RegisterCount-1)]
}

// Registers returns a copy of the general registers V0-VF.
func (v *VM) Registers() [RegisterCount]uint8 {
	return v.v
}

// Opcode returns the instruction word fetched by the last Step.
func (v *VM) Opcode() uint16 {
	return v.opcode
}

// State returns a single line description of the machine for debugging. It
// shows the instruction at the program counter, which is the next one to be
// executed.
func (v *VM) State() string {
	word := decoder.Word(v.read(v.pc), v.read(v.pc+1))

	var sb strings.Builder
	fmt.Fprintf(&sb, "PC:%04X OP:%04X %-16s V:", v.pc, word, decoder.Format(word))
	for _, value := range v.v {
		fmt.Fprintf(&sb, " %02X", value)
	}
	fmt.Fprintf(&sb, " I:%04X SP:%X DT:%02X ST:%02X", v.i, v.sp, v.delayTimer, v.soundTimer)
	if v.waiting {
		sb.WriteString(" WAIT")
	}
	return sb.String()
}
