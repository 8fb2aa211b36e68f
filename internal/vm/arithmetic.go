package vm

import "github.com/retroenv/retrochip8/internal/decoder"

// arithmetic executes the register-to-register operations of the 8 family.
// The result is written before the flag, so the flag wins when X is VF.
//
// Subtraction sets VF to 1 when a borrow occurs and to 0 otherwise. This is
// the inverse of the polarity found in most CHIP-8 references.
func (v *VM) arithmetic(ins decoder.Instruction) {
	x := v.v[ins.X]
	y := v.v[ins.Y]

	switch ins.Kind {
	case decoder.Assign:
		v.v[ins.X] = y
	case decoder.Or:
		v.v[ins.X] = x | y
	case decoder.And:
		v.v[ins.X] = x & y
	case decoder.Xor:
		v.v[ins.X] = x ^ y

	case decoder.AddRegister:
		sum := uint16(x) + uint16(y)
		v.v[ins.X] = uint8(sum)
		v.v[flagRegister] = boolToFlag(sum > 0xFF)

	case decoder.Subtract:
		v.v[ins.X] = x - y
		v.v[flagRegister] = boolToFlag(x < y)

	case decoder.SubtractReverse:
		v.v[ins.X] = y - x
		v.v[flagRegister] = boolToFlag(y < x)

	case decoder.ShiftRight:
		v.v[ins.X] = x >> 1
		v.v[flagRegister] = x & 0x01

	case decoder.ShiftLeft:
		v.v[ins.X] = x << 1
		v.v[flagRegister] = x >> 7
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
