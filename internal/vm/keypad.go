package vm

// Press marks a key of the hex keypad as pressed. Only the low nibble of the
// key index is used. While the machine waits for a key, the first press is
// captured and committed by the next Step.
func (v *VM) Press(key uint8) {
	key &= KeyCount - 1
	v.keys[key] = true

	if v.waiting && !v.found {
		v.found = true
		v.waitKey = key
	}
}

// Release marks a key of the hex keypad as released.
func (v *VM) Release(key uint8) {
	v.keys[key&(KeyCount-1)] = false
}

// KeyPressed returns whether a key is currently held down.
func (v *VM) KeyPressed(key uint8) bool {
	return v.keyPressed(key)
}

// Waiting returns whether the machine is suspended on a key wait instruction.
func (v *VM) Waiting() bool {
	return v.waiting
}

func (v *VM) keyPressed(key uint8) bool {
	return v.keys[key&(KeyCount-1)]
}

// waitForKey implements the blocking key wait without blocking the caller:
// the program counter stays on the instruction until a captured key press
// has been stored in register x.
func (v *VM) waitForKey(x uint8) {
	if !v.found {
		v.waiting = true
		return
	}

	v.v[x] = v.waitKey
	v.waiting = false
	v.found = false
	v.waitKey = 0
	v.next()
}
