package vm

// Tick decrements the delay and sound timers by one, stopping at zero. The
// caller is responsible for calling it at the timer rate, nominally 60 Hz.
func (v *VM) Tick() {
	if v.delayTimer > 0 {
		v.delayTimer--
	}
	if v.soundTimer > 0 {
		v.soundTimer--
	}
}

// DelayTimer returns the delay timer value.
func (v *VM) DelayTimer() uint8 {
	return v.delayTimer
}

// SoundTimer returns the sound timer value.
func (v *VM) SoundTimer() uint8 {
	return v.soundTimer
}
