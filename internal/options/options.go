// Package options contains the program options.
package options

import "time"

// Parameters contains file path and input options.
type Parameters struct {
	Input string `flag:"i" usage:"program image file"`
	Keys  string `flag:"keys" usage:"scripted key events, e.g. 10:+5,40:-5"`
}

// Execution contains the pacing options of the engine.
type Execution struct {
	Cycles        uint64        `flag:"cycles" usage:"maximum number of executed instructions, 0 runs until interrupted"`
	CycleInterval time.Duration `flag:"cycle" usage:"time between two instructions" default:"2ms"`
	TimerInterval time.Duration `flag:"timer" usage:"time between two timer ticks" default:"16.666666ms"`
	Fast          bool          `flag:"fast" usage:"run without waiting for the cycle interval"`
	Seed          uint64        `flag:"seed" usage:"random number generator seed, 0 uses a random seed"`
}

// Flags contains behavior options.
type Flags struct {
	Frames bool `flag:"frames" usage:"render every changed frame instead of only the final one"`
	Trace  bool `flag:"trace" usage:"log every executed instruction, implies -debug"`
	Debug  bool `flag:"debug" usage:"enable debug logging"`
	Quiet  bool `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Execution
	Flags
}
