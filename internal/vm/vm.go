// Package vm implements the CHIP-8 execution engine: the machine state, the
// fetch-decode-execute cycle, the key wait protocol, the timers and the
// framebuffer.
//
// A VM advances exactly one instruction per Step call and never blocks. The
// caller drives it from its own loop, calls Tick at the timer rate and feeds
// keypad events through Press and Release. A VM must not be used from multiple
// goroutines at the same time.
package vm

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Machine dimensions.
const (
	MemorySize    = 0x1000
	ProgramStart  = 0x200
	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16
	ScreenWidth   = 64
	ScreenHeight  = 32

	// MaxProgramSize is the size limit for program images, they must be
	// strictly smaller than the memory above ProgramStart.
	MaxProgramSize = MemorySize - ProgramStart - 1

	flagRegister = 0xF
	addressMask  = MemorySize - 1
	opcodeSize   = 2
)

// RandomSource returns a uniformly distributed random byte.
type RandomSource func() uint8

// Options controls the construction of a VM.
type Options struct {
	// Random overrides the random byte source used by the rnd instruction.
	Random RandomSource
	// Seed seeds the default random source when Random is not set.
	// A zero seed uses the process wide random source.
	Seed uint64
	// Trace logs every executed instruction at debug level.
	Trace bool
}

// VM is a CHIP-8 virtual machine.
type VM struct {
	logger *log.Logger
	random RandomSource
	trace  bool

	memory  [MemorySize]byte
	program []byte

	v      [RegisterCount]uint8
	i      uint16
	pc     uint16
	stack  [StackSize]uint16
	sp     uint16
	opcode uint16

	delayTimer uint8
	soundTimer uint8

	keys    [KeyCount]bool
	waiting bool
	found   bool
	waitKey uint8

	gfx         Framebuffer
	drawPending bool
}

// New returns a VM in its power-on state with the font loaded and no program.
func New(logger *log.Logger, options Options) *VM {
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}

	v := &VM{
		logger: logger,
		random: options.Random,
		trace:  options.Trace,
	}
	if v.random == nil {
		v.random = defaultRandom(options.Seed)
	}

	v.Reset()
	return v
}

// Reset restores the power-on state. A loaded program is copied back into
// memory so that it can be run again from the start.
func (v *VM) Reset() {
	v.memory = [MemorySize]byte{}
	copy(v.memory[fontAddress:], fontSet[:])
	copy(v.memory[ProgramStart:], v.program)

	v.v = [RegisterCount]uint8{}
	v.i = 0
	v.pc = ProgramStart
	v.stack = [StackSize]uint16{}
	v.sp = 0
	v.opcode = 0

	v.delayTimer = 0
	v.soundTimer = 0

	v.keys = [KeyCount]bool{}
	v.waiting = false
	v.found = false
	v.waitKey = 0

	v.gfx = Framebuffer{}
	v.drawPending = false
}

func defaultRandom(seed uint64) RandomSource {
	if seed == 0 {
		return func() uint8 {
			return uint8(rand.UintN(256))
		}
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	return func() uint8 {
		return uint8(rng.UintN(256))
	}
}
