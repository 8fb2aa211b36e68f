package vm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrogolib/log"
)

// Step fetches the instruction at the program counter and executes it.
//
// Every instruction updates the program counter itself: by 2, by 4 for a
// taken skip, or by setting it directly for control transfers. Unknown
// instructions are logged and leave the program counter unchanged, so a
// program stuck on one keeps executing it on every step.
//
// An error is only returned for call stack faults, in which case the state
// is left unmodified.
func (v *VM) Step() error {
	word := decoder.Word(v.read(v.pc), v.read(v.pc+1))
	v.opcode = word
	ins := decoder.Decode(word)

	if !v.trace {
		return v.execute(ins)
	}

	v.logger.Debug("Executing", log.String("state", v.State()))
	pc := v.pc
	if err := v.execute(ins); err != nil {
		return err
	}
	if decoder.IsControlFlow(word) || decoder.IsSkip(word) {
		v.logger.Debug("Branch", log.Hex("from", pc), log.Hex("to", v.pc))
	}
	return nil
}

// Halted returns whether the instruction at the program counter is a jump to
// its own address. Such a loop reads neither keys nor timers, so the program
// can make no further progress.
func (v *VM) Halted() bool {
	ins := decoder.Decode(decoder.Word(v.read(v.pc), v.read(v.pc+1)))
	return ins.Kind == decoder.Jump && ins.NNN == v.pc
}

func (v *VM) execute(ins decoder.Instruction) error {
	switch ins.Kind {
	case decoder.ClearScreen:
		v.clearScreen()
		v.next()
	case decoder.Return:
		return v.ret()
	case decoder.Jump:
		v.pc = ins.NNN
	case decoder.Call:
		return v.call(ins.NNN)
	case decoder.JumpOffset:
		v.pc = uint16(v.v[0]) + ins.NNN

	case decoder.SkipEqualImmediate:
		v.skipIf(v.v[ins.X] == ins.NN)
	case decoder.SkipNotEqualImmediate:
		v.skipIf(v.v[ins.X] != ins.NN)
	case decoder.SkipEqualRegister:
		v.skipIf(v.v[ins.X] == v.v[ins.Y])
	case decoder.SkipNotEqualRegister:
		v.skipIf(v.v[ins.X] != v.v[ins.Y])
	case decoder.SkipKeyPressed:
		v.skipIf(v.keyPressed(v.v[ins.X]))
	case decoder.SkipKeyNotPressed:
		v.skipIf(!v.keyPressed(v.v[ins.X]))

	case decoder.LoadImmediate:
		v.v[ins.X] = ins.NN
		v.next()
	case decoder.AddImmediate:
		v.v[ins.X] += ins.NN
		v.next()

	case decoder.Assign, decoder.Or, decoder.And, decoder.Xor, decoder.AddRegister,
		decoder.Subtract, decoder.ShiftRight, decoder.SubtractReverse, decoder.ShiftLeft:
		v.arithmetic(ins)
		v.next()

	case decoder.LoadIndex:
		v.i = ins.NNN
		v.next()
	case decoder.Random:
		v.v[ins.X] = v.random() & ins.NN
		v.next()
	case decoder.Draw:
		v.draw(v.v[ins.X], v.v[ins.Y], ins.N)
		v.next()

	case decoder.WaitKey:
		v.waitForKey(ins.X)

	case decoder.LoadDelayTimer:
		v.v[ins.X] = v.delayTimer
		v.next()
	case decoder.SetDelayTimer:
		v.delayTimer = v.v[ins.X]
		v.next()
	case decoder.SetSoundTimer:
		v.soundTimer = v.v[ins.X]
		v.next()

	case decoder.AddIndex:
		v.i += uint16(v.v[ins.X])
		v.next()
	case decoder.LoadFont:
		v.i = fontAddress + uint16(v.v[ins.X]&0x0F)*glyphSize
		v.next()
	case decoder.StoreBCD:
		v.storeBCD(v.v[ins.X])
		v.next()
	case decoder.StoreRegisters:
		for n := uint16(0); n <= uint16(ins.X); n++ {
			v.write(v.i+n, v.v[n])
		}
		v.next()
	case decoder.LoadRegisters:
		for n := uint16(0); n <= uint16(ins.X); n++ {
			v.v[n] = v.read(v.i + n)
		}
		v.next()

	default:
		v.logger.Warn("Unknown opcode",
			log.Hex("opcode", ins.Word),
			log.Hex("pc", v.pc))
	}
	return nil
}

// next advances the program counter to the following instruction.
func (v *VM) next() {
	v.pc += opcodeSize
}

// skipIf advances the program counter past the following instruction when
// the condition holds.
func (v *VM) skipIf(condition bool) {
	if condition {
		v.pc += 2 * opcodeSize
		return
	}
	v.pc += opcodeSize
}

// call pushes the address of the call instruction itself, ret compensates
// for it when returning.
func (v *VM) call(address uint16) error {
	if int(v.sp) >= StackSize {
		return fmt.Errorf("calling $%03X from $%03X: %w", address, v.pc, ErrStackOverflow)
	}

	v.stack[v.sp] = v.pc
	v.sp++
	v.pc = address
	return nil
}

func (v *VM) ret() error {
	if v.sp == 0 {
		return fmt.Errorf("returning at $%03X: %w", v.pc, ErrStackUnderflow)
	}

	v.sp--
	v.pc = v.stack[v.sp] + opcodeSize
	return nil
}

func (v *VM) storeBCD(value uint8) {
	v.write(v.i, value/100)
	v.write(v.i+1, value/10%10)
	v.write(v.i+2, value%10)
}
