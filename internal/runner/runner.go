// Package runner drives a machine: it executes instructions at a fixed cycle
// interval, ticks the timers, replays scripted key events and renders frames.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Default pacing, roughly 500 instructions and 60 timer ticks per second.
const (
	DefaultCycleInterval = 2 * time.Millisecond
	DefaultTimerInterval = time.Second / 60
)

// Machine is the execution engine controlled by the runner.
type Machine interface {
	Step() error
	Tick()
	Press(key uint8)
	Release(key uint8)
	DrawPending() bool
	ClearDrawPending()
	Halted() bool
	State() string
}

// RenderFunc presents the current display content of the machine.
type RenderFunc func() error

// Config controls the pacing of a run.
type Config struct {
	// CycleInterval is the time between two executed instructions.
	CycleInterval time.Duration
	// TimerInterval is the time between two timer ticks. Ticks are derived
	// from the executed cycles, so the timer rate stays consistent with the
	// instruction rate even when the run is unpaced.
	TimerInterval time.Duration
	// MaxCycles stops the run after the given number of instructions,
	// 0 runs until the context is cancelled.
	MaxCycles uint64
	// Unpaced executes instructions without waiting for the cycle interval.
	Unpaced bool
	// EveryFrame renders every frame that the machine marks as changed.
	EveryFrame bool
	// Keys are the scripted key events, ordered by cycle.
	Keys []KeyEvent
}

// Result contains the statistics of a run.
type Result struct {
	Cycles uint64
	Ticks  uint64
	Frames uint64
	// Halted is set when the run stopped because the machine can make no
	// further progress.
	Halted bool
}

// Runner executes a machine.
type Runner struct {
	logger  *log.Logger
	machine Machine
	render  RenderFunc
	config  Config

	result    Result
	nextKey   int
	timerTime time.Duration
}

// New returns a runner for the given machine. The render function is only
// called when Config.EveryFrame is set and may be nil otherwise.
func New(logger *log.Logger, machine Machine, render RenderFunc, config Config) *Runner {
	if config.CycleInterval <= 0 {
		config.CycleInterval = DefaultCycleInterval
	}
	return &Runner{
		logger:  logger,
		machine: machine,
		render:  render,
		config:  config,
	}
}

// Run executes instructions until the cycle budget is used up, the machine
// halts or faults, or the context is cancelled. The returned result is valid in all
// cases.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var ticker *time.Ticker
	if !r.config.Unpaced {
		ticker = time.NewTicker(r.config.CycleInterval)
		defer ticker.Stop()
	}

	r.logger.Debug("Starting execution",
		log.Stringer("cycle", r.config.CycleInterval),
		log.Stringer("timer", r.config.TimerInterval),
		log.Int("max_cycles", int(r.config.MaxCycles)),
		log.Int("key_events", len(r.config.Keys)),
	)

	for r.config.MaxCycles == 0 || r.result.Cycles < r.config.MaxCycles {
		if r.machine.Halted() {
			r.result.Halted = true
			r.logger.Debug("Program halted", log.Int("cycle", int(r.result.Cycles)))
			break
		}
		if err := r.wait(ctx, ticker); err != nil {
			return r.result, err
		}
		if err := r.cycle(); err != nil {
			return r.result, err
		}
	}

	r.logger.Debug("Execution finished",
		log.Int("cycles", int(r.result.Cycles)),
		log.Int("ticks", int(r.result.Ticks)),
		log.Int("frames", int(r.result.Frames)),
	)
	return r.result, nil
}

func (r *Runner) wait(ctx context.Context, ticker *time.Ticker) error {
	if ticker == nil {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running: %w", err)
		}
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("running: %w", ctx.Err())
	case <-ticker.C:
		return nil
	}
}

// cycle applies the key events of the current cycle, executes one
// instruction and then updates the timers and the display.
func (r *Runner) cycle() error {
	r.applyKeys()

	if err := r.machine.Step(); err != nil {
		r.logger.Error("Execution fault", log.Int("cycle", int(r.result.Cycles)), log.String("state", r.machine.State()))
		return fmt.Errorf("executing cycle %d: %w", r.result.Cycles, err)
	}
	r.result.Cycles++

	r.tickTimers()

	if r.config.EveryFrame && r.machine.DrawPending() {
		if err := r.render(); err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}
		r.machine.ClearDrawPending()
		r.result.Frames++
	}
	return nil
}

func (r *Runner) applyKeys() {
	for r.nextKey < len(r.config.Keys) {
		event := r.config.Keys[r.nextKey]
		if event.Cycle > r.result.Cycles {
			return
		}

		if event.Pressed {
			r.machine.Press(event.Key)
		} else {
			r.machine.Release(event.Key)
		}
		r.logger.Debug("Key event", log.Stringer("event", event))
		r.nextKey++
	}
}

func (r *Runner) tickTimers() {
	if r.config.TimerInterval <= 0 {
		return
	}

	r.timerTime += r.config.CycleInterval
	for r.timerTime >= r.config.TimerInterval {
		r.machine.Tick()
		r.timerTime -= r.config.TimerInterval
		r.result.Ticks++
	}
}
