// Package pipeline orchestrates the emulation workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute loads the program image named in the options and runs it,
// rendering frames to the writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) (runner.Result, error) {
	program, err := p.loader.Load(opts)
	if err != nil {
		return runner.Result{}, fmt.Errorf("loading program: %w", err)
	}

	return p.ExecuteWithProgram(ctx, program, opts, writer)
}

// ExecuteWithProgram runs the emulation with a pre-loaded program image.
// This is useful for testing and programmatic usage where the image is already in memory.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program,
	writer io.Writer) (runner.Result, error) {

	machine := vm.New(p.logger, vm.Options{
		Seed:  opts.Seed,
		Trace: opts.Trace,
	})
	if err := machine.Load(program); err != nil {
		return runner.Result{}, fmt.Errorf("loading program: %w", err)
	}

	keys, err := runner.ParseKeyScript(opts.Keys)
	if err != nil {
		return runner.Result{}, fmt.Errorf("parsing key script: %w", err)
	}

	p.printInfo(opts, len(program))

	renderer := display.New(writer, styleFor(writer))
	render := func() error {
		fb := machine.Framebuffer()
		return renderer.Render(&fb)
	}

	r := runner.New(p.logger, machine, render, runner.Config{
		CycleInterval: opts.CycleInterval,
		TimerInterval: opts.TimerInterval,
		MaxCycles:     opts.Cycles,
		Unpaced:       opts.Fast,
		EveryFrame:    opts.Frames,
		Keys:          keys,
	})

	result, err := r.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return result, fmt.Errorf("running program: %w", err)
	}

	// every changed frame was already shown when rendering each frame
	if !opts.Frames || machine.DrawPending() {
		if renderErr := render(); renderErr != nil {
			return result, fmt.Errorf("rendering final frame: %w", renderErr)
		}
	}

	p.printResult(opts, result, machine)
	return result, err
}

// printInfo prints information about the program being run.
func (p *Pipeline) printInfo(opts options.Program, size int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.Int("max_cycles", int(opts.Cycles)),
		log.Stringer("cycle", opts.CycleInterval),
	)
}

// printResult prints the statistics of a finished run.
func (p *Pipeline) printResult(opts options.Program, result runner.Result, machine *vm.VM) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Execution stopped",
		log.Int("cycles", int(result.Cycles)),
		log.Int("timer_ticks", int(result.Ticks)),
		log.Int("frames", int(result.Frames)),
		log.String("state", machine.State()),
	)
	if result.Halted {
		p.logger.Info("Program halted in a jump to its own address")
	}
}

// styleFor uses block glyphs only for terminal output.
func styleFor(writer io.Writer) display.Style {
	if file, ok := writer.(*os.File); ok {
		return display.DetectStyle(file)
	}
	return display.ASCII
}
