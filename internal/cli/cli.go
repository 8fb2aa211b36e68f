// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <program image>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program image, please pass the program image as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.Trace {
		opts.Debug = true
	}

	if opts.CycleInterval <= 0 {
		return fmt.Errorf("invalid cycle interval %s: must be positive", opts.CycleInterval)
	}
	if opts.TimerInterval < 0 {
		return fmt.Errorf("invalid timer interval %s: must not be negative", opts.TimerInterval)
	}

	if _, err := runner.ParseKeyScript(opts.Keys); err != nil {
		return fmt.Errorf("parsing key script: %w", err)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the program image file")
	flags.StringVar(&opts.Keys, "keys", "", "scripted key events as cycle:+key or cycle:-key, for example 10:+5,40:-5")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "maximum number of instructions to execute, 0 runs until interrupted")
	flags.DurationVar(&opts.CycleInterval, "cycle", runner.DefaultCycleInterval, "time between two executed instructions")
	flags.DurationVar(&opts.TimerInterval, "timer", runner.DefaultTimerInterval, "time between two timer ticks, 0 disables the timers")
	flags.BoolVar(&opts.Fast, "fast", false, "run without waiting for the cycle interval")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a random seed")
	flags.BoolVar(&opts.Frames, "frames", false, "render every changed frame instead of only the final one")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
