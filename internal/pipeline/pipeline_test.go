package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// glyphProgram draws the font glyph 0 at the top left corner and loops.
var glyphProgram = []byte{
	0xA0, 0x00, // I = $000
	0xD0, 0x05, // drw V0, V0, 5
	0x12, 0x04, // jp $204
}

// keyGlyphProgram waits for a key and draws the glyph of the pressed key.
var keyGlyphProgram = []byte{
	0xF1, 0x0A, // ld V1, K
	0xF1, 0x29, // ld F, V1
	0xD0, 0x05, // drw V0, V0, 5
	0x12, 0x06, // jp $206
}

func testOptions(cycles uint64) options.Program {
	return options.Program{
		Execution: options.Execution{
			Cycles:        cycles,
			CycleInterval: runner.DefaultCycleInterval,
			TimerInterval: runner.DefaultTimerInterval,
			Fast:          true,
		},
		Flags: options.Flags{Quiet: true},
	}
}

func frameLines(output string) []string {
	return strings.Split(output, "\n")
}

// frameCount counts rendered frames, each one is terminated by an empty line.
func frameCount(output string) int {
	return strings.Count(output, "\n\n")
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.loader)
}

func TestExecute(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	tmpFile := createTempFile(t, glyphProgram)

	t.Run("execute pipeline successfully", func(t *testing.T) {
		opts := testOptions(10)
		opts.Input = tmpFile

		var buf bytes.Buffer
		result, err := p.Execute(context.Background(), opts, &buf)
		assert.NoError(t, err)
		// the jump to its own address at $204 ends the run
		assert.Equal(t, uint64(2), result.Cycles)
		assert.True(t, result.Halted)
		assert.Equal(t, uint64(0), result.Frames)

		lines := frameLines(buf.String())
		assert.Equal(t, "####"+strings.Repeat(".", 60), lines[0])
		assert.Equal(t, "#..#"+strings.Repeat(".", 60), lines[1])
		assert.Equal(t, strings.Repeat(".", 64), lines[5])
	})

	t.Run("execute with non-existent file", func(t *testing.T) {
		opts := testOptions(10)
		opts.Input = "/nonexistent/file.ch8"

		var buf bytes.Buffer
		_, err := p.Execute(context.Background(), opts, &buf)
		assert.Error(t, err)
		assert.Equal(t, 0, buf.Len())
	})
}

func TestExecuteWithProgram_Frames(t *testing.T) {
	p := New(log.NewTestLogger(t))

	opts := testOptions(10)
	opts.Frames = true

	var buf bytes.Buffer
	result, err := p.ExecuteWithProgram(context.Background(), glyphProgram, opts, &buf)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), result.Frames)

	// the only drawn frame is not repeated at the end
	assert.Equal(t, 1, frameCount(buf.String()))
	assert.Equal(t, "####"+strings.Repeat(".", 60), frameLines(buf.String())[0])
}

func TestExecuteWithProgram_CycleBudget(t *testing.T) {
	p := New(log.NewTestLogger(t))

	program := []byte{
		0x70, 0x01, // add V0, $01
		0x12, 0x00, // jp $200
	}

	var buf bytes.Buffer
	result, err := p.ExecuteWithProgram(context.Background(), program, testOptions(10), &buf)
	assert.NoError(t, err)
	assert.Equal(t, uint64(10), result.Cycles)
	assert.False(t, result.Halted)
	assert.Equal(t, 1, frameCount(buf.String()))
}

func TestExecuteWithProgram_Keys(t *testing.T) {
	p := New(log.NewTestLogger(t))

	opts := testOptions(20)
	opts.Keys = "5:+7,6:-7"

	var buf bytes.Buffer
	_, err := p.ExecuteWithProgram(context.Background(), keyGlyphProgram, opts, &buf)
	assert.NoError(t, err)

	lines := frameLines(buf.String())
	assert.Equal(t, "####"+strings.Repeat(".", 60), lines[0])
	assert.Equal(t, "...#"+strings.Repeat(".", 60), lines[1])
}

func TestExecuteWithProgram_Errors(t *testing.T) {
	tests := []struct {
		name     string
		program  []byte
		keys     string
		expected error
		contains string
	}{
		{
			name:     "program too large",
			program:  make([]byte, vm.MaxProgramSize+1),
			expected: vm.ErrProgramTooLarge,
		},
		{
			name:     "stack underflow",
			program:  []byte{0x00, 0xEE},
			expected: vm.ErrStackUnderflow,
		},
		{
			name:     "stack overflow",
			program:  []byte{0x22, 0x00},
			expected: vm.ErrStackOverflow,
		},
		{
			name:     "invalid key script",
			program:  glyphProgram,
			keys:     "5:?7",
			contains: "parsing key script",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(log.NewTestLogger(t))
			opts := testOptions(100)
			opts.Keys = tt.keys

			var buf bytes.Buffer
			_, err := p.ExecuteWithProgram(context.Background(), tt.program, opts, &buf)
			assert.Error(t, err)
			if tt.expected != nil {
				assert.True(t, errors.Is(err, tt.expected))
			}
			if tt.contains != "" {
				assert.ErrorContains(t, err, tt.contains)
			}
		})
	}
}

func TestExecuteWithProgram_Cancelled(t *testing.T) {
	p := New(log.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	result, err := p.ExecuteWithProgram(ctx, glyphProgram, testOptions(0), &buf)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint64(0), result.Cycles)

	// the final frame is shown even for interrupted runs
	assert.Equal(t, strings.Repeat(".", 64), frameLines(buf.String())[0])
}

func TestPrintInfo(t *testing.T) {
	tests := []struct {
		name  string
		quiet bool
	}{
		{"normal", false},
		{"quiet mode - no output", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(log.NewTestLogger(t))
			opts := testOptions(0)
			opts.Quiet = tt.quiet

			// should not panic
			p.printInfo(opts, len(glyphProgram))
			p.printResult(opts, runner.Result{Cycles: 1, Halted: true}, vm.New(log.NewTestLogger(t), vm.Options{}))
		})
	}
}

func TestStyleFor(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, display.ASCII, styleFor(&buf))

	file, err := os.CreateTemp(t.TempDir(), "frames")
	assert.NoError(t, err)
	defer func() { _ = file.Close() }()
	assert.Equal(t, display.ASCII, styleFor(file))
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
