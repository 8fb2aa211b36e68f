// Package loader handles program image loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
)

// ErrEmptyProgram is returned for program images without content.
var ErrEmptyProgram = errors.New("empty program image")

// Loader handles loading program images from disk.
type Loader struct{}

// New creates a new program image loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the raw program image named by the input option. The image is
// returned verbatim, without any header parsing or padding.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("loading %s: %w", opts.Input, ErrEmptyProgram)
	}
	return data, nil
}
