// Package display renders monochrome framebuffers as text.
package display

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Frame is a monochrome pixel grid.
type Frame interface {
	Width() int
	Height() int
	Pixel(x, y int) bool
}

// Style selects the characters used for rendering.
type Style int

const (
	// ASCII renders one pixel row per line using '#' and '.'.
	ASCII Style = iota
	// Blocks renders two pixel rows per line using Unicode half blocks.
	Blocks
)

// DetectStyle returns Blocks when the file is a terminal and ASCII otherwise,
// so that redirected output stays plain text.
func DetectStyle(file *os.File) Style {
	if term.IsTerminal(int(file.Fd())) {
		return Blocks
	}
	return ASCII
}

// Renderer writes frames to an output.
type Renderer struct {
	writer io.Writer
	style  Style
}

// New returns a renderer writing to the given output.
func New(writer io.Writer, style Style) *Renderer {
	return &Renderer{
		writer: writer,
		style:  style,
	}
}

// Render writes a frame followed by an empty separator line.
func (r *Renderer) Render(frame Frame) error {
	buf := bufio.NewWriter(r.writer)

	switch r.style {
	case Blocks:
		renderBlocks(buf, frame)
	default:
		renderASCII(buf, frame)
	}

	if err := buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

func renderASCII(buf *bufio.Writer, frame Frame) {
	for y := range frame.Height() {
		for x := range frame.Width() {
			if frame.Pixel(x, y) {
				_ = buf.WriteByte('#')
			} else {
				_ = buf.WriteByte('.')
			}
		}
		_ = buf.WriteByte('\n')
	}
}

// renderBlocks combines the pixels of two rows into one character cell.
func renderBlocks(buf *bufio.Writer, frame Frame) {
	height := frame.Height()

	for y := 0; y < height; y += 2 {
		for x := range frame.Width() {
			top := frame.Pixel(x, y)
			bottom := y+1 < height && frame.Pixel(x, y+1)

			switch {
			case top && bottom:
				_, _ = buf.WriteRune('█')
			case top:
				_, _ = buf.WriteRune('▀')
			case bottom:
				_, _ = buf.WriteRune('▄')
			default:
				_ = buf.WriteByte(' ')
			}
		}
		_ = buf.WriteByte('\n')
	}
}
