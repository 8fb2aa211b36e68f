package vm

const spriteWidth = 8

// Framebuffer is the 64x32 monochrome display, one byte per pixel holding
// 0 or 1, stored row by row.
type Framebuffer [ScreenWidth * ScreenHeight]uint8

// Width returns the display width in pixels.
func (f *Framebuffer) Width() int {
	return ScreenWidth
}

// Height returns the display height in pixels.
func (f *Framebuffer) Height() int {
	return ScreenHeight
}

// Pixel returns whether the pixel at the given coordinate is set.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f[x+y*ScreenWidth] != 0
}

// Framebuffer returns a copy of the display.
func (v *VM) Framebuffer() Framebuffer {
	return v.gfx
}

// DrawPending returns whether the display changed since the last call to
// ClearDrawPending.
func (v *VM) DrawPending() bool {
	return v.drawPending
}

// ClearDrawPending marks the current display content as consumed.
func (v *VM) ClearDrawPending() {
	v.drawPending = false
}

func (v *VM) clearScreen() {
	v.gfx = Framebuffer{}
	v.drawPending = true
}

// draw XORs a sprite of the given height, read from memory at I, onto the
// display. VF is set when any pixel is switched off.
//
// Sprites are not clipped: pixels right of the screen edge continue on the
// following row, and pixels past the end of the buffer continue at its start.
func (v *VM) draw(x, y, height uint8) {
	v.v[flagRegister] = 0

	for row := range int(height) {
		line := v.read(v.i + uint16(row))

		for col := range spriteWidth {
			if line&(0x80>>col) == 0 {
				continue
			}

			index := (int(x) + col + (int(y)+row)*ScreenWidth) % len(v.gfx)
			if v.gfx[index] == 1 {
				v.v[flagRegister] = 1
			}
			v.gfx[index] ^= 1
		}
	}

	v.drawPending = true
}
