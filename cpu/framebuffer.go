package cpu

import "strings"

const (
	// ScreenWidth is the width of the Chip8 screen in pixels.
	ScreenWidth = 64
	// ScreenHeight is the height of the Chip8 screen in pixels.
	ScreenHeight = 32

	rowBytes   = ScreenWidth / 8
	videoBytes = rowBytes * ScreenHeight
)

// Framebuffer is the 64x32px Chip8 screen, one bit per pixel.
//
// Every group of 8 bytes represents one 64px screen row, top row first.
// The highest bit of a byte is the leftmost of its 8 pixels, so the
// highest bit of byte 0 is the top-left pixel, coordinate 0,0.
type Framebuffer [videoBytes]byte

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// Pixel reports whether the pixel at x,y is on. Coordinates wrap around
// the screen edges.
func (f *Framebuffer) Pixel(x, y int) bool {
	x = wrap(x, ScreenWidth)
	y = wrap(y, ScreenHeight)
	return f[y*rowBytes+x/8]&(0x80>>uint(x%8)) != 0
}

// Pixels unpacks the screen into a row-major slice of ScreenWidth*ScreenHeight pixels.
func (f *Framebuffer) Pixels() []bool {
	pixels := make([]bool, ScreenWidth*ScreenHeight)
	for i, b := range f {
		for bit := 0; bit < 8; bit++ {
			pixels[i*8+bit] = b&(0x80>>uint(bit)) != 0
		}
	}
	return pixels
}

// Draw XORs the sprite onto the screen with its top-left corner at x,y.
// Each sprite byte is one 8px row. Pixels falling off an edge reappear on
// the opposite edge.
//
// Draw returns true if any sprite pixel was drawn on top of a pixel that
// was already on.
func (f *Framebuffer) Draw(sprite []byte, x, y byte) bool {
	/*
	* The sprite row usually straddles two bytes of the screen row. For x=35:
	*
	*			pixel 35      42
	*				   |       |
	*              |___01010|101_____|               <- sprite byte from bits 35 to 42
	*              |00001010|10100000|               <- leftByte and rightByte
	*      00000000|00001111|00001111|00000000       <- screen row
	*     ---------+--------+--------+--------
	*     |   3    |    4   |    5   |    6   |      <- bytes
	*
	* leftByte = spriteByte >> x%8 is XORed into byte x/8 of the row and
	* rightByte = spriteByte << (8 - x%8) into byte (x/8 + 1) % 8, the
	* modulo wrapping the overflow to the start of the same row.
	* When x%8 == 0 the sprite is byte-aligned and rightByte is empty.
	 */
	x %= ScreenWidth
	y %= ScreenHeight

	shift := x % 8
	leftCol := int(x / 8)
	rightCol := (leftCol + 1) % rowBytes

	var occluded bool
	for i, spriteByte := range sprite {
		row := (int(y) + i) % ScreenHeight * rowBytes

		leftByte := spriteByte >> shift
		if f[row+leftCol]&leftByte != 0 {
			occluded = true
		}
		f[row+leftCol] ^= leftByte

		if shift == 0 {
			continue
		}
		rightByte := spriteByte << (8 - shift)
		if f[row+rightCol]&rightByte != 0 {
			occluded = true
		}
		f[row+rightCol] ^= rightByte
	}
	return occluded
}

// String renders the screen as framed ASCII art, '*' for lit pixels.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", ScreenWidth) + "+\n"

	sb.WriteString(border)
	for y := 0; y < ScreenHeight; y++ {
		sb.WriteByte('|')
		for x := 0; x < ScreenWidth; x++ {
			if f.Pixel(x, y) {
				sb.WriteByte('*')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
