// Package console is the character-cell display driver: it owns the cursor,
// interprets newline/carriage-return/backspace, wraps and scrolls, and keeps
// the hardware cursor in sync through the CRTC ports.
package console

import (
	"minios/machine"
)

const (
	width  = machine.TextCols
	height = machine.TextRows

	// Light gray on black.
	defaultAttr = 0x07
)

// Console drives the text display. It belongs to the main context only.
type Console struct {
	disp *machine.TextDisplay
	bus  *machine.Bus
	row  int
	col  int
	attr uint8
}

// New builds the driver. The display starts uncleared; callers run Clear
// during boot.
func New(disp *machine.TextDisplay, bus *machine.Bus) *Console {
	return &Console{disp: disp, bus: bus, attr: defaultAttr}
}

func (c *Console) putAt(ch byte, row, col int) {
	c.disp.Poke(row*width+col, uint16(ch)|uint16(c.attr)<<8)
}

func (c *Console) updateCursor() {
	pos := uint16(c.row*width + c.col)
	c.bus.OutB(0x3D4, 0x0F)
	c.bus.OutB(0x3D5, uint8(pos))
	c.bus.OutB(0x3D4, 0x0E)
	c.bus.OutB(0x3D5, uint8(pos>>8))
}

func (c *Console) scroll() {
	for r := 0; r < height-1; r++ {
		for col := 0; col < width; col++ {
			c.disp.Poke(r*width+col, c.disp.Peek((r+1)*width+col))
		}
	}
	blank := uint16(' ') | uint16(c.attr)<<8
	for col := 0; col < width; col++ {
		c.disp.Poke((height-1)*width+col, blank)
	}
}

// PutChar writes one character at the cursor. Newline and carriage return
// move the cursor, backspace erases the previous cell on the current line,
// and writes past the last row scroll the region up.
func (c *Console) PutChar(ch byte) {
	switch ch {
	case '\n':
		c.col = 0
		c.row++
		if c.row == height {
			c.row = height - 1
			c.scroll()
		}
	case '\r':
		c.col = 0
	case '\b':
		if c.col > 0 {
			c.col--
			c.putAt(' ', c.row, c.col)
		}
	default:
		c.putAt(ch, c.row, c.col)
		c.col++
		if c.col >= width {
			c.col = 0
			c.row++
			if c.row == height {
				c.row = height - 1
				c.scroll()
			}
		}
	}
	c.updateCursor()
}

// Write streams bytes through PutChar, making the console a fmt target.
func (c *Console) Write(p []byte) (int, error) {
	for _, ch := range p {
		c.PutChar(ch)
	}
	return len(p), nil
}

// WriteString is a convenience over Write.
func (c *Console) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		c.PutChar(s[i])
	}
}

// Clear blanks every cell and homes the cursor.
func (c *Console) Clear() {
	blank := uint16(' ') | uint16(c.attr)<<8
	for i := 0; i < width*height; i++ {
		c.disp.Poke(i, blank)
	}
	c.row = 0
	c.col = 0
	c.updateCursor()
}
