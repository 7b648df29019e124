package machine

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"minios/hal"
)

// Cell geometry in framebuffer pixels.
const (
	cellWidth  = 8
	cellHeight = 12
	cellAscent = 9 // glyph baseline offset within the cell
)

// vgaPalette is the classic 16-color text palette.
var vgaPalette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xFF}, // black
	{0x00, 0x00, 0xAA, 0xFF}, // blue
	{0x00, 0xAA, 0x00, 0xFF}, // green
	{0x00, 0xAA, 0xAA, 0xFF}, // cyan
	{0xAA, 0x00, 0x00, 0xFF}, // red
	{0xAA, 0x00, 0xAA, 0xFF}, // magenta
	{0xAA, 0x55, 0x00, 0xFF}, // brown
	{0xAA, 0xAA, 0xAA, 0xFF}, // light gray
	{0x55, 0x55, 0x55, 0xFF}, // dark gray
	{0x55, 0x55, 0xFF, 0xFF}, // bright blue
	{0x55, 0xFF, 0x55, 0xFF}, // bright green
	{0x55, 0xFF, 0xFF, 0xFF}, // bright cyan
	{0xFF, 0x55, 0x55, 0xFF}, // bright red
	{0xFF, 0x55, 0xFF, 0xFF}, // bright magenta
	{0xFF, 0xFF, 0x55, 0xFF}, // yellow
	{0xFF, 0xFF, 0xFF, 0xFF}, // white
}

// Render draws the full cell grid plus the hardware cursor into the
// framebuffer.
func (d *TextDisplay) Render(fb hal.Framebuffer) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}

	var cells [TextCols * TextRows]uint16
	cursor := d.snapshot(&cells)

	disp := &fbDisplay{fb: fb}
	for row := 0; row < TextRows; row++ {
		for col := 0; col < TextCols; col++ {
			cell := cells[row*TextCols+col]
			ch := byte(cell)
			attr := uint8(cell >> 8)
			fg := vgaPalette[attr&0x0F]
			bg := vgaPalette[attr>>4&0x07]

			x := int16(col * cellWidth)
			y := int16(row * cellHeight)
			disp.fillRect(x, y, cellWidth, cellHeight, bg)
			if ch > ' ' && ch < 0x7F {
				tinyfont.DrawChar(disp, &proggy.TinySZ8pt7b, x, y+cellAscent, rune(ch), fg)
			}
		}
	}

	if cursor >= 0 && cursor < TextCols*TextRows {
		x := int16(cursor % TextCols * cellWidth)
		y := int16(cursor / TextCols * cellHeight)
		disp.fillRect(x, y+cellHeight-2, cellWidth, 2, vgaPalette[7])
	}
}

// fbDisplay adapts the HAL framebuffer to the drivers.Displayer contract
// tinyfont draws against.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	w := d.fb.Width()
	h := d.fb.Height()
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}

	buf := d.fb.Buffer()
	pixel := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) Display() error { return d.fb.Present() }

func (d *fbDisplay) fillRect(x, y, width, height int16, c color.RGBA) {
	for py := y; py < y+height; py++ {
		for px := x; px < x+width; px++ {
			d.SetPixel(px, py, c)
		}
	}
}
