package machine

import "sync"

// Text-mode geometry and CRTC cursor ports.
const (
	TextCols = 80
	TextRows = 25

	crtcIndexPort = 0x3D4
	crtcDataPort  = 0x3D5

	crtcCursorHigh = 0x0E
	crtcCursorLow  = 0x0F
)

// TextDisplay is the character-cell display adapter: a flat array of
// char|attr<<8 cells plus the CRTC cursor registers. The console driver
// owns the cell contents; the host window renders them each frame.
type TextDisplay struct {
	mu        sync.RWMutex
	cells     [TextCols * TextRows]uint16
	crtcIndex uint8
	cursor    uint16
}

func newTextDisplay() *TextDisplay {
	return &TextDisplay{}
}

// Poke writes one cell. Out-of-range writes are dropped, like stores past
// the visible region of real text memory.
func (d *TextDisplay) Poke(idx int, v uint16) {
	if idx < 0 || idx >= len(d.cells) {
		return
	}
	d.mu.Lock()
	d.cells[idx] = v
	d.mu.Unlock()
}

// Peek reads one cell.
func (d *TextDisplay) Peek(idx int) uint16 {
	if idx < 0 || idx >= len(d.cells) {
		return 0
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cells[idx]
}

// Cursor reports the hardware cursor as a flat cell index.
func (d *TextDisplay) Cursor() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return int(d.cursor)
}

func (d *TextDisplay) PortIn(port uint16) uint8 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	switch port {
	case crtcIndexPort:
		return d.crtcIndex
	case crtcDataPort:
		switch d.crtcIndex {
		case crtcCursorLow:
			return uint8(d.cursor)
		case crtcCursorHigh:
			return uint8(d.cursor >> 8)
		}
	}
	return 0xFF
}

func (d *TextDisplay) PortOut(port uint16, v uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch port {
	case crtcIndexPort:
		d.crtcIndex = v
	case crtcDataPort:
		switch d.crtcIndex {
		case crtcCursorLow:
			d.cursor = d.cursor&0xFF00 | uint16(v)
		case crtcCursorHigh:
			d.cursor = d.cursor&0x00FF | uint16(v)<<8
		}
	}
}

func (d *TextDisplay) snapshot(cells *[TextCols * TextRows]uint16) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	*cells = d.cells
	return int(d.cursor)
}

// Text returns the trimmed textual content of one row. Test hook.
func (d *TextDisplay) Text(row int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if row < 0 || row >= TextRows {
		return ""
	}
	buf := make([]byte, 0, TextCols)
	for col := 0; col < TextCols; col++ {
		c := byte(d.cells[row*TextCols+col])
		if c == 0 {
			c = ' '
		}
		buf = append(buf, c)
	}
	end := len(buf)
	for end > 0 && buf[end-1] == ' ' {
		end--
	}
	return string(buf[:end])
}
