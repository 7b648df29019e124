package machine

import (
	"sync"

	"minios/hal"
)

// Keyboard controller ports.
const (
	kbdDataPort   = 0x60
	kbdStatusPort = 0x64

	kbdStatusOBF = 0x01 // output buffer full

	kbdIRQ = 1
)

// KeyboardController is a PS/2-style controller: host key events become
// scancode set 1 bytes in a FIFO, each byte raising IRQ1 until read.
type KeyboardController struct {
	mu    sync.Mutex
	fifo  []byte
	raise func(line uint8)
}

func newKeyboardController(raise func(line uint8)) *KeyboardController {
	return &KeyboardController{raise: raise}
}

// makeCodes maps HAL key codes to scancode set 1 make codes. Break codes are
// the make code with the high bit set.
var makeCodes = map[hal.KeyCode]uint8{
	hal.KeyEscape:       0x01,
	hal.Key1:            0x02,
	hal.Key2:            0x03,
	hal.Key3:            0x04,
	hal.Key4:            0x05,
	hal.Key5:            0x06,
	hal.Key6:            0x07,
	hal.Key7:            0x08,
	hal.Key8:            0x09,
	hal.Key9:            0x0A,
	hal.Key0:            0x0B,
	hal.KeyMinus:        0x0C,
	hal.KeyEqual:        0x0D,
	hal.KeyBackspace:    0x0E,
	hal.KeyTab:          0x0F,
	hal.KeyQ:            0x10,
	hal.KeyW:            0x11,
	hal.KeyE:            0x12,
	hal.KeyR:            0x13,
	hal.KeyT:            0x14,
	hal.KeyY:            0x15,
	hal.KeyU:            0x16,
	hal.KeyI:            0x17,
	hal.KeyO:            0x18,
	hal.KeyP:            0x19,
	hal.KeyLeftBracket:  0x1A,
	hal.KeyRightBracket: 0x1B,
	hal.KeyEnter:        0x1C,
	hal.KeyA:            0x1E,
	hal.KeyS:            0x1F,
	hal.KeyD:            0x20,
	hal.KeyF:            0x21,
	hal.KeyG:            0x22,
	hal.KeyH:            0x23,
	hal.KeyJ:            0x24,
	hal.KeyK:            0x25,
	hal.KeyL:            0x26,
	hal.KeySemicolon:    0x27,
	hal.KeyApostrophe:   0x28,
	hal.KeyGrave:        0x29,
	hal.KeyBackslash:    0x2B,
	hal.KeyZ:            0x2C,
	hal.KeyX:            0x2D,
	hal.KeyC:            0x2E,
	hal.KeyV:            0x2F,
	hal.KeyB:            0x30,
	hal.KeyN:            0x31,
	hal.KeyM:            0x32,
	hal.KeyComma:        0x33,
	hal.KeyPeriod:       0x34,
	hal.KeySlash:        0x35,
	hal.KeySpace:        0x39,
	hal.KeyF1:           0x3B,
	hal.KeyF2:           0x3C,
	hal.KeyF3:           0x3D,
}

// runeCodes maps characters to make codes for the headless stdin feed.
// Only the unshifted layer is reachable, like the physical board.
var runeCodes = map[rune]uint8{
	'1': 0x02, '2': 0x03, '3': 0x04, '4': 0x05, '5': 0x06,
	'6': 0x07, '7': 0x08, '8': 0x09, '9': 0x0A, '0': 0x0B,
	'-': 0x0C, '=': 0x0D, '\b': 0x0E, '\t': 0x0F,
	'q': 0x10, 'w': 0x11, 'e': 0x12, 'r': 0x13, 't': 0x14,
	'y': 0x15, 'u': 0x16, 'i': 0x17, 'o': 0x18, 'p': 0x19,
	'[': 0x1A, ']': 0x1B, '\n': 0x1C,
	'a': 0x1E, 's': 0x1F, 'd': 0x20, 'f': 0x21, 'g': 0x22,
	'h': 0x23, 'j': 0x24, 'k': 0x25, 'l': 0x26,
	';': 0x27, '\'': 0x28, '`': 0x29, '\\': 0x2B,
	'z': 0x2C, 'x': 0x2D, 'c': 0x2E, 'v': 0x2F, 'b': 0x30,
	'n': 0x31, 'm': 0x32, ',': 0x33, '.': 0x34, '/': 0x35,
	'*': 0x37, ' ': 0x39,
}

// PushEvent translates one host key event into scancodes and queues them.
// Unknown keys and runes outside the layout are dropped at the controller,
// exactly as a board with no such key would behave.
func (k *KeyboardController) PushEvent(ev hal.KeyEvent) {
	if ev.Code != hal.KeyUnknown {
		code, ok := makeCodes[ev.Code]
		if !ok {
			return
		}
		if !ev.Press {
			code |= 0x80
		}
		k.pushByte(code)
		return
	}
	if ev.Rune != 0 && ev.Press {
		code, ok := runeCodes[ev.Rune]
		if !ok {
			return
		}
		k.pushByte(code)
		k.pushByte(code | 0x80)
	}
}

func (k *KeyboardController) pushByte(code byte) {
	k.mu.Lock()
	k.fifo = append(k.fifo, code)
	k.mu.Unlock()
	k.raise(kbdIRQ)
}

func (k *KeyboardController) PortIn(port uint16) uint8 {
	k.mu.Lock()
	switch port {
	case kbdStatusPort:
		var st uint8
		if len(k.fifo) > 0 {
			st = kbdStatusOBF
		}
		k.mu.Unlock()
		return st
	case kbdDataPort:
		if len(k.fifo) == 0 {
			k.mu.Unlock()
			return 0
		}
		code := k.fifo[0]
		k.fifo = k.fifo[1:]
		more := len(k.fifo) > 0
		k.mu.Unlock()
		if more {
			// One interrupt per scancode: re-raise for the next byte.
			k.raise(kbdIRQ)
		}
		return code
	}
	k.mu.Unlock()
	return 0xFF
}

func (k *KeyboardController) PortOut(port uint16, v uint8) {
	// Controller commands (LEDs, typematic rate) are not modeled.
}
