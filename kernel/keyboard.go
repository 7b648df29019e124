package kernel

import "minios/machine"

const kbdDataPort = 0x60

// scancodeMap translates scancode set 1 make codes to characters. Zero
// means the key has no character (modifiers, function keys) and the event
// is dropped. Non-exhaustive, unshifted layer only.
var scancodeMap = [128]byte{
	0, 27, '1', '2', '3', '4', '5', '6', '7', '8', '9', '0', '-', '=', '\b',
	'\t', 'q', 'w', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p', '[', ']', '\n', 0,
	'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';', '\'', '`', 0, '\\', 'z', 'x',
	'c', 'v', 'b', 'n', 'm', ',', '.', '/', 0, '*', 0, ' ',
}

// KeyboardISR decodes scancodes into the shared ring buffer. It is the
// producer half of the input pipeline and runs in interrupt context.
type KeyboardISR struct {
	bus  *machine.Bus
	ring *Ring
}

// NewKeyboardISR builds the service routine for the keyboard vector.
func NewKeyboardISR(bus *machine.Bus, ring *Ring) *KeyboardISR {
	return &KeyboardISR{bus: bus, ring: ring}
}

// HandleIRQ runs once per keyboard interrupt: read one scancode, drop
// releases and unmapped keys, enqueue the decoded character. A full ring
// drops the character silently; the handler never blocks.
func (k *KeyboardISR) HandleIRQ() {
	sc := k.bus.InB(kbdDataPort)
	if sc&0x80 != 0 {
		return // key release
	}
	c := scancodeMap[sc&0x7F]
	if c == 0 {
		return
	}
	k.ring.Put(c)
}
