// Package machine emulates the PC-style hardware the kernel drives: an I/O
// port bus, a dual 8259A interrupt controller pair, a PS/2 keyboard
// controller, and a text-mode display. The kernel talks to it exclusively
// through port I/O and the dispatch-table hook, the same contact surface a
// real machine would offer.
package machine

// PortDevice handles byte-wide I/O for the ports it is registered on.
type PortDevice interface {
	PortIn(port uint16) uint8
	PortOut(port uint16, v uint8)
}

// Bus routes port I/O to devices. Registration happens once at machine
// construction; after that the map is read-only and safe for concurrent
// lookups from the main and interrupt contexts.
type Bus struct {
	devs map[uint16]PortDevice
}

func newBus() *Bus {
	return &Bus{devs: make(map[uint16]PortDevice)}
}

func (b *Bus) register(dev PortDevice, ports ...uint16) {
	for _, p := range ports {
		b.devs[p] = dev
	}
}

// InB reads one byte from a port. Unmapped ports float high.
func (b *Bus) InB(port uint16) uint8 {
	dev, ok := b.devs[port]
	if !ok {
		return 0xFF
	}
	return dev.PortIn(port)
}

// OutB writes one byte to a port. Writes to unmapped ports are dropped.
func (b *Bus) OutB(port uint16, v uint8) {
	dev, ok := b.devs[port]
	if !ok {
		return
	}
	dev.PortOut(port, v)
}
