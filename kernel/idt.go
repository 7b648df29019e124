package kernel

import "minios/machine"

// Gate attribute flags and the kernel code segment selector.
const (
	gateFlagsInterrupt = 0x8E // present, ring-0, 32-bit interrupt gate
	kernelCodeSelector = 0x08

	// trampolineBase is the synthetic address of the handler entry-stub
	// region recorded in gate offsets.
	trampolineBase = 0x0010_0000
)

// Handler is an interrupt service routine. It runs in interrupt context and
// must never block.
type Handler func()

type gate struct {
	offsetLow  uint16
	selector   uint16
	flags      uint8
	offsetHigh uint16
	handler    Handler
}

func (g *gate) present() bool { return g.flags&0x80 != 0 }

// IDT is the interrupt dispatch table: 256 gates, all inert until installed.
// The zero value is ready to use.
type IDT struct {
	gates [256]gate
}

// Install points one vector at a handler. The recorded offset addresses the
// vector's slot in the entry-stub region; the selector and flags mark a
// present ring-0 interrupt gate.
func (t *IDT) Install(vector uint8, h Handler) {
	offset := uint32(trampolineBase) + uint32(vector)*8
	t.gates[vector] = gate{
		offsetLow:  uint16(offset),
		selector:   kernelCodeSelector,
		flags:      gateFlagsInterrupt,
		offsetHigh: uint16(offset >> 16),
		handler:    h,
	}
}

// Activate makes this table the one the machine consults on interrupt
// delivery. Installing after activation is not supported.
func (t *IDT) Activate(m *machine.Machine) {
	m.LoadDispatchTable(t)
}

// Dispatch runs the gate handler for a vector. Vectors without a present
// gate trap to an inert default and report false.
func (t *IDT) Dispatch(vector uint8) bool {
	g := &t.gates[vector]
	if !g.present() || g.handler == nil {
		return false
	}
	g.handler()
	return true
}

// Gate reports the packed metadata for a vector. Test hook.
func (t *IDT) Gate(vector uint8) (selector uint16, flags uint8, offset uint32) {
	g := &t.gates[vector]
	return g.selector, g.flags, uint32(g.offsetHigh)<<16 | uint32(g.offsetLow)
}
