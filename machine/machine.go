package machine

import (
	"sync/atomic"

	"minios/hal"
)

// DispatchTable is the processor-side view of the kernel's interrupt table:
// the machine hands it a vector and it either runs the installed handler or
// reports the vector as unhandled.
type DispatchTable interface {
	Dispatch(vector uint8) bool
}

// Machine ties the emulated devices together and delivers interrupts.
//
// Two execution contexts touch it: the main context (the kernel goroutine,
// via port I/O) and the interrupt context (a single dispatcher goroutine
// that drains the PIC and invokes handlers through the active dispatch
// table). Handlers therefore run asynchronously with respect to the main
// context, as on hardware.
type Machine struct {
	bus *Bus
	pic *PIC
	kbd *KeyboardController
	vga *TextDisplay

	table      atomic.Value // DispatchTable
	intEnabled atomic.Bool
	kick       chan struct{}

	log hal.Logger
}

// New builds the machine and starts its interrupt dispatcher.
func New(log hal.Logger) *Machine {
	m := &Machine{
		bus:  newBus(),
		pic:  newPIC(),
		vga:  newTextDisplay(),
		kick: make(chan struct{}, 1),
		log:  log,
	}
	m.kbd = newKeyboardController(m.raiseIRQ)

	m.bus.register(m.pic, picMasterCmd, picMasterData, picSlaveCmd, picSlaveData)
	m.bus.register(m.kbd, kbdDataPort, kbdStatusPort)
	m.bus.register(m.vga, crtcIndexPort, crtcDataPort)

	go m.dispatchLoop()
	return m
}

func (m *Machine) Bus() *Bus                   { return m.bus }
func (m *Machine) PIC() *PIC                   { return m.pic }
func (m *Machine) Keyboard() *KeyboardController { return m.kbd }
func (m *Machine) Display() *TextDisplay       { return m.vga }

// LoadDispatchTable makes the given table the one consulted on interrupt
// delivery (the lidt analogue).
func (m *Machine) LoadDispatchTable(t DispatchTable) {
	m.table.Store(t)
	m.notify()
}

// EnableInterrupts is the sti analogue. Requests latched while disabled
// become deliverable immediately.
func (m *Machine) EnableInterrupts() {
	m.intEnabled.Store(true)
	m.notify()
}

// DisableInterrupts is the cli analogue.
func (m *Machine) DisableInterrupts() {
	m.intEnabled.Store(false)
}

// InterruptsEnabled reports the interrupt flag.
func (m *Machine) InterruptsEnabled() bool {
	return m.intEnabled.Load()
}

func (m *Machine) raiseIRQ(line uint8) {
	m.pic.raise(line)
	m.notify()
}

func (m *Machine) notify() {
	select {
	case m.kick <- struct{}{}:
	default:
	}
}

func (m *Machine) dispatchLoop() {
	for range m.kick {
		m.drain()
	}
}

func (m *Machine) drain() {
	for m.intEnabled.Load() {
		vector, ok := m.pic.acknowledge()
		if !ok {
			return
		}
		if t, _ := m.table.Load().(DispatchTable); t != nil {
			if !t.Dispatch(vector) && m.log != nil {
				m.log.WriteLineString("machine: unhandled interrupt vector")
			}
		}
		m.pic.finish()
	}
}
