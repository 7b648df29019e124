package machine

import "sync"

// Port assignments for the legacy interrupt controller pair.
const (
	picMasterCmd  = 0x20
	picMasterData = 0x21
	picSlaveCmd   = 0xA0
	picSlaveData  = 0xA1
)

const (
	icw1Init = 0x10
	icw1IC4  = 0x01
	ocw2EOI  = 0x20

	cascadeIRQ = 2
)

// pic8259 is one half of the controller pair.
type pic8259 struct {
	offset uint8 // vector base (ICW2)
	imr    uint8 // interrupt mask register
	irr    uint8 // interrupt request register
	isr    uint8 // in-service register

	// icwStage tracks the initialization word expected on the data port:
	// 0 means initialized (data port addresses the IMR).
	icwStage int
	needICW4 bool
}

func (p *pic8259) writeCommand(v uint8) {
	if v&icw1Init != 0 {
		p.icwStage = 2
		p.needICW4 = v&icw1IC4 != 0
		p.imr = 0x00
		p.irr = 0x00
		p.isr = 0x00
		return
	}
	if v&ocw2EOI != 0 {
		// Non-specific EOI: clear the highest-priority in-service bit.
		for i := uint8(0); i < 8; i++ {
			if p.isr&(1<<i) != 0 {
				p.isr &^= 1 << i
				return
			}
		}
	}
}

func (p *pic8259) writeData(v uint8) {
	switch p.icwStage {
	case 0:
		p.imr = v
	case 2: // ICW2: vector offset
		p.offset = v
		p.icwStage = 3
	case 3: // ICW3: cascade wiring (recorded implicitly by the pair layout)
		if p.needICW4 {
			p.icwStage = 4
		} else {
			p.icwStage = 0
		}
	case 4: // ICW4: mode flags
		p.icwStage = 0
	}
}

// pending returns the highest-priority unmasked request not yet in service.
func (p *pic8259) pending() (uint8, bool) {
	ready := p.irr &^ p.imr
	for i := uint8(0); i < 8; i++ {
		if ready&(1<<i) != 0 && p.isr&(1<<i) == 0 {
			return i, true
		}
	}
	return 0, false
}

// PIC is the cascaded master/slave 8259A pair.
//
// Devices latch requests via raise; the machine's delivery loop consumes
// them via acknowledge and retires them via finish (the entry stub's EOI).
type PIC struct {
	mu     sync.Mutex
	master pic8259
	slave  pic8259
}

func newPIC() *PIC {
	p := &PIC{}
	// Power-on defaults: timer and cascade enabled, everything else --
	// including the keyboard line -- masked.
	p.master.imr = 0xFA
	p.slave.imr = 0xFF
	return p
}

func (p *PIC) PortIn(port uint16) uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch port {
	case picMasterData:
		return p.master.imr
	case picSlaveData:
		return p.slave.imr
	case picMasterCmd:
		return p.master.irr
	case picSlaveCmd:
		return p.slave.irr
	}
	return 0xFF
}

func (p *PIC) PortOut(port uint16, v uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch port {
	case picMasterCmd:
		p.master.writeCommand(v)
	case picMasterData:
		p.master.writeData(v)
	case picSlaveCmd:
		p.slave.writeCommand(v)
	case picSlaveData:
		p.slave.writeData(v)
	}
}

// raise latches an interrupt request. Requests on masked lines stay latched
// and become deliverable if the line is later unmasked.
func (p *PIC) raise(line uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if line < 8 {
		p.master.irr |= 1 << line
		return
	}
	if line < 16 {
		p.slave.irr |= 1 << (line - 8)
		p.master.irr |= 1 << cascadeIRQ
	}
}

// acknowledge consumes the highest-priority deliverable request and returns
// its vector.
func (p *PIC) acknowledge() (uint8, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line, ok := p.master.pending()
	if !ok {
		return 0, false
	}
	if line == cascadeIRQ {
		sline, ok := p.slave.pending()
		if !ok {
			p.master.irr &^= 1 << cascadeIRQ
			return 0, false
		}
		p.master.isr |= 1 << cascadeIRQ
		p.slave.isr |= 1 << sline
		p.slave.irr &^= 1 << sline
		if p.slave.irr&^p.slave.imr == 0 {
			p.master.irr &^= 1 << cascadeIRQ
		}
		return p.slave.offset + sline, true
	}

	p.master.isr |= 1 << line
	p.master.irr &^= 1 << line
	return p.master.offset + line, true
}

// finish retires the in-service interrupt, as the handler entry stub's EOI
// write would.
func (p *PIC) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slave.writeCommand(ocw2EOI)
	p.master.writeCommand(ocw2EOI)
}

// MasterMask reports the master IMR. Test hook.
func (p *PIC) MasterMask() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.master.imr
}

// SlaveMask reports the slave IMR. Test hook.
func (p *PIC) SlaveMask() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slave.imr
}

// VectorBases reports the programmed vector offsets. Test hook.
func (p *PIC) VectorBases() (master, slave uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.master.offset, p.slave.offset
}
