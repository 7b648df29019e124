package machine

import (
	"testing"
	"time"

	"minios/hal"
)

type funcTable func(vector uint8) bool

func (f funcTable) Dispatch(vector uint8) bool { return f(vector) }

func TestBusUnmappedPorts(t *testing.T) {
	b := newBus()
	if got := b.InB(0x1234); got != 0xFF {
		t.Fatalf("InB(unmapped) = %#x; want 0xFF", got)
	}
	b.OutB(0x1234, 0x55) // must not panic
}

func TestBusRoutesToRegisteredDevice(t *testing.T) {
	m := New(nil)

	// The PIC data port is readable through the bus.
	if got := m.Bus().InB(picMasterData); got != 0xFA {
		t.Fatalf("InB(0x21) = %#x; want power-on mask 0xFA", got)
	}
	m.Bus().OutB(picMasterData, 0x00)
	if got := m.PIC().MasterMask(); got != 0x00 {
		t.Fatalf("mask after OutB = %#x; want 0", got)
	}
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal(msg)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestInterruptDeliveryEndToEnd(t *testing.T) {
	m := New(nil)

	got := make(chan uint8, 8)
	m.LoadDispatchTable(funcTable(func(v uint8) bool {
		got <- v
		return true
	}))

	m.Bus().OutB(picMasterData, 0x00) // unmask everything
	m.EnableInterrupts()

	m.Keyboard().PushEvent(hal.KeyEvent{Code: hal.KeyA, Press: true})

	select {
	case v := <-got:
		// Offsets are unprogrammed here, so the vector is the raw line.
		if v != kbdIRQ {
			t.Fatalf("vector = %#x; want %#x", v, kbdIRQ)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("interrupt never delivered")
	}
}

func TestInterruptsHeldWhileDisabled(t *testing.T) {
	m := New(nil)

	fired := make(chan uint8, 8)
	m.LoadDispatchTable(funcTable(func(v uint8) bool {
		fired <- v
		return true
	}))
	m.Bus().OutB(picMasterData, 0x00)

	// Interrupt flag still clear: the request must latch, not deliver.
	m.Keyboard().PushEvent(hal.KeyEvent{Code: hal.KeyA, Press: true})
	select {
	case <-fired:
		t.Fatal("handler ran with interrupts disabled")
	case <-time.After(50 * time.Millisecond):
	}

	m.EnableInterrupts()
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("latched interrupt lost across sti")
	}
}

func TestOneInterruptPerScancode(t *testing.T) {
	m := New(nil)

	seen := make(chan uint8, 16)
	m.LoadDispatchTable(funcTable(func(v uint8) bool {
		// Drain one byte per interrupt, as the keyboard handler does.
		m.Bus().InB(kbdDataPort)
		seen <- v
		return true
	}))
	m.Bus().OutB(picMasterData, 0x00)
	m.EnableInterrupts()

	// Three key events: three make codes, three break codes.
	for _, c := range []hal.KeyCode{hal.KeyA, hal.KeyB, hal.KeyC} {
		m.Keyboard().PushEvent(hal.KeyEvent{Code: c, Press: true})
		m.Keyboard().PushEvent(hal.KeyEvent{Code: c, Press: false})
	}

	for i := 0; i < 6; i++ {
		select {
		case <-seen:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of 6 interrupts delivered", i)
		}
	}
	waitFor(t, func() bool {
		return m.Bus().InB(kbdStatusPort)&kbdStatusOBF == 0
	}, "scancode FIFO not drained")
}
