// Package app boots the system: construct the machine, install the
// interrupt plumbing, seed the file store, and start the shell loop.
package app

import (
	"minios/console"
	"minios/hal"
	"minios/kernel"
	"minios/machine"
	"minios/ramfs"
	"minios/shell"
)

type system struct {
	m   *machine.Machine
	con *console.Console
	fb  hal.Framebuffer
}

// New boots the OS on the given HAL and returns the per-frame step
// function for the host runner.
func New(h hal.HAL) func() error {
	sys, err := boot(h)
	if err != nil {
		if log := h.Logger(); log != nil {
			log.WriteLineString("boot: " + err.Error())
		}
		return func() error { return err }
	}
	return func() error {
		sys.m.Display().Render(sys.fb)
		return nil
	}
}

// boot mirrors the bring-up order of a cold start: clear the display,
// install interrupts, init the file store, then hand off to the shell.
func boot(h hal.HAL) (*system, error) {
	m := machine.New(h.Logger())

	con := console.New(m.Display(), m.Bus())
	con.Clear()

	ring := &kernel.Ring{}
	isr := kernel.NewKeyboardISR(m.Bus(), ring)

	idt := &kernel.IDT{}
	idt.Install(kernel.VectorKeyboard, isr.HandleIRQ)
	idt.Activate(m)

	kernel.RemapAndUnmaskKeyboard(m.Bus())
	m.EnableInterrupts()

	fs := ramfs.New()

	reader := kernel.NewLineReader(ring, con)
	sh, err := shell.New(reader, con, fs)
	if err != nil {
		return nil, err
	}
	go sh.Run()

	// Pump host key events into the keyboard controller.
	go func() {
		kbd := m.Keyboard()
		for ev := range h.Input().Keyboard().Events() {
			kbd.PushEvent(ev)
		}
	}()

	return &system{m: m, con: con, fb: h.Display().Framebuffer()}, nil
}
