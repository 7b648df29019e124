package kernel

import (
	"testing"

	"minios/machine"
)

func TestRemapProgramsVectorBases(t *testing.T) {
	m := machine.New(nil)
	RemapAndUnmaskKeyboard(m.Bus())

	master, slave := m.PIC().VectorBases()
	if master != 0x20 {
		t.Fatalf("master base = %#x; want 0x20", master)
	}
	if slave != 0x28 {
		t.Fatalf("slave base = %#x; want 0x28", slave)
	}
}

func TestRemapPreservesUnrelatedMasks(t *testing.T) {
	m := machine.New(nil)
	b := m.Bus()

	// Give both controllers a distinctive mask state first.
	b.OutB(0x21, 0xA7)
	b.OutB(0xA1, 0x5A)

	RemapAndUnmaskKeyboard(b)

	// Only the keyboard bit may change, and it must end up clear.
	if got := m.PIC().MasterMask(); got != 0xA7&^0x02 {
		t.Fatalf("master mask = %#x; want %#x", got, 0xA7&^0x02)
	}
	if got := m.PIC().SlaveMask(); got != 0x5A {
		t.Fatalf("slave mask = %#x; want %#x", got, 0x5A)
	}
}

func TestRemapUnmasksKeyboardFromPowerOnState(t *testing.T) {
	m := machine.New(nil)
	RemapAndUnmaskKeyboard(m.Bus())

	if got := m.PIC().MasterMask(); got&0x02 != 0 {
		t.Fatalf("keyboard line still masked: master mask = %#x", got)
	}
}
