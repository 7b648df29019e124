package kernel

import "minios/machine"

// Interrupt controller ports and the keyboard's place in the layout.
const (
	picMasterCmd  = 0x20
	picMasterData = 0x21
	picSlaveCmd   = 0xA0
	picSlaveData  = 0xA1

	irqKeyboard = 1

	// VectorKeyboard is the keyboard's vector after remapping: master
	// base 0x20 plus IRQ1.
	VectorKeyboard = 0x21
)

// RemapAndUnmaskKeyboard reprograms the controller pair so hardware IRQs
// land at vectors 0x20..0x2F, clear of the CPU exception range, and enables
// the keyboard line. Every other line keeps the mask state it had on entry.
func RemapAndUnmaskKeyboard(b *machine.Bus) {
	a1 := b.InB(picMasterData)
	a2 := b.InB(picSlaveData)

	// ICW1: begin initialization, ICW4 needed.
	b.OutB(picMasterCmd, 0x11)
	b.OutB(picSlaveCmd, 0x11)
	// ICW2: vector bases.
	b.OutB(picMasterData, 0x20)
	b.OutB(picSlaveData, 0x28)
	// ICW3: slave on master line 2; slave identity 2.
	b.OutB(picMasterData, 4)
	b.OutB(picSlaveData, 2)
	// ICW4: 8086 mode.
	b.OutB(picMasterData, 0x01)
	b.OutB(picSlaveData, 0x01)

	b.OutB(picMasterData, a1)
	b.OutB(picSlaveData, a2)

	mask := b.InB(picMasterData)
	mask &^= 1 << irqKeyboard
	b.OutB(picMasterData, mask)
}
