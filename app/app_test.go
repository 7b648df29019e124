package app

import (
	"strings"
	"testing"
	"time"

	"minios/hal"
	"minios/machine"
)

// testHAL is a minimal in-process HAL: a plain pixel buffer, a directly
// fed keyboard channel, and a free-running tick source.
type testHAL struct {
	fb    *testFB
	keys  chan hal.KeyEvent
	ticks chan uint64
}

func newTestHAL() *testHAL {
	h := &testHAL{
		fb:    newTestFB(640, 300),
		keys:  make(chan hal.KeyEvent, 64),
		ticks: make(chan uint64),
	}
	return h
}

func (h *testHAL) Logger() hal.Logger    { return nil }
func (h *testHAL) Display() hal.Display  { return h }
func (h *testHAL) Input() hal.Input      { return h }
func (h *testHAL) Time() hal.Time        { return h }
func (h *testHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *testHAL) Keyboard() hal.Keyboard       { return h }
func (h *testHAL) Events() <-chan hal.KeyEvent  { return h.keys }
func (h *testHAL) Ticks() <-chan uint64         { return h.ticks }

type testFB struct {
	w, h int
	buf  []byte
}

func newTestFB(w, h int) *testFB {
	return &testFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) ClearRGB(r, g, b uint8)  {}
func (f *testFB) Present() error          { return nil }

func typeLine(h *testHAL, line string) {
	for _, r := range line {
		h.keys <- hal.KeyEvent{Rune: r, Press: true}
	}
	h.keys <- hal.KeyEvent{Rune: '\n', Press: true}
}

func waitForRow(t *testing.T, d *machine.TextDisplay, match func(string) bool, what string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for row := 0; row < machine.TextRows; row++ {
			if match(d.Text(row)) {
				return
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	var screen []string
	for row := 0; row < machine.TextRows; row++ {
		screen = append(screen, d.Text(row))
	}
	t.Fatalf("never saw %s; screen:\n%s", what, strings.Join(screen, "\n"))
}

func TestBootShowsBannerAndPrompt(t *testing.T) {
	h := newTestHAL()
	sys, err := boot(h)
	if err != nil {
		t.Fatalf("boot: %v", err)
	}
	d := sys.m.Display()

	waitForRow(t, d, func(s string) bool {
		return strings.HasPrefix(s, "MiniOS ")
	}, "boot banner")
	waitForRow(t, d, func(s string) bool {
		return s == "mini>"
	}, "shell prompt")
}

func TestTypedCommandsReachTheFileStore(t *testing.T) {
	h := newTestHAL()
	sys, err := boot(h)
	if err != nil {
		t.Fatalf("boot: %v", err)
	}
	d := sys.m.Display()

	waitForRow(t, d, func(s string) bool { return s == "mini>" }, "shell prompt")

	typeLine(h, "touch a")
	typeLine(h, "ls")

	// The listing includes both the seeded file and the new one.
	waitForRow(t, d, func(s string) bool {
		return strings.TrimSpace(s) == "a (0 bytes)"
	}, "ls output for the new file")
	waitForRow(t, d, func(s string) bool {
		return strings.HasPrefix(strings.TrimSpace(s), "welcome (")
	}, "ls output for the seeded file")
}

func TestTypedEchoRoundTrip(t *testing.T) {
	h := newTestHAL()
	sys, err := boot(h)
	if err != nil {
		t.Fatalf("boot: %v", err)
	}
	d := sys.m.Display()

	waitForRow(t, d, func(s string) bool { return s == "mini>" }, "shell prompt")

	typeLine(h, "echo hi from the keyboard")
	waitForRow(t, d, func(s string) bool {
		return s == "hi from the keyboard"
	}, "echo output")
}

func TestRenderStepDrawsWithoutError(t *testing.T) {
	h := newTestHAL()
	step := New(h)

	for i := 0; i < 3; i++ {
		if err := step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
}
