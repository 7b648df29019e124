package shell

import (
	"bytes"
	"strings"
	"testing"

	"minios/ramfs"
)

// scriptSource replays a fixed list of input lines.
type scriptSource struct {
	lines []string
}

func (s *scriptSource) ReadLine(max int) string {
	if len(s.lines) == 0 {
		return ""
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line
}

// fakeTerminal captures output and Clear calls.
type fakeTerminal struct {
	bytes.Buffer
	cleared int
}

func (t *fakeTerminal) Clear() {
	t.cleared++
	t.Buffer.Reset()
}

func newTestShell(t *testing.T, lines ...string) (*Shell, *fakeTerminal) {
	t.Helper()
	term := &fakeTerminal{}
	sh, err := New(&scriptSource{lines: lines}, term, ramfs.New())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sh, term
}

func run(sh *Shell, lines ...string) {
	for _, line := range lines {
		sh.runLine(line)
	}
}

func TestEchoPreservesInteriorSpacing(t *testing.T) {
	sh, term := newTestShell(t)
	run(sh, "echo hello   world")
	if got := term.String(); got != "hello   world\n" {
		t.Fatalf("output = %q; want %q", got, "hello   world\n")
	}
}

func TestEchoEmptyArg(t *testing.T) {
	sh, term := newTestShell(t)
	run(sh, "echo")
	if got := term.String(); got != "\n" {
		t.Fatalf("output = %q; want bare newline", got)
	}
}

func TestUnknownCommandEchoesWholeLine(t *testing.T) {
	sh, term := newTestShell(t)
	run(sh, "  frobnicate the disk")
	if got := term.String(); got != "Unknown command: frobnicate the disk\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestLeadingSpacesIgnored(t *testing.T) {
	sh, term := newTestShell(t)
	run(sh, "   echo hi")
	if got := term.String(); got != "hi\n" {
		t.Fatalf("output = %q; want %q", got, "hi\n")
	}
}

func TestTouchLsRmFlow(t *testing.T) {
	sh, term := newTestShell(t)

	run(sh, "touch a", "ls")
	want := "Files:\n  welcome (39 bytes)\n  a (0 bytes)\n"
	if got := term.String(); got != want {
		t.Fatalf("output = %q; want %q", got, want)
	}

	term.Reset()
	run(sh, "rm a", "ls")
	want = "Files:\n  welcome (39 bytes)\n"
	if got := term.String(); got != want {
		t.Fatalf("after rm: output = %q; want %q", got, want)
	}
}

func TestTouchDuplicateReportsError(t *testing.T) {
	sh, term := newTestShell(t)
	run(sh, "touch a", "touch a")
	if got := term.String(); got != "Cannot create a: file already exists\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestCatMissingFile(t *testing.T) {
	sh, term := newTestShell(t)
	run(sh, "cat nope")
	if got := term.String(); got != "No such file: nope\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestWriteThenCat(t *testing.T) {
	sh, term := newTestShell(t)

	run(sh, "write a hi there")
	if got := term.String(); got != "Wrote 8 bytes to a\n" {
		t.Fatalf("write output = %q", got)
	}

	term.Reset()
	run(sh, "cat a")
	if got := term.String(); got != "hi there\n" {
		t.Fatalf("cat output = %q", got)
	}
}

func TestWriteTruncated(t *testing.T) {
	sh, term := newTestShell(t)

	long := strings.Repeat("x", ramfs.MaxFileSize+50)
	run(sh, "write big "+long)
	want := "Wrote 512 bytes to big (truncated)\n"
	if got := term.String(); got != want {
		t.Fatalf("output = %q; want %q", got, want)
	}
}

func TestWriteMissingText(t *testing.T) {
	sh, term := newTestShell(t)
	run(sh, "write a")
	if got := term.String(); got != "No text provided\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestUsageErrors(t *testing.T) {
	tcs := []struct {
		line string
		want string
	}{
		{"cat", "Usage: cat <file>\n"},
		{"touch", "Usage: touch <file>\n"},
		{"rm", "Usage: rm <file>\n"},
		{"write", "Usage: write <file> <text>\n"},
		{"nano", "Usage: nano <file>\n"},
	}
	for _, tc := range tcs {
		sh, term := newTestShell(t)
		run(sh, tc.line)
		if got := term.String(); got != tc.want {
			t.Fatalf("%q output = %q; want %q", tc.line, got, tc.want)
		}
	}
}

func TestClearInvokesTerminal(t *testing.T) {
	sh, term := newTestShell(t)
	run(sh, "echo junk", "clear")
	if term.cleared != 1 {
		t.Fatalf("Clear called %d times; want 1", term.cleared)
	}
	if term.Len() != 0 {
		t.Fatalf("terminal not empty after clear: %q", term.String())
	}
}

func TestHelpListsEveryBuiltin(t *testing.T) {
	sh, term := newTestShell(t)
	run(sh, "help")

	out := term.String()
	if !strings.HasPrefix(out, "Available commands:\n") {
		t.Fatalf("help output = %q", out)
	}
	for _, name := range []string{"help", "clear", "version", "echo", "ls", "cat", "touch", "rm", "write", "nano"} {
		if !strings.Contains(out, name) {
			t.Fatalf("help output missing %q:\n%s", name, out)
		}
	}
}

func TestVersionLine(t *testing.T) {
	sh, term := newTestShell(t)
	run(sh, "version")
	if !strings.HasPrefix(term.String(), "MiniOS version ") {
		t.Fatalf("output = %q", term.String())
	}
}

func TestRmMissingFile(t *testing.T) {
	sh, term := newTestShell(t)
	run(sh, "rm ghost")
	if got := term.String(); got != "No such file: ghost\n" {
		t.Fatalf("output = %q", got)
	}
}
