package kernel

import "testing"

type recordingEcho struct {
	bytes []byte
}

func (e *recordingEcho) PutChar(c byte) { e.bytes = append(e.bytes, c) }

func fillRing(r *Ring, s string) {
	for i := 0; i < len(s); i++ {
		r.Put(s[i])
	}
}

func TestReadLineTerminators(t *testing.T) {
	tcs := []struct {
		input string
		want  string
		echo  string
	}{
		{input: "hello\n", want: "hello", echo: "hello\n"},
		{input: "hello\r", want: "hello", echo: "hello\n"},
		{input: "\n", want: "", echo: "\n"},
	}

	for _, tc := range tcs {
		var ring Ring
		echo := &recordingEcho{}
		fillRing(&ring, tc.input)

		got := NewLineReader(&ring, echo).ReadLine(InputLineMax)
		if got != tc.want {
			t.Fatalf("ReadLine(%q) = %q; want %q", tc.input, got, tc.want)
		}
		if string(echo.bytes) != tc.echo {
			t.Fatalf("echo for %q = %q; want %q", tc.input, echo.bytes, tc.echo)
		}
	}
}

func TestReadLineBackspace(t *testing.T) {
	var ring Ring
	echo := &recordingEcho{}
	fillRing(&ring, "ax\bb\n")

	got := NewLineReader(&ring, echo).ReadLine(InputLineMax)
	if got != "ab" {
		t.Fatalf("ReadLine = %q; want %q", got, "ab")
	}
	// The erase is echoed so the display cell is cleared.
	if string(echo.bytes) != "ax\bb\n" {
		t.Fatalf("echo = %q; want %q", echo.bytes, "ax\bb\n")
	}
}

func TestReadLineBackspaceOnEmptyIsNoop(t *testing.T) {
	var ring Ring
	echo := &recordingEcho{}
	fillRing(&ring, "\b\bok\n")

	got := NewLineReader(&ring, echo).ReadLine(InputLineMax)
	if got != "ok" {
		t.Fatalf("ReadLine = %q; want %q", got, "ok")
	}
	if string(echo.bytes) != "ok\n" {
		t.Fatalf("echo = %q; want %q (no erase for empty line)", echo.bytes, "ok\n")
	}
}

func TestReadLineLimitDropsButConsumes(t *testing.T) {
	var ring Ring
	echo := &recordingEcho{}

	long := make([]byte, 0, 140)
	for i := 0; i < 140; i++ {
		long = append(long, byte('a'+i%26))
	}
	fillRing(&ring, string(long))
	ring.Put('\n')

	r := NewLineReader(&ring, echo)
	got := r.ReadLine(InputLineMax)
	if len(got) != InputLineMax-1 {
		t.Fatalf("len = %d; want %d", len(got), InputLineMax-1)
	}
	if got != string(long[:InputLineMax-1]) {
		t.Fatal("kept prefix does not match input order")
	}
	// Everything was consumed from the ring, stored or not.
	if _, ok := ring.TryGet(); ok {
		t.Fatal("ring not drained after ReadLine")
	}
}
