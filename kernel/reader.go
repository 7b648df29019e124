package kernel

// InputLineMax bounds a shell input line, including the terminator slot.
const InputLineMax = 128

// Echo is where the reader mirrors typed characters. The console's PutChar
// interprets newline and backspace, which is exactly what echoing needs.
type Echo interface {
	PutChar(c byte)
}

// LineReader assembles completed lines from the ring buffer. It is the sole
// consumer of the ring and is not reentrant.
type LineReader struct {
	ring *Ring
	echo Echo
}

// NewLineReader builds the consumer side of the input pipeline.
func NewLineReader(ring *Ring, echo Echo) *LineReader {
	return &LineReader{ring: ring, echo: echo}
}

// ReadLine blocks until a newline or carriage return arrives and returns
// the accumulated line (possibly empty). Backspace removes the previous
// character and erases its display cell. Characters beyond max-1 are
// consumed from the ring but dropped. There is no way to abandon a read
// once started.
func (r *LineReader) ReadLine(max int) string {
	buf := make([]byte, 0, max)
	for {
		c := r.ring.Get()
		switch {
		case c == '\n' || c == '\r':
			r.echo.PutChar('\n')
			return string(buf)
		case c == '\b':
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				r.echo.PutChar('\b')
			}
		default:
			if len(buf) < max-1 {
				buf = append(buf, c)
				r.echo.PutChar(c)
			}
		}
	}
}
