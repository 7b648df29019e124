// Package kernel holds the interrupt-driven input core: the controller
// bridge, the dispatch table, the keyboard service routine, the shared ring
// buffer, and the blocking line reader built on top of them.
package kernel

import (
	"runtime"
	"sync/atomic"
)

// ringSize is the slot count of the keyboard ring buffer. The full test
// sacrifices one slot, so usable capacity is ringSize-1.
const ringSize = 256

// Ring is a lock-free single-producer/single-consumer byte queue shared
// between the interrupt context (producer) and the main context (consumer).
// Head is written only by the producer, tail only by the consumer; the
// producer stores the data before publishing the advanced head, and the
// consumer reads the published head before touching the data.
type Ring struct {
	_    [0]func() // prevent accidental copying.
	head atomic.Uint32
	tail atomic.Uint32
	buf  [ringSize]byte
}

// Put enqueues one byte. A full ring drops the byte and reports false: the
// producer runs in interrupt context and must never block.
func (r *Ring) Put(c byte) bool {
	head := r.head.Load()
	next := (head + 1) % ringSize
	if next == r.tail.Load() {
		return false
	}
	r.buf[head] = c
	r.head.Store(next)
	return true
}

// TryGet dequeues one byte without blocking.
func (r *Ring) TryGet() (byte, bool) {
	tail := r.tail.Load()
	if tail == r.head.Load() {
		return 0, false
	}
	c := r.buf[tail]
	r.tail.Store((tail + 1) % ringSize)
	return c, true
}

// Get dequeues one byte, spinning until one is available. Interrupts stay
// enabled during the spin so the producer can make progress; there is no
// timeout and no cancellation.
func (r *Ring) Get() byte {
	for {
		if c, ok := r.TryGet(); ok {
			return c
		}
		runtime.Gosched()
	}
}

// Len reports the number of buffered bytes. Producer progress can make the
// value stale by the time the caller sees it.
func (r *Ring) Len() int {
	head := r.head.Load()
	tail := r.tail.Load()
	return int((head + ringSize - tail) % ringSize)
}
