package screen

import (
	"os"
	"os/signal"
	"syscall"
	"time"
)

// escapeTimeout is how long a lone ESC (or an unterminated escape sequence)
// may sit in the pending buffer before it is decoded as the Escape key. Real
// sequences arrive as a burst, so this only fires for a human pressing Esc.
const escapeTimeout = 50 * time.Millisecond

// pollGranularity caps how long a blocking wait sits in select() before
// checking for resize signals.
const pollGranularity = 100 * time.Millisecond

// EventReader turns raw terminal input into discrete events. It owns a
// pending-byte buffer so escape sequences split across reads resume cleanly,
// and it listens for SIGWINCH to deliver resize events in-band.
type EventReader struct {
	fd      int
	pending []byte
	queue   []Event
	winch   chan os.Signal
	closed  bool

	// escDeadline is set while pending holds an ambiguous escape prefix.
	escDeadline time.Time
}

// NewEventReader creates a reader for the given terminal file descriptor
// and starts listening for resize signals.
func NewEventReader(fd int) *EventReader {
	r := &EventReader{
		fd:    fd,
		winch: make(chan os.Signal, 1),
	}
	signal.Notify(r.winch, syscall.SIGWINCH)
	return r
}

// Close stops signal delivery and releases the reader. The file descriptor
// itself is not closed; the reader does not own it.
func (r *EventReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	signal.Stop(r.winch)
	return nil
}

// PollEvent returns the next input event. A timeout of 0 performs a
// non-blocking check, a negative timeout blocks until an event arrives.
// Returns (nil, false) when the timeout expires with no event.
func (r *EventReader) PollEvent(timeout time.Duration) (Event, bool) {
	if r.closed {
		return nil, false
	}

	deadline := time.Time{}
	if timeout >= 0 {
		deadline = time.Now().Add(timeout)
	}

	first := true
	for {
		if ev, ok := r.popQueued(); ok {
			return ev, true
		}
		if ev, ok := r.checkResize(); ok {
			return ev, true
		}

		wait := r.nextWait(deadline)
		if wait < 0 && first {
			// A zero timeout still gets one non-blocking check.
			wait = 0
		}
		first = false
		if wait < 0 {
			// Caller deadline passed. Pending bytes stay buffered so a
			// partially-received sequence resumes on the next call; only
			// an expired escape wait resolves them now.
			if r.escExpired() {
				r.queue = append(r.queue, drainPending(r.pending)...)
				r.pending = r.pending[:0]
				r.escDeadline = time.Time{}
				if ev, ok := r.popQueued(); ok {
					return ev, true
				}
			}
			return nil, false
		}

		ready, err := selectWithTimeout(r.fd, wait)
		if err != nil {
			return nil, false
		}
		if !ready {
			if r.escExpired() {
				r.queue = append(r.queue, drainPending(r.pending)...)
				r.pending = r.pending[:0]
				r.escDeadline = time.Time{}
			}
			continue
		}

		if !r.fill() {
			return nil, false
		}
	}
}

// popQueued returns the next already-decoded event.
func (r *EventReader) popQueued() (Event, bool) {
	if len(r.queue) == 0 {
		return nil, false
	}
	ev := r.queue[0]
	r.queue = r.queue[1:]
	return ev, true
}

// checkResize drains a pending SIGWINCH into a ResizeEvent.
func (r *EventReader) checkResize() (Event, bool) {
	select {
	case <-r.winch:
		w, h := terminalSize(r.fd)
		return ResizeEvent{Width: w, Height: h}, true
	default:
		return nil, false
	}
}

// nextWait computes how long the next select may block, bounded by the
// caller deadline, the escape timeout, and the resize poll granularity.
// Returns a negative duration when the caller deadline already passed.
func (r *EventReader) nextWait(deadline time.Time) time.Duration {
	wait := pollGranularity
	if !deadline.IsZero() {
		d := time.Until(deadline)
		if d <= 0 {
			return -1
		}
		if d < wait {
			wait = d
		}
	}
	if !r.escDeadline.IsZero() {
		d := time.Until(r.escDeadline)
		if d <= 0 {
			d = 0
		}
		if d < wait {
			wait = d
		}
	}
	return wait
}

// escExpired reports whether an ambiguous escape prefix has waited past the
// escape timeout.
func (r *EventReader) escExpired() bool {
	return !r.escDeadline.IsZero() && time.Now().After(r.escDeadline)
}

// fill reads available bytes and decodes them, queueing complete events and
// keeping any incomplete trailing sequence pending. Returns false on a read
// failure or EOF.
func (r *EventReader) fill() bool {
	buf := make([]byte, 256)
	n, err := readNonblock(r.fd, buf)
	if err != nil || n == 0 {
		return false
	}

	r.pending = append(r.pending, buf[:n]...)
	events, consumed := parseInput(r.pending)
	r.queue = append(r.queue, events...)
	r.pending = r.pending[:copy(r.pending, r.pending[consumed:])]

	if len(r.pending) > 0 {
		r.escDeadline = time.Now().Add(escapeTimeout)
	} else {
		r.escDeadline = time.Time{}
	}
	return true
}
