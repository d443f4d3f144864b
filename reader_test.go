//go:build unix

package screen

import (
	"os"
	"testing"
	"time"
)

func newPipeReader(t *testing.T) (*EventReader, *os.File) {
	t.Helper()
	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() = %v", err)
	}
	r := NewEventReader(int(pr.Fd()))
	t.Cleanup(func() {
		r.Close()
		pr.Close()
		pw.Close()
	})
	return r, pw
}

func TestEventReaderDeliversKeys(t *testing.T) {
	r, pw := newPipeReader(t)

	if _, err := pw.WriteString("a\x1b[B"); err != nil {
		t.Fatal(err)
	}

	ev, ok := r.PollEvent(time.Second)
	if !ok {
		t.Fatal("no event for a buffered byte")
	}
	if ke := ev.(KeyEvent); ke.Key != KeyRune || ke.Rune != 'a' {
		t.Errorf("first event = %+v, want rune a", ke)
	}

	ev, ok = r.PollEvent(time.Second)
	if !ok {
		t.Fatal("no event for a buffered sequence")
	}
	if ke := ev.(KeyEvent); ke.Key != KeyDown {
		t.Errorf("second event = %+v, want KeyDown", ke)
	}
}

func TestEventReaderTimeout(t *testing.T) {
	r, _ := newPipeReader(t)

	start := time.Now()
	ev, ok := r.PollEvent(20 * time.Millisecond)
	if ok {
		t.Fatalf("PollEvent on silence = %+v, want timeout", ev)
	}
	if time.Since(start) > time.Second {
		t.Errorf("timeout overshot: %v", time.Since(start))
	}
}

func TestEventReaderSplitSequence(t *testing.T) {
	r, pw := newPipeReader(t)

	// The arrow key arrives in two chunks; decoding resumes when the rest
	// shows up.
	if _, err := pw.WriteString("\x1b["); err != nil {
		t.Fatal(err)
	}
	go func() {
		time.Sleep(10 * time.Millisecond)
		pw.WriteString("C")
	}()

	ev, ok := r.PollEvent(time.Second)
	if !ok {
		t.Fatal("no event for a split sequence")
	}
	if ke := ev.(KeyEvent); ke.Key != KeyRight {
		t.Errorf("event = %+v, want KeyRight", ke)
	}
}

func TestEventReaderEscapeTimeout(t *testing.T) {
	r, pw := newPipeReader(t)

	if _, err := pw.WriteString("\x1b"); err != nil {
		t.Fatal(err)
	}

	ev, ok := r.PollEvent(time.Second)
	if !ok {
		t.Fatal("lone escape never resolved")
	}
	if ke := ev.(KeyEvent); ke.Key != KeyEscape {
		t.Errorf("event = %+v, want KeyEscape", ke)
	}
}

func TestEventReaderNonBlockingPoll(t *testing.T) {
	r, pw := newPipeReader(t)

	if _, ok := r.PollEvent(0); ok {
		t.Error("non-blocking poll on silence returned an event")
	}

	if _, err := pw.WriteString("x"); err != nil {
		t.Fatal(err)
	}
	// Give the pipe a moment to become readable.
	time.Sleep(5 * time.Millisecond)

	ev, ok := r.PollEvent(0)
	if !ok {
		t.Fatal("non-blocking poll missed a buffered byte")
	}
	if ke := ev.(KeyEvent); ke.Rune != 'x' {
		t.Errorf("event = %+v, want rune x", ke)
	}
}
