//go:build unix

package screen

import (
	"time"

	"golang.org/x/sys/unix"
)

// terminalSize returns the terminal dimensions for the given fd, falling
// back to 80x24 when the ioctl fails.
func terminalSize(fd int) (width, height int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// selectWithTimeout waits until fd is readable or the timeout expires.
// A negative timeout blocks indefinitely. EINTR reports as a timeout so
// signal arrival retries instead of failing.
func selectWithTimeout(fd int, timeout time.Duration) (ready bool, err error) {
	var readFds unix.FdSet
	readFds.Zero()
	readFds.Set(fd)

	var tv *unix.Timeval
	if timeout >= 0 {
		tvVal := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &tvVal
	}

	n, err := unix.Select(fd+1, &readFds, nil, nil, tv)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}

// readNonblock reads whatever bytes are immediately available.
func readNonblock(fd int, buf []byte) (int, error) {
	n, err := unix.Read(fd, buf)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

// inputReady reports whether fd has bytes available right now. The encoder
// polls this between rows so a pending keystroke can abort a large refresh.
func inputReady(fd int) bool {
	ready, err := selectWithTimeout(fd, 0)
	return err == nil && ready
}
