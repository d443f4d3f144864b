//go:build !unix

package screen

import "time"

func terminalSize(fd int) (width, height int) {
	return 80, 24
}

func selectWithTimeout(fd int, timeout time.Duration) (bool, error) {
	return false, ErrNotSupported
}

func readNonblock(fd int, buf []byte) (int, error) {
	return 0, ErrNotSupported
}

func inputReady(fd int) bool {
	return false
}
