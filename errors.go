package screen

import (
	"errors"
	"fmt"
)

// Sentinel errors for screen lifecycle misuse.
var (
	// ErrNotInitialized is returned when an operation requires an
	// initialized screen.
	ErrNotInitialized = errors.New("screen: not initialized")
	// ErrAlreadyInitialized is returned when Init is called twice.
	ErrAlreadyInitialized = errors.New("screen: already initialized")
	// ErrNotSupported is returned on platforms without terminal support.
	ErrNotSupported = errors.New("screen: operation not supported on this platform")
)

// InvalidDimensionsError reports a zero or negative geometry.
type InvalidDimensionsError struct {
	Width  int
	Height int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("screen: invalid dimensions %dx%d", e.Width, e.Height)
}

// InvalidColorPairError reports use of a color pair that was never
// initialized with InitPair.
type InvalidColorPairError struct {
	Pair uint8
}

func (e *InvalidColorPairError) Error() string {
	return fmt.Sprintf("screen: invalid color pair %d", e.Pair)
}

// MosaicDataError reports pixel data inconsistent with the stated image
// dimensions.
type MosaicDataError struct {
	Len    int
	Width  int
	Height int
}

func (e *MosaicDataError) Error() string {
	return fmt.Sprintf("screen: mosaic data length %d does not match %dx%dx3",
		e.Len, e.Width, e.Height)
}
