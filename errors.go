package qr

import "errors"

var (
	// ErrNotFound is returned when no QR symbol is located in the image,
	// including the case of fewer than three finder patterns.
	ErrNotFound = errors.New("qr symbol not found")

	// ErrUnsupportedMode is returned when a symbol is located but its mode
	// indicator selects a data mode this decoder does not handle.
	ErrUnsupportedMode = errors.New("unsupported qr data mode")
)
