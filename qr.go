// Package qr decodes QR symbols from raster images without relying on any
// external barcode library in its core pipeline. It is intended as a
// fallback decoder for platforms that lack a native barcode detector.
package qr

import "math"

// Point represents a point of interest in an image.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Sqrt((a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y))
}

// Result encapsulates the result of decoding a QR symbol.
type Result struct {
	// Text is the decoded payload. It may be empty for a symbol whose
	// bitstream was exhausted before any characters were read.
	Text string

	// Points are the finder pattern centers, when the engine reports them.
	Points []Point

	// Version is the inferred QR version, or 0 when unknown. It is
	// informational only; no version-specific validation is performed.
	Version int
}
