// Package transform samples a luminance image into a module grid using
// detected finder patterns.
package transform

import (
	"fmt"
	"math"

	qr "github.com/avil13/qr"
	"github.com/avil13/qr/bitutil"
	"github.com/avil13/qr/detector"
)

// Sample produces the module bit matrix for the symbol anchored by the three
// given finder patterns. The grid is axis-aligned and anchored at the
// top-left pattern's center; there is no perspective correction, so rotated
// or skewed symbols are not handled. Fewer than three patterns is a hard
// failure.
func Sample(image *qr.LuminanceImage, patterns []detector.FinderPattern) (*bitutil.BitMatrix, error) {
	if len(patterns) < 3 {
		return nil, fmt.Errorf("%d finder patterns: %w", len(patterns), qr.ErrNotFound)
	}

	topLeft, topRight, bottomLeft := orderPatterns(patterns[0], patterns[1], patterns[2])

	moduleSize := (topLeft.ModuleSize + topRight.ModuleSize + bottomLeft.ModuleSize) / 3.0
	if moduleSize < 1.0 {
		return nil, fmt.Errorf("module size %.2f too small: %w", moduleSize, qr.ErrNotFound)
	}

	avgDist := (qr.Distance(topLeft.Center, topRight.Center) +
		qr.Distance(topLeft.Center, bottomLeft.Center)) / 2.0
	dimension := roundDimension(int(math.Round(avgDist/moduleSize)) + 7)
	if dimension < 1 {
		return nil, fmt.Errorf("dimension %d: %w", dimension, qr.ErrNotFound)
	}

	matrix := bitutil.NewBitMatrix(dimension)
	for y := 0; y < dimension; y++ {
		py := int(math.Round(topLeft.Center.Y + float64(y)*moduleSize))
		for x := 0; x < dimension; x++ {
			px := int(math.Round(topLeft.Center.X + float64(x)*moduleSize))
			// Out-of-bounds samples stay white: IsBlack treats them as
			// non-black.
			if image.IsBlack(px, py) {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}

// orderPatterns assigns corner roles assuming an upright symbol: the pattern
// with the smallest y is top-left; of the other two, the smaller x is
// bottom-left and the larger x is top-right.
func orderPatterns(a, b, c detector.FinderPattern) (topLeft, topRight, bottomLeft detector.FinderPattern) {
	patterns := []detector.FinderPattern{a, b, c}
	if patterns[1].Center.Y < patterns[0].Center.Y {
		patterns[0], patterns[1] = patterns[1], patterns[0]
	}
	if patterns[2].Center.Y < patterns[0].Center.Y {
		patterns[0], patterns[2] = patterns[2], patterns[0]
	}
	topLeft = patterns[0]
	if patterns[1].Center.X < patterns[2].Center.X {
		bottomLeft, topRight = patterns[1], patterns[2]
	} else {
		bottomLeft, topRight = patterns[2], patterns[1]
	}
	return topLeft, topRight, bottomLeft
}

// roundDimension snaps a raw dimension candidate to the nearest value
// congruent to 1 mod 4, since QR dimensions are always 4k+17. A candidate
// already of that form is kept as-is.
func roundDimension(candidate int) int {
	if candidate%4 == 1 {
		return candidate
	}
	k := int(math.Round(float64(candidate) / 4.0))
	return 4*k + 1
}
