package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qr "github.com/avil13/qr"
)

// testImage builds a LuminanceImage from a black-pixel predicate and pins
// the threshold to 128 so the tests control binarization exactly.
func testImage(width, height int, black func(x, y int) bool) *qr.LuminanceImage {
	pix := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := byte(255)
			if black(x, y) {
				v = 0
			}
			i := (y*width + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 0xFF
		}
	}
	img := qr.NewLuminanceImage(qr.PixelBuffer{Width: width, Height: height, Pix: pix})
	img.SetThreshold(128)
	return img
}

// finderAt reports whether the module (mx, my) relative to a finder pattern
// origin is black: the 7x7 border ring plus the 3x3 center.
func finderAt(mx, my int) bool {
	if mx < 0 || my < 0 || mx > 6 || my > 6 {
		return false
	}
	if mx == 0 || mx == 6 || my == 0 || my == 6 {
		return true
	}
	return mx >= 2 && mx <= 4 && my >= 2 && my <= 4
}

func TestCheckRatioExact(t *testing.T) {
	for _, scale := range []int{1, 2, 4, 8} {
		size, ok := checkRatio([5]int{scale, scale, 3 * scale, scale, scale})
		require.True(t, ok, "exact 1:1:3:1:1 at scale %d must pass", scale)
		assert.InDelta(t, float64(scale), size, 1e-9)
	}
}

func TestCheckRatioDeviation(t *testing.T) {
	// First run twice its expected width: deviation 1.71 modules > 0.7.
	_, ok := checkRatio([5]int{4, 2, 6, 2, 2})
	assert.False(t, ok)

	// The center run tolerates three times the variance.
	_, ok = checkRatio([5]int{4, 4, 16, 4, 4})
	assert.True(t, ok, "center run within 3x tolerance must pass")

	_, ok = checkRatio([5]int{4, 4, 60, 4, 4})
	assert.False(t, ok, "center run far out of ratio must fail")
}

func TestCheckRatioZeroRun(t *testing.T) {
	_, ok := checkRatio([5]int{2, 0, 6, 2, 2})
	assert.False(t, ok)
	_, ok = checkRatio([5]int{1, 1, 2, 1, 1})
	assert.False(t, ok, "total below 7 must fail")
}

func TestClusterMerge(t *testing.T) {
	candidates := []candidate{
		{center: qr.Point{X: 10, Y: 10}, size: 2},
		{center: qr.Point{X: 13, Y: 14}, size: 4}, // 5px from the first
	}
	patterns := clusterCandidates(candidates)
	require.Len(t, patterns, 1)
	assert.InDelta(t, 11.5, patterns[0].Center.X, 1e-9)
	assert.InDelta(t, 12.0, patterns[0].Center.Y, 1e-9)
	assert.InDelta(t, 3.0, patterns[0].ModuleSize, 1e-9)
}

func TestClusterSeparate(t *testing.T) {
	candidates := []candidate{
		{center: qr.Point{X: 10, Y: 10}, size: 2},
		{center: qr.Point{X: 40, Y: 10}, size: 2},
	}
	patterns := clusterCandidates(candidates)
	assert.Len(t, patterns, 2)
}

func TestClusterRankedByCount(t *testing.T) {
	candidates := []candidate{
		{center: qr.Point{X: 100, Y: 100}, size: 2},
		{center: qr.Point{X: 10, Y: 10}, size: 2},
		{center: qr.Point{X: 10, Y: 11}, size: 2},
		{center: qr.Point{X: 10, Y: 12}, size: 2},
	}
	patterns := clusterCandidates(candidates)
	require.Len(t, patterns, 2)
	assert.InDelta(t, 10.0, patterns[0].Center.X, 1e-9, "most-clustered group first")
}

func TestClusterTopThree(t *testing.T) {
	var candidates []candidate
	for i := 0; i < 4; i++ {
		candidates = append(candidates, candidate{center: qr.Point{X: float64(100 * i), Y: 0}, size: 2})
	}
	assert.Len(t, clusterCandidates(candidates), 3)
}

func TestFindSinglePattern(t *testing.T) {
	const scale, ox, oy = 4, 8, 8
	img := testImage(64, 64, func(x, y int) bool {
		return finderAt((x-ox)/scale, (y-oy)/scale) && x >= ox && y >= oy
	})

	patterns := NewDetector(img).Find()
	require.Len(t, patterns, 1)
	assert.InDelta(t, 22.0, patterns[0].Center.X, 1.0)
	assert.InDelta(t, 22.0, patterns[0].Center.Y, 1.0)
	assert.InDelta(t, 4.0, patterns[0].ModuleSize, 0.5)
}

func TestFindPatternAtRowEnd(t *testing.T) {
	// The pattern's last black run touches the right image edge, so the
	// final white run never arrives; the row end acts as the boundary.
	const scale, ox, oy = 4, 36, 8
	img := testImage(64, 64, func(x, y int) bool {
		return finderAt((x-ox)/scale, (y-oy)/scale) && x >= ox && y >= oy
	})

	patterns := NewDetector(img).Find()
	require.Len(t, patterns, 1)
	assert.InDelta(t, 50.0, patterns[0].Center.X, 1.0)
	assert.InDelta(t, 22.0, patterns[0].Center.Y, 1.0)
}

func TestFindNothingOnBlank(t *testing.T) {
	img := testImage(32, 32, func(x, y int) bool { return false })
	assert.Empty(t, NewDetector(img).Find())
}
