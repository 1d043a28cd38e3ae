package qr

// PixelBuffer describes an RGBA image supplied by the caller. Pix holds
// width*height*4 bytes in RGBA order. The buffer is read-only to this
// package.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// LuminanceImage holds 8-bit greyscale luminance values for an image along
// with the current binarization threshold. The luminance plane is computed
// once; the threshold may be changed and re-queried repeatedly without
// recomputation. A pixel is black iff its luminance is below the threshold.
//
// A LuminanceImage is not safe for concurrent use: SetThreshold mutates
// state shared by all subsequent IsBlack calls.
type LuminanceImage struct {
	width      int
	height     int
	luminances []byte
	threshold  int
}

// NewLuminanceImage converts an RGBA pixel buffer to greyscale using the
// weighted sum 0.299R + 0.587G + 0.114B and computes a default threshold
// with Otsu's method.
func NewLuminanceImage(buf PixelBuffer) *LuminanceImage {
	w, h := buf.Width, buf.Height
	luminances := make([]byte, w*h)
	var histogram [256]int
	for i := 0; i < w*h; i++ {
		r := int(buf.Pix[i*4])
		g := int(buf.Pix[i*4+1])
		b := int(buf.Pix[i*4+2])
		lum := byte((299*r + 587*g + 114*b) / 1000)
		luminances[i] = lum
		histogram[lum]++
	}
	return &LuminanceImage{
		width:      w,
		height:     h,
		luminances: luminances,
		threshold:  otsuThreshold(histogram, w*h),
	}
}

// Width returns the image width.
func (l *LuminanceImage) Width() int { return l.width }

// Height returns the image height.
func (l *LuminanceImage) Height() int { return l.height }

// Threshold returns the current binarization threshold.
func (l *LuminanceImage) Threshold() int { return l.threshold }

// SetThreshold overrides the binarization threshold for subsequent
// IsBlack calls.
func (l *LuminanceImage) SetThreshold(threshold int) { l.threshold = threshold }

// IsBlack reports whether the pixel at (x, y) is darker than the current
// threshold. Out-of-range coordinates are treated as white.
func (l *LuminanceImage) IsBlack(x, y int) bool {
	return l.IsBlackAt(x, y, l.threshold)
}

// IsBlackAt is IsBlack with an explicit threshold for a single query.
func (l *LuminanceImage) IsBlackAt(x, y, threshold int) bool {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return false
	}
	return int(l.luminances[y*l.width+x]) < threshold
}

// otsuThreshold picks the threshold maximizing the between-class variance
// wB*wF*(mB-mF)^2 over a 256-bin histogram. Ties keep the lowest threshold.
func otsuThreshold(histogram [256]int, total int) int {
	if total == 0 {
		return 0
	}
	sum := 0.0
	for t, count := range histogram {
		sum += float64(t) * float64(count)
	}

	best := 0
	bestVariance := -1.0
	sumB := 0.0
	weightB := 0
	for t := 0; t < 256; t++ {
		weightF := total - weightB
		if weightB > 0 && weightF > 0 {
			meanB := sumB / float64(weightB)
			meanF := (sum - sumB) / float64(weightF)
			variance := float64(weightB) * float64(weightF) * (meanB - meanF) * (meanB - meanF)
			if variance > bestVariance {
				bestVariance = variance
				best = t
			}
		}
		weightB += histogram[t]
		sumB += float64(t) * float64(histogram[t])
	}
	return best
}
