// Package pipeline assembles the self-contained decode pipeline: binarize,
// locate finder patterns, sample the module grid, parse the bitstream. It
// registers itself as the "pipeline" engine.
package pipeline

import (
	qr "github.com/avil13/qr"
	"github.com/avil13/qr/decoder"
	"github.com/avil13/qr/detector"
	"github.com/avil13/qr/transform"
)

// Reader runs the full decode pipeline. It implements qr.Engine.
type Reader struct{}

// NewReader creates a new pipeline Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Decode derives a luminance image from the buffer and attempts the pipeline
// at each candidate threshold until one yields a non-empty result. With
// opts.Threshold set, only that threshold is attempted. The luminance image
// is shared across attempts with its threshold mutated in between, so a
// Decode call must not be raced with itself.
func (r *Reader) Decode(buf qr.PixelBuffer, opts *qr.DecodeOptions) (*qr.Result, error) {
	image := qr.NewLuminanceImage(buf)

	var thresholds []int
	if opts != nil && opts.Threshold > 0 {
		thresholds = []int{opts.Threshold}
	} else {
		thresholds = thresholdPolicy(image.Threshold())
	}

	var err error = qr.ErrNotFound
	for _, threshold := range thresholds {
		image.SetThreshold(threshold)
		var result *qr.Result
		result, err = decodeOnce(image)
		if err != nil {
			continue
		}
		if result.Text == "" {
			err = qr.ErrNotFound
			continue
		}
		return result, nil
	}
	return nil, err
}

// thresholdPolicy is the fixed retry set: the Otsu default, the default
// shifted by ±20, and three absolute fallbacks.
func thresholdPolicy(defaultThreshold int) []int {
	return []int{
		defaultThreshold,
		defaultThreshold - 20,
		defaultThreshold + 20,
		100,
		127,
		150,
	}
}

// decodeOnce runs a single pipeline pass at the image's current threshold.
func decodeOnce(image *qr.LuminanceImage) (*qr.Result, error) {
	patterns := detector.NewDetector(image).Find()
	matrix, err := transform.Sample(image, patterns)
	if err != nil {
		return nil, err
	}
	text, err := decoder.Decode(matrix)
	if err != nil {
		return nil, err
	}

	points := make([]qr.Point, len(patterns))
	for i, p := range patterns {
		points[i] = p.Center
	}
	return &qr.Result{
		Text:    text,
		Points:  points,
		Version: decoder.Version(matrix.Width()),
	}, nil
}
