// Package native adapts a general-purpose barcode library as the
// first-attempt decode engine, standing in for a platform-native detector.
// The fallback pipeline never depends on it; importing this package is
// optional and registers the "native" engine ahead of the pipeline.
package native

import (
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	qr "github.com/avil13/qr"
)

// Engine decodes QR symbols via gozxing. It implements qr.Engine.
type Engine struct{}

// NewEngine creates a new native Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Decode runs the gozxing QR reader over the buffer. The Threshold option is
// ignored: the library applies its own binarization.
func (e *Engine) Decode(buf qr.PixelBuffer, opts *qr.DecodeOptions) (*qr.Result, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(buf.Image())
	if err != nil {
		return nil, err
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return nil, err
	}

	var points []qr.Point
	for _, p := range result.GetResultPoints() {
		points = append(points, qr.Point{X: p.GetX(), Y: p.GetY()})
	}
	return &qr.Result{Text: result.GetText(), Points: points}, nil
}

func init() {
	qr.RegisterEngine("native", 0, func() qr.Engine {
		return NewEngine()
	})
}
