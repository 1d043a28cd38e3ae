package qr

import "image"

// NewPixelBuffer converts a Go image.Image into the RGBA pixel buffer the
// decode pipeline consumes. Fully-transparent pixels are forced to white.
func NewPixelBuffer(img image.Image) PixelBuffer {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	pix := make([]byte, w*h*4)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 4
			if a == 0 {
				pix[i] = 0xFF
				pix[i+1] = 0xFF
				pix[i+2] = 0xFF
				pix[i+3] = 0xFF
				continue
			}
			// Convert 16-bit premultiplied components to 8-bit.
			pix[i] = byte(r >> 8)
			pix[i+1] = byte(g >> 8)
			pix[i+2] = byte(b >> 8)
			pix[i+3] = byte(a >> 8)
		}
	}

	return PixelBuffer{Width: w, Height: h, Pix: pix}
}

// Image wraps the buffer in an *image.RGBA sharing the same pixel data.
func (b PixelBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
