package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/kettek/apng"

	qr "github.com/avil13/qr"

	// Register the decode engines: the native (gozxing) first attempt and
	// the self-contained fallback pipeline.
	_ "github.com/avil13/qr/native"
	_ "github.com/avil13/qr/pipeline"
)

func main() {
	threshold := flag.Int("threshold", 0, "pin the binarization threshold (1-255); 0 picks automatically with retries")
	noNative := flag.Bool("no-native", false, "skip the native detector and use only the fallback pipeline")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qrscan [flags] <image-file> [image-file...]\n\n")
		fmt.Fprintf(os.Stderr, "Decode QR symbols in image files (PNG, animated PNG, JPEG, GIF).\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	opts := &qr.DecodeOptions{Threshold: *threshold}
	if *noNative {
		opts.Engines = []string{"pipeline"}
	}

	exitCode := 0
	for _, path := range flag.Args() {
		result, err := scanFile(path, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", path, err)
			exitCode = 1
			continue
		}
		if flag.NArg() > 1 {
			fmt.Printf("%s: ", path)
		}
		fmt.Println(result.Text)
	}
	os.Exit(exitCode)
}

func scanFile(path string, opts *qr.DecodeOptions) (*qr.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	frames, err := loadFrames(path, data)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	// Try each frame until one decodes; animated QR sequences carry the
	// payload in a single readable frame.
	var lastErr error
	for _, frame := range frames {
		result, err := qr.Decode(qr.NewPixelBuffer(frame), opts)
		if err != nil {
			lastErr = err
			continue
		}
		return result, nil
	}
	return nil, lastErr
}

// loadFrames returns every frame of the image at path. PNG files go through
// the APNG decoder, which yields all frames of an animation and a single
// frame for a plain PNG; other formats decode to one frame.
func loadFrames(path string, data []byte) ([]image.Image, error) {
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		a, err := apng.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		frames := make([]image.Image, len(a.Frames))
		for i, f := range a.Frames {
			frames[i] = f.Image
		}
		return frames, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return []image.Image{img}, nil
}
