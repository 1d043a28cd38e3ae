package qr

import "sort"

// DecodeOptions configures decoding behavior.
type DecodeOptions struct {
	// Threshold pins the binarization threshold (1-255) for a single
	// attempt. Zero selects the automatic threshold with retries.
	Threshold int

	// Engines restricts decoding to the named engines. Empty tries all
	// registered engines in priority order.
	Engines []string
}

// Engine decodes a QR symbol from a pixel buffer. A nil error with a nil or
// empty Result is treated as no symbol found; Decode moves on to the next
// engine.
type Engine interface {
	Decode(buf PixelBuffer, opts *DecodeOptions) (*Result, error)
}

type registeredEngine struct {
	name     string
	priority int
	factory  func() Engine
}

var engines []registeredEngine

// RegisterEngine registers a decode engine factory under the given name.
// Engines with lower priority values are tried first. This should be called
// from an init() function in engine packages.
func RegisterEngine(name string, priority int, factory func() Engine) {
	engines = append(engines, registeredEngine{name: name, priority: priority, factory: factory})
	sort.SliceStable(engines, func(i, j int) bool {
		return engines[i].priority < engines[j].priority
	})
}

// Decode attempts to decode a QR symbol using the registered engines in
// priority order, returning the first successful non-empty result. When all
// engines fail, the last engine error is returned, or ErrNotFound if no
// engine was eligible.
func Decode(buf PixelBuffer, opts *DecodeOptions) (*Result, error) {
	if opts == nil {
		opts = &DecodeOptions{}
	}
	var err error = ErrNotFound
	for _, e := range engines {
		if !engineAllowed(e.name, opts.Engines) {
			continue
		}
		var result *Result
		result, err = e.factory().Decode(buf, opts)
		if err == nil {
			if result != nil && result.Text != "" {
				return result, nil
			}
			err = ErrNotFound
		}
	}
	return nil, err
}

func engineAllowed(name string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == name {
			return true
		}
	}
	return false
}
