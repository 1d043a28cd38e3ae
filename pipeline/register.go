package pipeline

import qr "github.com/avil13/qr"

func init() {
	qr.RegisterEngine("pipeline", 1, func() qr.Engine {
		return NewReader()
	})
}
