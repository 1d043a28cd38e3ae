package decoder

import qr "github.com/avil13/qr"

// Mode represents a QR data encoding mode.
type Mode int

const (
	ModeNumeric      Mode = 0x01
	ModeAlphanumeric Mode = 0x02
	ModeByte         Mode = 0x04
)

// Character count field widths. These are the version 1-9 values; this
// decoder applies them to every version, matching its best-effort scope.
const (
	numericCountBits      = 10
	alphanumericCountBits = 9
	byteCountBits         = 8
)

// CountBits returns the width in bits of the character count field for the
// mode.
func (m Mode) CountBits() int {
	switch m {
	case ModeNumeric:
		return numericCountBits
	case ModeAlphanumeric:
		return alphanumericCountBits
	default:
		return byteCountBits
	}
}

// ModeForBits returns the Mode for the given 4-bit mode indicator. Modes
// other than numeric, alphanumeric, and byte (including Kanji and ECI) are
// unsupported.
func ModeForBits(bits int) (Mode, error) {
	switch bits {
	case 0x1:
		return ModeNumeric, nil
	case 0x2:
		return ModeAlphanumeric, nil
	case 0x4:
		return ModeByte, nil
	}
	return 0, qr.ErrUnsupportedMode
}
