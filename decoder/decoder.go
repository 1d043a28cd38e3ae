// Package decoder parses a sampled module matrix into the encoded text.
//
// The decoder is deliberately best-effort: it performs no error correction,
// no unmasking, and no length-consistency validation. A declared length that
// outruns the bitstream truncates the output rather than failing; only an
// unrecognized mode indicator is reported as an error.
package decoder

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/avil13/qr/bitutil"
)

const alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// Version infers the QR version from the symbol dimension. It is
// informational only.
func Version(dimension int) int {
	return (dimension - 17) / 4
}

// Decode walks the matrix in zigzag order and interprets the resulting
// bitstream as a single data-mode segment. It returns the decoded string,
// which is empty when fewer than 8 bits are available, or
// qr.ErrUnsupportedMode for a mode outside numeric/alphanumeric/byte.
func Decode(matrix *bitutil.BitMatrix) (string, error) {
	bits := extractBits(matrix)
	if len(bits) < 8 {
		return "", nil
	}
	bs := bitutil.NewBitSource(bits)

	modeBits, err := bs.ReadBits(4)
	if err != nil {
		return "", nil
	}
	mode, err := ModeForBits(modeBits)
	if err != nil {
		return "", err
	}
	count, err := bs.ReadBits(mode.CountBits())
	if err != nil {
		return "", nil
	}

	switch mode {
	case ModeNumeric:
		return decodeNumericSegment(bs, count), nil
	case ModeAlphanumeric:
		return decodeAlphanumericSegment(bs, count), nil
	default:
		return decodeByteSegment(bs, count), nil
	}
}

// decodeByteSegment reads count 8-bit character codes with Latin-1
// semantics, stopping early if the bitstream runs out.
func decodeByteSegment(bs *bitutil.BitSource, count int) string {
	raw := make([]byte, 0, count)
	for i := 0; i < count; i++ {
		if bs.Available() < 8 {
			break
		}
		b, _ := bs.ReadBits(8)
		raw = append(raw, byte(b))
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// decodeNumericSegment reads count digits in groups of three: 10 bits per
// full group, 7 for a 2-digit tail, 4 for a 1-digit tail, each rendered as a
// decimal string zero-padded to the group's digit count.
func decodeNumericSegment(bs *bitutil.BitSource, count int) string {
	var sb strings.Builder
	for count >= 3 {
		if bs.Available() < 10 {
			return sb.String()
		}
		v, _ := bs.ReadBits(10)
		fmt.Fprintf(&sb, "%03d", v)
		count -= 3
	}
	if count == 2 && bs.Available() >= 7 {
		v, _ := bs.ReadBits(7)
		fmt.Fprintf(&sb, "%02d", v)
	} else if count == 1 && bs.Available() >= 4 {
		v, _ := bs.ReadBits(4)
		fmt.Fprintf(&sb, "%d", v)
	}
	return sb.String()
}

// decodeAlphanumericSegment reads count characters in pairs of 11 bits split
// by div/mod 45, with a trailing odd character taking 6 bits directly.
// Indices past the 45-character set end the segment.
func decodeAlphanumericSegment(bs *bitutil.BitSource, count int) string {
	var sb strings.Builder
	for count > 1 {
		if bs.Available() < 11 {
			return sb.String()
		}
		v, _ := bs.ReadBits(11)
		first := v / 45
		second := v % 45
		if first >= len(alphanumericChars) {
			return sb.String()
		}
		sb.WriteByte(alphanumericChars[first])
		sb.WriteByte(alphanumericChars[second])
		count -= 2
	}
	if count == 1 && bs.Available() >= 6 {
		v, _ := bs.ReadBits(6)
		if v < len(alphanumericChars) {
			sb.WriteByte(alphanumericChars[v])
		}
	}
	return sb.String()
}
