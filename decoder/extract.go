package decoder

import "github.com/avil13/qr/bitutil"

// visitOrder calls f for every readable cell of a size×size symbol in the QR
// zigzag placement order: column pairs from the right edge leftward,
// alternating vertical direction, right column before left at each row.
// Column 6 (the vertical timing pattern) is skipped entirely; reserved cells
// are never visited.
func visitOrder(size int, f func(x, y int)) {
	upward := true
	for right := size - 1; right > 0; right -= 2 {
		if right == 6 {
			right--
		}
		for i := 0; i < size; i++ {
			y := i
			if upward {
				y = size - 1 - i
			}
			for _, x := range [2]int{right, right - 1} {
				if reserved(x, y, size) {
					continue
				}
				f(x, y)
			}
		}
		upward = !upward
	}
}

// reserved reports whether the cell at (x, y) belongs to a structural region
// that carries no data bits: the three 9×9 finder+format corner blocks or
// the timing pattern row/column.
func reserved(x, y, size int) bool {
	if x == 6 || y == 6 {
		return true
	}
	if x < 9 && y < 9 {
		return true
	}
	if x < 9 && y >= size-8 {
		return true
	}
	return x >= size-8 && y < 9
}

// extractBits concatenates the boolean states of all non-reserved cells in
// visitation order into the raw bitstream.
func extractBits(matrix *bitutil.BitMatrix) []bool {
	size := matrix.Width()
	bits := make([]bool, 0, size*size)
	visitOrder(size, func(x, y int) {
		bits = append(bits, matrix.Get(x, y))
	})
	return bits
}
