package watermark

import (
	"fmt"
	"math"
)

// markQuantStep is the pinned 4x4 scalar quantization step table used for
// the mark's DCT coefficients. Values increase monotonically with
// frequency so low frequencies (which carry most of the mark's energy)
// retain more precision than high frequencies, which are the first to be
// destroyed by lossy recompression anyway.
var markQuantStep = [4][4]int{
	{16, 16, 24, 32},
	{16, 24, 32, 40},
	{24, 32, 40, 48},
	{32, 40, 48, 56},
}

// Quantize4x4 divides each coefficient of a 4x4 DCT block by its
// per-position step and rounds to the nearest integer.
func Quantize4x4(coef [][]int) ([][]int, error) {
	if len(coef) != 4 {
		return nil, fmt.Errorf("quantize: %w", ErrInvalidBlockSize)
	}
	out := make([][]int, 4)
	for y := 0; y < 4; y++ {
		if len(coef[y]) != 4 {
			return nil, fmt.Errorf("quantize: %w", ErrInvalidBlockSize)
		}
		out[y] = make([]int, 4)
		for x := 0; x < 4; x++ {
			step := markQuantStep[y][x]
			out[y][x] = int(math.Round(float64(coef[y][x]) / float64(step)))
		}
	}
	return out, nil
}

// Dequantize4x4 multiplies each quantized coefficient back by its
// per-position step, the inverse of Quantize4x4.
func Dequantize4x4(q [][]int) ([][]int, error) {
	if len(q) != 4 {
		return nil, fmt.Errorf("dequantize: %w", ErrInvalidBlockSize)
	}
	out := make([][]int, 4)
	for y := 0; y < 4; y++ {
		if len(q[y]) != 4 {
			return nil, fmt.Errorf("dequantize: %w", ErrInvalidBlockSize)
		}
		out[y] = make([]int, 4)
		for x := 0; x < 4; x++ {
			out[y][x] = q[y][x] * markQuantStep[y][x]
		}
	}
	return out, nil
}
