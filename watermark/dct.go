package watermark

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// dctMatrixCache caches the precomputed N x N orthonormal DCT-II cosine
// matrix per block size, since it only depends on N and is reused across
// every block of a given size.
var (
	dctMatrixCache   = map[int]*mat.Dense{}
	dctMatrixCacheMu sync.Mutex
)

func cosineMatrix(n int) *mat.Dense {
	dctMatrixCacheMu.Lock()
	defer dctMatrixCacheMu.Unlock()

	if m, ok := dctMatrixCache[n]; ok {
		return m
	}

	data := make([]float64, n*n)
	for k := 0; k < n; k++ {
		alpha := math.Sqrt(2.0 / float64(n))
		if k == 0 {
			alpha = math.Sqrt(1.0 / float64(n))
		}
		for i := 0; i < n; i++ {
			data[k*n+i] = alpha * math.Cos(math.Pi/float64(n)*(float64(i)+0.5)*float64(k))
		}
	}
	m := mat.NewDense(n, n, data)
	dctMatrixCache[n] = m
	return m
}

// blockToDense converts an NxN integer block into a gonum float64 matrix.
func blockToDense(block [][]int, n int) *mat.Dense {
	data := make([]float64, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			data[y*n+x] = float64(block[y][x])
		}
	}
	return mat.NewDense(n, n, data)
}

func denseToBlockRounded(m *mat.Dense, n int) [][]int {
	out := make([][]int, n)
	for y := 0; y < n; y++ {
		out[y] = make([]int, n)
		for x := 0; x < n; x++ {
			out[y][x] = int(math.Round(m.At(y, x)))
		}
	}
	return out
}

// ForwardDCT2D computes the 2D orthonormal DCT-II of an NxN integer block
// (N in {4, 8}) via the precomputed cosine matrix: Y = C * X * C^T. Output
// coefficients are rounded to the nearest integer.
func ForwardDCT2D(block [][]int) ([][]int, error) {
	n := len(block)
	if n != 4 && n != 8 {
		return nil, fmt.Errorf("forward dct: block size %d: %w", n, ErrInvalidBlockSize)
	}
	for _, row := range block {
		if len(row) != n {
			return nil, fmt.Errorf("forward dct: non-square block: %w", ErrInvalidBlockSize)
		}
	}

	c := cosineMatrix(n)
	x := blockToDense(block, n)

	var tmp, y mat.Dense
	tmp.Mul(c, x)
	y.Mul(&tmp, c.T())

	return denseToBlockRounded(&y, n), nil
}

// InverseDCT2D computes the 2D inverse orthonormal DCT-II of an NxN
// integer coefficient block: X = C^T * Y * C. Output is rounded to the
// nearest integer but not range-limited; callers that reconstruct pixel
// intensities should clamp to [0, 255] themselves (see ClampByte).
func InverseDCT2D(coef [][]int) ([][]int, error) {
	n := len(coef)
	if n != 4 && n != 8 {
		return nil, fmt.Errorf("inverse dct: block size %d: %w", n, ErrInvalidBlockSize)
	}
	for _, row := range coef {
		if len(row) != n {
			return nil, fmt.Errorf("inverse dct: non-square block: %w", ErrInvalidBlockSize)
		}
	}

	c := cosineMatrix(n)
	y := blockToDense(coef, n)

	var tmp, x mat.Dense
	tmp.Mul(c.T(), y)
	x.Mul(&tmp, c)

	return denseToBlockRounded(&x, n), nil
}

// ClampByte clamps v to the [0, 255] range a display-ready luminance
// sample must occupy.
func ClampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
