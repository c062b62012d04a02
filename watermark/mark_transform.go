package watermark

// mark_transform.go drives the 4x4-block DCT/quantize stage that turns
// a scattered mark bitmap into a coefficient grid, and its inverse.

const markBlockSize = 4
const markBlocksPerSide = markGridSize / markBlockSize

func extractBlock(grid [][]int, bx, by, size int) [][]int {
	block := newGrid(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			block[y][x] = grid[by*size+y][bx*size+x]
		}
	}
	return block
}

func placeBlock(grid, block [][]int, bx, by, size int) {
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			grid[by*size+y][bx*size+x] = block[y][x]
		}
	}
}

// markToCoefficients applies forward DCT + quantization to every 4x4
// block of a 128x128 mark grid, in raster order.
func markToCoefficients(mark [][]int) ([][]int, error) {
	q := newGrid(markGridSize)
	for by := 0; by < markBlocksPerSide; by++ {
		for bx := 0; bx < markBlocksPerSide; bx++ {
			block := extractBlock(mark, bx, by, markBlockSize)
			coef, err := ForwardDCT2D(block)
			if err != nil {
				return nil, err
			}
			qb, err := Quantize4x4(coef)
			if err != nil {
				return nil, err
			}
			placeBlock(q, qb, bx, by, markBlockSize)
		}
	}
	return q, nil
}

// coefficientsToMark is the inverse of markToCoefficients: dequantize,
// then inverse DCT, every 4x4 block.
func coefficientsToMark(q [][]int) ([][]int, error) {
	mark := newGrid(markGridSize)
	for by := 0; by < markBlocksPerSide; by++ {
		for bx := 0; bx < markBlocksPerSide; bx++ {
			qb := extractBlock(q, bx, by, markBlockSize)
			deq, err := Dequantize4x4(qb)
			if err != nil {
				return nil, err
			}
			block, err := InverseDCT2D(deq)
			if err != nil {
				return nil, err
			}
			placeBlock(mark, block, bx, by, markBlockSize)
		}
	}
	return mark, nil
}
