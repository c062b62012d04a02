package watermark

// mark_paint.go paints the 128x128 mark bitmap from the codeword's bits
// and, on extract, recovers it by box-averaging and thresholding.

// paintMark renders codeword (cells*cells bits) into a markGridSize x
// markGridSize bitmap: cell (cx, cy) covers the b x b pixel box at
// (cx*b, cy*b) and is painted 255 if bit cy*cells+cx is set, else 0.
func paintMark(codeword *BitBuffer, cells, b int) ([][]int, error) {
	mark := newGrid(markGridSize)
	for cy := 0; cy < cells; cy++ {
		for cx := 0; cx < cells; cx++ {
			bit, err := codeword.Bit(cy*cells + cx)
			if err != nil {
				return nil, err
			}
			val := 0
			if bit {
				val = 255
			}
			for y := 0; y < b; y++ {
				for x := 0; x < b; x++ {
					mark[cy*b+y][cx*b+x] = val
				}
			}
		}
	}
	return mark, nil
}

// readMark is the inverse of paintMark: it box-averages each b x b cell
// of mark and thresholds the mean at 128 to recover cells*cells bits.
func readMark(mark [][]int, cells, b int) *BitBuffer {
	out := NewBitBuffer(cells * cells)
	for cy := 0; cy < cells; cy++ {
		for cx := 0; cx < cells; cx++ {
			sum := 0
			for y := 0; y < b; y++ {
				for x := 0; x < b; x++ {
					sum += mark[cy*b+y][cx*b+x]
				}
			}
			mean := sum / (b * b)
			out.Append(mean >= 128)
		}
	}
	return out
}
