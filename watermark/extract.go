package watermark

// extract.go implements the extractor orchestration: the exact inverse
// of embed.go's pipeline, ending in an RS-corrected data bit buffer.

func (w *Watermark) extractBits(img Image) (*BitBuffer, error) {
	cells := markGridSize / w.params.BitBoxSize

	padded, pw, ph := padToBlockMultiple(img, coverBlockSize)
	if err := requireCoverPlaneSize(pw, ph); err != nil {
		return nil, err
	}
	plane := luminancePlane(padded, pw, ph)

	v := make([]int, markGridSize*markGridSize)
	if err := extractVectorFromCover(plane, v); err != nil {
		return nil, err
	}

	scatteredCoef := newGrid(markGridSize)
	if err := one2two(v, scatteredCoef); err != nil {
		return nil, err
	}

	permEmbed := generatePermutation(w.params.SeedEmbedding, markGridSize*markGridSize)
	coef, err := applyPermutationToGrid(scatteredCoef, invertPermutation(permEmbed))
	if err != nil {
		return nil, err
	}
	w.debugDump("coefficients", coef)

	scattered, err := coefficientsToMark(coef)
	if err != nil {
		return nil, err
	}

	permMark := generatePermutation(w.params.SeedWatermark, markGridSize*markGridSize)
	mark, err := applyPermutationToGrid(scattered, invertPermutation(permMark))
	if err != nil {
		return nil, err
	}
	w.debugDump("mark", mark)

	codeword := readMark(mark, cells, w.params.BitBoxSize)
	return rsDecodeBits(w.rs(), codeword, w.params.ParityBytes)
}
