package watermark

// embed.go implements the embedder orchestration: payload bits -> RS
// codeword -> mark bitmap -> two permuted DCT/quantize stages -> zig-zag
// vector -> mid-band substitution into the cover's luminance plane ->
// HSB blend back into the cover image.

func (w *Watermark) embedBits(img Image, payload *BitBuffer) error {
	cap := w.capacity
	cells := markGridSize / w.params.BitBoxSize

	dataBits := payload.PadOrTruncate(cap.MaxBitsData)
	codeword, err := rsEncodeBits(w.rs(), dataBits, w.params.ParityBytes)
	if err != nil {
		return err
	}

	mark, err := paintMark(codeword, cells, w.params.BitBoxSize)
	if err != nil {
		return err
	}
	w.debugDump("mark", mark)

	permMark := generatePermutation(w.params.SeedWatermark, markGridSize*markGridSize)
	scattered, err := applyPermutationToGrid(mark, permMark)
	if err != nil {
		return err
	}

	coef, err := markToCoefficients(scattered)
	if err != nil {
		return err
	}
	w.debugDump("coefficients", coef)

	permEmbed := generatePermutation(w.params.SeedEmbedding, markGridSize*markGridSize)
	scatteredCoef, err := applyPermutationToGrid(coef, permEmbed)
	if err != nil {
		return err
	}

	v := make([]int, markGridSize*markGridSize)
	if err := two2one(scatteredCoef, v); err != nil {
		return err
	}

	padded, pw, ph := padToBlockMultiple(img, coverBlockSize)
	if err := requireCoverPlaneSize(pw, ph); err != nil {
		return err
	}

	plane := luminancePlane(padded, pw, ph)
	recon, err := embedVectorIntoCover(plane, v)
	if err != nil {
		return err
	}

	blendInto(img, padded, recon, w.params.Opacity)
	return nil
}

// blendInto writes each original pixel of img (cropped to its own,
// unpadded bounds) back with its brightness blended toward the
// reconstructed luminance plane by opacity alpha.
func blendInto(img Image, padded *RGBAImage, recon [][]int, alpha float64) {
	w, h := img.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := padded.At(x, y)
			hue, sat, oldV := rgbToHSB(r, g, b)
			newLum := float64(recon[y][x]) / 255.0
			newV := oldV*(1-alpha) + newLum*alpha
			nr, ng, nb := hsbToRGB(hue, sat, newV)
			img.Set(x, y, nr, ng, nb)
		}
	}
}
