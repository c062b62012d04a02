package watermark

import "fmt"

// Default parameter values.
const (
	DefaultBitBoxSize    = 10
	DefaultParityBytes   = 6
	DefaultOpacity       = 1.0
	DefaultSeedEmbedding = int64(24)
	DefaultSeedWatermark = int64(19)
)

// Parameters configures a Watermark codec. Once passed to New, the
// resulting Watermark is immutable.
type Parameters struct {
	// BitBoxSize is the number of cover pixels per mark bit cell, b.
	BitBoxSize int

	// ParityBytes is the number of Reed-Solomon parity bytes, k. Zero
	// disables error correction.
	ParityBytes int

	// Opacity blends the reconstructed luminance into the original
	// pixel's brightness, in [0, 1]. 1.0 fully replaces it.
	Opacity float64

	// SeedEmbedding and SeedWatermark key the two permutations that
	// scatter the mark; identical values must be used at extract time.
	SeedEmbedding int64
	SeedWatermark int64

	// Debug enables raw matrix dumps during embed/extract.
	Debug bool

	// RS is the Reed-Solomon codec to use. Defaults to the built-in
	// GF(256) implementation when nil.
	RS RSCodec
}

// DefaultParameters returns the codec's default parameter set: b=10, k=6,
// alpha=1.0, s1=24, s2=19.
func DefaultParameters() Parameters {
	return Parameters{
		BitBoxSize:    DefaultBitBoxSize,
		ParityBytes:   DefaultParityBytes,
		Opacity:       DefaultOpacity,
		SeedEmbedding: DefaultSeedEmbedding,
		SeedWatermark: DefaultSeedWatermark,
	}
}

// Capacity bundles the payload sizes derived from a Parameters value.
type Capacity struct {
	MaxBitsTotal int
	MaxBitsData  int
	MaxTextLen   int
}

// derive computes Capacity from p and validates it. Returns
// ErrInvalidParameters if the derived data capacity is negative or the
// opacity is out of range.
func (p Parameters) derive() (Capacity, error) {
	if p.BitBoxSize <= 0 || p.BitBoxSize > markGridSize {
		return Capacity{}, fmt.Errorf("bitBoxSize %d: %w", p.BitBoxSize, ErrInvalidParameters)
	}
	if p.ParityBytes < 0 {
		return Capacity{}, fmt.Errorf("parityBytes %d: %w", p.ParityBytes, ErrInvalidParameters)
	}
	if p.Opacity < 0 || p.Opacity > 1 {
		return Capacity{}, fmt.Errorf("opacity %f: %w", p.Opacity, ErrInvalidParameters)
	}

	cells := markGridSize / p.BitBoxSize
	maxBitsTotal := cells * cells
	maxBitsData := maxBitsTotal - 8*p.ParityBytes
	if maxBitsData < 0 {
		return Capacity{}, fmt.Errorf("maxBitsData %d < 0: %w", maxBitsData, ErrInvalidParameters)
	}
	if p.ParityBytes > 0 && maxBitsData%8 != 0 {
		return Capacity{}, fmt.Errorf("maxBitsData %d not byte-aligned for Reed-Solomon: %w", maxBitsData, ErrInvalidParameters)
	}
	maxTextLen := maxBitsData / alphabetBits

	return Capacity{
		MaxBitsTotal: maxBitsTotal,
		MaxBitsData:  maxBitsData,
		MaxTextLen:   maxTextLen,
	}, nil
}
