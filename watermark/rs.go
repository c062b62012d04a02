package watermark

import "fmt"

// RSCodec is the seam the embed/extract pipeline drives for Reed-Solomon
// framing: a systematic encoder/decoder over GF(256) parameterized by
// the number of parity bytes. The default implementation, gf256RS, is a
// from-scratch generator-polynomial codec; callers may substitute their
// own via Parameters.RS.
type RSCodec interface {
	// Encode appends k parity bytes to data, returning a len(data)+k
	// codeword.
	Encode(data []byte, k int) ([]byte, error)

	// Decode corrects up to k/2 byte errors in codeword and returns the
	// leading len(codeword)-k data bytes. Returns ErrUncorrectable if the
	// codeword carries more errors than k/2 parity bytes can repair.
	Decode(codeword []byte, k int) ([]byte, error)
}

// gf256RS is the default RSCodec: a systematic Reed-Solomon code over
// GF(256) with primitive polynomial 0x11D, generator roots
// alpha^0..alpha^(k-1).
type gf256RS struct{}

// NewRSCodec returns the default from-scratch GF(256) Reed-Solomon codec.
func NewRSCodec() RSCodec {
	return gf256RS{}
}

func generatorPoly(k int) gfPoly {
	g := gfPoly{1}
	for i := 0; i < k; i++ {
		root := gf.pow(2, i) // alpha^i, using 2 as the field generator
		g = gf.polyMul(g, gfPoly{1, root})
	}
	return g
}

// Encode computes the remainder of data(x)*x^k modulo the generator
// polynomial and appends it to data as k parity bytes (the systematic
// Reed-Solomon encode).
func (gf256RS) Encode(data []byte, k int) ([]byte, error) {
	if k < 0 {
		return nil, fmt.Errorf("rs encode: %w", ErrInvalidParameters)
	}
	if k == 0 {
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}

	shifted := make(gfPoly, len(data)+k)
	copy(shifted, data)

	g := generatorPoly(k)
	_, rem := gf.polyDivMod(shifted, g)

	out := make([]byte, len(data)+k)
	copy(out, data)
	copy(out[len(data):], rem)
	return out, nil
}

// Decode computes syndromes, and if all are zero the codeword is clean.
// Otherwise it runs Berlekamp-Massey to find the error locator, Chien
// search for error positions, and the Forney formula for error
// magnitudes. Returns ErrUncorrectable when the codeword cannot be fully
// corrected by k parity bytes.
func (gf256RS) Decode(codeword []byte, k int) ([]byte, error) {
	if k < 0 || k > len(codeword) {
		return nil, fmt.Errorf("rs decode: %w", ErrInvalidParameters)
	}
	if k == 0 {
		out := make([]byte, len(codeword))
		copy(out, codeword)
		return out, nil
	}

	n := len(codeword)
	dataLen := n - k

	syn := syndromes(codeword, k)
	if allZero(syn) {
		out := make([]byte, dataLen)
		copy(out, codeword[:dataLen])
		return out, nil
	}

	locator := berlekampMassey(syn)
	numErrors := len(locator) - 1
	if numErrors <= 0 || numErrors > k/2 {
		return nil, fmt.Errorf("rs decode: %w", ErrUncorrectable)
	}

	positions, ok := chienSearch(locator, n)
	if !ok || len(positions) != numErrors {
		return nil, fmt.Errorf("rs decode: %w", ErrUncorrectable)
	}

	corrected := append([]byte(nil), codeword...)
	if err := forneyCorrect(corrected, syn, locator, positions, k); err != nil {
		return nil, fmt.Errorf("rs decode: %w", ErrUncorrectable)
	}

	if !allZero(syndromes(corrected, k)) {
		return nil, fmt.Errorf("rs decode: %w", ErrUncorrectable)
	}

	out := make([]byte, dataLen)
	copy(out, corrected[:dataLen])
	return out, nil
}

// syndromes returns S_0..S_{k-1} where S_i = C(alpha^i), C evaluated via
// the codeword treated as a polynomial (codeword[0] is the highest-degree
// term, matching the MSB-first [data||parity] layout).
func syndromes(codeword []byte, k int) []byte {
	s := make([]byte, k)
	for i := 0; i < k; i++ {
		s[i] = gf.polyEval(gfPoly(codeword), gf.pow(2, i))
	}
	return s
}

func allZero(bs []byte) bool {
	for _, b := range bs {
		if b != 0 {
			return false
		}
	}
	return true
}

// berlekampMassey synthesizes the shortest LFSR (the error locator
// polynomial, low-order-first) that generates the syndrome sequence.
// Returns the locator with coefficient 0 (constant term, Lambda(0)) equal
// to 1.
func berlekampMassey(syn []byte) gfPoly {
	k := len(syn)
	c := make(gfPoly, k+1)
	b := make(gfPoly, k+1)
	c[0], b[0] = 1, 1
	l, m := 0, 1
	var bCoef byte = 1

	for n := 0; n < k; n++ {
		d := syn[n]
		for i := 1; i <= l; i++ {
			d ^= gf.mul(c[i], syn[n-i])
		}
		if d == 0 {
			m++
			continue
		}
		t := append(gfPoly(nil), c...)
		coef := gf.div(d, bCoef)
		for i := 0; i < len(b); i++ {
			idx := i + m
			if idx < len(c) {
				c[idx] ^= gf.mul(coef, b[i])
			}
		}
		if 2*l <= n {
			l = n + 1 - l
			b = t
			bCoef = d
			m = 1
		} else {
			m++
		}
	}
	return c[:l+1]
}

// chienSearch finds the roots of locator (low-order-first) among
// alpha^-0..alpha^-(n-1) by brute-force evaluation, returning the
// corresponding codeword byte positions (0 = first/highest-degree byte).
func chienSearch(locator gfPoly, n int) ([]int, bool) {
	var positions []int
	for j := 0; j < n; j++ {
		x := gf.inverse(gf.pow(2, j)) // alpha^-j
		if evalLowOrder(locator, x) == 0 {
			positions = append(positions, n-1-j)
		}
	}
	return positions, true
}

// evalLowOrder evaluates a low-order-first polynomial (p[i] is the
// coefficient of x^i) at x.
func evalLowOrder(p gfPoly, x byte) byte {
	var y byte
	var xp byte = 1
	for _, c := range p {
		y ^= gf.mul(c, xp)
		xp = gf.mul(xp, x)
	}
	return y
}

// derivativeLowOrder returns the formal derivative of a low-order-first
// polynomial over a characteristic-2 field: only odd-degree terms survive.
func derivativeLowOrder(p gfPoly) gfPoly {
	if len(p) <= 1 {
		return gfPoly{0}
	}
	out := make(gfPoly, len(p)-1)
	for i := 1; i < len(p); i++ {
		if i%2 == 1 {
			out[i-1] = p[i]
		}
	}
	return out
}

// forneyCorrect applies the Forney algorithm to compute error magnitudes
// at the given byte positions and XORs them into codeword in place.
func forneyCorrect(codeword []byte, syn []byte, locator gfPoly, positions []int, k int) error {
	n := len(codeword)

	synLow := make(gfPoly, len(syn))
	copy(synLow, syn) // syn[i] is already the coefficient of x^i

	omega := gf.polyMul(synLow, locator)
	if len(omega) > k {
		omega = omega[:k]
	}

	lambdaPrime := derivativeLowOrder(locator)

	for _, p := range positions {
		j := n - 1 - p
		xInv := gf.inverse(gf.pow(2, j)) // alpha^-j = root of locator
		num := evalLowOrder(omega, xInv)
		den := evalLowOrder(lambdaPrime, xInv)
		if den == 0 {
			return fmt.Errorf("rs decode: %w", ErrUncorrectable)
		}
		// With generator roots starting at alpha^0 the Forney magnitude
		// carries an extra factor X_j = alpha^j.
		magnitude := gf.mul(gf.pow(2, j), gf.div(num, den))
		codeword[p] ^= magnitude
	}
	return nil
}
