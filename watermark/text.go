package watermark

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.Und)

// normalize lower-cases s and strips every rune not present in Alphabet.
func normalize(s string) string {
	lower := lowerCaser.String(s)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if alphabetIndex(r) >= 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// encodeText lower-cases s, strips non-alphabet runes, truncates/pads to
// maxTextLen, and packs each character as a 6-bit MSB-first code. The
// result is always exactly 6*maxTextLen bits.
func encodeText(s string, maxTextLen int) *BitBuffer {
	clean := normalize(s)
	runes := []rune(clean)
	if len(runes) > maxTextLen {
		runes = runes[:maxTextLen]
	}
	for len(runes) < maxTextLen {
		runes = append(runes, ' ')
	}

	b := NewBitBuffer(maxTextLen * alphabetBits)
	for _, r := range runes {
		b.AppendValue(uint64(alphabetIndex(r)), alphabetBits)
	}
	return b
}

// decodeText reads maxTextLen 6-bit codes, maps them to characters, and
// right-trims trailing spaces.
func decodeText(bits *BitBuffer, maxTextLen int) (string, error) {
	runes := make([]rune, maxTextLen)
	for i := 0; i < maxTextLen; i++ {
		v, err := bits.Value(i*alphabetBits, alphabetBits)
		if err != nil {
			return "", err
		}
		runes[i] = alphabetChar(int(v))
	}
	return strings.TrimRight(string(runes), " "), nil
}
