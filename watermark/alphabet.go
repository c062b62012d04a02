package watermark

import "golang.org/x/exp/slices"

// Alphabet is the fixed 64-symbol character set the text codec maps
// payload characters onto. A character's index in this string is its
// 6-bit code; characters outside the alphabet are stripped by encodeText.
const Alphabet = " abcdefghijklmnopqrstuvwxyz0123456789.-,:/()?!\"'#*+_%$&=<>[];@§\n"

const alphabetBits = 6
const alphabetSize = 64

var alphabetRuneTable = []rune(Alphabet)

func init() {
	if len(alphabetRuneTable) != alphabetSize {
		panic("watermark: Alphabet must contain exactly 64 symbols")
	}
}

func alphabetRunes() []rune {
	return alphabetRuneTable
}

// alphabetIndex returns the 6-bit code for r, or -1 if r is not a member.
func alphabetIndex(r rune) int {
	return slices.Index(alphabetRuneTable, r)
}

// alphabetChar returns the character at code c.
func alphabetChar(c int) rune {
	runes := alphabetRunes()
	if c < 0 || c >= len(runes) {
		return ' '
	}
	return runes[c]
}
