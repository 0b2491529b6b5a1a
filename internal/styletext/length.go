package styletext

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// CodePointLength counts Unicode scalar values. Styled glyphs sit outside
// the BMP, so byte or UTF-16 length would over-count them; platform
// character limits count scalar values.
func CodePointLength(s string) int {
	return utf8.RuneCountInString(s)
}

// GraphemeLength counts user-perceived characters (grapheme clusters).
// A decorated character plus its combining mark counts as one.
func GraphemeLength(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// formattedRanges are the stylized Unicode blocks the glyph tables emit:
// enclosed alphanumerics, fullwidth forms, mathematical alphanumerics,
// and the enclosed alphanumeric supplement.
var formattedRanges = [...]struct{ lo, hi rune }{
	{0x24B6, 0x24EA},
	{0xFF01, 0xFF5E},
	{0x1D400, 0x1D7FF},
	{0x1F100, 0x1F1FF},
}

// IsFormatted reports whether a codepoint belongs to one of the stylized
// blocks. Screen readers spell these out glyph by glyph, so downstream
// compatibility scoring keys off this classification.
func IsFormatted(r rune) bool {
	for _, rng := range formattedRanges {
		if r >= rng.lo && r <= rng.hi {
			return true
		}
	}

	return false
}

// FormattedRatio returns the share of codepoints in s that are stylized,
// between 0 and 1. Empty input is 0.
func FormattedRatio(s string) float64 {
	total := 0
	formatted := 0

	for _, r := range s {
		total++
		if IsFormatted(r) {
			formatted++
		}
	}

	if total == 0 {
		return 0
	}

	return float64(formatted) / float64(total)
}
