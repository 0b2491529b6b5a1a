package styletext

import "strings"

// Transcode applies a glyph table to text, one code point at a time.
// Mapped characters are replaced, everything else passes through, so the
// result always has the same code-point count as the input.
func Transcode(text string, table Table) string {
	var b strings.Builder
	b.Grow(len(text) * 2)

	for _, r := range text {
		if repl, ok := table[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Decorate appends the combining mark after every code point of text.
// It applies uniformly: digits, spaces, punctuation, and already-styled
// glyphs all receive the mark, so decorations compose with any table.
func Decorate(text string, mark rune) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text) * 3)

	for _, r := range text {
		b.WriteRune(r)
		b.WriteRune(mark)
	}

	return b.String()
}

// reverse maps every styled codepoint back to its ASCII source. All
// replacement sequences in the tables are single codepoints, so the
// inverse is a plain rune-to-rune map.
var reverse = buildReverse()

func buildReverse() map[rune]rune {
	rev := make(map[rune]rune, 62*len(styles))
	for _, t := range styles {
		for src, repl := range t {
			for _, r := range repl {
				rev[r] = src
			}
		}
	}

	// Small caps map both cases to one glyph; prefer the lowercase source.
	for src, repl := range SmallCaps {
		if src >= 'a' && src <= 'z' {
			for _, r := range repl {
				rev[r] = src
			}
		}
	}

	return rev
}

// Strip undoes the styling: styled glyphs revert to ASCII and the
// strikethrough/underline combining marks are removed. Unknown characters
// are kept as-is.
func Strip(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if r == StrikeMark || r == UnderlineMark {
			continue
		}

		if src, ok := reverse[r]; ok {
			b.WriteRune(src)
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}
