// Package styletext implements the Unicode character-substitution engine:
// glyph tables that map ASCII letters and digits onto Mathematical
// Alphanumeric (and related) codepoints, combining-mark decorators, the
// Markdown-subset formatter, and codepoint-aware length accounting.
package styletext

import "sort"

// Table maps a source character to its styled replacement.
// Characters absent from a table pass through Transcode unchanged.
// Tables are built once at init and never mutated.
type Table map[rune]string

// Combining marks appended per character by Decorate.
const (
	StrikeMark    rune = 0x0336 // combining long stroke overlay
	UnderlineMark rune = 0x0332 // combining low line
)

// Alphabet tables. Base offsets are the first codepoint of each
// Mathematical Alphanumeric run; overrides patch the holes the Unicode
// standard left in the Letterlike Symbols block.
var (
	// Bold is mathematical sans-serif bold, including digits.
	Bold = buildTable(0x1D5D4, 0x1D5EE, 0x1D7EC, nil)

	// ExtraBold is mathematical sans-serif bold italic. Heavier-looking
	// than Bold; used for top-level headings. No digit run exists.
	ExtraBold = buildTable(0x1D63C, 0x1D656, 0, nil)

	// Italic is mathematical sans-serif italic. No digit run exists.
	Italic = buildTable(0x1D608, 0x1D622, 0, nil)

	// Script is mathematical script. Several letters predate the block
	// and live in Letterlike Symbols instead.
	Script = buildTable(0x1D49C, 0x1D4B6, 0, map[rune]string{
		'B': "ℬ", 'E': "ℰ", 'F': "ℱ", 'H': "ℋ",
		'I': "ℐ", 'L': "ℒ", 'M': "ℳ", 'R': "ℛ",
		'e': "ℯ", 'g': "ℊ", 'o': "ℴ",
	})

	// Fraktur has five Letterlike holes in its uppercase run.
	Fraktur = buildTable(0x1D504, 0x1D51E, 0, map[rune]string{
		'C': "ℭ", 'H': "ℌ", 'I': "ℑ", 'R': "ℜ", 'Z': "ℨ",
	})

	// Monospace is mathematical monospace, including digits.
	Monospace = buildTable(0x1D670, 0x1D68A, 0x1D7F6, nil)

	// SmallCaps draws from the phonetic extensions. There is no small
	// capital X, so 'x' passes through. Both cases map to the same glyphs.
	SmallCaps = smallCapsTable()

	// Circle is the enclosed alphanumerics. Circled digits one through
	// nine are consecutive but zero sits at the end of the block.
	Circle = circleTable()
)

// buildTable expands base offsets into a full letter (and optional digit)
// table, then applies overrides for codepoints outside the run.
func buildTable(upper, lower, digit rune, overrides map[rune]string) Table {
	t := make(Table, 62)

	for i := rune(0); i < 26; i++ {
		t['A'+i] = string(upper + i)
		t['a'+i] = string(lower + i)
	}

	if digit != 0 {
		for i := rune(0); i < 10; i++ {
			t['0'+i] = string(digit + i)
		}
	}

	for r, s := range overrides {
		t[r] = s
	}

	return t
}

func smallCapsTable() Table {
	small := map[rune]string{
		'a': "ᴀ", 'b': "ʙ", 'c': "ᴄ", 'd': "ᴅ",
		'e': "ᴇ", 'f': "ꜰ", 'g': "ɢ", 'h': "ʜ",
		'i': "ɪ", 'j': "ᴊ", 'k': "ᴋ", 'l': "ʟ",
		'm': "ᴍ", 'n': "ɴ", 'o': "ᴏ", 'p': "ᴘ",
		'q': "ǫ", 'r': "ʀ", 's': "ꜱ", 't': "ᴛ",
		'u': "ᴜ", 'v': "ᴠ", 'w': "ᴡ", 'y': "ʏ",
		'z': "ᴢ",
	}

	t := make(Table, 50)
	for r, s := range small {
		t[r] = s
		t[r-'a'+'A'] = s
	}

	return t
}

func circleTable() Table {
	t := buildTable(0x24B6, 0x24D0, 0, map[rune]string{'0': "⓪"})
	for i := rune(1); i <= 9; i++ {
		t['0'+i] = string(0x2460 + i - 1)
	}

	return t
}

// styles maps the user-facing style names to their tables.
var styles = map[string]Table{
	"bold":      Bold,
	"extrabold": ExtraBold,
	"italic":    Italic,
	"smallcaps": SmallCaps,
	"script":    Script,
	"circle":    Circle,
	"fraktur":   Fraktur,
	"monospace": Monospace,
}

// Lookup returns the glyph table for a style name.
func Lookup(name string) (Table, bool) {
	t, ok := styles[name]

	return t, ok
}

// Names returns all style names, sorted.
func Names() []string {
	names := make([]string, 0, len(styles))
	for n := range styles {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}
