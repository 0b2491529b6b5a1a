package styletext_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dedene/postfmt-cli/internal/styletext"
)

func allTables() map[string]styletext.Table {
	tables := make(map[string]styletext.Table)
	for _, name := range styletext.Names() {
		t, _ := styletext.Lookup(name)
		tables[name] = t
	}

	return tables
}

func TestTranscode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		table    styletext.Table
		expected string
	}{
		{"empty string", "", styletext.Bold, ""},
		{"bold word", "bold", styletext.Bold, "\U0001D5EF\U0001D5FC\U0001D5F9\U0001D5F1"},
		{"bold uppercase", "AB", styletext.Bold, "\U0001D5D4\U0001D5D5"},
		{"bold digits", "42", styletext.Bold, "\U0001D7F0\U0001D7EE"},
		{"italic word", "it", styletext.Italic, "\U0001D62A\U0001D635"},
		{"italic digits pass through", "a1", styletext.Italic, "\U0001D622" + "1"},
		{"extra bold uppercase", "HI", styletext.ExtraBold, "\U0001D643\U0001D644"},
		{"script letterlike hole e", "e", styletext.Script, "ℯ"},
		{"script letterlike hole B", "B", styletext.Script, "ℬ"},
		{"script regular letter", "A", styletext.Script, "\U0001D49C"},
		{"fraktur letterlike hole H", "H", styletext.Fraktur, "ℌ"},
		{"fraktur regular letter", "a", styletext.Fraktur, "\U0001D51E"},
		{"monospace", "go", styletext.Monospace, "\U0001D690\U0001D698"},
		{"small caps", "abc", styletext.SmallCaps, "ᴀʙᴄ"},
		{"small caps uppercase input", "ABC", styletext.SmallCaps, "ᴀʙᴄ"},
		{"small caps x passes through", "fox", styletext.SmallCaps, "ꜰᴏx"},
		{"circled letters", "Aa", styletext.Circle, "Ⓐⓐ"},
		{"circled digit zero", "0", styletext.Circle, "⓪"},
		{"circled digit nine", "9", styletext.Circle, "⑨"},
		{"punctuation passes through", "a, b!", styletext.Bold, "\U0001D5EE, \U0001D5EF!"},
		{"non latin passes through", "héllo", styletext.Bold, "\U0001D5F5é\U0001D5F9\U0001D5F9\U0001D5FC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, styletext.Transcode(tt.input, tt.table))
		})
	}
}

// Characters absent from every table must come back untouched.
func TestTranscodeIdentityOnUnmapped(t *testing.T) {
	const input = " .,;:!?-—~*#\n\t"

	for name, table := range allTables() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, input, styletext.Transcode(input, table))
		})
	}
}

// Every mapping is one source character to one styled codepoint, so the
// code-point count never changes.
func TestTranscodeLengthPreservation(t *testing.T) {
	inputs := []string{
		"", "The quick brown Fox jumps over 9 lazy dogs!", "0123456789",
		"MIXED case And 123", "punctuation, only!?",
	}

	for name, table := range allTables() {
		t.Run(name, func(t *testing.T) {
			for _, input := range inputs {
				got := styletext.Transcode(input, table)
				assert.Equal(t, styletext.CodePointLength(input), styletext.CodePointLength(got),
					"length changed for %q", input)
			}
		})
	}
}

func TestDecorate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		mark     rune
		expected string
	}{
		{"empty yields empty", "", styletext.StrikeMark, ""},
		{"single char", "a", styletext.StrikeMark, "a̶"},
		{"strikethrough word", "no", styletext.StrikeMark, "n̶o̶"},
		{"underline word", "ok", styletext.UnderlineMark, "o̲k̲"},
		{"spaces and digits get marks", "a 1", styletext.StrikeMark, "a̶ ̶1̶"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, styletext.Decorate(tt.input, tt.mark))
		})
	}
}

// One mark per source code point, no more, no less.
func TestDecorateMarkCount(t *testing.T) {
	inputs := []string{"hello", "a b c", "日本語", "1234567890"}

	for _, input := range inputs {
		got := styletext.Decorate(input, styletext.StrikeMark)

		assert.Equal(t, styletext.CodePointLength(input),
			strings.Count(got, "̶"), "mark count for %q", input)
		assert.Equal(t, 2*styletext.CodePointLength(input),
			styletext.CodePointLength(got), "total length for %q", input)
	}
}

// Decorations compose with styled text and with each other.
func TestDecorateComposes(t *testing.T) {
	bold := styletext.Transcode("hi", styletext.Bold)
	both := styletext.Decorate(styletext.Decorate(bold, styletext.StrikeMark), styletext.UnderlineMark)

	assert.Equal(t, 2, strings.Count(both, "̶"))
	assert.Equal(t, 2, strings.Count(both, "̲"))
}

func TestStrip(t *testing.T) {
	for name, table := range allTables() {
		t.Run(name, func(t *testing.T) {
			const input = "the quick brown fox 123"
			assert.Equal(t, input, styletext.Strip(styletext.Transcode(input, table)))
		})
	}

	t.Run("removes combining marks", func(t *testing.T) {
		assert.Equal(t, "gone", styletext.Strip(styletext.Decorate("gone", styletext.StrikeMark)))
		assert.Equal(t, "under", styletext.Strip(styletext.Decorate("under", styletext.UnderlineMark)))
	})

	t.Run("plain text untouched", func(t *testing.T) {
		assert.Equal(t, "plain text", styletext.Strip("plain text"))
	})
}

func TestNamesAndLookup(t *testing.T) {
	names := styletext.Names()

	assert.Equal(t, []string{
		"bold", "circle", "extrabold", "fraktur",
		"italic", "monospace", "script", "smallcaps",
	}, names)

	for _, name := range names {
		table, ok := styletext.Lookup(name)
		assert.True(t, ok, name)
		assert.NotEmpty(t, table, name)
	}

	_, ok := styletext.Lookup("comic-sans")
	assert.False(t, ok)
}
