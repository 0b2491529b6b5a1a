package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShow_RendersText(t *testing.T) {
	var out bytes.Buffer
	Show("𝗛𝗲𝗹𝗹𝗼 world", Options{Width: 40, Writer: &out})

	assert.Contains(t, out.String(), "𝗛𝗲𝗹𝗹𝗼 world")
	assert.Contains(t, out.String(), "╭", "expected rounded border")
}

func TestShow_Title(t *testing.T) {
	var out bytes.Buffer
	Show("body text", Options{Width: 40, Writer: &out, Title: "linkedin"})

	assert.Contains(t, out.String(), "linkedin")
	assert.Contains(t, out.String(), "body text")
}

func TestShow_EmptyText_NoOutput(t *testing.T) {
	var out bytes.Buffer
	Show("   \n  ", Options{Width: 40, Writer: &out})

	assert.Empty(t, out.Bytes(), "expected no output for blank text")
}

func TestShow_WrapsLongLines(t *testing.T) {
	var out bytes.Buffer
	Show(strings.Repeat("word ", 40), Options{Width: 30, Writer: &out})

	for _, line := range strings.Split(out.String(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 34, "line wider than panel: %q", line)
	}
}

func TestShow_MultilineText(t *testing.T) {
	var out bytes.Buffer
	Show("line one\n\nline two", Options{Width: 40, Writer: &out})

	assert.Contains(t, out.String(), "line one")
	assert.Contains(t, out.String(), "line two")
}
