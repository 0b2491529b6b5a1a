// Package tui provides the interactive Bubbletea picker for choosing a
// lettering style and entering text to transform.
package tui

import (
	"github.com/dedene/postfmt-cli/internal/styletext"
)

// StyleItem wraps a style name to implement the bubbles list.DefaultItem
// interface. The description shows the style applied to a sample phrase so
// the picker doubles as a live preview.
type StyleItem struct {
	name  string
	table styletext.Table
}

// NewStyleItem creates a StyleItem for a named glyph table.
func NewStyleItem(name string, table styletext.Table) StyleItem {
	return StyleItem{name: name, table: table}
}

// Title returns the style name for list display.
func (i StyleItem) Title() string { return i.name }

// Description returns a transcoded sample for list display.
func (i StyleItem) Description() string {
	return styletext.Transcode("The quick brown Fox 123", i.table)
}

// FilterValue returns the style name for fuzzy matching.
func (i StyleItem) FilterValue() string { return i.name }

// Name returns the wrapped style name.
func (i StyleItem) Name() string { return i.name }

// Table returns the wrapped glyph table.
func (i StyleItem) Table() styletext.Table { return i.table }
