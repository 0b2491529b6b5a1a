// Package preview renders a bordered panel showing styled text before it is
// printed or copied, so glyph substitutions can be eyeballed in context.
package preview

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Options configures the preview panel.
type Options struct {
	// Width in character cells. 0 = auto-detect from terminal.
	Width int
	// Writer receives the rendered panel. Typically os.Stderr.
	Writer io.Writer
	// Title is shown above the panel body.
	Title string
	// Color enables border and title styling.
	Color bool
}

// Show renders text inside a bordered panel to opts.Writer.
// Empty text produces no output. Rendering is best effort and never fails.
func Show(text string, opts Options) {
	if strings.TrimSpace(text) == "" {
		return
	}

	const (
		minPanelWidth = 24
		maxPanelWidth = 76
	)

	width := opts.Width
	if width <= 0 {
		w, _, sizeErr := term.GetSize(int(os.Stderr.Fd()))
		if sizeErr != nil || w <= 0 {
			width = 60
		} else {
			width = w - 4
		}
		width = max(minPanelWidth, min(maxPanelWidth, width))
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(width)

	title := lipgloss.NewStyle().Bold(true)

	if opts.Color {
		panel = panel.BorderForeground(lipgloss.Color("#0ea5e9"))
		title = title.Foreground(lipgloss.Color("#0ea5e9"))
	}

	body := text
	if opts.Title != "" {
		body = title.Render(opts.Title) + "\n\n" + text
	}

	fmt.Fprintln(opts.Writer, panel.Render(body))
}
