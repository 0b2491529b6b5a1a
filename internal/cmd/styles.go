package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/dedene/postfmt-cli/internal/actions"
	"github.com/dedene/postfmt-cli/internal/config"
	"github.com/dedene/postfmt-cli/internal/outfmt"
	"github.com/dedene/postfmt-cli/internal/styletext"
	"github.com/dedene/postfmt-cli/internal/tui"
	"github.com/dedene/postfmt-cli/internal/ui"
)

const sampleText = "The quick brown Fox 123"

// StylesCmd lists or previews lettering styles.
type StylesCmd struct {
	Name string `arg:"" optional:"" help:"Style name for detail view"`

	Sample string `help:"Sample text for previews" name:"sample"`
}

// Run executes the styles command, dispatching to detail, interactive, or list view.
func (c *StylesCmd) Run(ctx context.Context, root *RootFlags) error {
	if c.Name != "" {
		return c.runDetail(ctx)
	}

	// TTY gate: interactive picker when stdout is terminal, not JSON, not --no-input.
	if isatty.IsTerminal(os.Stdout.Fd()) && !outfmt.IsJSON(ctx) && !root.NoInput {
		return c.runInteractive(ctx)
	}

	return c.runList(ctx)
}

// sample returns the preview sample text.
func (c *StylesCmd) sample() string {
	if c.Sample != "" {
		return c.Sample
	}

	return sampleText
}

// runDetail prints one style with the alphabet and a sample transcoded.
func (c *StylesCmd) runDetail(ctx context.Context) error {
	table, ok := styletext.Lookup(c.Name)
	if !ok {
		return fmt.Errorf("unknown style %q: run 'postfmt styles' to list styles", c.Name)
	}

	const alphabet = "abcdefghijklmnopqrstuvwxyz ABCDEFGHIJKLMNOPQRSTUVWXYZ 0123456789"

	if outfmt.IsJSON(ctx) {
		return outfmt.WriteJSON(os.Stdout, map[string]any{
			"name":     c.Name,
			"alphabet": styletext.Transcode(alphabet, table),
			"sample":   styletext.Transcode(c.sample(), table),
		})
	}

	fmt.Fprintf(os.Stdout, "Name:     %s\n", c.Name)
	fmt.Fprintf(os.Stdout, "Alphabet: %s\n", styletext.Transcode(alphabet, table))
	fmt.Fprintf(os.Stdout, "Sample:   %s\n", styletext.Transcode(c.sample(), table))

	return nil
}

// runInteractive launches the bubbletea style picker with text input, then
// prints the transcoded text to stdout.
func (c *StylesCmd) runInteractive(ctx context.Context) error {
	items := make([]list.Item, 0, len(styletext.Names()))

	for _, name := range styletext.Names() {
		table, _ := styletext.Lookup(name)
		items = append(items, tui.NewStyleItem(name, table))
	}

	m := tui.NewPicker(items, c.Sample)

	p := tea.NewProgram(m, tea.WithOutput(os.Stderr), tea.WithInputTTY())

	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("interactive picker: %w", err)
	}

	picker, ok := result.(tui.Model)
	if !ok {
		return errors.New("unexpected picker result type")
	}

	if picker.Cancelled() || picker.Selected() == nil {
		return nil
	}

	out := styletext.Transcode(picker.Text(), picker.Selected().Table())

	fmt.Fprintln(os.Stdout, out)

	// Fire config-based auto copy (TUI flow has no explicit flags).
	cfg := config.FromContext(ctx)
	if cfg != nil && cfg.AutoCopy != nil && *cfg.AutoCopy {
		if err := actions.CopyToClipboard(out); err != nil {
			fmt.Fprintf(os.Stderr, "warning: clipboard: %v\n", err)
		}
	}

	return nil
}

// runList prints all styles as a table with transcoded samples.
func (c *StylesCmd) runList(ctx context.Context) error {
	names := styletext.Names()

	if outfmt.IsJSON(ctx) {
		out := make([]map[string]string, 0, len(names))

		for _, name := range names {
			table, _ := styletext.Lookup(name)
			out = append(out, map[string]string{
				"name":   name,
				"sample": styletext.Transcode(c.sample(), table),
			})
		}

		return outfmt.WriteJSON(os.Stdout, out)
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		table, _ := styletext.Lookup(name)
		rows = append(rows, []string{name, styletext.Transcode(c.sample(), table)})
	}

	colorEnabled := false
	if u := ui.FromContext(ctx); u != nil {
		colorEnabled = u.Out().ColorEnabled()
	}

	fmt.Fprint(os.Stdout, ui.RenderTable(
		[]string{"Style", "Sample"},
		rows,
		colorEnabled,
	))
	fmt.Fprintf(os.Stdout, "\n%d styles\n", len(names))

	return nil
}
