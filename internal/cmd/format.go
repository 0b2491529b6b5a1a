package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/dedene/postfmt-cli/internal/actions"
	"github.com/dedene/postfmt-cli/internal/config"
	"github.com/dedene/postfmt-cli/internal/outfmt"
	"github.com/dedene/postfmt-cli/internal/preview"
	"github.com/dedene/postfmt-cli/internal/styletext"
	"github.com/dedene/postfmt-cli/internal/ui"
)

// FormatCmd styles text for social posts. It is the default command when
// invoked with positional args (default:"withargs" in CLI struct).
type FormatCmd struct {
	Text []string `arg:"" optional:"" help:"Text to format (reads stdin when omitted)"`

	// Style selection -- empty means Markdown-subset parsing.
	Style     string `help:"Apply one lettering style to the whole text (skips Markdown parsing)" short:"s"`
	Strike    bool   `help:"Add combining strikethrough to every character" name:"strike"`
	Underline bool   `help:"Add combining underline to every character" name:"underline"`

	// Output action flags.
	Copy bool `help:"Copy result to clipboard" name:"copy" short:"c"`
	Open bool `help:"Open result in the hosted web editor" name:"open" short:"o"`

	Stats   bool  `help:"Print length stats to stderr" name:"stats"`
	Preview *bool `help:"Show a preview panel on stderr" name:"preview" negatable:""`
}

// shouldPreview determines if the preview panel should be shown.
// Explicit flag wins; default is off, and never when stderr is not a TTY.
func shouldPreview(flag *bool, root *RootFlags) bool {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return false
	}

	if root != nil && root.NoInput {
		return false
	}

	if flag != nil {
		return *flag
	}

	return false
}

// effectiveStyle returns: explicit --style flag > config default_style > "".
func (c *FormatCmd) effectiveStyle(cfg *config.Config) string {
	if c.Style != "" {
		return c.Style
	}

	if cfg != nil && cfg.DefaultStyle != "" {
		return cfg.DefaultStyle
	}

	return ""
}

// Run executes the format command.
func (c *FormatCmd) Run(ctx context.Context, root *RootFlags) error {
	input, err := readInput(c.Text)
	if err != nil {
		return err
	}

	cfg := config.FromContext(ctx)

	var out string

	if style := c.effectiveStyle(cfg); style != "" {
		table, ok := styletext.Lookup(style)
		if !ok {
			return fmt.Errorf("unknown style %q: run 'postfmt styles' to list styles", style)
		}

		out = styletext.Transcode(input, table)
	} else {
		out = styletext.FormatText(input)
	}

	if c.Strike {
		out = styletext.Decorate(out, styletext.StrikeMark)
	}

	if c.Underline {
		out = styletext.Decorate(out, styletext.UnderlineMark)
	}

	if shouldPreview(c.Preview, root) {
		colorEnabled := false
		if u := ui.FromContext(ctx); u != nil {
			colorEnabled = u.Err().ColorEnabled()
		}

		preview.Show(out, preview.Options{Writer: os.Stderr, Color: colorEnabled})
	}

	if outfmt.IsJSON(ctx) {
		if err := outfmt.WriteJSON(os.Stdout, map[string]any{
			"text":            out,
			"code_points":     styletext.CodePointLength(out),
			"graphemes":       styletext.GraphemeLength(out),
			"formatted_ratio": styletext.FormattedRatio(out),
		}); err != nil {
			return err
		}

		c.runActions(out, cfg)

		return nil
	}

	fmt.Fprintln(os.Stdout, out)

	if c.Stats {
		c.printStats(ctx, out)
	}

	c.runActions(out, cfg)

	return nil
}

// printStats writes length accounting to stderr.
func (c *FormatCmd) printStats(ctx context.Context, out string) {
	u := ui.FromContext(ctx)
	if u == nil {
		return
	}

	u.Err().Printf("code points: %d", styletext.CodePointLength(out))
	u.Err().Printf("graphemes:   %d", styletext.GraphemeLength(out))
	u.Err().Printf("formatted:   %.0f%%", styletext.FormattedRatio(out)*100)
}

// runActions fires post-format actions (clipboard, editor).
// Errors are non-fatal warnings to stderr.
func (c *FormatCmd) runActions(out string, cfg *config.Config) {
	if effectiveCopy(c.Copy, cfg) {
		if err := actions.CopyToClipboard(out); err != nil {
			fmt.Fprintf(os.Stderr, "warning: clipboard: %v\n", err)
		}
	}

	if c.Open {
		if err := actions.OpenEditor(editorBase(cfg), out); err != nil {
			fmt.Fprintf(os.Stderr, "warning: browser: %v\n", err)
		}
	}
}
