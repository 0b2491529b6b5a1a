package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dedene/postfmt-cli/internal/outfmt"
	"github.com/dedene/postfmt-cli/internal/styletext"
	"github.com/dedene/postfmt-cli/internal/ui"
)

// platformLimits maps platform names to their post length limits in code
// points, which is how the platforms themselves count.
var platformLimits = map[string]int{
	"twitter":   280,
	"threads":   500,
	"mastodon":  500,
	"instagram": 2200,
	"linkedin":  3000,
	"facebook":  63206,
}

// platformNames returns the supported platform names, sorted.
func platformNames() []string {
	names := make([]string, 0, len(platformLimits))
	for name := range platformLimits {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// CountCmd reports character counts and platform limit headroom for text.
type CountCmd struct {
	Text []string `arg:"" optional:"" help:"Text to measure (reads stdin when omitted)"`

	Platform string `help:"Only report the given platform" name:"platform" short:"p"`
}

// platformFit is one platform's limit check.
type platformFit struct {
	Platform  string `json:"platform"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Fits      bool   `json:"fits"`
}

// Run executes the count command.
func (c *CountCmd) Run(ctx context.Context) error {
	input, err := readInput(c.Text)
	if err != nil {
		return err
	}

	if c.Platform != "" {
		if _, ok := platformLimits[c.Platform]; !ok {
			return fmt.Errorf("unknown platform %q: must be one of %s", c.Platform, strings.Join(platformNames(), ", "))
		}
	}

	codePoints := styletext.CodePointLength(input)
	graphemes := styletext.GraphemeLength(input)
	ratio := styletext.FormattedRatio(input)
	plain := styletext.Strip(input)

	fits := c.fits(codePoints)

	if outfmt.IsJSON(ctx) {
		return outfmt.WriteJSON(os.Stdout, map[string]any{
			"code_points":       codePoints,
			"graphemes":         graphemes,
			"formatted_ratio":   ratio,
			"plain_code_points": styletext.CodePointLength(plain),
			"platforms":         fits,
		})
	}

	fmt.Fprintf(os.Stdout, "code points: %d\n", codePoints)
	fmt.Fprintf(os.Stdout, "graphemes:   %d\n", graphemes)
	fmt.Fprintf(os.Stdout, "formatted:   %.0f%%\n", ratio*100)

	if p := styletext.CodePointLength(plain); p != codePoints {
		fmt.Fprintf(os.Stdout, "plain:       %d\n", p)
	}

	rows := make([][]string, 0, len(fits))
	for _, f := range fits {
		status := "over"
		if f.Fits {
			status = "ok"
		}

		rows = append(rows, []string{
			f.Platform,
			fmt.Sprintf("%d", f.Limit),
			fmt.Sprintf("%d", f.Remaining),
			status,
		})
	}

	colorEnabled := false
	if u := ui.FromContext(ctx); u != nil {
		colorEnabled = u.Out().ColorEnabled()
	}

	fmt.Fprint(os.Stdout, ui.RenderTable(
		[]string{"Platform", "Limit", "Remaining", "Status"},
		rows,
		colorEnabled,
	))
	fmt.Fprintln(os.Stdout)

	return nil
}

// fits builds the per-platform limit report, sorted by name.
func (c *CountCmd) fits(codePoints int) []platformFit {
	names := platformNames()
	if c.Platform != "" {
		names = []string{c.Platform}
	}

	result := make([]platformFit, 0, len(names))

	for _, name := range names {
		limit := platformLimits[name]
		result = append(result, platformFit{
			Platform:  name,
			Limit:     limit,
			Remaining: limit - codePoints,
			Fits:      codePoints <= limit,
		})
	}

	return result
}
