package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dedene/postfmt-cli/internal/actions"
	"github.com/dedene/postfmt-cli/internal/api"
	"github.com/dedene/postfmt-cli/internal/config"
	"github.com/dedene/postfmt-cli/internal/outfmt"
	"github.com/dedene/postfmt-cli/internal/styletext"
)

// ShortenCmd asks the formatting service to shorten text under a length limit.
type ShortenCmd struct {
	Text []string `arg:"" optional:"" help:"Text to shorten (reads stdin when omitted)"`

	MaxLength int    `help:"Target length in code points (defaults to the platform limit)" name:"max-length" short:"m"`
	Platform  string `help:"Platform whose limit to target" name:"platform" short:"p"`

	Copy bool `help:"Copy result to clipboard" name:"copy" short:"c"`
}

// effectiveLimit returns: explicit --max-length > platform limit > twitter limit.
func (c *ShortenCmd) effectiveLimit(cfg *config.Config) (int, error) {
	if c.MaxLength > 0 {
		return c.MaxLength, nil
	}

	platform := effectivePlatform(c.Platform, cfg)

	limit, ok := platformLimits[platform]
	if !ok {
		return 0, fmt.Errorf("unknown platform %q: must be one of %s", platform, strings.Join(platformNames(), ", "))
	}

	return limit, nil
}

// Run executes the shorten command.
func (c *ShortenCmd) Run(ctx context.Context) error {
	input, err := readInput(c.Text)
	if err != nil {
		return err
	}

	cfg := config.FromContext(ctx)

	limit, err := c.effectiveLimit(cfg)
	if err != nil {
		return err
	}

	if styletext.CodePointLength(input) <= limit {
		// Nothing to do; echo the input unchanged.
		return c.output(ctx, input, limit, cfg)
	}

	client := api.ClientFromContext(ctx)
	if client == nil {
		return errors.New("api client not found in context")
	}

	resp, err := client.Shorten(ctx, api.ShortenRequest{
		Text:      input,
		MaxLength: limit,
		Platform:  effectivePlatform(c.Platform, cfg),
	})
	if err != nil {
		return fmt.Errorf("shortening text: %w", err)
	}

	return c.output(ctx, resp.Text, limit, cfg)
}

// output prints the result and fires actions.
func (c *ShortenCmd) output(ctx context.Context, text string, limit int, cfg *config.Config) error {
	if outfmt.IsJSON(ctx) {
		if err := outfmt.WriteJSON(os.Stdout, map[string]any{
			"text":        text,
			"code_points": styletext.CodePointLength(text),
			"max_length":  limit,
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(os.Stdout, text)
	}

	if effectiveCopy(c.Copy, cfg) {
		if err := actions.CopyToClipboard(text); err != nil {
			fmt.Fprintf(os.Stderr, "warning: clipboard: %v\n", err)
		}
	}

	return nil
}
