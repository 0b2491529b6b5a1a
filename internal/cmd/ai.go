package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dedene/postfmt-cli/internal/actions"
	"github.com/dedene/postfmt-cli/internal/api"
	"github.com/dedene/postfmt-cli/internal/blocks"
	"github.com/dedene/postfmt-cli/internal/cache"
	"github.com/dedene/postfmt-cli/internal/config"
	"github.com/dedene/postfmt-cli/internal/outfmt"
	"github.com/dedene/postfmt-cli/internal/ui"
)

// AICmd sends a draft to the formatting service and renders the returned
// structured blocks as styled Unicode text.
type AICmd struct {
	Text []string `arg:"" optional:"" help:"Draft text (reads stdin when omitted)"`

	Platform []string `help:"Target platform (repeatable)" name:"platform" short:"p" sep:"none"`
	Tone     string   `help:"Tone hint for the service (e.g. casual, formal)" name:"tone"`
	Refresh  bool     `help:"Bypass the result cache" name:"refresh"`

	Copy bool `help:"Copy result to clipboard" name:"copy" short:"c"`
}

// platformText is one rendered platform result.
type platformText struct {
	Platform string `json:"platform"`
	Text     string `json:"text"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Run executes the ai command.
func (c *AICmd) Run(ctx context.Context) error {
	input, err := readInput(c.Text)
	if err != nil {
		return err
	}

	cfg := config.FromContext(ctx)

	platforms := c.Platform
	if len(platforms) == 0 {
		platforms = []string{effectivePlatform("", cfg)}
	}

	for _, p := range platforms {
		if _, ok := platformLimits[p]; !ok {
			return fmt.Errorf("unknown platform %q: must be one of %s", p, strings.Join(platformNames(), ", "))
		}
	}

	req := api.FormatRequest{Text: input, Platforms: platforms, Tone: c.Tone}

	resp, fromCache, err := c.loadResponse(ctx, req)
	if err != nil {
		return err
	}

	rendered, retried, err := c.renderResults(ctx, req, resp, fromCache, input)
	if err != nil {
		return err
	}

	if retried {
		slog.Debug("re-fetched after invalid block payload")
	}

	if outfmt.IsJSON(ctx) {
		if err := outfmt.WriteJSON(os.Stdout, map[string]any{"results": rendered}); err != nil {
			return err
		}

		c.copyResult(rendered, cfg)

		return nil
	}

	for i, r := range rendered {
		if len(rendered) > 1 {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}

			fmt.Fprintf(os.Stdout, "## %s\n\n", r.Platform)
		}

		fmt.Fprintln(os.Stdout, r.Text)
	}

	c.copyResult(rendered, cfg)

	return nil
}

// loadResponse returns a cached response when fresh, else calls the service.
func (c *AICmd) loadResponse(ctx context.Context, req api.FormatRequest) (*api.FormatResponse, bool, error) {
	cachePath, pathErr := config.CachePath()

	if !c.Refresh && pathErr == nil {
		ttl := 24 * time.Hour
		if cfg := config.FromContext(ctx); cfg != nil {
			ttl = cfg.CacheTTLDuration()
		}

		cached, err := cache.LoadResult(cachePath, cache.Key(req), ttl)
		if err != nil {
			slog.Debug("cache load error", "error", err)
		} else if cached != nil {
			slog.Debug("using cached result")

			return cached, true, nil
		}
	}

	resp, err := c.fetch(ctx, req)
	if err != nil {
		return nil, false, err
	}

	if pathErr == nil {
		if err := cache.SaveResult(cachePath, cache.Key(req), resp); err != nil {
			slog.Debug("cache save error", "error", err)
		}
	}

	return resp, false, nil
}

// fetch calls the formatting service.
func (c *AICmd) fetch(ctx context.Context, req api.FormatRequest) (*api.FormatResponse, error) {
	client := api.ClientFromContext(ctx)
	if client == nil {
		return nil, errors.New("api client not found in context")
	}

	resp, err := client.Format(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("formatting draft: %w", err)
	}

	return resp, nil
}

// renderResults parses and renders every platform result. On an invalid block
// payload it re-fetches from the service once (a cached copy may be stale);
// platforms that still fail render as a plain paragraph fallback.
func (c *AICmd) renderResults(
	ctx context.Context,
	req api.FormatRequest,
	resp *api.FormatResponse,
	fromCache bool,
	input string,
) ([]platformText, bool, error) {
	retried := false

	parse := func(r api.PlatformResult) ([]blocks.Block, error) {
		return blocks.Parse(r.Blocks)
	}

	needRetry := false

	for _, r := range resp.Results {
		if _, err := parse(r); errors.Is(err, blocks.ErrInvalid) {
			needRetry = true

			break
		}
	}

	if needRetry {
		fresh, err := c.fetch(ctx, req)
		if err != nil {
			if fromCache {
				return nil, false, err
			}
		} else {
			resp = fresh
			retried = true
		}
	}

	rendered := make([]platformText, 0, len(resp.Results))

	for _, r := range resp.Results {
		bs, err := parse(r)
		if err != nil {
			if u := ui.FromContext(ctx); u != nil {
				u.Err().Warnf("warning: %s: unusable response, falling back to plain text", r.Platform)
			}

			bs = blocks.Fallback(input)
		}

		rendered = append(rendered, platformText{
			Platform: r.Platform,
			Text:     blocks.Render(bs),
			Fallback: err != nil,
		})
	}

	return rendered, retried, nil
}

// copyResult copies a single-platform result to the clipboard when enabled.
func (c *AICmd) copyResult(rendered []platformText, cfg *config.Config) {
	if len(rendered) != 1 || !effectiveCopy(c.Copy, cfg) {
		return
	}

	if err := actions.CopyToClipboard(rendered[0].Text); err != nil {
		fmt.Fprintf(os.Stderr, "warning: clipboard: %v\n", err)
	}
}
