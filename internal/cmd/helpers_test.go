package cmd

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dedene/postfmt-cli/internal/api"
	"github.com/dedene/postfmt-cli/internal/config"
	"github.com/dedene/postfmt-cli/internal/outfmt"
)

func testCtx(t *testing.T, baseURL string, jsonMode bool) context.Context {
	t.Helper()

	client := api.NewClient(api.ClientOptions{
		BaseURL:   baseURL,
		UserAgent: "postfmt-cli/test",
	})

	ctx := context.Background()
	ctx = outfmt.WithMode(ctx, outfmt.Mode{JSON: jsonMode})
	ctx = api.WithClient(ctx, client)

	return ctx
}

// testCtxWithCfg returns a context with API client and the given config.
func testCtxWithCfg(t *testing.T, baseURL string, jsonMode bool, cfg *config.Config) context.Context {
	t.Helper()

	ctx := testCtx(t, baseURL, jsonMode)
	ctx = config.WithConfig(ctx, cfg)

	return ctx
}

// captureStdout runs fn while capturing os.Stdout and returns the output.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	origStdout := os.Stdout
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	buf, _ := io.ReadAll(r)
	_ = r.Close()

	return string(buf)
}

// withStdin simulates piped stdin content for readInput.
func withStdin(t *testing.T, content string) {
	t.Helper()

	origReader := stdinReader
	origIsTerminal := stdinIsTerminal

	stdinReader = strings.NewReader(content)
	stdinIsTerminal = func() bool { return false }

	t.Cleanup(func() {
		stdinReader = origReader
		stdinIsTerminal = origIsTerminal
	})
}

// withTTYStdin simulates an interactive terminal with no piped input.
func withTTYStdin(t *testing.T) {
	t.Helper()

	origIsTerminal := stdinIsTerminal
	stdinIsTerminal = func() bool { return true }

	t.Cleanup(func() {
		stdinIsTerminal = origIsTerminal
	})
}
