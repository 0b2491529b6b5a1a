package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/dedene/postfmt-cli/internal/api"
	"github.com/dedene/postfmt-cli/internal/config"
)

// stdinReader is swappable in tests to simulate piped input.
var stdinReader io.Reader = os.Stdin

// stdinIsTerminal is swappable in tests.
var stdinIsTerminal = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd())
}

// readInput resolves the source text: positional args joined with spaces, or
// piped stdin when no args are given. Errors when neither is available.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if stdinIsTerminal() {
		return "", errors.New("provide text or pipe it via stdin; run 'postfmt --help' for usage")
	}

	data, err := io.ReadAll(stdinReader)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	text := strings.TrimRight(string(data), "\n")
	if strings.TrimSpace(text) == "" {
		return "", errors.New("stdin was empty")
	}

	return text, nil
}

// effectiveCopy returns: explicit --copy flag > config auto_copy > false.
func effectiveCopy(flag bool, cfg *config.Config) bool {
	if flag {
		return true
	}

	if cfg != nil && cfg.AutoCopy != nil {
		return *cfg.AutoCopy
	}

	return false
}

// effectivePlatform returns: explicit flag > config platform > "twitter".
func effectivePlatform(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}

	if cfg != nil && cfg.Platform != "" {
		return cfg.Platform
	}

	return "twitter"
}

// editorBase returns the web editor base URL: config editor_url > service default.
func editorBase(cfg *config.Config) string {
	if cfg != nil && cfg.EditorURL != "" {
		return cfg.EditorURL
	}

	return api.DefaultBaseURL
}
