// Package actions provides post-formatting output actions: clipboard copy
// and opening the hosted web editor.
package actions

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// ErrClipboardUnsupported indicates the platform has no clipboard support.
var ErrClipboardUnsupported = errors.New("clipboard not supported on this platform")

// ClipboardWrite is a function variable for clipboard writes (swappable in tests).
var ClipboardWrite = clipboard.WriteAll

// ClipboardUnsupported mirrors clipboard.Unsupported (swappable in tests).
var ClipboardUnsupported = clipboard.Unsupported

// BrowserOpen is a function variable for opening URLs (swappable in tests).
var BrowserOpen = browser.OpenURL

// CopyToClipboard copies text to the system clipboard.
// Returns a descriptive error if clipboard is unsupported on the platform.
func CopyToClipboard(text string) error {
	if ClipboardUnsupported {
		return ErrClipboardUnsupported
	}

	return ClipboardWrite(text)
}

// OpenInBrowser opens the given URL in the default browser.
func OpenInBrowser(rawURL string) error {
	return BrowserOpen(rawURL)
}

// EditorURL builds a deep link into the hosted web editor with the given
// source text prefilled. Empty text links to the bare editor.
func EditorURL(baseURL, text string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing editor URL: %w", err)
	}

	if text != "" {
		q := u.Query()
		q.Set("text", text)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// OpenEditor opens the hosted web editor with text prefilled.
func OpenEditor(baseURL, text string) error {
	editorURL, err := EditorURL(baseURL, text)
	if err != nil {
		return err
	}

	return OpenInBrowser(editorURL)
}
