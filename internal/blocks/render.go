package blocks

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dedene/postfmt-cli/internal/styletext"
)

// separatorLine is the fixed rule emitted for separator blocks.
const separatorLine = "—————————————————————"

// Render turns validated blocks into the final styled post. Fragments keep
// input order and are joined with a blank line.
func Render(bs []Block) string {
	frags := make([]string, 0, len(bs))
	for _, b := range bs {
		frags = append(frags, renderBlock(b))
	}

	return strings.Join(frags, "\n\n")
}

func renderBlock(b Block) string {
	switch b.Kind {
	case KindHeading:
		prepped := prep(b.Text, b.Highlights)

		return styletext.Transcode(strings.ToUpper(prepped), styletext.ExtraBold)

	case KindSubheading:
		prepped := prep(b.Text, b.Highlights)

		return styletext.Decorate(styletext.Transcode(prepped, styletext.Bold), styletext.UnderlineMark)

	case KindParagraph:
		return prep(b.Text, b.Highlights)

	case KindBullets:
		lines := make([]string, 0, len(b.Items))
		for _, item := range b.Items {
			lines = append(lines, "• "+prep(item, b.Highlights))
		}

		return strings.Join(lines, "\n")

	case KindNumbered:
		lines := make([]string, 0, len(b.Items))
		for i, item := range b.Items {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, prep(item, b.Highlights)))
		}

		return strings.Join(lines, "\n")

	case KindCTA:
		return styletext.Transcode(prep(b.Text, b.Highlights), styletext.Bold)

	case KindHashtags:
		tags := make([]string, 0, len(b.Items))

		for _, item := range b.Items {
			if !strings.HasPrefix(item, "#") {
				item = "#" + item
			}

			tags = append(tags, prep(item, b.Highlights))
		}

		return strings.Join(tags, " ")

	case KindSeparator:
		return separatorLine

	default:
		// Validation keeps unknown kinds out; render raw text if one
		// slips through, never fail.
		if b.Text != "" {
			return prep(b.Text, b.Highlights)
		}

		return ""
	}
}

// prep is the shared front half of every kind: embedded **stars** first,
// then highlight spans.
func prep(text string, hs []Highlight) string {
	return applyHighlights(styletext.BoldStars(text), hs)
}

// applyHighlights styles each span's first occurrence in s, longest span
// first. A longer span may consume a shorter one's text; the shorter span
// is then simply skipped. Spans never found are skipped silently.
func applyHighlights(s string, hs []Highlight) string {
	if len(hs) == 0 {
		return s
	}

	sorted := make([]Highlight, len(hs))
	copy(sorted, hs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i].Text) > utf8.RuneCountInString(sorted[j].Text)
	})

	for _, h := range sorted {
		if h.Text == "" {
			continue
		}

		idx := strings.Index(s, h.Text)
		if idx < 0 {
			continue
		}

		s = s[:idx] + styleSpan(h) + s[idx+len(h.Text):]
	}

	return s
}

func styleSpan(h Highlight) string {
	switch h.Style {
	case "italic":
		return styletext.Transcode(h.Text, styletext.Italic)
	case "underline":
		return styletext.Decorate(h.Text, styletext.UnderlineMark)
	default:
		return styletext.Transcode(h.Text, styletext.Bold)
	}
}
