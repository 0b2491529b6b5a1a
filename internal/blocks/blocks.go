// Package blocks models the structured content blocks returned by the
// remote formatting service: parsing and validation of the untrusted JSON,
// and rendering of validated blocks into styled Unicode text.
package blocks

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// Kind discriminates the block union.
type Kind string

// The eight block kinds the service may return.
const (
	KindHeading    Kind = "heading"
	KindSubheading Kind = "subheading"
	KindParagraph  Kind = "paragraph"
	KindBullets    Kind = "bullets"
	KindNumbered   Kind = "numbered"
	KindCTA        Kind = "cta"
	KindHashtags   Kind = "hashtags"
	KindSeparator  Kind = "separator"
)

// Highlight styles a substring of a block's text. Style defaults to bold
// when empty.
type Highlight struct {
	Text  string `json:"text"`
	Style string `json:"style,omitempty"`
}

// Block is one validated content block. Text is set for heading,
// subheading, paragraph, and cta; Items for bullets, numbered, and
// hashtags; separator carries neither.
type Block struct {
	Kind       Kind        `json:"type"`
	Text       string      `json:"text,omitempty"`
	Items      []string    `json:"items,omitempty"`
	Highlights []Highlight `json:"highlights,omitempty"`
}

// ErrInvalid marks a malformed block document. Callers match it with
// errors.Is to trigger the retry-then-fallback policy.
var ErrInvalid = errors.New("invalid blocks")

var validStyles = map[string]bool{"bold": true, "italic": true, "underline": true}

var textKinds = map[Kind]bool{
	KindHeading: true, KindSubheading: true, KindParagraph: true, KindCTA: true,
}

var listKinds = map[Kind]bool{
	KindBullets: true, KindNumbered: true, KindHashtags: true,
}

// Raw shapes mirror the wire format with pointers so that missing fields
// are distinguishable from empty ones. Items decodes as []any to catch
// non-string entries.
type rawBlock struct {
	Type       *string        `json:"type"`
	Text       *string        `json:"text"`
	Items      []any          `json:"items"`
	Highlights []rawHighlight `json:"highlights"`
}

type rawHighlight struct {
	Text  *string `json:"text"`
	Style *string `json:"style"`
}

// Parse decodes and validates a block array from the service response.
// Any shape violation rejects the whole document: the renderer must never
// see a malformed block.
func Parse(data []byte) ([]Block, error) {
	var raw []rawBlock
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	out := make([]Block, 0, len(raw))

	for i, rb := range raw {
		b, err := validate(rb)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrInvalid, i, err)
		}

		out = append(out, b)
	}

	return out, nil
}

func validate(rb rawBlock) (Block, error) {
	if rb.Type == nil {
		return Block{}, errors.New("missing type")
	}

	kind := Kind(*rb.Type)

	switch {
	case textKinds[kind]:
		if rb.Text == nil {
			return Block{}, fmt.Errorf("%s: missing text", kind)
		}

	case listKinds[kind]:
		if rb.Items == nil {
			return Block{}, fmt.Errorf("%s: missing items", kind)
		}

	case kind == KindSeparator:
		// Carries neither text nor items.

	default:
		return Block{}, fmt.Errorf("unknown type %q", *rb.Type)
	}

	b := Block{Kind: kind}

	if rb.Text != nil {
		b.Text = *rb.Text
	}

	if listKinds[kind] {
		b.Items = make([]string, 0, len(rb.Items))

		for j, item := range rb.Items {
			s, ok := item.(string)
			if !ok {
				return Block{}, fmt.Errorf("%s: item %d is not a string", kind, j)
			}

			b.Items = append(b.Items, s)
		}
	}

	for j, rh := range rb.Highlights {
		if rh.Text == nil {
			return Block{}, fmt.Errorf("highlight %d: missing text", j)
		}

		h := Highlight{Text: *rh.Text}

		if rh.Style != nil {
			if !validStyles[*rh.Style] {
				return Block{}, fmt.Errorf("highlight %d: unknown style %q", j, *rh.Style)
			}

			h.Style = *rh.Style
		}

		b.Highlights = append(b.Highlights, h)
	}

	return b, nil
}

// Fallback wraps raw text in a single paragraph block. It is the terminal
// recovery step when the service response stays invalid after a retry:
// the user gets their own text back, never an error.
func Fallback(text string) []Block {
	return []Block{{Kind: KindParagraph, Text: text}}
}
