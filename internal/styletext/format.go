package styletext

import (
	"regexp"
	"strings"
)

// Heading and inline patterns. Each heading level anchors on its exact
// hash count plus one space, evaluated per line, so no level can steal
// the prefix of a deeper one. Inline captures are non-greedy and cannot
// cross line boundaries (dot-all is off).
var (
	reH4        = regexp.MustCompile(`(?m)^#### (.+)$`)
	reH3        = regexp.MustCompile(`(?m)^### (.+)$`)
	reH2        = regexp.MustCompile(`(?m)^## (.+)$`)
	reH1        = regexp.MustCompile(`(?m)^# (.+)$`)
	reBold      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reStrike    = regexp.MustCompile(`~~(.+?)~~`)
	reUnderline = regexp.MustCompile(`__(.+?)__`)
)

// FormatText rewrites Markdown-subset markup into styled Unicode text.
//
// Passes run in a fixed order: headings deepest-first (#### through #),
// then bold, italic, strikethrough, underline. Each pass is a global
// replace over the whole string; later passes see the already-transformed
// output of earlier ones. Unterminated markers simply never match and are
// left as literal characters, so the function is total.
//
// Levels two and three render identically (bold uppercase). That matches
// the web editor and is kept on purpose.
func FormatText(input string) string {
	out := replaceHeading(input, reH4, "#### ", func(s string) string {
		return Transcode(strings.ToLower(s), SmallCaps)
	})
	out = replaceHeading(out, reH3, "### ", func(s string) string {
		return Transcode(strings.ToUpper(s), Bold)
	})
	out = replaceHeading(out, reH2, "## ", func(s string) string {
		return Transcode(strings.ToUpper(s), Bold)
	})
	out = replaceHeading(out, reH1, "# ", func(s string) string {
		return Transcode(strings.ToUpper(s), ExtraBold)
	})

	out = BoldStars(out)
	out = italicPass(out)

	out = reStrike.ReplaceAllStringFunc(out, func(m string) string {
		return Decorate(m[2:len(m)-2], StrikeMark)
	})
	out = reUnderline.ReplaceAllStringFunc(out, func(m string) string {
		return Decorate(m[2:len(m)-2], UnderlineMark)
	})

	return out
}

// BoldStars replaces every **span** with its bold-transcoded form. It is
// shared between FormatText and the block renderer, which applies it per
// block before highlights.
func BoldStars(s string) string {
	return reBold.ReplaceAllStringFunc(s, func(m string) string {
		return Transcode(m[2:len(m)-2], Bold)
	})
}

func replaceHeading(s string, re *regexp.Regexp, prefix string, transform func(string) string) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		return transform(strings.TrimPrefix(m, prefix))
	})
}

// italicPass replaces *span* emphasis where both asterisks stand alone.
// Go's RE2 engine has no lookaround, so lone stars are classified by an
// explicit scan instead: runs of two or more stars are emitted literally,
// and a captured span may not contain an asterisk or a newline.
func italicPass(s string) string {
	if !strings.ContainsRune(s, '*') {
		return s
	}

	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) * 2)

	i := 0
	for i < len(runes) {
		if runes[i] != '*' {
			b.WriteRune(runes[i])
			i++

			continue
		}

		// Count the star run. Two or more stars are never italic markers.
		j := i
		for j < len(runes) && runes[j] == '*' {
			j++
		}

		if j-i > 1 {
			b.WriteString(strings.Repeat("*", j-i))
			i = j

			continue
		}

		// Lone opener: the closer is the next star, which must itself be
		// lone, with no newline in between.
		end := -1

		for k := i + 1; k < len(runes); k++ {
			if runes[k] == '\n' {
				break
			}

			if runes[k] == '*' {
				if k+1 < len(runes) && runes[k+1] == '*' {
					break
				}

				end = k

				break
			}
		}

		if end == -1 {
			b.WriteRune('*')
			i++

			continue
		}

		b.WriteString(Transcode(string(runes[i+1:end]), Italic))
		i = end + 1
	}

	return b.String()
}
