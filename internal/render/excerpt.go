package render

import (
	"strings"
	"unicode"

	xhtml "golang.org/x/net/html"
)

// Excerpt derives a plain-text excerpt from a body that may contain inline
// HTML. Tags are stripped by tokenizing rather than regex so nested and
// malformed markup degrade safely. The result is cut at a word boundary and
// capped at max runes.
func Excerpt(body string, max int) string {
	var sb strings.Builder

	tokenizer := xhtml.NewTokenizer(strings.NewReader(body))
	for {
		tt := tokenizer.Next()
		if tt == xhtml.ErrorToken {
			break
		}
		if tt == xhtml.TextToken {
			sb.WriteString(tokenizer.Token().Data)
			sb.WriteByte(' ')
		}
	}

	text := strings.Join(strings.Fields(sb.String()), " ")
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}

	cut := max
	// Back up to the last word boundary unless the cut already sits on one.
	if !unicode.IsSpace(runes[max]) {
		for i := max - 1; i > 0; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}
	}
	return strings.TrimRight(string(runes[:cut]), " ") + "…"
}
