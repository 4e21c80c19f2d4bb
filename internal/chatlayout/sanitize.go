package chatlayout

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Sanitize strips HTML markup down to its plain text content and
// NFC-normalizes the result, per spec.md §3's ChatMessage invariant.
// Chat messages arrive as the small HTML fragments the webclient's
// rich-text composer produces; golang.org/x/net/html's tokenizer
// (rather than encoding/xml's decoder, which chokes on HTML's
// unescaped entities and void elements) is the standard Go tool for
// that, and golang.org/x/text/unicode/norm is its NFC counterpart.
func Sanitize(s string) string {
	var buf strings.Builder
	tok := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return norm.NFC.String(buf.String())
		case html.TextToken:
			buf.Write(tok.Text())
		}
	}
}
