// Package xmlutil holds small XML/SVG string helpers shared by the
// ingest and emission packages: entity escaping and MIME sniffing for
// data-URI embedding, the same pair of concerns generateSVG.go keeps
// next to each other in the teacher.
package xmlutil

import "strings"

// EscapeText escapes the five XML-significant characters for use inside
// element text content and attribute values.
func EscapeText(s string) string {
	var buf strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&apos;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
