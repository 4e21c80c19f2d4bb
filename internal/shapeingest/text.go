package shapeingest

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/buffos/meetingvideo/internal/textmetric"
)

// styleProperty extracts one "name:value" token from a CSS-style style
// attribute such as "color:#ff0000;font-size:24px;".
func styleProperty(style, name string) (string, bool) {
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(k) == name {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// textBody flattens a foreignObject's xhtml <div> into the wrapped-line
// list per spec.md §4.2a: paragraphs are split on <br/>, each paragraph
// is greedily word-wrapped, and a run of consecutive <br/> with nothing
// between them renders as a blank line carrying the literal "<br/>"
// marker text BigBlueButton itself renders for that case. A <br/> before
// any real content is dropped, since the text element's first line is
// already implicit.
func textBody(div *node, m textmetric.Measurer, pt, maxWidth float64) ([]string, error) {
	var lines []string
	var pending strings.Builder
	flushed := false

	flush := func() error {
		if pending.Len() == 0 {
			lines = append(lines, "<br/>")
			return nil
		}
		wrapped, err := textmetric.Pack(m, pending.String(), " ", pt, maxWidth)
		if err != nil {
			return err
		}
		lines = append(lines, wrapped...)
		pending.Reset()
		return nil
	}

	var walk func(n *node) error
	walk = func(n *node) error {
		if n.isText() {
			pending.WriteString(n.text)
			return nil
		}
		if n.name == "br" {
			if !flushed && pending.Len() == 0 {
				return nil // leading <br/> with no prior content: suppressed
			}
			if err := flush(); err != nil {
				return err
			}
			flushed = true
			return nil
		}
		for _, c := range n.children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(div); err != nil {
		return nil, err
	}
	if pending.Len() > 0 || !flushed {
		wrapped, err := textmetric.Pack(m, pending.String(), " ", pt, maxWidth)
		if err != nil {
			return nil, err
		}
		lines = append(lines, wrapped...)
	}
	return lines, nil
}

// convertTextShape replaces g's <switch><foreignObject>...</foreignObject></switch>
// body with an SVG <text> built from measured word-wrap, per spec.md §4.2.
func convertTextShape(g *node, m textmetric.Measurer) error {
	sw := g.find("switch")
	if sw == nil {
		return nil // no XHTML body to convert
	}
	fo := sw.find("foreignObject")
	if fo == nil {
		g.remove("switch")
		return nil
	}
	div := fo.find("div")
	if div == nil {
		div = fo
	}

	x, _ := fo.attr("x")
	y, _ := fo.attr("y")
	widthAttr, _ := fo.attr("width")
	width, err := strconv.ParseFloat(widthAttr, 64)
	if err != nil {
		return fmt.Errorf("text shape foreignObject width %q: %w", widthAttr, err)
	}

	style, _ := g.attr("style")
	color, ok := styleProperty(style, "color")
	if !ok {
		color = "#000000"
	}
	fontSizeStr, ok := styleProperty(style, "font-size")
	fontSize := 24.0
	if ok {
		fontSizeStr = strings.TrimSuffix(strings.TrimSpace(fontSizeStr), "px")
		if v, perr := strconv.ParseFloat(fontSizeStr, 64); perr == nil {
			fontSize = v
		}
	}

	lines, err := textBody(div, m, fontSize, width)
	if err != nil {
		return err
	}

	textStyle := fmt.Sprintf("color:%s;font-size:%gpx;fill:currentcolor", color, fontSize)

	text := &node{
		name: "text",
		attrs: []xml.Attr{
			{Name: xml.Name{Local: "x"}, Value: x},
			{Name: xml.Name{Local: "y"}, Value: y},
			{Name: xml.Name{Local: "style"}, Value: textStyle},
			{Name: xml.Name{Space: "xml", Local: "space"}, Value: "preserve"},
		},
	}
	for _, line := range lines {
		tspan := &node{
			name: "tspan",
			attrs: []xml.Attr{
				{Name: xml.Name{Local: "x"}, Value: x},
				{Name: xml.Name{Local: "dy"}, Value: "1.0em"},
			},
			children: []*node{newText(line)},
		}
		text.children = append(text.children, tspan)
	}

	g.remove("switch")
	g.children = append(g.children, text)
	return nil
}
