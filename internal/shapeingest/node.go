package shapeingest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/buffos/meetingvideo/internal/xmlutil"
)

// node is a minimal mutable XML element, built once from a streaming
// xml.Decoder pass and then walked/mutated in place. There is no DOM
// library anywhere in the retrieval pack (see DESIGN.md); this is the
// smallest tree that lets shape normalization rewrite an element's
// attributes and children before re-serializing it, the same way the
// teacher builds SVG by hand with bytes.Buffer rather than an encoder.
type node struct {
	name     string
	attrs    []xml.Attr
	text     string // only set for character-data nodes
	children []*node
}

func (n *node) isText() bool { return n.children == nil && n.attrs == nil && n.name == "" }

func newText(s string) *node { return &node{text: s} }

func (n *node) attr(local string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) setAttr(local, value string) {
	for i, a := range n.attrs {
		if a.Name.Local == local {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, xml.Attr{Name: xml.Name{Local: local}, Value: value})
}

// xlinkNS is the one namespace this ingest package still cares about
// after the rest of the document's namespaces are treated as flattened
// (spec.md §4.2: "a DOM ... with its XML namespaces flattened").
const xlinkNS = "http://www.w3.org/1999/xlink"

// setXlinkHref replaces any existing href (plain or xlink-qualified)
// with an xlink:href carrying value.
func (n *node) setXlinkHref(value string) {
	out := n.attrs[:0]
	for _, a := range n.attrs {
		if a.Name.Local == "href" {
			continue
		}
		out = append(out, a)
	}
	n.attrs = append(out, xml.Attr{Name: xml.Name{Space: xlinkNS, Local: "href"}, Value: value})
}

// ensureXlinkNS declares xmlns:xlink on n if not already present.
func (n *node) ensureXlinkNS() {
	for _, a := range n.attrs {
		if a.Name.Space == "xmlns" && a.Name.Local == "xlink" {
			return
		}
	}
	n.attrs = append(n.attrs, xml.Attr{Name: xml.Name{Space: "xmlns", Local: "xlink"}, Value: xlinkNS})
}

// find returns the first descendant (depth-first, including n itself)
// whose name matches.
func (n *node) find(name string) *node {
	if n.name == name {
		return n
	}
	for _, c := range n.children {
		if c.isText() {
			continue
		}
		if found := c.find(name); found != nil {
			return found
		}
	}
	return nil
}

// remove drops the first direct child named name.
func (n *node) remove(name string) {
	out := n.children[:0]
	removed := false
	for _, c := range n.children {
		if !removed && !c.isText() && c.name == name {
			removed = true
			continue
		}
		out = append(out, c)
	}
	n.children = out
}

// decodeRoot reads one complete element tree from r, returning its root.
func decodeRoot(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	var stack []*node
	var root *node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local, attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, newText(string(t)))
		}
	}
	if root == nil {
		return nil, fmt.Errorf("decode xml: empty document")
	}
	return root, nil
}

// render serializes n back to XML text, escaping character data with
// xmlutil the same way the rest of the emission packages do.
func render(w *strings.Builder, n *node) {
	if n.isText() {
		w.WriteString(xmlutil.EscapeText(n.text))
		return
	}
	w.WriteByte('<')
	w.WriteString(n.name)
	for _, a := range n.attrs {
		name := a.Name.Local
		switch a.Name.Space {
		case "", "xml":
			// unqualified, or the builtin xml: prefix Go preserves literally
			if a.Name.Space == "xml" {
				name = "xml:" + a.Name.Local
			}
		case "xmlns":
			name = "xmlns:" + a.Name.Local
		case xlinkNS:
			name = "xlink:" + a.Name.Local
		default:
			// any other resolved namespace URI: the document's namespaces
			// are flattened upstream of this package, so fall back to the
			// local name rather than emitting the resolved URI as a prefix.
		}
		fmt.Fprintf(w, ` %s="%s"`, name, xmlutil.EscapeText(a.Value))
	}
	if len(n.children) == 0 {
		w.WriteString("/>")
		return
	}
	w.WriteByte('>')
	for _, c := range n.children {
		render(w, c)
	}
	w.WriteString("</")
	w.WriteString(n.name)
	w.WriteByte('>')
}

func (n *node) String() string {
	var b strings.Builder
	render(&b, n)
	return b.String()
}
