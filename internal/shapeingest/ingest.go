// Package shapeingest turns the annotated-shapes document into the
// composition engine's ShapeAnnotation and SlideSegment timelines
// (spec.md §4.2 and §4.4, co-located because both passes walk the same
// tree). There is no XML DOM library anywhere in the retrieval pack, so
// the tree it walks is the package-private node type in node.go, built
// from one encoding/xml.Decoder pass the same way the rest of this
// engine favors a single streaming read over loading a generic DOM.
package shapeingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/buffos/meetingvideo/internal/model"
	"github.com/buffos/meetingvideo/internal/textmetric"
)

// Result holds everything a single pass over the shapes document
// produces.
type Result struct {
	Shapes []model.Shape
	Slides []model.Slide
}

// Ingest decodes r (the annotated, timed shapes document), normalizes
// every annotation's visual fragment, and extracts its visible time
// interval. baseDir resolves poll images' relative href; measurer backs
// the text-shape word-wrap in 4.2a.
func Ingest(r io.Reader, baseDir string, useFileRef bool, measurer textmetric.Measurer) (Result, error) {
	root, err := decodeRoot(r)
	if err != nil {
		return Result{}, err
	}

	rootG := root
	if root.name != "g" {
		if g := root.find("g"); g != nil {
			rootG = g
		}
	}

	var res Result
	var slideIn, slideOut float64
	haveSlide := false

	for _, child := range rootG.children {
		if child.isText() {
			continue
		}
		switch {
		case child.name == "image" && isSlideImage(child):
			slide, err := buildSlide(child)
			if err != nil {
				return Result{}, err
			}
			res.Slides = append(res.Slides, slide)
			slideIn, slideOut, haveSlide = slide.Begin, slide.End, true

		case child.name == "g":
			if !haveSlide {
				continue // an annotation with no enclosing slide can't be clipped
			}
			shape, err := buildShape(child, slideIn, slideOut, baseDir, useFileRef, measurer)
			if err != nil {
				return Result{}, err
			}
			res.Shapes = append(res.Shapes, shape)
		}
	}

	return res, nil
}

func isSlideImage(img *node) bool {
	class, _ := img.attr("class")
	return strings.Contains(class, "slide")
}

func buildSlide(img *node) (model.Slide, error) {
	href, _ := img.attr("href")
	in, err := parseFloatAttr(img, "in")
	if err != nil {
		return model.Slide{}, err
	}
	out, err := parseFloatAttr(img, "out")
	if err != nil {
		return model.Slide{}, err
	}
	width, _ := parseFloatAttr(img, "width")
	height, _ := parseFloatAttr(img, "height")
	return model.Slide{Href: href, Begin: in, End: out, Width: width, Height: height}, nil
}

func buildShape(g *node, slideIn, slideOut float64, baseDir string, useFileRef bool, measurer textmetric.Measurer) (model.Shape, error) {
	// Force visibility: strip visibility:hidden from style (spec.md §4.2 step 1).
	if style, ok := g.attr("style"); ok {
		g.setAttr("style", stripHiddenVisibility(style))
	}

	shapeAttr, _ := g.attr("shape")
	id := lastDashToken(shapeAttr)

	switch {
	case strings.Contains(shapeAttr, "poll"):
		if err := convertPollShape(g, baseDir, useFileRef); err != nil {
			return model.Shape{}, err
		}
	case strings.Contains(shapeAttr, "text"):
		if err := convertTextShape(g, measurer); err != nil {
			return model.Shape{}, err
		}
	}

	timestamp, err := parseFloatAttr(g, "timestamp")
	if err != nil {
		return model.Shape{}, err
	}
	undo, err := parseFloatAttr(g, "undo")
	if err != nil {
		undo = -1
	}

	enter := max(timestamp, slideIn)
	leaveBase := slideOut
	if undo >= 0 {
		leaveBase = undo
	}
	leave := min(max(leaveBase, slideIn), slideOut)

	return model.Shape{Begin: enter, End: leave, Value: g.String(), ID: id}, nil
}

func stripHiddenVisibility(style string) string {
	var kept []string
	for _, decl := range strings.Split(style, ";") {
		if strings.Contains(strings.ReplaceAll(decl, " ", ""), "visibility:hidden") {
			continue
		}
		if strings.TrimSpace(decl) == "" {
			continue
		}
		kept = append(kept, strings.TrimSpace(decl))
	}
	return strings.Join(kept, ";")
}

// lastDashToken returns the last '-'-separated token of s, the shape's
// stable id per spec.md §3.
func lastDashToken(s string) string {
	if i := strings.LastIndexByte(s, '-'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func parseFloatAttr(n *node, name string) (float64, error) {
	v, ok := n.attr(name)
	if !ok {
		return 0, fmt.Errorf("%s: missing %q attribute", n.name, name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: attribute %q = %q: %w", n.name, name, v, err)
	}
	return f, nil
}
