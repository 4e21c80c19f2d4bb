// Package model holds the shared data types that flow between ingest,
// merge, and emission stages of the composition engine.
package model

import "sort"

// Shape is a single whiteboard annotation with its visible interval.
// Value is a self-contained <g> subtree; Id is the shape's stable
// identifier, the last dash-separated token of the source shape attribute.
type Shape struct {
	Begin float64
	End   float64
	Value string
	ID    string
}

// Span implements intervaltree.Interval.
func (s Shape) Span() (begin, end float64) { return s.Begin, s.End }

// Slide is one slide/poll image segment of the presentation timeline.
type Slide struct {
	Href   string
	Begin  float64
	End    float64
	Width  float64
	Height float64
}

// IsDeskshare reports whether this segment's image reference is a
// deskshare capture rather than a slide image.
func (s Slide) IsDeskshare() bool {
	return containsDeskshare(s.Href)
}

func containsDeskshare(href string) bool {
	const needle = "deskshare"
	for i := 0; i+len(needle) <= len(href); i++ {
		if href[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

// Panzoom is a single viewport change; it becomes active at T and stays
// active until the next Panzoom's T.
type Panzoom struct {
	T       float64
	ViewBox string
}

// ViewBoxDims parses "x y w h" and returns the width/height components.
func (p Panzoom) ViewBoxDims() (x, y, w, h float64, ok bool) {
	return parseViewBox(p.ViewBox)
}

// CursorSample is one normalized cursor position sample.
type CursorSample struct {
	T  float64
	NX float64
	NY float64
}

// ChatMessage is a single sanitized chat line.
type ChatMessage struct {
	T    float64
	Name string
	Text string
}

// Breakpoints builds the sorted, deduplicated set of re-render moments
// from shape begin/end times, slide begin/end times, panzoom times, and
// the recording duration, filtered to values <= duration. Per spec.md §3
// the final value is the duration itself.
func Breakpoints(shapes []Shape, slides []Slide, panzooms []Panzoom, duration float64) []float64 {
	seen := make(map[float64]struct{}, len(shapes)*2+len(slides)*2+len(panzooms)+1)
	add := func(t float64) {
		if t <= duration {
			seen[t] = struct{}{}
		}
	}
	for _, s := range shapes {
		add(s.Begin)
		add(s.End)
	}
	for _, s := range slides {
		add(s.Begin)
		add(s.End)
	}
	for _, p := range panzooms {
		add(p.T)
	}
	add(duration)

	out := make([]float64, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Float64s(out)
	return out
}
