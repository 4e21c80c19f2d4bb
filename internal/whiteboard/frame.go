// Package whiteboard renders the per-breakpoint whiteboard frames and
// their concat-demuxer playlist (spec.md §4.7).
package whiteboard

import (
	"fmt"

	"github.com/buffos/meetingvideo/internal/config"
	"github.com/buffos/meetingvideo/internal/model"
	"github.com/buffos/meetingvideo/internal/xmlutil"
)

// outerViewBox computes the outer <svg>'s viewBox so that the active
// panzoom viewBox letterboxes into the fixed slide box, adjusting
// whichever dimension is short rather than letting the renderer
// stretch the content (spec.md §4.7).
func outerViewBox(active model.Panzoom, slidesWidth, slidesHeight int) (x, y, w, h float64, ok bool) {
	vx, vy, vw, vh, valid := active.ViewBoxDims()
	if !valid || vw <= 0 || vh <= 0 {
		return 0, 0, 0, 0, false
	}
	targetAspect := float64(slidesWidth) / float64(slidesHeight)
	activeAspect := vw / vh

	if activeAspect > targetAspect {
		w = vw
		h = vw / targetAspect
		x = vx
		y = vy - (h-vh)/2
	} else {
		h = vh
		w = vh * targetAspect
		y = vy
		x = vx - (w-vw)/2
	}
	return x, y, w, h, true
}

// Compose renders one whiteboard frame: an outer letterboxing <svg>
// sized to the slide box, containing an inner <svg> clipped to the
// active viewBox with the slide image and every visible shape in
// z-order.
func Compose(layout config.Layout, slide model.Slide, active model.Panzoom, visible []model.Shape) (string, error) {
	ox, oy, ow, oh, ok := outerViewBox(active, layout.SlidesWidth, layout.SlidesHeight)
	if !ok {
		return "", fmt.Errorf("compose frame: invalid active viewBox %q", active.ViewBox)
	}
	vx, vy, vw, vh, _ := active.ViewBoxDims()

	out := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="%g %g %g %g">`+
			`<svg x="%g" y="%g" width="%g" height="%g" viewBox="%g %g %g %g">`+
			`<image href="%s" width="%g" height="%g"/>`,
		layout.SlidesWidth, layout.SlidesHeight, ox, oy, ow, oh,
		vx, vy, vw, vh, vx, vy, vw, vh,
		xmlutil.EscapeText(slide.Href), slide.Width, slide.Height,
	)
	for _, shape := range visible {
		out += shape.Value
	}
	out += "</svg></svg>"
	return out, nil
}

// DedupAdjacent drops any shape whose ID equals the next shape's ID in
// the z-ordered visible list, keeping the later occurrence (spec.md
// §4.4's REMOVE_REDUNDANT_SHAPES policy).
func DedupAdjacent(visible []model.Shape) []model.Shape {
	out := make([]model.Shape, 0, len(visible))
	for i, s := range visible {
		if i+1 < len(visible) && s.ID == visible[i+1].ID {
			continue
		}
		out = append(out, s)
	}
	return out
}
