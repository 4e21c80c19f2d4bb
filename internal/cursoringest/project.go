package cursoringest

import (
	"fmt"
	"strconv"

	"github.com/buffos/meetingvideo/internal/config"
	"github.com/buffos/meetingvideo/internal/model"
)

// Project walks panzooms and samples in lockstep (spec.md §4.5) and
// returns one sendcmd overlay line per sample, each advancing the
// active viewBox, fitting cursor-space pixels to the slide box with
// letterboxing. Coordinates are local to main's own SlidesWidth x
// SlidesHeight frame (internal/whiteboard.Compose's output), not the
// background-shifted composite — the filter graph overlays the cursor
// onto main before main is shifted onto the background at (SlidesX,
// SlidesY).
func Project(panzooms []model.Panzoom, samples []model.CursorSample, layout config.Layout) ([]string, error) {
	if len(panzooms) == 0 {
		return nil, fmt.Errorf("project cursor: no panzoom events, no active viewBox")
	}

	sw := float64(layout.SlidesWidth)
	sh := float64(layout.SlidesHeight)

	idx := 0
	lines := make([]string, 0, len(samples))
	for _, s := range samples {
		for idx+1 < len(panzooms) && panzooms[idx+1].T <= s.T {
			idx++
		}
		_, _, w, h, ok := panzooms[idx].ViewBoxDims()
		if !ok {
			return nil, fmt.Errorf("project cursor: malformed viewBox %q", panzooms[idx].ViewBox)
		}

		cx := s.NX * w
		cy := s.NY * h

		scale := min(sw/w, sh/h)
		offX := (sw - scale*w) / 2
		offY := (sh - scale*h) / 2

		px := scale*cx + offX - layout.CursorRadius
		py := scale*cy + offY - layout.CursorRadius

		lines = append(lines, fmt.Sprintf("%s overlay@m x %s, overlay@m y %s;",
			round3(s.T), round3(px), round3(py)))
	}

	return lines, nil
}

func round3(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
