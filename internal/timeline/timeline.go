// Package timeline merges the per-ingest breakpoint contributions into
// the single ordered sequence the whiteboard frame emitter iterates
// (spec.md §3's Frame Breakpoint Set and §4.7's adjacent-pair walk).
package timeline

import "github.com/buffos/meetingvideo/internal/model"

// Pair is one adjacent breakpoint interval [Begin, End) the frame
// emitter renders as a single whiteboard frame held for End-Begin
// seconds.
type Pair struct {
	Begin float64
	End   float64
}

// Merge builds the sorted breakpoint set and returns its adjacent
// pairs in order. A timeline of fewer than two breakpoints (no content
// or a zero-duration recording) yields no pairs.
func Merge(shapes []model.Shape, slides []model.Slide, panzooms []model.Panzoom, duration float64) []Pair {
	breakpoints := model.Breakpoints(shapes, slides, panzooms, duration)
	if len(breakpoints) < 2 {
		return nil
	}
	pairs := make([]Pair, 0, len(breakpoints)-1)
	for i := 0; i+1 < len(breakpoints); i++ {
		pairs = append(pairs, Pair{Begin: breakpoints[i], End: breakpoints[i+1]})
	}
	return pairs
}
