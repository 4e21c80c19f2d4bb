package whiteboard

import (
	"fmt"
	"math"
	"strconv"

	"github.com/buffos/meetingvideo/internal/config"
	"github.com/buffos/meetingvideo/internal/intervaltree"
	"github.com/buffos/meetingvideo/internal/model"
	"github.com/buffos/meetingvideo/internal/timeline"
)

// Result is the emitter's output: the concat-demuxer playlist lines,
// ready to be written to frames/playlist.txt as-is.
type Result struct {
	Playlist []string
}

// Emit walks the merged timeline one breakpoint pair at a time,
// composing and writing a whiteboard frame per pair and building the
// concat-demuxer playlist that stitches them back into a single
// video stream (spec.md §4.7).
//
// slides and panzooms must be sorted ascending by Begin/T; shapes must
// be in z-order (document order), since the interval tree returns the
// visible shapes in that order and they are drawn as returned.
func Emit(cfg config.Config, pairs []timeline.Pair, shapes []model.Shape, slides []model.Slide, panzooms []model.Panzoom, sink Sink) (Result, error) {
	if len(pairs) == 0 {
		return Result{}, nil
	}
	if len(slides) == 0 {
		return Result{}, fmt.Errorf("emit frames: no slides to render")
	}
	if len(panzooms) == 0 {
		return Result{}, fmt.Errorf("emit frames: no panzoom viewBox to render")
	}

	tree := intervaltree.New(shapes)

	slideIdx, panzoomIdx := 0, 0
	var playlist []string
	var lastPath string

	for i, pair := range pairs {
		ta, tb := pair.Begin, pair.End

		for panzoomIdx+1 < len(panzooms) && panzooms[panzoomIdx+1].T <= ta {
			panzoomIdx++
		}
		for slideIdx+1 < len(slides) && ta >= slides[slideIdx+1].Begin {
			slideIdx++
		}

		visible := tree.Search(ta)
		if cfg.Flags.RemoveRedundantShapes {
			visible = DedupAdjacent(visible)
		}

		svg, err := Compose(cfg.Layout, slides[slideIdx], panzooms[panzoomIdx], visible)
		if err != nil {
			return Result{}, fmt.Errorf("emit frame %d: %w", i, err)
		}

		path, err := sink.WriteFrame(i, svg)
		if err != nil {
			return Result{}, err
		}

		playlist = append(playlist, "file "+path)
		playlist = append(playlist, "duration "+formatDuration(tb-ta))
		lastPath = path
	}

	// Concat-demuxer convention: the last listed duration is not
	// honored unless the final file is repeated once more without one.
	playlist = append(playlist, "file "+lastPath)

	return Result{Playlist: playlist}, nil
}

func formatDuration(seconds float64) string {
	return strconv.FormatFloat(math.Round(seconds*10)/10, 'f', -1, 64)
}
