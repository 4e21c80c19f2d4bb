package whiteboard

import (
	"fmt"
	"strings"
	"testing"

	"github.com/buffos/meetingvideo/internal/config"
	"github.com/buffos/meetingvideo/internal/model"
	"github.com/buffos/meetingvideo/internal/timeline"
)

func TestOuterViewBoxLetterboxesWideViewBox(t *testing.T) {
	active := model.Panzoom{ViewBox: "0 0 200 100"}
	x, y, w, h, ok := outerViewBox(active, 100, 100)
	if !ok {
		t.Fatal("outerViewBox() ok = false")
	}
	if w != 200 || h != 200 {
		t.Fatalf("outerViewBox() w,h = %g,%g, want 200,200", w, h)
	}
	if x != 0 || y != -50 {
		t.Fatalf("outerViewBox() x,y = %g,%g, want 0,-50", x, y)
	}
}

func TestOuterViewBoxInvalidViewBox(t *testing.T) {
	if _, _, _, _, ok := outerViewBox(model.Panzoom{ViewBox: "nonsense"}, 100, 100); ok {
		t.Fatal("outerViewBox() ok = true for an unparseable viewBox")
	}
}

func TestComposeEmitsSlideAndShapes(t *testing.T) {
	layout := config.Default().Layout
	slide := model.Slide{Href: "slide1.png", Begin: 0, End: 10, Width: 100, Height: 100}
	active := model.Panzoom{T: 0, ViewBox: "0 0 100 100"}
	shapes := []model.Shape{{ID: "a", Begin: 0, End: 10, Value: `<g id="a"/>`}}

	svg, err := Compose(layout, slide, active, shapes)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !strings.Contains(svg, `href="slide1.png"`) {
		t.Fatalf("Compose() missing slide image: %s", svg)
	}
	if !strings.Contains(svg, `<g id="a"/>`) {
		t.Fatalf("Compose() missing shape: %s", svg)
	}
}

func TestDedupAdjacentDropsEarlierDuplicate(t *testing.T) {
	shapes := []model.Shape{{ID: "a"}, {ID: "a"}, {ID: "b"}}
	got := DedupAdjacent(shapes)
	want := []string{"a", "b"}
	if len(got) != len(want) {
		t.Fatalf("DedupAdjacent() = %v, want %v", got, want)
	}
	for i, s := range got {
		if s.ID != want[i] {
			t.Fatalf("DedupAdjacent()[%d].ID = %q, want %q", i, s.ID, want[i])
		}
	}
}

type memSink struct {
	frames []string
}

func (m *memSink) WriteFrame(index int, svg string) (string, error) {
	m.frames = append(m.frames, svg)
	return fmt.Sprintf("../frames/frame%d.svg", index), nil
}

func TestEmitBuildsPlaylistWithRepeatedFinalFile(t *testing.T) {
	cfg := config.Default()
	shapes := []model.Shape{{ID: "a", Begin: 0, End: 10, Value: `<g id="a"/>`}}
	slides := []model.Slide{{Href: "slide1.png", Begin: 0, End: 10, Width: 100, Height: 100}}
	panzooms := []model.Panzoom{{T: 0, ViewBox: "0 0 100 100"}}
	pairs := timeline.Merge(shapes, slides, panzooms, 10)

	sink := &memSink{}
	result, err := Emit(cfg, pairs, shapes, slides, panzooms, sink)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if len(sink.frames) != len(pairs) {
		t.Fatalf("wrote %d frames, want %d", len(sink.frames), len(pairs))
	}

	last := result.Playlist[len(result.Playlist)-1]
	secondLast := result.Playlist[len(result.Playlist)-2]
	if !strings.HasPrefix(last, "file ") || !strings.HasPrefix(secondLast, "duration ") {
		// sanity: last two lines are "duration ..." then a repeated "file ..."
		t.Fatalf("playlist must end with \"duration ...\" then \"file ...\", got %q, %q", secondLast, last)
	}
	if strings.HasPrefix(last, "duration") {
		t.Fatalf("playlist must end with a repeated file line, got %q", last)
	}
	if count := strings.Count(strings.Join(result.Playlist, "\n"), "file "); count != len(pairs)+1 {
		t.Fatalf("playlist has %d file lines, want %d", count, len(pairs)+1)
	}
}

func TestEmitNoPairsReturnsEmptyResult(t *testing.T) {
	cfg := config.Default()
	result, err := Emit(cfg, nil, nil, nil, nil, &memSink{})
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if result.Playlist != nil {
		t.Fatalf("Emit() playlist = %v, want nil", result.Playlist)
	}
}
