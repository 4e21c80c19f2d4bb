package shapeingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fixedMeasurer struct{ charWidth float64 }

func (m fixedMeasurer) Measure(s string, pt float64) (float64, error) {
	return float64(len([]rune(s))) * m.charWidth, nil
}

const testDoc = `<svg>
  <g>
    <image class="slide" href="slide1.png" in="0" out="10" width="1600" height="1200"/>
    <g shape="draw-abc-123" timestamp="1" undo="-1" style="visibility:hidden;color:red">
      <path d="M0 0 L1 1"/>
    </g>
    <g shape="poll-abc-xyz" timestamp="2" undo="-1" style="color:blue">
      <image href="poll1.png" width="50" height="50"/>
    </g>
    <g shape="text-abc-456" timestamp="3" undo="5" style="color:#112233;font-size:20px">
      <switch>
        <foreignObject x="10" y="20" width="40">
          <div xmlns="http://www.w3.org/1999/xhtml">hello world</div>
        </foreignObject>
        <text>fallback</text>
      </switch>
    </g>
  </g>
</svg>`

func writeTestPollImage(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "poll1.png"), []byte("not-a-real-png"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIngestSlideAndShapes(t *testing.T) {
	dir := t.TempDir()
	writeTestPollImage(t, dir)

	res, err := Ingest(strings.NewReader(testDoc), dir, false, fixedMeasurer{charWidth: 5})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Slides) != 1 {
		t.Fatalf("got %d slides, want 1", len(res.Slides))
	}
	slide := res.Slides[0]
	if slide.Begin != 0 || slide.End != 10 || slide.Width != 1600 || slide.Height != 1200 {
		t.Fatalf("slide = %+v, unexpected", slide)
	}

	if len(res.Shapes) != 3 {
		t.Fatalf("got %d shapes, want 3", len(res.Shapes))
	}

	draw := res.Shapes[0]
	if draw.ID != "123" || draw.Begin != 1 || draw.End != 10 {
		t.Fatalf("draw shape = %+v, unexpected", draw)
	}
	if strings.Contains(draw.Value, "visibility:hidden") {
		t.Fatalf("draw shape still carries visibility:hidden: %s", draw.Value)
	}
	if !strings.Contains(draw.Value, "color:red") {
		t.Fatalf("draw shape lost its color declaration: %s", draw.Value)
	}

	poll := res.Shapes[1]
	if poll.ID != "xyz" || poll.Begin != 2 || poll.End != 10 {
		t.Fatalf("poll shape = %+v, unexpected", poll)
	}
	if !strings.Contains(poll.Value, "data:image/png;base64,") {
		t.Fatalf("poll shape not embedded as data URI: %s", poll.Value)
	}
	if !strings.Contains(poll.Value, `xmlns:xlink=`) {
		t.Fatalf("poll shape missing xlink namespace declaration: %s", poll.Value)
	}

	text := res.Shapes[2]
	if text.ID != "456" || text.Begin != 3 || text.End != 5 {
		t.Fatalf("text shape = %+v, unexpected", text)
	}
	if strings.Contains(text.Value, "<switch>") {
		t.Fatalf("text shape still carries original switch/foreignObject: %s", text.Value)
	}
	if !strings.Contains(text.Value, `<tspan x="10" dy="1.0em">hello</tspan>`) {
		t.Fatalf("text shape missing expected first line tspan: %s", text.Value)
	}
	if !strings.Contains(text.Value, `<tspan x="10" dy="1.0em">world</tspan>`) {
		t.Fatalf("text shape missing expected second line tspan: %s", text.Value)
	}
	if !strings.Contains(text.Value, "fill:currentcolor") {
		t.Fatalf("text shape style missing fill:currentcolor: %s", text.Value)
	}
}

func TestIngestFileReference(t *testing.T) {
	dir := t.TempDir()
	writeTestPollImage(t, dir)

	res, err := Ingest(strings.NewReader(testDoc), dir, true, fixedMeasurer{charWidth: 5})
	if err != nil {
		t.Fatal(err)
	}
	poll := res.Shapes[1]
	if !strings.Contains(poll.Value, "file://"+filepath.Join(dir, "poll1.png")) {
		t.Fatalf("poll shape not rewritten to file:// reference: %s", poll.Value)
	}
}

func TestStripHiddenVisibility(t *testing.T) {
	got := stripHiddenVisibility("visibility:hidden;color:red;font-size:10px")
	if strings.Contains(got, "visibility") {
		t.Fatalf("stripHiddenVisibility left visibility in %q", got)
	}
	if !strings.Contains(got, "color:red") || !strings.Contains(got, "font-size:10px") {
		t.Fatalf("stripHiddenVisibility dropped unrelated declarations: %q", got)
	}
}

func TestLastDashToken(t *testing.T) {
	if got := lastDashToken("poll-abc-xyz"); got != "xyz" {
		t.Fatalf("lastDashToken = %q, want xyz", got)
	}
	if got := lastDashToken("noseparator"); got != "noseparator" {
		t.Fatalf("lastDashToken = %q, want noseparator", got)
	}
}
