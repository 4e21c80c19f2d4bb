package filtergraph

import (
	"strings"
	"testing"

	"github.com/buffos/meetingvideo/internal/config"
)

func baseInputs() Inputs {
	return Inputs{
		Background:         "black",
		WhiteboardPlaylist: "playlist.txt",
		CursorSprite:       "cursor.svg",
		Webcams:            "webcams.mp4",
	}
}

func baseOptions() Options {
	return Options{
		Layout:             config.Default().Layout,
		CursorTimestamps:   "cursor_timestamps",
		Duration:           120,
		ConstantRateFactor: 23,
		ThreadCount:        4,
		Title:              "Test Meeting",
	}
}

func TestBuildRequiresCoreInputs(t *testing.T) {
	if _, err := Build(Inputs{}, baseOptions(), "out.mp4"); err == nil {
		t.Fatal("Build() with no inputs should fail")
	}
}

func TestBuildWithoutDeskshareOrChat(t *testing.T) {
	args, err := Build(baseInputs(), baseOptions(), "out.mp4")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	joined := strings.Join(args, " ")
	if strings.Contains(joined, "deskbg") {
		t.Fatalf("unexpected deskshare branch: %s", joined)
	}
	if strings.Contains(joined, "chatlayer") {
		t.Fatalf("unexpected chat branch: %s", joined)
	}
	if !strings.Contains(joined, "-crf 23") {
		t.Fatalf("missing crf arg: %s", joined)
	}
	if !strings.Contains(joined, "[outv]") {
		t.Fatalf("missing output label: %s", joined)
	}
}

func TestBuildWithDeskshareAndChat(t *testing.T) {
	in := baseInputs()
	in.Deskshare = "deskshare.mp4"
	in.ChatBackgroundColor = "white"
	in.ChatSprite = "chat.svg"

	opts := baseOptions()
	opts.ChatTimestamps = "chat_timestamps"

	args, err := Build(in, opts, "out.mp4")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "deskbg") {
		t.Fatalf("missing deskshare branch: %s", joined)
	}
	if !strings.Contains(joined, "chatlayer") {
		t.Fatalf("missing chat branch: %s", joined)
	}
	if !strings.Contains(joined, "lavfi") {
		t.Fatalf("missing chat background lavfi source: %s", joined)
	}
}

func TestRoundedAlphaExprEscapesCommas(t *testing.T) {
	expr := roundedAlphaExpr(12, 255)
	if strings.Contains(expr, ",") {
		t.Fatalf("roundedAlphaExpr() contains an unescaped comma: %s", expr)
	}
	if !strings.Contains(expr, "255") {
		t.Fatalf("roundedAlphaExpr() missing opaque value: %s", expr)
	}
}
