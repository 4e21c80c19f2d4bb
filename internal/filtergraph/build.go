// Package filtergraph assembles the single ffmpeg invocation that
// composites the whiteboard, cursor, webcam, deskshare, and chat
// layers into one encoded output (spec.md §4.8).
package filtergraph

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/buffos/meetingvideo/internal/config"
)

// Inputs names every media source the filter graph may reference.
// Background is a color name (lavfi color source, the same idiom
// ChatBackgroundColor uses) rather than a file path: the seamless
// background loop has no artifact of its own in the published
// directory, so it is synthesized instead of read from disk.
// Deskshare and the two chat inputs are optional; leaving them empty
// omits the corresponding branch entirely.
type Inputs struct {
	Background         string
	WhiteboardPlaylist string
	CursorSprite        string
	Webcams             string
	Deskshare           string
	ChatBackgroundColor string
	ChatSprite          string
}

// Options carries the encode-time parameters the filter graph and the
// final output arguments need.
type Options struct {
	Layout             config.Layout
	CursorTimestamps   string
	ChatTimestamps     string
	Duration           float64
	ConstantRateFactor int
	ThreadCount        int
	Title              string
}

// Build assembles the full ffmpeg argument list: input declarations in
// a stable order, the filter_complex graph, and the output encoding
// arguments. It does not invoke ffmpeg; see Encode.
func Build(in Inputs, opts Options, outputPath string) ([]string, error) {
	if in.Background == "" || in.WhiteboardPlaylist == "" || in.CursorSprite == "" || in.Webcams == "" {
		return nil, fmt.Errorf("filtergraph: background, whiteboard, cursor and webcams inputs are required")
	}

	var args []string
	next := 0
	addInput := func(extra []string, path string) int {
		args = append(args, extra...)
		args = append(args, "-i", path)
		idx := next
		next++
		return idx
	}

	bg := addInput([]string{"-f", "lavfi"}, fmt.Sprintf("color=c=%s:s=%dx%d", in.Background, opts.Layout.OutputWidth, opts.Layout.OutputHeight))
	wb := addInput([]string{"-f", "concat", "-safe", "0"}, in.WhiteboardPlaylist)
	cursor := addInput(nil, in.CursorSprite)
	webcams := addInput(nil, in.Webcams)

	deskshare := -1
	if in.Deskshare != "" {
		deskshare = addInput(nil, in.Deskshare)
	}

	hasChat := in.ChatBackgroundColor != "" && in.ChatSprite != ""
	chatBg, chatSprite := -1, -1
	if hasChat {
		layout := opts.Layout
		chatBg = addInput([]string{"-f", "lavfi"}, fmt.Sprintf("color=c=%s:s=%dx%d", in.ChatBackgroundColor, layout.ChatWidth, layout.ChatHeight))
		chatSprite = addInput(nil, in.ChatSprite)
	}

	layout := opts.Layout
	var fc strings.Builder

	fmt.Fprintf(&fc, "[%d:v]sendcmd=f=%s[cursor];", cursor, quoteFilterArg(opts.CursorTimestamps))
	fmt.Fprintf(&fc, "[%d:v]scale=%d:%d[wcscaled];", webcams, layout.WebcamsWidth, layout.WebcamsHeight)
	fmt.Fprintf(&fc, "[wcscaled]format=rgba,geq=r='r(X,Y)':g='g(X,Y)':b='b(X,Y)':a='%s'[webcams];",
		roundedAlphaExpr(layout.BorderRadius, 255))

	var main string
	if deskshare >= 0 {
		fmt.Fprintf(&fc, "[%d:v]scale=%d:%d:force_original_aspect_ratio=1[deskbg];", deskshare, layout.SlidesWidth, layout.SlidesHeight)
		fmt.Fprintf(&fc, "[deskbg][%d:v]overlay[main0];", wb)
		main = "[main0]"
	} else {
		main = fmt.Sprintf("[%d:v]", wb)
	}

	fmt.Fprintf(&fc, "%s[cursor]overlay[maincur];", main)
	fmt.Fprintf(&fc, "[maincur]format=rgba,geq=r='r(X,Y)':g='g(X,Y)':b='b(X,Y)':a='%s'[mainmasked];",
		roundedAlphaExpr(layout.BorderRadius, 255))
	fmt.Fprintf(&fc, "[%d:v][mainmasked]overlay=%d:%d[composite];", bg, layout.SlidesX, layout.SlidesY)

	composite := "[composite]"
	if hasChat {
		fmt.Fprintf(&fc, "[%d:v]sendcmd=f=%s,crop@c=%d:%d:0:0[chatcrop];",
			chatSprite, quoteFilterArg(opts.ChatTimestamps), layout.ChatWidth, layout.ChatHeight)
		fmt.Fprintf(&fc, "[%d:v]format=rgba,geq=r='r(X,Y)':g='g(X,Y)':b='b(X,Y)':a='%s'[chatbgmasked];",
			chatBg, roundedAlphaExpr(layout.BorderRadius, 153))
		fc.WriteString("[chatbgmasked][chatcrop]overlay[chatlayer];")
		fmt.Fprintf(&fc, "%s[chatlayer]overlay=%d:%d[composite2];", composite, layout.ChatOuterX, layout.ChatOuterY)
		composite = "[composite2]"
	}

	fmt.Fprintf(&fc, "%s[webcams]overlay=%d:%d[outv]", composite, layout.WebcamsX, layout.WebcamsY)

	threads := opts.ThreadCount
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	args = append(args,
		"-filter_complex", fc.String(),
		"-map", "[outv]",
		"-map", fmt.Sprintf("%d:a", webcams),
		"-c:v", "libx264",
		"-crf", strconv.Itoa(opts.ConstantRateFactor),
		"-shortest",
		"-t", strconv.FormatFloat(opts.Duration, 'f', -1, 64),
		"-threads", strconv.Itoa(threads),
		"-metadata", "title="+opts.Title,
		"-y", outputPath,
	)
	return args, nil
}
