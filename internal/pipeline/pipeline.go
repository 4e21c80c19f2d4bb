// Package pipeline orchestrates the full composition run in the
// strict order spec.md §5 demands: ingest before merge, merge before
// frame emission, chat emission before the encoder, main encode
// before the chapter pass, chapter pass before the atomic rename.
// There is no internal parallelism anywhere in this package.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/buffos/meetingvideo/internal/chatlayout"
	"github.com/buffos/meetingvideo/internal/config"
	"github.com/buffos/meetingvideo/internal/cursoringest"
	"github.com/buffos/meetingvideo/internal/engineerr"
	"github.com/buffos/meetingvideo/internal/filtergraph"
	"github.com/buffos/meetingvideo/internal/logging"
	"github.com/buffos/meetingvideo/internal/model"
	"github.com/buffos/meetingvideo/internal/panzoomingest"
	"github.com/buffos/meetingvideo/internal/scratch"
	"github.com/buffos/meetingvideo/internal/shapeingest"
	"github.com/buffos/meetingvideo/internal/textmetric"
	"github.com/buffos/meetingvideo/internal/timeline"
	"github.com/buffos/meetingvideo/internal/whiteboard"
)

// Options carries the filesystem wiring spec.md §9's "scratch-root
// handle" alongside cfg — deployment paths, not composition
// parameters, so they stay out of the immutable config.Config record.
type Options struct {
	PublishedRoot  string // directory holding shapes.svg, panzooms.xml, ...
	ScratchBase    string // parent directory for this run's scratch tree
	VideoRoot      string // published-video root; metadata.xml is rewritten under VideoRoot/MeetingID
	FontMetricPath string
	FFmpegPath     string
	Log            *logging.Logger
}

// Run executes one end-to-end composition for cfg.MeetingID. Per
// spec.md §6 it is silent and returns nil immediately if cfg.Format
// is not "presentation". On any other failure it returns an
// *engineerr.Error and leaves the scratch tree in place.
func Run(ctx context.Context, cfg config.Config, opts Options) error {
	if cfg.Format != "presentation" {
		return nil
	}
	log := opts.Log
	if log == nil {
		log = logging.New(false)
	}

	root, err := scratch.New(opts.ScratchBase, cfg.MeetingID)
	if err != nil {
		return engineerr.New(engineerr.OutputFailure, "pipeline", "create scratch tree", err)
	}

	if err := run(ctx, cfg, opts, root, log); err != nil {
		return err
	}

	log.Stage("cleanup")
	if err := root.Cleanup(); err != nil {
		log.Warn("scratch cleanup failed: %v", err)
	}
	return nil
}

func run(ctx context.Context, cfg config.Config, opts Options, root *scratch.Root, log *logging.Logger) error {
	pub := opts.PublishedRoot

	log.Stage("read metadata")
	metaPath := filepath.Join(pub, "metadata.xml")
	metaRaw, err := os.ReadFile(metaPath)
	if err != nil {
		return engineerr.New(engineerr.InputMissing, "pipeline", "metadata.xml", err)
	}
	meta, err := scratch.ReadMetadata(bytes.NewReader(metaRaw))
	if err != nil {
		return engineerr.New(engineerr.InputMalformed, "pipeline", "metadata.xml", err)
	}
	duration := meta.DurationSeconds()

	log.Stage("ingest shapes")
	shapesFile, err := os.Open(filepath.Join(pub, "shapes.svg"))
	if err != nil {
		return engineerr.New(engineerr.InputMissing, "pipeline", "shapes.svg", err)
	}
	measurer := textmetric.NewCachingMeasurer(textmetric.ExecMeasurer{Path: opts.FontMetricPath})
	shapesResult, err := shapeingest.Ingest(shapesFile, pub, cfg.Flags.FFmpegReferenceSupport, measurer)
	shapesFile.Close()
	if err != nil {
		return engineerr.New(engineerr.InputMalformed, "pipeline", "shapes.svg", err)
	}

	log.Stage("ingest panzooms")
	panzoomFile, err := os.Open(filepath.Join(pub, "panzooms.xml"))
	if err != nil {
		return engineerr.New(engineerr.InputMissing, "pipeline", "panzooms.xml", err)
	}
	panzooms, err := panzoomingest.Ingest(panzoomFile)
	panzoomFile.Close()
	if err != nil {
		return engineerr.New(engineerr.InputMalformed, "pipeline", "panzooms.xml", err)
	}

	log.Stage("ingest cursor")
	cursorFile, err := os.Open(filepath.Join(pub, "cursor.xml"))
	if err != nil {
		return engineerr.New(engineerr.InputMissing, "pipeline", "cursor.xml", err)
	}
	cursorSamples, err := cursoringest.Ingest(cursorFile)
	cursorFile.Close()
	if err != nil {
		return engineerr.New(engineerr.InputMalformed, "pipeline", "cursor.xml", err)
	}

	var chatMessages []model.ChatMessage
	hasChat := !cfg.Flags.HideChat && fileExists(filepath.Join(pub, "slides_new.xml"))
	if hasChat {
		log.Stage("ingest chat")
		chatFile, err := os.Open(filepath.Join(pub, "slides_new.xml"))
		if err != nil {
			return engineerr.New(engineerr.InputMissing, "pipeline", "slides_new.xml", err)
		}
		msgs, err := chatlayout.Ingest(chatFile)
		chatFile.Close()
		if err != nil {
			return engineerr.New(engineerr.InputMalformed, "pipeline", "slides_new.xml", err)
		}
		hasChat = len(msgs) > 0
		chatMessages = msgs
	}

	log.Stage("merge timeline")
	pairs := timeline.Merge(shapesResult.Shapes, shapesResult.Slides, panzooms, duration)

	log.Stage("emit whiteboard frames")
	sink := whiteboard.DiskSink{Dir: root.Path("frames"), Compress: cfg.Flags.SVGZCompression}
	frameResult, err := whiteboard.Emit(cfg, pairs, shapesResult.Shapes, shapesResult.Slides, panzooms, sink)
	if err != nil {
		return engineerr.New(engineerr.OutputFailure, "pipeline", "emit whiteboard frames", err)
	}
	playlistPath := root.Path("frames", "playlist.txt")
	if err := writeLines(playlistPath, frameResult.Playlist); err != nil {
		return engineerr.New(engineerr.OutputFailure, "pipeline", "write playlist", err)
	}

	log.Stage("emit cursor overlay")
	cursorLines, err := cursoringest.Project(panzooms, cursorSamples, cfg.Layout)
	if err != nil {
		return engineerr.New(engineerr.OutputFailure, "pipeline", "project cursor", err)
	}
	cursorSpritePath := root.Path("cursor", "cursor.svg")
	if err := os.WriteFile(cursorSpritePath, []byte(cursoringest.Sprite(cfg.Layout.CursorRadius)), 0o644); err != nil {
		return engineerr.New(engineerr.OutputFailure, "pipeline", "write cursor sprite", err)
	}
	cursorTimestampsPath := root.Path("timestamps", "cursor_timestamps")
	if err := writeLines(cursorTimestampsPath, cursorLines); err != nil {
		return engineerr.New(engineerr.OutputFailure, "pipeline", "write cursor timestamps", err)
	}

	var chatSpritePath, chatTimestampsPath string
	if hasChat {
		log.Stage("emit chat overlay")
		engine := chatlayout.NewEngine(cfg)
		for _, m := range chatMessages {
			engine.Add(m)
		}
		chatSVG, chatTimestamps := engine.Build()
		chatSpritePath = root.Path("chats", "chat.svg")
		if err := os.WriteFile(chatSpritePath, []byte(chatSVG), 0o644); err != nil {
			return engineerr.New(engineerr.OutputFailure, "pipeline", "write chat.svg", err)
		}
		chatTimestampsPath = root.Path("timestamps", "chat_timestamps")
		if err := os.WriteFile(chatTimestampsPath, []byte(chatTimestamps), 0o644); err != nil {
			return engineerr.New(engineerr.OutputFailure, "pipeline", "write chat_timestamps", err)
		}
	}

	log.Stage("assemble filter graph")
	webcamsPath, ok := resolveMedia(filepath.Join(pub, "video"), "webcams")
	if !ok {
		return engineerr.New(engineerr.InputMissing, "pipeline", "video/webcams", nil)
	}
	deskharePath := ""
	if !cfg.Flags.HideDeskshare {
		if p, ok := resolveMedia(filepath.Join(pub, "deskshare"), "deskshare"); ok {
			deskharePath = p
		}
	}

	in := filtergraph.Inputs{
		Background:         "black", // synthesized lavfi canvas; no on-disk background artifact exists
		WhiteboardPlaylist: playlistPath,
		CursorSprite:       cursorSpritePath,
		Webcams:            webcamsPath,
		Deskshare:          deskharePath,
	}
	if hasChat {
		in.ChatBackgroundColor = "white"
		in.ChatSprite = chatSpritePath
	}
	fgOpts := filtergraph.Options{
		Layout:             cfg.Layout,
		CursorTimestamps:   cursorTimestampsPath,
		ChatTimestamps:     chatTimestampsPath,
		Duration:           duration,
		ConstantRateFactor: cfg.Flags.ConstantRateFactor,
		Title:              meta.Meta.MeetingName,
	}
	args, err := filtergraph.Build(in, fgOpts, root.Path("intermediate.mp4"))
	if err != nil {
		return engineerr.New(engineerr.OutputFailure, "pipeline", "build filter graph", err)
	}

	log.Stage("encode")
	encodeStart := time.Now()
	if err := filtergraph.Encode(ctx, opts.FFmpegPath, args); err != nil {
		return err
	}
	if cfg.Flags.BenchmarkFFmpeg {
		log.Printf("[benchmark] encode took %s", time.Since(encodeStart))
	}

	log.Stage("chapter pass")
	chapteredPath := root.Path("chaptered.mp4")
	if err := runChapterPass(ctx, opts, root, shapesResult, duration, chapteredPath); err != nil {
		return err
	}

	finalPath := chapteredPath
	if cfg.Flags.CaptionSupport {
		log.Stage("caption pass")
		finalPath = root.Path("final.mp4")
		if err := runCaptionPass(ctx, opts, pub, chapteredPath, finalPath); err != nil {
			return err
		}
	}

	log.Stage("publish")
	published := filepath.Join(pub, "meeting.mp4")
	if err := scratch.Publish(finalPath, published); err != nil {
		return engineerr.New(engineerr.OutputFailure, "pipeline", "publish meeting.mp4", err)
	}

	link := fmt.Sprintf("%s/%s/meeting.mp4", opts.VideoRoot, cfg.MeetingID)
	rewritten, err := scratch.RewritePlaybackFields(metaRaw, "video", link)
	if err != nil {
		return engineerr.New(engineerr.OutputFailure, "pipeline", "rewrite metadata.xml", err)
	}
	videoMetaPath := filepath.Join(opts.VideoRoot, cfg.MeetingID, "metadata.xml")
	if err := os.MkdirAll(filepath.Dir(videoMetaPath), 0o755); err != nil {
		return engineerr.New(engineerr.OutputFailure, "pipeline", "create video root", err)
	}
	if err := os.WriteFile(videoMetaPath, rewritten, 0o644); err != nil {
		return engineerr.New(engineerr.OutputFailure, "pipeline", "write video-root metadata.xml", err)
	}

	return nil
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}
