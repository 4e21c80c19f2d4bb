package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/buffos/meetingvideo/internal/chapters"
	"github.com/buffos/meetingvideo/internal/engineerr"
	"github.com/buffos/meetingvideo/internal/scratch"
	"github.com/buffos/meetingvideo/internal/shapeingest"
)

func runChapterPass(ctx context.Context, opts Options, root *scratch.Root, shapes shapeingest.Result, duration float64, outputPath string) error {
	intermediate := root.Path("intermediate.mp4")
	metaPath := root.Path("chapters_meta.txt")

	if err := chapters.Extract(ctx, opts.FFmpegPath, intermediate, metaPath); err != nil {
		return err
	}

	chapterList := chapters.Build(shapes.Slides, duration)
	if err := chapters.AppendToMetadata(metaPath, chapterList); err != nil {
		return engineerr.New(engineerr.OutputFailure, "pipeline", "append chapter metadata", err)
	}

	if err := chapters.Remux(ctx, opts.FFmpegPath, intermediate, metaPath, outputPath); err != nil {
		return err
	}
	return nil
}

func runCaptionPass(ctx context.Context, opts Options, publishedRoot, inputPath, outputPath string) error {
	captionsJSON := filepath.Join(publishedRoot, "captions.json")
	if !fileExists(captionsJSON) {
		return chapters.MuxCaptions(ctx, opts.FFmpegPath, inputPath, nil, outputPath)
	}

	f, err := os.Open(captionsJSON)
	if err != nil {
		return engineerr.New(engineerr.InputMalformed, "pipeline", "captions.json", err)
	}
	defer f.Close()

	files, err := readCaptions(f, publishedRoot)
	if err != nil {
		return engineerr.New(engineerr.InputMalformed, "pipeline", "captions.json", err)
	}

	var tracks []chapters.Caption
	for _, cf := range files {
		if !fileExists(cf.Path) {
			continue // missing VTT for a declared locale is a benign default: skip that track
		}
		tracks = append(tracks, chapters.Caption{Path: cf.Path, Language: cf.Language})
	}

	return chapters.MuxCaptions(ctx, opts.FFmpegPath, inputPath, tracks, outputPath)
}
