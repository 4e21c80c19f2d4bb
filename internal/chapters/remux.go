package chapters

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/buffos/meetingvideo/internal/engineerr"
)

// Caption is one optional subtitle track to mux alongside the chapter
// remux, per spec.md §6's captions.json / caption_<locale>.vtt inputs.
type Caption struct {
	Path     string
	Language string
}

func run(ctx context.Context, ffmpegPath string, args []string) error {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return engineerr.New(engineerr.ExternalToolFailure, "chapters", string(output), err)
	}
	return nil
}

// Extract writes the intermediate MP4's global metadata tags to
// metadataPath in ffmpeg's ffmetadata text format, ready for
// AppendToMetadata to add [CHAPTER] blocks to before Remux.
func Extract(ctx context.Context, ffmpegPath, videoPath, metadataPath string) error {
	return run(ctx, ffmpegPath, []string{"-y", "-i", videoPath, "-f", "ffmetadata", metadataPath})
}

// Remux copies videoPath's audio/video streams unchanged into
// outputPath while replacing its metadata with metadataPath's
// (chapters included), per spec.md §4.9's "-codec copy" re-mux.
func Remux(ctx context.Context, ffmpegPath, videoPath, metadataPath, outputPath string) error {
	return run(ctx, ffmpegPath, []string{
		"-y",
		"-i", videoPath,
		"-i", metadataPath,
		"-map_metadata", "1",
		"-codec", "copy",
		outputPath,
	})
}

// MuxCaptions remuxes videoPath once more, adding one mov_text
// subtitle stream per caption with its language tag set, leaving the
// existing audio/video streams untouched.
func MuxCaptions(ctx context.Context, ffmpegPath, videoPath string, captions []Caption, outputPath string) error {
	if len(captions) == 0 {
		if videoPath == outputPath {
			return nil
		}
		if err := copyFile(videoPath, outputPath); err != nil {
			return engineerr.New(engineerr.OutputFailure, "chapters", "copy video without captions", err)
		}
		return nil
	}

	args := []string{"-y", "-i", videoPath}
	for _, c := range captions {
		args = append(args, "-i", c.Path)
	}
	args = append(args, "-map", "0")
	for i := range captions {
		args = append(args, "-map", fmt.Sprintf("%d:0", i+1))
	}
	args = append(args, "-c:v", "copy", "-c:a", "copy", "-c:s", "mov_text")
	for i, c := range captions {
		args = append(args, fmt.Sprintf("-metadata:s:s:%d", i), "language="+c.Language)
	}
	args = append(args, outputPath)

	return run(ctx, ffmpegPath, args)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("chapters: copy %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("chapters: copy %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return fmt.Errorf("chapters: copy %s: %w", dst, err)
	}
	return nil
}
