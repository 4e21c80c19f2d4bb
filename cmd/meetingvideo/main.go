// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/buffos/meetingvideo/internal/config"
	"github.com/buffos/meetingvideo/internal/engineerr"
	"github.com/buffos/meetingvideo/internal/logging"
	"github.com/buffos/meetingvideo/internal/pipeline"
)

func main() {
	meetingID := flag.String("meeting-id", "", "Meeting ID to compose (required)")
	format := flag.String("format", "", "Recording format reported by the playback portal (required)")
	logStdout := flag.Bool("log-stdout", false, "Write log output to stdout instead of stderr")

	publishedRoot := flag.String("published-root", "", "Directory holding this meeting's raw recording artifacts (required)")
	scratchBase := flag.String("scratch-base", "/var/bigbluebutton/scratch", "Parent directory for the per-run scratch tree")
	videoRoot := flag.String("video-root", "/var/bigbluebutton/published/video", "Root under which the rewritten metadata.xml is published")
	fontMetricPath := flag.String("font-metric-tool", "convert", "Path to the font-metric tool (defaults to ImageMagick's convert)")
	ffmpegPath := flag.String("ffmpeg-path", "ffmpeg", "Path to the ffmpeg binary")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s --meeting-id <id> --format <name> --published-root <dir> [flags]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "\nComposes a post-hoc recording video for one BigBlueButton meeting.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *meetingID == "" || *format == "" || *publishedRoot == "" {
		flag.Usage()
		os.Exit(1)
	}

	log := logging.New(*logStdout)

	cfg := config.Default()
	cfg.MeetingID = *meetingID
	cfg.Format = *format
	cfg.LogStdout = *logStdout

	opts := pipeline.Options{
		PublishedRoot:  *publishedRoot,
		ScratchBase:    *scratchBase,
		VideoRoot:      *videoRoot,
		FontMetricPath: *fontMetricPath,
		FFmpegPath:     *ffmpegPath,
		Log:            log,
	}

	log.Stage(fmt.Sprintf("starting composition for meeting %s", cfg.MeetingID))
	if err := pipeline.Run(context.Background(), cfg, opts); err != nil {
		log.Printf("composition failed: %v", err)
		if engErr, ok := err.(*engineerr.Error); ok {
			log.Printf("stage=%s kind=%s reason=%s", engErr.Stage, engErr.Kind, engErr.Reason)
		}
		os.Exit(1)
	}
	log.Stage("composition complete")
}
