package filtergraph

import (
	"context"
	"os/exec"

	"github.com/buffos/meetingvideo/internal/engineerr"
)

// Encode invokes the system ffmpeg binary with the given arguments and
// waits for it to complete, mirroring teleport's FFMPEGEncoder pattern
// of shelling out to an external binary rather than linking against a
// codec library (spec.md §1 treats the encoder as an external
// collaborator). Exactly one invocation is made; a nonzero exit is
// reported as an ExternalToolFailure, per spec.md §5.
func Encode(ctx context.Context, ffmpegPath string, args []string) error {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return engineerr.New(engineerr.ExternalToolFailure, "filtergraph.Encode", string(output), err)
	}
	return nil
}
