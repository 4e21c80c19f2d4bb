package pipeline

import (
	"os"
	"path/filepath"
)

// resolveMedia looks for base.mp4 then base.webm under dir and
// returns the first that exists (spec.md §6's "webcams.{mp4|webm}").
// ok is false when neither is present, the benign-default case spec.md
// §7 describes for optional artifacts (desk-share).
func resolveMedia(dir, base string) (path string, ok bool) {
	for _, ext := range []string{".mp4", ".webm"} {
		candidate := filepath.Join(dir, base+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
