// Package scratch manages the per-run scratch tree, metadata.xml
// read/rewrite, and the atomic publish step described in spec.md §5
// and §6.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"
)

// subdirs are the scratch-tree directories every stage writes under;
// spec.md §6 lists their contents as deleted on success.
var subdirs = []string{"frames", "cursor", "chats", "timestamps"}

// Root is a created-and-owned scratch directory tree for one run.
type Root struct {
	Dir string
}

// New creates a fresh scratch tree under base, named after meetingID,
// and returns a handle to it. The caller is responsible for calling
// Cleanup once the run succeeds; on failure the tree is left in place
// for diagnosis (spec.md §5's "no retry loop... scratch is retained").
func New(base, meetingID string) (*Root, error) {
	dir := filepath.Join(base, meetingID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("scratch: create root %s: %w", dir, err)
	}
	for _, sub := range subdirs {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("scratch: create %s: %w", sub, err)
		}
	}
	return &Root{Dir: dir}, nil
}

// Path joins parts onto the scratch root, e.g. Path("frames", "frame0.svg").
func (r *Root) Path(parts ...string) string {
	return filepath.Join(append([]string{r.Dir}, parts...)...)
}

// Cleanup removes the entire scratch tree. Call only on the success
// path; a failed run must leave the tree for diagnosis.
func (r *Root) Cleanup() error {
	if err := os.RemoveAll(r.Dir); err != nil {
		return fmt.Errorf("scratch: cleanup %s: %w", r.Dir, err)
	}
	return nil
}

// Publish atomically moves the finished MP4 from the scratch tree to
// its published location. Both paths must share a filesystem for the
// rename to be atomic; the destination directory is created first.
func Publish(tmpPath, finalPath string) error {
	if err := os.MkdirAll(filepath.Dir(finalPath), 0o755); err != nil {
		return fmt.Errorf("scratch: create publish dir: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fmt.Errorf("scratch: publish %s: %w", finalPath, err)
	}
	return nil
}
