package whiteboard

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
)

// Sink persists one composed frame and reports the path the concat
// playlist should reference for it.
type Sink interface {
	WriteFrame(index int, svg string) (playlistPath string, err error)
}

// DiskSink writes frames/frame{n}.svg or .svgz under Dir, gzip-wrapping
// the SVG text at best-speed when Compress is set (spec.md §6's
// SVGZ_COMPRESSION flag calls for best-speed, not best-compression),
// using stdlib compress/gzip the same way the rest of this engine
// favors stdlib for narrow, fully-specified container formats.
type DiskSink struct {
	Dir      string
	Compress bool
}

func (s DiskSink) ext() string {
	if s.Compress {
		return "svgz"
	}
	return "svg"
}

func (s DiskSink) WriteFrame(index int, svg string) (string, error) {
	name := fmt.Sprintf("frame%d.%s", index, s.ext())
	full := filepath.Join(s.Dir, name)

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("write frame %d: %w", index, err)
	}
	defer f.Close()

	if s.Compress {
		gz, err := gzip.NewWriterLevel(f, gzip.BestSpeed)
		if err != nil {
			return "", fmt.Errorf("write frame %d: %w", index, err)
		}
		if _, err := gz.Write([]byte(svg)); err != nil {
			return "", fmt.Errorf("write frame %d: %w", index, err)
		}
		if err := gz.Close(); err != nil {
			return "", fmt.Errorf("write frame %d: %w", index, err)
		}
	} else if _, err := f.WriteString(svg); err != nil {
		return "", fmt.Errorf("write frame %d: %w", index, err)
	}

	return "../frames/" + name, nil
}
