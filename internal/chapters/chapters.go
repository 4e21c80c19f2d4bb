// Package chapters builds the post-encode [CHAPTER] metadata pass and
// optional caption muxing described in spec.md §4.9.
package chapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/buffos/meetingvideo/internal/model"
)

// Chapter is one slide's or deskshare segment's chapter marker.
type Chapter struct {
	Title        string
	StartSeconds float64
	EndSeconds   float64
}

// Build filters slides to the ones worth a chapter marker — visible
// span strictly greater than 0.25s, start strictly before duration —
// and titles each "Slide {k}" or "Screen sharing {k}" depending on
// Slide.IsDeskshare, numbered in a single sequence over the filtered
// set in timeline order.
func Build(slides []model.Slide, duration float64) []Chapter {
	var out []Chapter
	k := 1
	for _, s := range slides {
		if s.End-s.Begin <= 0.25 || s.Begin >= duration {
			continue
		}
		end := s.End
		if end > duration {
			end = duration
		}
		title := fmt.Sprintf("Slide %d", k)
		if s.IsDeskshare() {
			title = fmt.Sprintf("Screen sharing %d", k)
		}
		out = append(out, Chapter{Title: title, StartSeconds: s.Begin, EndSeconds: end})
		k++
	}
	return out
}

// AppendToMetadata appends one ffmpeg ffmetadata [CHAPTER] block per
// chapter to the file at path, which is expected to already hold the
// ";FFMETADATA1" header and any global tags extracted from the
// intermediate MP4.
func AppendToMetadata(path string, chapters []Chapter) error {
	if len(chapters) == 0 {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("chapters: open metadata file: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, c := range chapters {
		fmt.Fprintf(&b, "[CHAPTER]\nTIMEBASE=1/1000\nSTART=%d\nEND=%d\ntitle=%s\n",
			msRound(c.StartSeconds), msRound(c.EndSeconds), escapeMetadataValue(c.Title))
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("chapters: write metadata file: %w", err)
	}
	return nil
}

func msRound(seconds float64) int64 {
	return int64(seconds*1000 + 0.5)
}

// escapeMetadataValue escapes the ffmetadata special characters ('=',
// ';', '#', '\', newline) per the format's own escaping rule.
func escapeMetadataValue(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '=', ';', '#', '\\', '\n':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
