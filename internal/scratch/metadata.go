package scratch

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/buffos/meetingvideo/internal/xmlutil"
)

// Metadata is the slice of metadata.xml this engine reads: the
// recording duration and meeting name (spec.md §6).
type Metadata struct {
	Playback struct {
		DurationMS int64  `xml:"duration"`
		Format     string `xml:"format"`
		Link       string `xml:"link"`
	} `xml:"playback"`
	Meta struct {
		MeetingName string `xml:"meetingName"`
	} `xml:"meta"`
}

// DurationSeconds converts the millisecond duration field to seconds.
func (m Metadata) DurationSeconds() float64 {
	return float64(m.Playback.DurationMS) / 1000
}

// ReadMetadata parses metadata.xml's recording/playback and
// recording/meta sections.
func ReadMetadata(r io.Reader) (Metadata, error) {
	var m Metadata
	if err := xml.NewDecoder(r).Decode(&m); err != nil {
		return Metadata{}, fmt.Errorf("scratch: parse metadata.xml: %w", err)
	}
	return m, nil
}

// RewritePlaybackFields rewrites only the recording/playback/format
// and recording/playback/link element text in raw, leaving every
// other byte of the document untouched — the rest of metadata.xml
// carries fields this engine never reads and must not disturb.
func RewritePlaybackFields(raw []byte, format, link string) ([]byte, error) {
	out, err := rewritePlaybackField(raw, "format", format)
	if err != nil {
		return nil, err
	}
	out, err = rewritePlaybackField(out, "link", link)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RewriteMetadataFile reads path, rewrites its playback format/link
// fields, and writes the result back.
func RewriteMetadataFile(path, format, link string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scratch: read %s: %w", path, err)
	}
	rewritten, err := RewritePlaybackFields(raw, format, link)
	if err != nil {
		return fmt.Errorf("scratch: rewrite %s: %w", path, err)
	}
	if err := os.WriteFile(path, rewritten, 0o644); err != nil {
		return fmt.Errorf("scratch: write %s: %w", path, err)
	}
	return nil
}

// rewritePlaybackField locates the single recording/playback/<field>
// element's text content by walking raw with a streaming decoder
// (the same token-loop idiom internal/shapeingest and
// internal/panzoomingest use) and splices newValue in over its byte
// span, leaving surrounding markup untouched.
func rewritePlaybackField(raw []byte, field, newValue string) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var path []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scratch: walk metadata.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)
			if len(path) == 3 && path[0] == "recording" && path[1] == "playback" && path[2] == field {
				afterStart := dec.InputOffset()
				if _, err := dec.Token(); err != nil {
					return nil, fmt.Errorf("scratch: read %s text: %w", field, err)
				}
				afterText := dec.InputOffset()
				return spliceText(raw, afterStart, afterText, newValue), nil
			}
		case xml.EndElement:
			path = path[:len(path)-1]
		}
	}
	return nil, fmt.Errorf("scratch: recording/playback/%s not found in metadata.xml", field)
}

func spliceText(raw []byte, start, end int64, newValue string) []byte {
	out := make([]byte, 0, len(raw))
	out = append(out, raw[:start]...)
	out = append(out, []byte(xmlutil.EscapeText(newValue))...)
	out = append(out, raw[end:]...)
	return out
}
