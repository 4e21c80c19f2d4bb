// Package cursoringest streams the cursor document into normalized
// CursorSample timelines and projects them onto composite-frame pixel
// coordinates for the encoder's sendcmd overlay track (spec.md §4.5).
package cursoringest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/buffos/meetingvideo/internal/model"
)

// Ingest reads r token by token, pairing each cursor element's (nx, ny)
// text content with the timestamp of the nearest preceding event
// element in the same document (the Open Question decision recorded in
// DESIGN.md — the cursor document carries its own event/timestamp
// wrapper the same way the panzoom document does).
func Ingest(r io.Reader) ([]model.CursorSample, error) {
	dec := xml.NewDecoder(r)

	var samples []model.CursorSample
	var current float64
	var cursor strings.Builder
	inCursor := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode cursor: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "event":
				ts, ok := attr(t, "timestamp")
				if !ok {
					return nil, fmt.Errorf("decode cursor: event missing timestamp attribute")
				}
				v, err := strconv.ParseFloat(ts, 64)
				if err != nil {
					return nil, fmt.Errorf("decode cursor: event timestamp %q: %w", ts, err)
				}
				current = v
			case "cursor":
				inCursor = true
				cursor.Reset()
			}
		case xml.EndElement:
			if t.Name.Local == "cursor" {
				inCursor = false
				nx, ny, err := parseCursorText(cursor.String())
				if err != nil {
					return nil, err
				}
				samples = append(samples, model.CursorSample{T: current, NX: nx, NY: ny})
			}
		case xml.CharData:
			if inCursor {
				cursor.Write(t)
			}
		}
	}

	return samples, nil
}

func parseCursorText(s string) (nx, ny float64, err error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("decode cursor: expected \"nx ny\", got %q", s)
	}
	nx, err = strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("decode cursor: nx %q: %w", fields[0], err)
	}
	ny, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("decode cursor: ny %q: %w", fields[1], err)
	}
	return nx, ny, nil
}

func attr(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}
