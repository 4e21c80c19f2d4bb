// Package panzoomingest streams the panzoom document into the
// composition engine's PanzoomEvent timeline (spec.md §4.3).
package panzoomingest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/buffos/meetingvideo/internal/model"
)

// Ingest reads r token by token, pairing each viewBox element's text
// content with the timestamp of the most recent preceding event
// element (spec.md §4.3). This never needs to hold more than the
// current timestamp in memory, so it stays a single forward pass over
// an xml.Decoder rather than a tree like shapeingest's.
func Ingest(r io.Reader) ([]model.Panzoom, error) {
	dec := xml.NewDecoder(r)

	var panzooms []model.Panzoom
	var current float64
	var viewBox strings.Builder
	inViewBox := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode panzooms: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "event":
				ts, ok := attr(t, "timestamp")
				if !ok {
					return nil, fmt.Errorf("decode panzooms: event missing timestamp attribute")
				}
				v, err := strconv.ParseFloat(ts, 64)
				if err != nil {
					return nil, fmt.Errorf("decode panzooms: event timestamp %q: %w", ts, err)
				}
				current = v
			case "viewBox":
				inViewBox = true
				viewBox.Reset()
			}
		case xml.EndElement:
			if t.Name.Local == "viewBox" {
				inViewBox = false
				panzooms = append(panzooms, model.Panzoom{T: current, ViewBox: viewBox.String()})
			}
		case xml.CharData:
			if inViewBox {
				viewBox.Write(t)
			}
		}
	}

	return panzooms, nil
}

func attr(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}
