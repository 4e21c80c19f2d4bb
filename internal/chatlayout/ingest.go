package chatlayout

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/buffos/meetingvideo/internal/model"
)

// Ingest streams slides_new.xml's chat timeline, keeping only
// <chattimeline target="chat" .../> entries (the document also
// carries non-chat timeline targets this engine ignores), and builds
// one model.ChatMessage per entry from its name/message/in attributes
// (spec.md §6).
func Ingest(r io.Reader) ([]model.ChatMessage, error) {
	dec := xml.NewDecoder(r)

	var messages []model.ChatMessage
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode chat timeline: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "chattimeline" {
			continue
		}
		if target, _ := attr(se, "target"); target != "chat" {
			continue
		}

		in, ok := attr(se, "in")
		if !ok {
			return nil, fmt.Errorf("decode chat timeline: chattimeline missing %q attribute", "in")
		}
		t, err := strconv.ParseFloat(in, 64)
		if err != nil {
			return nil, fmt.Errorf("decode chat timeline: in %q: %w", in, err)
		}

		name, _ := attr(se, "name")
		message, _ := attr(se, "message")
		messages = append(messages, model.ChatMessage{T: t, Name: name, Text: message})
	}

	return messages, nil
}

func attr(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}
