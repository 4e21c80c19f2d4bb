// Package chatlayout renders the chat overlay track: sanitized,
// optionally pseudonymized messages packed into fixed-width columns of
// an oversized SVG canvas, cropped at playback time by a per-message
// overlay command (spec.md §4.6).
package chatlayout

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/buffos/meetingvideo/internal/config"
	"github.com/buffos/meetingvideo/internal/model"
	"github.com/buffos/meetingvideo/internal/xmlutil"
)

// tailEntry is one (header, wrapped body, column x, direction) triple
// carried across column transitions (spec.md's "Tail buffer").
type tailEntry struct {
	header string
	lines  []string
	x      float64
	rtl    bool
}

// Engine accumulates one meeting's chat messages into a single SVG
// layer plus its crop-overlay command track.
type Engine struct {
	cfg    config.Config
	pseudo *Pseudonymizer

	svgX, svgY   float64
	chatX, chatY float64
	multiColumn  bool

	tail    []tailEntry
	tailCap int

	body    strings.Builder
	overlay []string
}

// NewEngine builds a chat layout engine for one meeting.
func NewEngine(cfg config.Config) *Engine {
	l := cfg.Layout
	tailCap := int(math.Ceil(float64(l.ChatHeight)/(3*float64(l.ChatFontSize)))) + 1
	return &Engine{
		cfg:     cfg,
		pseudo:  NewPseudonymizer(),
		svgY:    float64(l.ChatStartingY),
		tailCap: tailCap,
	}
}

// Add processes one chat message, per spec.md §4.6 steps 1-8.
func (e *Engine) Add(msg model.ChatMessage) {
	l := e.cfg.Layout

	name := Sanitize(msg.Name)
	text := Sanitize(msg.Text)
	if e.cfg.Flags.HideChatNames {
		name = e.pseudo.Pseudonymize(name)
	}

	rtl := IsRTL(text)
	maxChars := 1
	if fx := l.ChatFontSizeX(); fx > 0 {
		maxChars = l.ChatWidth/fx - 1
	}
	lines := WrapByCharCount(text, maxChars)

	fontSize := float64(l.ChatFontSize)
	height := float64(len(lines)+2) * fontSize

	if e.svgY+height > float64(l.ChatCanvasHeight) {
		e.emitDuplicateBlock()
		e.multiColumn = true
		e.svgY = float64(l.ChatStartingY)
		e.svgX += float64(l.ChatWidth)
		e.chatX += float64(l.ChatWidth)
		e.chatY = height
	} else {
		e.chatY += height
	}

	e.overlay = append(e.overlay, fmt.Sprintf("%s crop@c x %s, crop@c y %s;",
		formatNum(msg.T), formatNum(e.chatX), formatNum(e.chatY)))

	header := fmt.Sprintf("%s    %s", name, time.Unix(int64(msg.T), 0).UTC().Format("15:04:05"))
	e.writeHeader(e.svgX, e.svgY, header, rtl)
	for i, line := range lines {
		e.writeBodyLine(e.svgX, e.svgY+fontSize*float64(i+1), line, rtl)
	}
	e.svgY += height

	e.tail = append([]tailEntry{{header: header, lines: lines, x: e.svgX, rtl: rtl}}, e.tail...)
	if len(e.tail) > e.tailCap {
		e.tail = e.tail[:e.tailCap]
	}
}

// emitDuplicateBlock replays the tail buffer into the outgoing
// column's footer region so a viewport crop advancing past CHAT_HEIGHT
// still shows trailing context (spec.md §4.6 step 5).
func (e *Engine) emitDuplicateBlock() {
	l := e.cfg.Layout
	fontSize := float64(l.ChatFontSize)
	maxSpace := float64(l.ChatHeight)
	used := 0.0

	for _, entry := range e.tail {
		entryHeight := float64(len(entry.lines)+1) * fontSize
		if used+entryHeight > maxSpace {
			break
		}
		y := float64(l.ChatHeight) - used
		for i := len(entry.lines) - 1; i >= 0; i-- {
			y -= fontSize
			e.writeBodyLine(entry.x, y, entry.lines[i], entry.rtl)
		}
		y -= fontSize
		e.writeHeader(entry.x, y, entry.header, entry.rtl)
		used += entryHeight
	}
}

func (e *Engine) writeHeader(x, y float64, header string, rtl bool) {
	anchorX, anchor := x, "start"
	if rtl {
		anchorX, anchor = x+float64(e.cfg.Layout.ChatWidth), "end"
	}
	fmt.Fprintf(&e.body, `<text x="%s" y="%s" font-weight="bold" text-anchor="%s">%s</text>`,
		formatNum(anchorX), formatNum(y), anchor, xmlutil.EscapeText(header))
}

func (e *Engine) writeBodyLine(x, y float64, line string, rtl bool) {
	anchorX, anchor := x, "start"
	if rtl {
		anchorX, anchor = x+float64(e.cfg.Layout.ChatWidth), "end"
	}
	fmt.Fprintf(&e.body, `<text x="%s" y="%s" text-anchor="%s">%s</text>`,
		formatNum(anchorX), formatNum(y), anchor, xmlutil.EscapeText(line))
}

// Build returns the finished chat.svg document and the newline
// terminated chat_timestamps overlay-command track.
func (e *Engine) Build() (svg string, timestamps string) {
	l := e.cfg.Layout
	width := e.svgX + float64(l.ChatWidth)
	height := e.svgY
	if e.multiColumn {
		height = float64(l.ChatCanvasHeight)
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`,
		formatNum(width), formatNum(height))
	buf.WriteString(e.body.String())
	buf.WriteString("</svg>")

	var ts strings.Builder
	for _, line := range e.overlay {
		ts.WriteString(line)
		ts.WriteByte('\n')
	}

	return buf.String(), ts.String()
}

func formatNum(v float64) string {
	return fmt.Sprintf("%g", v)
}
