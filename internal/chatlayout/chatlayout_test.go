package chatlayout

import (
	"strings"
	"testing"

	"github.com/buffos/meetingvideo/internal/config"
	"github.com/buffos/meetingvideo/internal/model"
)

func TestSanitizeStripsMarkupAndNormalizes(t *testing.T) {
	got := Sanitize("<b>hello</b> <i>world</i>")
	if got != "hello world" {
		t.Fatalf("Sanitize() = %q, want %q", got, "hello world")
	}
}

func TestWrapByCharCountBreaksAtSpace(t *testing.T) {
	lines := WrapByCharCount("the quick brown fox", 9)
	want := []string{"the quick", "brown fox"}
	if len(lines) != len(want) {
		t.Fatalf("WrapByCharCount() = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("WrapByCharCount()[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapByCharCountHardBreaksWithoutSpace(t *testing.T) {
	lines := WrapByCharCount("abcdefghij", 4)
	want := []string{"abcd", "efgh", "ij"}
	if len(lines) != len(want) {
		t.Fatalf("WrapByCharCount() = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("WrapByCharCount()[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestIsRTL(t *testing.T) {
	if IsRTL("hello") {
		t.Fatal("ASCII text misclassified as RTL")
	}
	if !IsRTL("אבג") { // Hebrew aleph-bet-gimel
		t.Fatal("Hebrew text not classified as RTL")
	}
}

func TestBubbleBabbleEmptyString(t *testing.T) {
	if got := bubbleBabble(nil); got != "xexax" {
		t.Fatalf("bubbleBabble(nil) = %q, want %q", got, "xexax")
	}
}

func TestPseudonymizeIsStableAndBounded(t *testing.T) {
	p := NewPseudonymizer()
	a := p.Pseudonymize("alice")
	b := p.Pseudonymize("alice")
	if a != b {
		t.Fatalf("Pseudonymize not stable within a process: %q != %q", a, b)
	}
	if len(a) > 11 {
		t.Fatalf("Pseudonymize returned %d chars, want <= 11", len(a))
	}
	if p.Pseudonymize("bob") == a {
		t.Fatal("different names produced the same pseudonym")
	}
}

func TestEngineSingleColumn(t *testing.T) {
	cfg := config.Default()
	e := NewEngine(cfg)
	e.Add(model.ChatMessage{T: 5, Name: "Alice", Text: "hi there"})
	svg, timestamps := e.Build()

	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "Alice") {
		t.Fatalf("svg missing header content: %s", svg)
	}
	if !strings.Contains(timestamps, "crop@c x") || !strings.Contains(timestamps, "crop@c y") {
		t.Fatalf("timestamps missing crop commands: %s", timestamps)
	}
}

func TestEngineColumnOverflowTriggersDuplicateBlock(t *testing.T) {
	cfg := config.Default()
	cfg.Layout.ChatCanvasHeight = 200 // force an early column transition
	e := NewEngine(cfg)
	for i := 0; i < 20; i++ {
		e.Add(model.ChatMessage{T: float64(i), Name: "Alice", Text: "hello"})
	}
	svg, _ := e.Build()
	if !e.multiColumn {
		t.Fatal("expected a column transition with a small chat canvas")
	}
	if !strings.Contains(svg, "<svg") {
		t.Fatalf("malformed svg output: %s", svg)
	}
}
