package chapters

import (
	"os"
	"strings"
	"testing"

	"github.com/buffos/meetingvideo/internal/model"
)

func TestBuildFiltersShortAndOutOfRangeSlides(t *testing.T) {
	slides := []model.Slide{
		{Href: "slide1.png", Begin: 0, End: 0.1},     // too short
		{Href: "slide2.png", Begin: 5, End: 10},       // kept
		{Href: "deskshare1.webm", Begin: 100, End: 120}, // begin >= duration
	}
	chapters := Build(slides, 20)
	if len(chapters) != 1 {
		t.Fatalf("Build() returned %d chapters, want 1: %+v", len(chapters), chapters)
	}
	if chapters[0].Title != "Slide 1" {
		t.Fatalf("Build()[0].Title = %q, want %q", chapters[0].Title, "Slide 1")
	}
}

func TestBuildTitlesDeskshareDifferently(t *testing.T) {
	slides := []model.Slide{{Href: "deskshare/deskshare.webm", Begin: 0, End: 5}}
	chapters := Build(slides, 20)
	if len(chapters) != 1 || chapters[0].Title != "Screen sharing 1" {
		t.Fatalf("Build() = %+v, want a single \"Screen sharing 1\" chapter", chapters)
	}
}

func TestBuildClampsEndToDuration(t *testing.T) {
	slides := []model.Slide{{Href: "slide1.png", Begin: 5, End: 30}}
	chapters := Build(slides, 20)
	if len(chapters) != 1 || chapters[0].EndSeconds != 20 {
		t.Fatalf("Build() = %+v, want EndSeconds clamped to 20", chapters)
	}
}

func TestAppendToMetadataWritesChapterBlocks(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "meta-*.txt")
	if err != nil {
		t.Fatal(err)
	}
	path := f.Name()
	f.WriteString(";FFMETADATA1\n")
	f.Close()

	err = AppendToMetadata(path, []Chapter{{Title: "Slide 1", StartSeconds: 1.5, EndSeconds: 3}})
	if err != nil {
		t.Fatalf("AppendToMetadata() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(content)
	if !strings.Contains(got, "[CHAPTER]") || !strings.Contains(got, "START=1500") || !strings.Contains(got, "END=3000") || !strings.Contains(got, "title=Slide 1") {
		t.Fatalf("AppendToMetadata() wrote unexpected content: %s", got)
	}
}

func TestAppendToMetadataNoopOnEmpty(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "meta-*.txt")
	if err != nil {
		t.Fatal(err)
	}
	path := f.Name()
	f.WriteString(";FFMETADATA1\n")
	f.Close()

	if err := AppendToMetadata(path, nil); err != nil {
		t.Fatalf("AppendToMetadata() error = %v", err)
	}
	content, _ := os.ReadFile(path)
	if string(content) != ";FFMETADATA1\n" {
		t.Fatalf("AppendToMetadata() modified file with no chapters: %q", content)
	}
}
