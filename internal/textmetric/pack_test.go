package textmetric

import (
	"reflect"
	"testing"
)

// fixedWidthMeasurer treats every rune as charWidth pixels wide,
// regardless of point size, for deterministic wrap tests.
type fixedWidthMeasurer struct {
	charWidth float64
}

func (m fixedWidthMeasurer) Measure(s string, pt float64) (float64, error) {
	return float64(len([]rune(s))) * m.charWidth, nil
}

func TestPackWordWrap(t *testing.T) {
	m := fixedWidthMeasurer{charWidth: 1}
	// "the quick fox" at maxWidth 9 should wrap to ["the quick" is 9 chars -> fits, "fox"]... check widths
	lines, err := Pack(m, "the quick fox", " ", 12, 9)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"the quick", "fox"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("Pack() = %v, want %v", lines, want)
	}
}

func TestPackSingleTokenOverflowsCharLevel(t *testing.T) {
	m := fixedWidthMeasurer{charWidth: 1}
	// A single 10-char token with maxWidth 4 must break char-wise, and
	// the tail fragment must be available to join the next word.
	lines, err := Pack(m, "abcdefghij ok", " ", 12, 4)
	if err != nil {
		t.Fatal(err)
	}
	// "abcd", "efgh", then "ij" can take " ok" -> "ij ok" is 5 chars > 4,
	// so "ij" alone, then "ok" alone.
	want := []string{"abcd", "efgh", "ij", "ok"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("Pack() = %v, want %v", lines, want)
	}
}

func TestPackFitsOnOneLine(t *testing.T) {
	m := fixedWidthMeasurer{charWidth: 1}
	lines, err := Pack(m, "hi there", " ", 12, 100)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"hi there"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("Pack() = %v, want %v", lines, want)
	}
}

func TestPackEmptyString(t *testing.T) {
	m := fixedWidthMeasurer{charWidth: 1}
	lines, err := Pack(m, "", " ", 12, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 0 {
		t.Fatalf("Pack(empty) = %v, want empty", lines)
	}
}

func TestCachingMeasurer(t *testing.T) {
	calls := 0
	base := measureFunc(func(s string, pt float64) (float64, error) {
		calls++
		return float64(len(s)), nil
	})
	cached := NewCachingMeasurer(base)
	for i := 0; i < 3; i++ {
		if _, err := cached.Measure("abc", 12); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Fatalf("inner measurer called %d times, want 1", calls)
	}
}

type measureFunc func(s string, pt float64) (float64, error)

func (f measureFunc) Measure(s string, pt float64) (float64, error) { return f(s, pt) }
