// Package textmetric wraps the external font-metric tool (spec.md §6:
// "accepts a string and point size, returns width in pixels") and the
// greedy word-wrap algorithm that depends on it (spec.md §4.2a).
//
// The font-metric tool is an out-of-scope collaborator (spec.md §1); this
// package only shells out to it, the same way
// gravitational-teleport's FFMPEGEncoder drives an external binary
// through os/exec rather than linking a font-shaping library.
package textmetric

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Measurer measures the rendered pixel width of a string at a given
// point size. DejaVuSans is the font the external tool is keyed on
// (spec.md §4.2a).
type Measurer interface {
	Measure(s string, pt float64) (float64, error)
}

// ExecMeasurer shells out to an external font-metric binary for each
// measurement. Path is the binary to invoke; it must accept the string
// on argv and the point size via -pointsize and print a pixel width to
// stdout, the `identify -format "%w"`-style contract described in
// spec.md §6.
type ExecMeasurer struct {
	Path string
}

// Measure runs the external tool once per call. Callers that measure
// the same (s, pt) repeatedly should wrap this in a CachingMeasurer.
func (m ExecMeasurer) Measure(s string, pt float64) (float64, error) {
	cmd := exec.Command(m.Path, "-pointsize", strconv.FormatFloat(pt, 'f', -1, 64), s)
	var out bytes.Buffer
	cmd.Stdout = &out
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("font-metric tool failed: %w: %s", err, stderr.String())
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(out.String()), 64)
	if err != nil {
		return 0, fmt.Errorf("font-metric tool returned unparsable width %q: %w", out.String(), err)
	}
	return width, nil
}

// CachingMeasurer memoizes Measure results, since the wrapping algorithm
// tends to re-measure growing prefixes of the same line many times.
type CachingMeasurer struct {
	Inner Measurer
	cache map[string]float64
}

// NewCachingMeasurer wraps inner with a fresh cache.
func NewCachingMeasurer(inner Measurer) *CachingMeasurer {
	return &CachingMeasurer{Inner: inner, cache: make(map[string]float64)}
}

func (m *CachingMeasurer) Measure(s string, pt float64) (float64, error) {
	key := strconv.FormatFloat(pt, 'f', -1, 64) + "\x00" + s
	if w, ok := m.cache[key]; ok {
		return w, nil
	}
	w, err := m.Inner.Measure(s, pt)
	if err != nil {
		return 0, err
	}
	m.cache[key] = w
	return w, nil
}
