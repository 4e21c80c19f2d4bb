// Package config holds the compile-time layout constants and feature
// flags that the teacher threaded as module-level constants, promoted
// here to an explicit, immutable record passed down the pipeline
// (spec.md §9, "Global state -> explicit config record").
package config

// Flags are the compile-time feature switches from spec.md §6.
type Flags struct {
	SVGZCompression      bool
	FFmpegReferenceSupport bool
	CaptionSupport       bool
	RemoveRedundantShapes bool
	HideDeskshare        bool
	HideChat             bool
	HideChatNames        bool
	ConstantRateFactor   int
	BenchmarkFFmpeg      bool
}

// Layout holds the composite-frame geometry constants from spec.md §6.
type Layout struct {
	OutputWidth  int
	OutputHeight int

	SlidesX      int
	SlidesY      int
	SlidesWidth  int
	SlidesHeight int

	WebcamsX      int
	WebcamsY      int
	WebcamsWidth  int
	WebcamsHeight int

	ChatOuterX int
	ChatOuterY int

	ChatWidth        int
	ChatHeight       int
	ChatCanvasHeight int
	ChatStartingY    int
	ChatFontSize     int

	CursorRadius    float64
	BorderRadius    int
	ComponentMargin int
}

// ChatFontSizeX returns the monospace-ratio character width used for
// chat word wrapping (3:5 aspect monospace assumption, spec.md §6).
func (l Layout) ChatFontSizeX() int {
	return int(0.6 * float64(l.ChatFontSize))
}

// Config is the full immutable configuration record passed through the
// pipeline in place of the teacher's package-level constants.
type Config struct {
	Flags  Flags
	Layout Layout

	MeetingID string
	Format    string
	LogStdout bool
}

// Default returns the engine's layout/flag defaults. Individual fields
// mirror the BigBlueButton recording-processor constants this system's
// composite frame is modeled on.
func Default() Config {
	return Config{
		Flags: Flags{
			SVGZCompression:        false,
			FFmpegReferenceSupport: false,
			CaptionSupport:         true,
			RemoveRedundantShapes:  false,
			HideDeskshare:          false,
			HideChat:               false,
			HideChatNames:          false,
			ConstantRateFactor:     23,
			BenchmarkFFmpeg:        false,
		},
		Layout: Layout{
			OutputWidth:      1920,
			OutputHeight:     1080,
			SlidesX:          0,
			SlidesY:          0,
			SlidesWidth:      1600,
			SlidesHeight:     1080,
			WebcamsX:         1600,
			WebcamsY:         0,
			WebcamsWidth:     320,
			WebcamsHeight:    240,
			ChatOuterX:       1600,
			ChatOuterY:       240,
			ChatWidth:        320,
			ChatHeight:       840,
			ChatCanvasHeight: 3000,
			ChatStartingY:    20,
			ChatFontSize:     15,
			CursorRadius:     6,
			BorderRadius:     12,
			ComponentMargin:  10,
		},
	}
}
