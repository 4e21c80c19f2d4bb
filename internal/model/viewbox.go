package model

import (
	"fmt"
	"strings"
)

// parseViewBox splits an SVG viewBox string "x y w h" into its components.
func parseViewBox(viewBox string) (x, y, w, h float64, ok bool) {
	fields := strings.Fields(viewBox)
	if len(fields) != 4 {
		return 0, 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(strings.Join(fields, " "), "%g %g %g %g", &x, &y, &w, &h); err != nil {
		return 0, 0, 0, 0, false
	}
	return x, y, w, h, true
}
