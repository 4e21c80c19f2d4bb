package cursoringest

import "fmt"

// Sprite renders the static cursor overlay image: a red circle of
// radius r centered on a 2r square canvas (spec.md §4.5).
func Sprite(radius float64) string {
	d := 2 * radius
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g"><circle cx="%g" cy="%g" r="%g" fill="red"/></svg>`,
		d, d, radius, radius, radius)
}
