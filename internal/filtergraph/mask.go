package filtergraph

import "fmt"

// roundedAlphaExpr builds a geq alpha expression that keeps full opacity
// everywhere except the four corner squares of side radius, where the
// pixel is opaque only inside the radius-r circle centered on that
// square's inner corner (spec.md §4.8's rounded-corner mask). Commas
// inside the geq expression are backslash-escaped, since they would
// otherwise be read as filter_complex argument separators.
func roundedAlphaExpr(radius, opaque int) string {
	r2 := radius * radius

	corner := func(inX, inY, distX, distY string) string {
		return fmt.Sprintf("(%s)*(%s)*gt(pow(%s\\,2)+pow(%s\\,2)\\,%d)", inX, inY, distX, distY, r2)
	}

	tl := corner(
		fmt.Sprintf("lte(X\\,%d)", radius), fmt.Sprintf("lte(Y\\,%d)", radius),
		fmt.Sprintf("X-%d", radius), fmt.Sprintf("Y-%d", radius),
	)
	tr := corner(
		fmt.Sprintf("gte(X\\,W-%d)", radius), fmt.Sprintf("lte(Y\\,%d)", radius),
		fmt.Sprintf("X-(W-%d)", radius), fmt.Sprintf("Y-%d", radius),
	)
	bl := corner(
		fmt.Sprintf("lte(X\\,%d)", radius), fmt.Sprintf("gte(Y\\,H-%d)", radius),
		fmt.Sprintf("X-%d", radius), fmt.Sprintf("Y-(H-%d)", radius),
	)
	br := corner(
		fmt.Sprintf("gte(X\\,W-%d)", radius), fmt.Sprintf("gte(Y\\,H-%d)", radius),
		fmt.Sprintf("X-(W-%d)", radius), fmt.Sprintf("Y-(H-%d)", radius),
	)

	cut := fmt.Sprintf("(%s)+(%s)+(%s)+(%s)", tl, tr, bl, br)
	return fmt.Sprintf("if(gt(%s\\,0)\\,0\\,%d)", cut, opaque)
}
