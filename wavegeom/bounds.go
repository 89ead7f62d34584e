package wavegeom

import (
	"github.com/oceanbiometrics/wavemark/lib/geo"
)

// FitBounds computes the canvas box for a drawing around c: the circle's own
// bounding box, any overflow points outside it, half the stroke width on
// every side, the pad, all rounded outward to whole units so nothing lands on
// a fractional edge.
//
// Everything the region builder emits lies on or inside the circle, so only
// geometry that deliberately escapes the rim (projected outline waves) needs
// to be passed as overflow.
func FitBounds(c Circle, overflow geo.Points, strokeWidth, pad float64) *geo.Box {
	b := c.Bounds()
	if ob := overflow.Bounds(); ob != nil {
		b = b.Union(ob)
	}
	return b.Expand(strokeWidth/2 + pad).RoundOut()
}
