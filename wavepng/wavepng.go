// Package wavepng rasterizes a wavetarget.Logo straight to PNG, without
// going through an SVG engine. Circular arcs are flattened into short line
// segments and everything is filled with x/image's scanline rasterizer, so
// the output is anti-aliased and byte-stable for the same input.
package wavepng

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/mazznoer/csscolorparser"
	"golang.org/x/image/vector"

	libcolor "github.com/oceanbiometrics/wavemark/lib/color"
	"github.com/oceanbiometrics/wavemark/lib/geo"
	"github.com/oceanbiometrics/wavemark/wavetarget"
)

// Render encodes the logo as a PNG sized scale times its canvas bounds.
func Render(logo *wavetarget.Logo, scale float64) ([]byte, error) {
	img, err := Rasterize(logo, scale)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Rasterize draws the logo into a new image. A transparent background leaves
// the canvas pixels fully clear.
func Rasterize(logo *wavetarget.Logo, scale float64) (*image.RGBA, error) {
	if err := logo.Validate(); err != nil {
		return nil, err
	}
	if !(scale > 0) {
		return nil, fmt.Errorf("png scale must be positive, got %v", scale)
	}

	w := int(math.Ceil(logo.Bounds.Width * scale))
	h := int(math.Ceil(logo.Bounds.Height * scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	if logo.Background != "" && !libcolor.IsTransparent(logo.Background) {
		bg, err := parseColor(logo.Background)
		if err != nil {
			return nil, err
		}
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	tl := logo.Bounds.TopLeft
	for _, region := range logo.Regions {
		fill, err := parseColor(region.Fill)
		if err != nil {
			return nil, err
		}
		for _, p := range region.Paths {
			fillPath(img, flattenPath(p.Translate(-tl.X, -tl.Y), scale), fill)
		}
	}

	for _, s := range logo.Strokes {
		c, err := parseColor(s.Color)
		if err != nil {
			return nil, err
		}
		pts := flattenPath(s.Path.Translate(-tl.X, -tl.Y), scale)
		strokePolyline(img, pts, s.Width*scale, s.Linecap == wavetarget.LinecapRound, c)
	}

	return img, nil
}

func parseColor(s string) (color.Color, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}, nil
}

// flattenPath reduces a command path to a single polyline, scaled to pixel
// coordinates. Path.Validate admits only one subpath per Path, so a flat
// point list is enough.
func flattenPath(p wavetarget.Path, scale float64) []*geo.Point {
	var pts []*geo.Point
	cur := geo.NewPoint(0, 0)
	for _, cmd := range p {
		switch cmd.Op {
		case wavetarget.MoveOp, wavetarget.LineOp:
			cur = geo.NewPoint(cmd.X, cmd.Y)
			pts = append(pts, geo.NewPoint(cur.X*scale, cur.Y*scale))
		case wavetarget.ArcOp:
			end := geo.NewPoint(cmd.X, cmd.Y)
			for _, ap := range flattenArc(cur, end, cmd.R, cmd.LargeArc, cmd.Sweep) {
				pts = append(pts, geo.NewPoint(ap.X*scale, ap.Y*scale))
			}
			cur = end
		case wavetarget.CloseOp:
			// fillPath closes implicitly
		}
	}
	return pts
}

// flattenArc samples the circular arc from p0 to p1, excluding p0. This is
// the endpoint-to-center conversion from the SVG spec, simplified for equal
// radii and no axis rotation.
func flattenArc(p0, p1 *geo.Point, r float64, largeArc, sweep bool) []*geo.Point {
	hx := (p0.X - p1.X) / 2
	hy := (p0.Y - p1.Y) / 2
	d2 := hx*hx + hy*hy
	if d2 == 0 {
		return nil
	}
	// an undersized radius cannot reach both endpoints; grow it to the
	// minimum that can, as SVG engines do
	if r*r < d2 {
		r = math.Sqrt(d2)
	}

	k := math.Sqrt(math.Max(0, (r*r-d2)/d2))
	if largeArc == sweep {
		k = -k
	}
	cx := (p0.X+p1.X)/2 + k*hy
	cy := (p0.Y+p1.Y)/2 - k*hx

	theta0 := math.Atan2(p0.Y-cy, p0.X-cx)
	theta1 := math.Atan2(p1.Y-cy, p1.X-cx)
	delta := theta1 - theta0
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	n := int(math.Abs(delta)*32) + 2
	pts := make([]*geo.Point, 0, n)
	for i := 1; i < n; i++ {
		t := theta0 + delta*float64(i)/float64(n)
		pts = append(pts, geo.NewPoint(cx+r*math.Cos(t), cy+r*math.Sin(t)))
	}
	pts = append(pts, p1.Copy())
	return pts
}

func fillPath(img *image.RGBA, pts []*geo.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := img.Bounds()
	rast := vector.NewRasterizer(b.Dx(), b.Dy())
	rast.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		rast.LineTo(float32(p.X), float32(p.Y))
	}
	rast.ClosePath()
	rast.Draw(img, b, image.NewUniform(c), image.Point{})
}

// strokePolyline draws a stroked polyline as one filled shape: a quad per
// segment plus discs at the joints, and at the two ends when the cap is
// round. The rasterizer saturates coverage where pieces overlap, so
// translucent colors do not double up at the joints.
func strokePolyline(img *image.RGBA, pts []*geo.Point, width float64, roundCap bool, c color.Color) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	b := img.Bounds()
	rast := vector.NewRasterizer(b.Dx(), b.Dy())
	half := width / 2

	for i := 0; i+1 < len(pts); i++ {
		p, q := pts[i], pts[i+1]
		dx := q.X - p.X
		dy := q.Y - p.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		// unit normal
		nx := -dy / length * half
		ny := dx / length * half
		rast.MoveTo(float32(p.X+nx), float32(p.Y+ny))
		rast.LineTo(float32(q.X+nx), float32(q.Y+ny))
		rast.LineTo(float32(q.X-nx), float32(q.Y-ny))
		rast.LineTo(float32(p.X-nx), float32(p.Y-ny))
		rast.ClosePath()
	}

	joints := pts[1 : len(pts)-1]
	if roundCap {
		joints = pts
	}
	for _, p := range joints {
		addDisc(rast, p, half)
	}

	rast.Draw(img, b, image.NewUniform(c), image.Point{})
}

// addDisc appends a circle wound the same way as strokePolyline's segment
// quads. Matching the winding matters: opposite directions would cancel where
// a joint disc overlaps its segments and leave holes in the stroke.
func addDisc(rast *vector.Rasterizer, center *geo.Point, r float64) {
	const segments = 48
	rast.MoveTo(float32(center.X+r), float32(center.Y))
	for i := 1; i < segments; i++ {
		t := -2 * math.Pi * float64(i) / segments
		rast.LineTo(float32(center.X+r*math.Cos(t)), float32(center.Y+r*math.Sin(t)))
	}
	rast.ClosePath()
}
