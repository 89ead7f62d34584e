// Package wavemark turns a handful of numeric parameters into a finished
// split-circle wave logo.
//
// The pipeline has three stages: wavegeom finds where the wave crosses the
// rim and partitions the disk, this package maps the partition onto colors
// and strokes, and wavesvg or wavepng serializes the result. Everything in
// between is a plain value, so rendering the same Params twice yields
// byte-identical output.
package wavemark

import (
	"context"
	"fmt"
	"math"

	"cdr.dev/slog"

	"github.com/oceanbiometrics/wavemark/lib/color"
	"github.com/oceanbiometrics/wavemark/lib/geo"
	"github.com/oceanbiometrics/wavemark/lib/log"
	"github.com/oceanbiometrics/wavemark/wavegeom"
	"github.com/oceanbiometrics/wavemark/wavetarget"
)

// Params is the full parameter surface of a logo. Wavelength, Amplitude,
// Baseline, Shift1 and Shift2 are fractions of the diameter so a design
// keeps its shape when scaled; LineWidth and Pad are absolute pixels.
type Params struct {
	Diameter   float64 `json:"diameter"`
	Wavelength float64 `json:"wavelength"`
	Amplitude  float64 `json:"amplitude"`
	// Phase rotates the wave horizontally, in radians on top of the base
	// phase that crests the primary wave at the center.
	Phase    float64 `json:"phase"`
	Baseline float64 `json:"baseline"`

	// LineWidth is the stroke width: the wave boundary in fill mode, every
	// line in outline mode.
	LineWidth float64 `json:"line-width"`

	// Outline switches from two filled regions to the line-art rendering:
	// two opposite-phase waves and the two rim arcs between their ends.
	Outline bool `json:"outline"`
	// Projection stretches (>0) or contracts (<0) the outline waves
	// horizontally past the rim. Fill mode ignores it.
	Projection float64 `json:"projection"`
	Shift1     float64 `json:"shift1"`
	Shift2     float64 `json:"shift2"`

	FG1 string `json:"fg1"`
	FG2 string `json:"fg2"`
	BG  string `json:"bg"`
	// Stroke colors the wave boundary in fill mode. Empty picks a darkened
	// FG1; color.None disables the boundary stroke.
	Stroke string `json:"stroke"`

	// Pad is the canvas margin. Negative means 5% of the diameter.
	Pad float64 `json:"pad"`
}

func Defaults() Params {
	return Params{
		Diameter:   600,
		Wavelength: 0.7,
		Amplitude:  0.12,
		LineWidth:  40,
		FG1:        "#63C5DA",
		FG2:        "#C4EF87",
		BG:         "#27374D",
		Pad:        -1,
	}
}

// ParamError reports a parameter value the pipeline cannot work with.
type ParamError struct {
	Param  string
	Value  interface{}
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

func (p Params) Validate() error {
	if !(p.Diameter > 0) {
		return &ParamError{"diameter", p.Diameter, "must be positive"}
	}
	if !(p.Wavelength > 0) {
		return &ParamError{"wavelength", p.Wavelength, "must be a positive fraction of the diameter"}
	}
	if p.Amplitude < 0 {
		return &ParamError{"amplitude", p.Amplitude, "must be non-negative"}
	}
	if p.LineWidth < 0 {
		return &ParamError{"line-width", p.LineWidth, "must be non-negative"}
	}
	if p.Outline && p.LineWidth >= p.Diameter {
		return &ParamError{"line-width", p.LineWidth, "leaves no rim to draw on"}
	}
	if p.Projection <= -1 {
		return &ParamError{"projection", p.Projection, "must be greater than -1"}
	}
	for _, fg := range []struct{ name, v string }{{"fg1", p.FG1}, {"fg2", p.FG2}} {
		if color.IsTransparent(fg.v) {
			return &ParamError{fg.name, fg.v, "foreground colors cannot be transparent"}
		}
		if err := color.Validate(fg.v); err != nil {
			return &ParamError{fg.name, fg.v, err.Error()}
		}
	}
	if err := color.Validate(p.BG); err != nil {
		return &ParamError{"bg", p.BG, err.Error()}
	}
	if err := color.Validate(p.Stroke); err != nil {
		return &ParamError{"stroke", p.Stroke, err.Error()}
	}
	return nil
}

// derivation holds the absolute-unit geometry derived from Params.
type derivation struct {
	// R is the outer radius. r sits half a line width inside it so strokes
	// centered on r stay within the outer circle.
	R, r      float64
	amplitude float64
	omega     float64
	basePhase float64
	baseline  float64
	pad       float64
}

func (p Params) derive() derivation {
	cycles := 1 / p.Wavelength
	d := derivation{
		R:         p.Diameter / 2,
		r:         (p.Diameter - p.LineWidth) / 2,
		amplitude: p.Amplitude * p.Diameter,
		omega:     2 * math.Pi / (p.Wavelength * p.Diameter),
		// crest the primary wave at x = 0
		basePhase: math.Pi/2 - math.Pi*cycles,
		baseline:  p.Baseline * p.Diameter,
		pad:       p.Pad,
	}
	if d.pad < 0 {
		d.pad = 0.05 * p.Diameter
	}
	return d
}

// wave binds the derived constants, a horizontal shift and optionally the
// half-period flip of the secondary wave into a concrete curve.
func (p Params) waveSpec(d derivation, shift float64, opposite bool) wavegeom.Wave {
	phase := d.omega*(d.R-shift*p.Diameter) + d.basePhase + p.Phase
	if opposite {
		phase += math.Pi
	}
	return wavegeom.Wave{
		Amplitude: d.amplitude,
		Omega:     d.omega,
		Phase:     phase,
		Baseline:  d.baseline,
	}
}

// Render computes the logo for p. The result is in centered coordinates;
// renderers translate by the bounds' top left corner.
func Render(ctx context.Context, p Params) (*wavetarget.Logo, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	warnLowContrast(ctx, p)
	d := p.derive()
	if p.Outline {
		return p.renderOutline(ctx, d)
	}
	return p.renderFill(ctx, d)
}

func warnLowContrast(ctx context.Context, p Params) {
	l1, err1 := color.Luminance(p.FG1)
	l2, err2 := color.Luminance(p.FG2)
	if err1 != nil || err2 != nil || math.Abs(l1-l2) >= 0.1 {
		return
	}
	category, _ := color.LuminanceCategory(p.FG1)
	log.Warn(ctx, "foreground colors have very close luminance, the two sides may be hard to tell apart",
		slog.F("category", category),
	)
}

func (p Params) renderFill(ctx context.Context, d derivation) (*wavetarget.Logo, error) {
	c := wavegeom.Circle{Center: geo.NewPoint(0, 0), Radius: d.R}
	w := p.waveSpec(d, p.Shift1, false)

	crossings, err := wavegeom.Crossings(c, w)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "rim crossings", slog.F("count", len(crossings)))

	top, bottom, err := wavegeom.BuildRegions(c, w, crossings)
	if err != nil {
		return nil, err
	}

	logo := &wavetarget.Logo{
		Background: p.BG,
		Regions: []wavetarget.Region{
			{Label: "upper", Fill: p.FG2, Paths: regionPaths(c, top)},
			{Label: "lower", Fill: p.FG1, Paths: regionPaths(c, bottom)},
		},
	}

	strokeColor := p.Stroke
	if strokeColor == "" {
		strokeColor, err = color.Darken(p.FG1)
		if err != nil {
			return nil, err
		}
	}
	var strokeWidth float64
	if p.LineWidth > 0 && !color.IsTransparent(strokeColor) {
		strokeWidth = p.LineWidth
		// the boundary is every wave stretch inside the disk; the top
		// region's loops hold each stretch exactly once
		for _, l := range top.Loops {
			for _, part := range l.Parts {
				if part.IsArc {
					continue
				}
				logo.Strokes = append(logo.Strokes, wavetarget.Stroke{
					Color:   strokeColor,
					Width:   p.LineWidth,
					Linecap: wavetarget.LinecapRound,
					Path:    polylinePath(part.Pts),
				})
			}
		}
	}
	if len(logo.Strokes) == 0 {
		strokeWidth = 0
	}

	logo.Bounds = wavegeom.FitBounds(c, nil, strokeWidth, d.pad)
	return logo, nil
}

func (p Params) renderOutline(ctx context.Context, d derivation) (*wavetarget.Logo, error) {
	c := wavegeom.Circle{Center: geo.NewPoint(0, 0), Radius: d.r}
	w1 := p.waveSpec(d, p.Shift1, false)
	w2 := p.waveSpec(d, p.Shift2, true)

	pts1, err := p.outlineWave(c, w1)
	if err != nil {
		return nil, err
	}
	pts2, err := p.outlineWave(c, w2)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "outline spans",
		slog.F("wave1", len(pts1)),
		slog.F("wave2", len(pts2)),
	)

	end1l, end1r := pts1[0], pts1[len(pts1)-1]
	end2l, end2r := pts2[0], pts2[len(pts2)-1]

	logo := &wavetarget.Logo{Background: p.BG}
	logo.Strokes = []wavetarget.Stroke{
		// top arc, over the rim from the primary wave's right end to its left
		{Color: p.FG2, Width: p.LineWidth, Linecap: wavetarget.LinecapButt, Path: wavetarget.Path{
			wavetarget.MoveTo(end1r),
			wavetarget.ArcTo(end1l, d.r, false, false),
		}},
		// bottom arc between the secondary wave's ends
		{Color: p.FG1, Width: p.LineWidth, Linecap: wavetarget.LinecapButt, Path: wavetarget.Path{
			wavetarget.MoveTo(end2l),
			wavetarget.ArcTo(end2r, d.r, false, false),
		}},
		{Color: p.FG2, Width: p.LineWidth, Linecap: wavetarget.LinecapRound, Path: polylinePath(pts1)},
		{Color: p.FG1, Width: p.LineWidth, Linecap: wavetarget.LinecapRound, Path: polylinePath(pts2)},
	}

	overflow := append(append(geo.Points{}, pts1...), pts2...)
	logo.Bounds = wavegeom.FitBounds(c, overflow, p.LineWidth, d.pad)
	return logo, nil
}

// outlineWave samples one outline wave between its outermost rim crossings,
// stretched horizontally by the projection factor. The y values are
// recomputed at the projected x so the polyline stays on the wave curve.
func (p Params) outlineWave(c wavegeom.Circle, w wavegeom.Wave) (geo.Points, error) {
	crossings, err := wavegeom.Crossings(c, w)
	if err != nil {
		return nil, err
	}
	if len(crossings) < 2 {
		return nil, &ParamError{"baseline", p.Baseline, "wave does not cross the rim, nothing to outline"}
	}

	left, right := crossings[0], crossings[0]
	for _, cr := range crossings[1:] {
		if cr.Point.X < left.Point.X {
			left = cr
		}
		if cr.Point.X > right.Point.X {
			right = cr
		}
	}

	curve := w.Curve(c)
	scale := 1 + p.Projection
	xl := left.Point.X * scale
	xr := right.Point.X * scale
	from := geo.NewPoint(xl, curve(xl))
	to := geo.NewPoint(xr, curve(xr))
	return wavegeom.SampleWave(curve, w, from, to), nil
}

func regionPaths(c wavegeom.Circle, r wavegeom.Region) []wavetarget.Path {
	if r.Full {
		right := c.PointAt(0)
		left := c.PointAt(math.Pi)
		return []wavetarget.Path{{
			wavetarget.MoveTo(right),
			wavetarget.ArcTo(left, c.Radius, false, true),
			wavetarget.ArcTo(right, c.Radius, false, true),
			wavetarget.Close(),
		}}
	}
	paths := make([]wavetarget.Path, 0, len(r.Loops))
	for _, l := range r.Loops {
		paths = append(paths, loopPath(c, l))
	}
	return paths
}

func loopPath(c wavegeom.Circle, l wavegeom.Loop) wavetarget.Path {
	path := wavetarget.Path{wavetarget.MoveTo(l.Parts[0].Start())}
	for _, part := range l.Parts {
		if part.IsArc {
			delta := part.Theta1 - part.Theta0
			path = append(path, wavetarget.ArcTo(
				part.End(), c.Radius,
				math.Abs(delta) > math.Pi,
				delta > 0,
			))
			continue
		}
		for _, pt := range part.Pts[1:] {
			path = append(path, wavetarget.LineTo(pt))
		}
	}
	return append(path, wavetarget.Close())
}

func polylinePath(pts geo.Points) wavetarget.Path {
	path := wavetarget.Path{wavetarget.MoveTo(pts[0])}
	for _, pt := range pts[1:] {
		path = append(path, wavetarget.LineTo(pt))
	}
	return path
}
