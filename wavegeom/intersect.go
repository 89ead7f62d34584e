package wavegeom

import (
	"fmt"
	"math"
	"sort"

	"github.com/oceanbiometrics/wavemark/lib/geo"
)

const (
	minThetaSamples = 512
	maxThetaSamples = 1 << 16

	// bisection window, radians; positional error is about Radius times this
	thetaTol = 1e-9

	// crossings closer than this in angle collapse into one
	dedupeTheta = 1e-7
)

// Crossing is a point lying on both the circle boundary and the wave curve.
type Crossing struct {
	Point *geo.Point
	Theta float64
	// Entering is true when the wave moves into the disk as x increases
	// through the crossing.
	Entering bool
}

// FaultError reports an odd crossing count that survived resampling. The wave
// must enter and leave the disk in pairs, so an odd count means the sample
// grid could not separate two nearby crossings.
type FaultError struct {
	Count   int
	Samples int
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("found %d boundary crossings at %d samples; crossings must come in pairs", e.Count, e.Samples)
}

// sampleCount picks a grid fine enough to bracket every sign change: the wave
// phase sweeps at most Omega·Radius per radian of arc, and we want 8 samples
// per half wavelength of that sweep.
func sampleCount(c Circle, w Wave) int {
	n := int(math.Ceil(16 * w.Omega * c.Radius))
	if n < minThetaSamples {
		return minThetaSamples
	}
	if n > maxThetaSamples {
		return maxThetaSamples
	}
	return n
}

// Crossings finds every point where w crosses c's boundary, ordered by
// increasing angle from 0. The grid is doubled on an odd count before giving
// up with a FaultError.
func Crossings(c Circle, w Wave) ([]Crossing, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	n := sampleCount(c, w)
	for attempt := 0; attempt < 3; attempt++ {
		crossings := FindCrossings(c, w.Curve(c), n)
		if len(crossings)%2 == 0 {
			return crossings, nil
		}
		n *= 2
	}
	return nil, &FaultError{
		Count:   len(FindCrossings(c, w.Curve(c), n/2)),
		Samples: n / 2,
	}
}

// FindCrossings locates the zeros of f(θ) = y(θ) − curve(x(θ)) on a fixed
// grid of the given resolution. Only sign changes count: a sample landing
// exactly on zero is a crossing when its nearest nonzero neighbors disagree
// in sign, and tangential touches are ignored.
func FindCrossings(c Circle, curve Curve, samples int) []Crossing {
	f := func(theta float64) float64 {
		p := c.PointAt(theta)
		return p.Y - curve(p.X)
	}

	n := samples
	step := 2 * math.Pi / float64(n)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = f(step * float64(i))
	}

	var thetas []float64
	for i := 0; i < n; i++ {
		v := vals[i]
		next := vals[(i+1)%n]
		if v == 0 {
			if vals[(i-1+n)%n] == 0 {
				// middle of a flat run, counted at the run's first sample
				continue
			}
			prev, okPrev := nearestNonzero(vals, i, -1)
			after, okAfter := nearestNonzero(vals, i, +1)
			if !okPrev || !okAfter {
				// f vanishes everywhere; nothing transversal to report
				continue
			}
			if geo.Sign(prev) != geo.Sign(after) {
				thetas = append(thetas, step*float64(i))
			}
			continue
		}
		if next == 0 {
			continue
		}
		if (v < 0) != (next < 0) {
			thetas = append(thetas, bisect(f, step*float64(i), step*float64(i+1)))
		}
	}

	// A crossing at the rightmost point can land in the grid's last cell
	// when f(0) rounds to a nonzero value, surfacing at the top of the
	// angle range. It belongs at θ=0.
	wrapped := false
	for i, t := range thetas {
		if 2*math.Pi-t < dedupeTheta {
			thetas[i] = 0
			wrapped = true
		}
	}
	if wrapped {
		sort.Float64s(thetas)
	}
	thetas = dedupe(thetas)

	crossings := make([]Crossing, 0, len(thetas))
	eps := 1e-6 * c.Radius
	for _, theta := range thetas {
		p := c.PointAt(theta)
		crossings = append(crossings, Crossing{
			Point:    p,
			Theta:    theta,
			Entering: boundaryDist(c, curve, p.X+eps) < boundaryDist(c, curve, p.X-eps),
		})
	}
	return crossings
}

// boundaryDist is the squared distance of the wave point at x from the
// boundary, negative inside the disk.
func boundaryDist(c Circle, curve Curve, x float64) float64 {
	dx := x - c.Center.X
	dy := curve(x) - c.Center.Y
	return dx*dx + dy*dy - c.Radius*c.Radius
}

func bisect(f func(float64) float64, lo, hi float64) float64 {
	flo := f(lo)
	for i := 0; i < 200 && hi-lo > thetaTol; i++ {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if fmid == 0 {
			return mid
		}
		if (fmid < 0) == (flo < 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// nearestNonzero walks from i in the given direction and returns the first
// nonzero sample, wrapping around the grid.
func nearestNonzero(vals []float64, i, dir int) (float64, bool) {
	n := len(vals)
	for k := 1; k < n; k++ {
		v := vals[((i+dir*k)%n+n)%n]
		if v != 0 {
			return v, true
		}
	}
	return 0, false
}

// dedupe drops near-coincident angles, including across the 2π wrap.
func dedupe(thetas []float64) []float64 {
	if len(thetas) < 2 {
		return thetas
	}
	out := thetas[:1]
	for _, t := range thetas[1:] {
		if t-out[len(out)-1] < dedupeTheta {
			continue
		}
		out = append(out, t)
	}
	if len(out) > 1 && out[0]+2*math.Pi-out[len(out)-1] < dedupeTheta {
		out = out[:len(out)-1]
	}
	return out
}
