package wavegeom

import (
	"fmt"
	"math"
	"sort"

	"github.com/oceanbiometrics/wavemark/lib/geo"
)

// Side names the two halves of the partition.
type Side int

const (
	// Top is the side with y less than the wave, towards the top of the canvas.
	Top Side = iota
	Bottom
)

func (s Side) String() string {
	if s == Top {
		return "top"
	}
	return "bottom"
}

// Part is one directed piece of a loop boundary: either a rim arc or a
// sampled stretch of the wave curve.
type Part struct {
	IsArc bool

	// Theta0 and Theta1 delimit rim arcs. Theta1 may exceed 2π, or fall
	// below Theta0 when the arc runs against the angle direction.
	Theta0, Theta1 float64

	// Pts holds the sampled wave stretch, or just the two endpoints for arcs.
	Pts geo.Points
}

func (p Part) Start() *geo.Point { return p.Pts[0] }
func (p Part) End() *geo.Point   { return p.Pts[len(p.Pts)-1] }

// Loop is a closed boundary walk alternating rim arcs and wave stretches.
type Loop struct {
	Parts []Part
}

// Region is one side of the partition: a full disk, nothing, or a set of
// disjoint closed loops.
type Region struct {
	Side  Side
	Full  bool
	Loops []Loop
}

func (r Region) Empty() bool {
	return !r.Full && len(r.Loops) == 0
}

const (
	waveSamplesPerPeriod = 64
	minWaveSamples       = 16
	maxWaveSamples       = 4096
)

// BuildRegions splits the disk into the two sides of the wave. The two
// regions tile the disk exactly: every rim arc and every in-disk wave stretch
// appears in both sides' boundaries or one side's, never zero or three times.
// Zero crossings degenerate to one full disk and one empty region.
func BuildRegions(c Circle, w Wave, crossings []Crossing) (top, bottom Region, err error) {
	curve := w.Curve(c)
	top = Region{Side: Top}
	bottom = Region{Side: Bottom}

	if len(crossings) == 0 {
		// The wave misses the disk entirely. Not an error.
		if sideOfPoint(c.Center, curve) == Top {
			top.Full = true
		} else {
			bottom.Full = true
		}
		return top, bottom, nil
	}
	if len(crossings)%2 != 0 {
		return top, bottom, &FaultError{Count: len(crossings)}
	}

	m := len(crossings)

	// Rim arcs between angle-consecutive crossings. Sides alternate at every
	// transversal crossing, so classifying by the arc midpoint is safe.
	type arc struct {
		from, to       int
		theta0, theta1 float64 // theta1 > theta0
		side           Side
	}
	arcs := make([]arc, m)
	for i := range crossings {
		j := (i + 1) % m
		t0 := crossings[i].Theta
		t1 := crossings[j].Theta
		if j == 0 {
			t1 += 2 * math.Pi
		}
		arcs[i] = arc{
			from:   i,
			to:     j,
			theta0: t0,
			theta1: t1,
			side:   sideOfPoint(c.PointAt((t0+t1)/2), curve),
		}
	}

	spans, err := WaveSpans(c, curve, crossings)
	if err != nil {
		return top, bottom, err
	}

	type waveEdge struct {
		a, b int // crossing indices, a at the smaller x
		pts  geo.Points
	}
	edges := make([]waveEdge, len(spans))
	edgeAt := make([]int, m)
	for i := range edgeAt {
		edgeAt[i] = -1
	}
	for ei, span := range spans {
		a, b := span[0], span[1]
		edges[ei] = waveEdge{
			a:   a,
			b:   b,
			pts: SampleWave(curve, w, crossings[a].Point, crossings[b].Point),
		}
		edgeAt[a] = ei
		edgeAt[b] = ei
	}

	// Walk each side's loops: consume an unused side arc, then alternate wave
	// stretch, arc, wave stretch until the walk returns to its start crossing.
	trace := func(side Side) []Loop {
		used := make([]bool, m)
		var loops []Loop
		for start := range arcs {
			if arcs[start].side != side || used[start] {
				continue
			}
			var loop Loop
			cur := start
			forward := true
			for steps := 0; steps <= m; steps++ {
				a := arcs[cur]
				used[cur] = true

				part := Part{IsArc: true}
				var at int
				if forward {
					part.Theta0, part.Theta1 = a.theta0, a.theta1
					part.Pts = geo.Points{crossings[a.from].Point, crossings[a.to].Point}
					at = a.to
				} else {
					part.Theta0, part.Theta1 = a.theta1, a.theta0
					part.Pts = geo.Points{crossings[a.to].Point, crossings[a.from].Point}
					at = a.from
				}
				loop.Parts = append(loop.Parts, part)

				e := edges[edgeAt[at]]
				next := e.a
				pts := e.pts.Reversed()
				if at == e.a {
					next = e.b
					pts = e.pts
				}
				loop.Parts = append(loop.Parts, Part{Pts: pts})

				if next == arcs[start].from {
					break
				}
				// exactly one of the two arcs incident to next is on our side
				if arcs[next].side == side {
					cur = next
					forward = true
				} else {
					cur = (next - 1 + m) % m
					forward = false
				}
			}
			loops = append(loops, loop)
		}
		return loops
	}

	top.Loops = trace(Top)
	bottom.Loops = trace(Bottom)
	return top, bottom, nil
}

// WaveSpans pairs crossings into the stretches of the curve that run inside
// the disk, each pair ordered left to right by x. Every crossing must belong
// to exactly one stretch; anything else means the crossing set is not a valid
// transversal set and the caller should treat it as a sampling fault.
func WaveSpans(c Circle, curve Curve, crossings []Crossing) ([][2]int, error) {
	order := make([]int, len(crossings))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		pi, pj := crossings[order[i]], crossings[order[j]]
		if pi.Point.X != pj.Point.X {
			return pi.Point.X < pj.Point.X
		}
		return pi.Theta < pj.Theta
	})

	seen := make([]int, len(crossings))
	var spans [][2]int
	for k := 0; k+1 < len(order); k++ {
		a, b := order[k], order[k+1]
		midX := (crossings[a].Point.X + crossings[b].Point.X) / 2
		if !c.Contains(geo.NewPoint(midX, curve(midX))) {
			continue
		}
		spans = append(spans, [2]int{a, b})
		seen[a]++
		seen[b]++
	}
	for i, n := range seen {
		if n != 1 {
			return nil, fmt.Errorf("crossing %v belongs to %d wave stretches, want 1", crossings[i].Point.ToString(), n)
		}
	}
	return spans, nil
}

// SampleWave discretizes the curve between two endpoints at a density tied
// to the wave's frequency. The endpoints are taken verbatim so adjacent
// parts meet without seams.
func SampleWave(curve Curve, w Wave, from, to *geo.Point) geo.Points {
	steps := minWaveSamples
	if w.Omega > 0 {
		n := int(math.Ceil(math.Abs(to.X-from.X) * w.Omega / (2 * math.Pi) * waveSamplesPerPeriod))
		if n > steps {
			steps = n
		}
		if steps > maxWaveSamples {
			steps = maxWaveSamples
		}
	}

	pts := make(geo.Points, 0, steps+1)
	pts = append(pts, from)
	for i := 1; i < steps; i++ {
		x := from.X + (to.X-from.X)*float64(i)/float64(steps)
		pts = append(pts, geo.NewPoint(x, curve(x)))
	}
	pts = append(pts, to)
	return pts
}

func sideOfPoint(p *geo.Point, curve Curve) Side {
	if p.Y > curve(p.X) {
		return Bottom
	}
	return Top
}

// FlattenLoop approximates a loop as a polygon, sampling rim arcs at roughly
// 64 points per radian. Used where downstream code cannot consume arcs
// directly, and by area checks in tests.
func FlattenLoop(c Circle, l Loop) geo.Points {
	var pts geo.Points
	for _, part := range l.Parts {
		if !part.IsArc {
			pts = append(pts, part.Pts[:len(part.Pts)-1]...)
			continue
		}
		delta := part.Theta1 - part.Theta0
		n := int(math.Abs(delta)*64) + 2
		for i := 0; i < n; i++ {
			pts = append(pts, c.PointAt(part.Theta0+delta*float64(i)/float64(n)))
		}
	}
	return pts
}
