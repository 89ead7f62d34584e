// Package wavegeom computes how a sine wave partitions a disk.
//
// All coordinates are in screen space: y grows downward and circle angles
// grow clockwise from the positive x axis. Every function is a pure
// computation from its inputs; nothing is cached across calls.
package wavegeom

import (
	"fmt"
	"math"

	"github.com/oceanbiometrics/wavemark/lib/geo"
)

// Curve is a single-valued curve y = f(x). The intersection finder and the
// region builder only see the wave through this, so a different boundary
// shape can be swapped in without touching the sampling logic.
type Curve func(x float64) float64

type Circle struct {
	Center *geo.Point
	Radius float64
}

func (c Circle) PointAt(theta float64) *geo.Point {
	return geo.NewPoint(
		c.Center.X+c.Radius*math.Cos(theta),
		c.Center.Y+c.Radius*math.Sin(theta),
	)
}

func (c Circle) Contains(p *geo.Point) bool {
	dx := p.X - c.Center.X
	dy := p.Y - c.Center.Y
	return dx*dx+dy*dy < c.Radius*c.Radius
}

func (c Circle) Bounds() *geo.Box {
	return geo.NewBox(
		geo.NewPoint(c.Center.X-c.Radius, c.Center.Y-c.Radius),
		2*c.Radius,
		2*c.Radius,
	)
}

func (c Circle) Validate() error {
	if !(c.Radius > 0) {
		return fmt.Errorf("circle radius must be positive, got %v", c.Radius)
	}
	return nil
}

// Wave is the dividing curve y(x) = cy + Baseline + Amplitude·sin(Omega·x + Phase),
// where cy is the circle center's y.
type Wave struct {
	Amplitude float64
	Omega     float64
	Phase     float64
	Baseline  float64
}

// Curve binds w to c's vertical frame.
func (w Wave) Curve(c Circle) Curve {
	cy := c.Center.Y
	return func(x float64) float64 {
		return cy + w.Baseline + w.Amplitude*math.Sin(w.Omega*x+w.Phase)
	}
}

func (w Wave) Validate() error {
	if w.Amplitude < 0 {
		return fmt.Errorf("wave amplitude must be non-negative, got %v", w.Amplitude)
	}
	if w.Omega < 0 {
		return fmt.Errorf("wave frequency must be non-negative, got %v", w.Omega)
	}
	return nil
}
