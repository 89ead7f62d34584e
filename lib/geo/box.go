package geo

import (
	"fmt"
	"math"
)

type Box struct {
	TopLeft *Point
	Width   float64
	Height  float64
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

func (b *Box) BottomRight() *Point {
	return NewPoint(b.TopLeft.X+b.Width, b.TopLeft.Y+b.Height)
}

// Expand grows the box by margin on every side.
func (b *Box) Expand(margin float64) *Box {
	return NewBox(
		NewPoint(b.TopLeft.X-margin, b.TopLeft.Y-margin),
		b.Width+2*margin,
		b.Height+2*margin,
	)
}

// Union returns the smallest box enclosing both b and other.
func (b *Box) Union(other *Box) *Box {
	if b == nil {
		return other.Copy()
	}
	if other == nil {
		return b.Copy()
	}
	minX := math.Min(b.TopLeft.X, other.TopLeft.X)
	minY := math.Min(b.TopLeft.Y, other.TopLeft.Y)
	maxX := math.Max(b.TopLeft.X+b.Width, other.TopLeft.X+other.Width)
	maxY := math.Max(b.TopLeft.Y+b.Height, other.TopLeft.Y+other.Height)
	return NewBox(NewPoint(minX, minY), maxX-minX, maxY-minY)
}

// RoundOut snaps the box outward to whole units so nothing inside it can land
// on a fractional edge.
func (b *Box) RoundOut() *Box {
	minX := math.Floor(b.TopLeft.X)
	minY := math.Floor(b.TopLeft.Y)
	maxX := math.Ceil(b.TopLeft.X + b.Width)
	maxY := math.Ceil(b.TopLeft.Y + b.Height)
	return NewBox(NewPoint(minX, minY), maxX-minX, maxY-minY)
}

// Contains reports whether p lies inside b, with tolerance e at the edges.
func (b *Box) Contains(p *Point, e float64) bool {
	return p.X >= b.TopLeft.X-e &&
		p.Y >= b.TopLeft.Y-e &&
		p.X <= b.TopLeft.X+b.Width+e &&
		p.Y <= b.TopLeft.Y+b.Height+e
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
