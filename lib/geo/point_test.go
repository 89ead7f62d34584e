package geo

import (
	"testing"
)

func TestPointDistanceTo(t *testing.T) {
	p1 := &Point{0, 0}
	p2 := &Point{3, 4}

	d := p1.DistanceTo(p2)
	if d != 5.0 {
		t.Fatalf("Expected 5.0 and got %v", d)
	}
}

func TestPointCompare(t *testing.T) {
	p1 := &Point{1, 2}
	p2 := &Point{1, 3}

	if p1.Compare(p2) != -1 {
		t.Fatalf("Expected p1 < p2, got %d", p1.Compare(p2))
	}
	if p2.Compare(p1) != 1 {
		t.Fatalf("Expected p2 > p1, got %d", p2.Compare(p1))
	}
	if p1.Compare(p1.Copy()) != 0 {
		t.Fatal("Expected copy to compare equal")
	}
}

func TestPointsBounds(t *testing.T) {
	ps := Points{
		&Point{-3, 2},
		&Point{5, -1},
		&Point{0, 7},
	}

	b := ps.Bounds()
	if b.TopLeft.X != -3 || b.TopLeft.Y != -1 {
		t.Fatalf("wrong top left %v", b.TopLeft.ToString())
	}
	if b.Width != 8 || b.Height != 8 {
		t.Fatalf("wrong dimensions %v x %v", b.Width, b.Height)
	}

	if (Points{}).Bounds() != nil {
		t.Fatal("expected nil bounds for no points")
	}
}

func TestPointsReversed(t *testing.T) {
	ps := Points{
		&Point{1, 1},
		&Point{2, 2},
		&Point{3, 3},
	}
	r := ps.Reversed()
	if !r[0].Equals(ps[2]) || !r[2].Equals(ps[0]) {
		t.Fatalf("reversal failed: %v", r)
	}
	// original untouched
	if !ps[0].Equals(&Point{1, 1}) {
		t.Fatal("Reversed mutated its receiver")
	}
}
