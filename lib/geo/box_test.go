package geo

import (
	"testing"
)

func TestBoxExpand(t *testing.T) {
	b := NewBox(NewPoint(10, 20), 100, 50)
	e := b.Expand(5)

	if e.TopLeft.X != 5 || e.TopLeft.Y != 15 {
		t.Fatalf("wrong top left %v", e.TopLeft.ToString())
	}
	if e.Width != 110 || e.Height != 60 {
		t.Fatalf("wrong dimensions %v x %v", e.Width, e.Height)
	}
}

func TestBoxUnion(t *testing.T) {
	a := NewBox(NewPoint(0, 0), 10, 10)
	b := NewBox(NewPoint(5, -5), 10, 10)

	u := a.Union(b)
	if u.TopLeft.X != 0 || u.TopLeft.Y != -5 {
		t.Fatalf("wrong top left %v", u.TopLeft.ToString())
	}
	if u.Width != 15 || u.Height != 15 {
		t.Fatalf("wrong dimensions %v x %v", u.Width, u.Height)
	}

	if u2 := (*Box)(nil).Union(a); !u2.TopLeft.Equals(a.TopLeft) {
		t.Fatal("nil union should copy the other box")
	}
}

func TestBoxRoundOut(t *testing.T) {
	b := NewBox(NewPoint(-0.2, 1.7), 10.5, 3.1)
	r := b.RoundOut()

	if r.TopLeft.X != -1 || r.TopLeft.Y != 1 {
		t.Fatalf("wrong top left %v", r.TopLeft.ToString())
	}
	if r.Width != 12 || r.Height != 4 {
		t.Fatalf("wrong dimensions %v x %v", r.Width, r.Height)
	}
	// corners land on whole units
	br := r.BottomRight()
	if br.X != 11 || br.Y != 5 {
		t.Fatalf("wrong bottom right %v", br.ToString())
	}
}

func TestBoxContains(t *testing.T) {
	b := NewBox(NewPoint(0, 0), 10, 10)

	if !b.Contains(NewPoint(5, 5), 0) {
		t.Fatal("center should be contained")
	}
	if !b.Contains(NewPoint(10, 10), 0) {
		t.Fatal("corner should be contained")
	}
	if b.Contains(NewPoint(10.1, 5), 0) {
		t.Fatal("outside point should not be contained")
	}
	if !b.Contains(NewPoint(10.1, 5), 0.2) {
		t.Fatal("tolerance should admit the point")
	}
}
