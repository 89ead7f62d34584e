package wavegeom

import (
	"math"
	"reflect"
	"testing"

	"github.com/oceanbiometrics/wavemark/lib/geo"
)

func TestSingleWavelengthAcrossDiameter(t *testing.T) {
	// one full wave across the diameter crosses exactly at the leftmost and
	// rightmost points of the circle
	c := Circle{Center: geo.NewPoint(0, 0), Radius: 100}
	w := Wave{Amplitude: 50, Omega: math.Pi / 100}

	crossings, err := Crossings(c, w)
	if err != nil {
		t.Fatal(err)
	}
	if len(crossings) != 2 {
		t.Fatalf("expected 2 crossings, got %d", len(crossings))
	}

	right, left := crossings[0], crossings[1]
	// the rightmost crossing sits at θ=0, not at the far end of the wrap
	if right.Theta > 1e-6 {
		t.Fatalf("expected first crossing at θ≈0, got θ=%v", right.Theta)
	}
	if !right.Point.EqualsApprox(geo.NewPoint(100, 0), 1e-3) {
		t.Fatalf("expected right crossing near (100, 0), got %v", right.Point.ToString())
	}
	if !left.Point.EqualsApprox(geo.NewPoint(-100, 0), 1e-3) {
		t.Fatalf("expected left crossing near (-100, 0), got %v", left.Point.ToString())
	}
	if right.Entering {
		t.Fatal("wave should exit the disk at the right crossing")
	}
	if !left.Entering {
		t.Fatal("wave should enter the disk at the left crossing")
	}
}

func TestHorizontalLineCrossings(t *testing.T) {
	c := Circle{Center: geo.NewPoint(0, 0), Radius: 100}
	w := Wave{} // amplitude and frequency 0: the line y = 0

	crossings, err := Crossings(c, w)
	if err != nil {
		t.Fatal(err)
	}
	if len(crossings) != 2 {
		t.Fatalf("expected 2 crossings for a diameter line, got %d", len(crossings))
	}
	if !crossings[0].Point.EqualsApprox(geo.NewPoint(100, 0), 1e-6) ||
		!crossings[1].Point.EqualsApprox(geo.NewPoint(-100, 0), 1e-6) {
		t.Fatalf("wrong crossing points: %v, %v",
			crossings[0].Point.ToString(), crossings[1].Point.ToString())
	}
}

func TestCrossingCountAlwaysEven(t *testing.T) {
	c := Circle{Center: geo.NewPoint(0, 0), Radius: 100}
	for _, amplitude := range []float64{1, 12, 50, 80, 150} {
		for _, wavelength := range []float64{30, 70, 140, 600} {
			for _, phase := range []float64{0, 0.4, math.Pi / 2, 3} {
				for _, baseline := range []float64{0, -20, 55, 99} {
					w := Wave{
						Amplitude: amplitude,
						Omega:     2 * math.Pi / wavelength,
						Phase:     phase,
						Baseline:  baseline,
					}
					crossings, err := Crossings(c, w)
					if err != nil {
						t.Fatalf("A=%v λ=%v φ=%v b=%v: %v", amplitude, wavelength, phase, baseline, err)
					}
					if len(crossings)%2 != 0 {
						t.Fatalf("A=%v λ=%v φ=%v b=%v: odd crossing count %d",
							amplitude, wavelength, phase, baseline, len(crossings))
					}
					for i, cr := range crossings {
						if cr.Theta < 0 || cr.Theta >= 2*math.Pi-1e-7 {
							t.Fatalf("crossing angle %v outside [0, 2π)", cr.Theta)
						}
						if i > 0 && cr.Theta <= crossings[i-1].Theta {
							t.Fatalf("crossings out of angle order: %v then %v",
								crossings[i-1].Theta, cr.Theta)
						}
					}
				}
			}
		}
	}
}

func TestWaveMissesDisk(t *testing.T) {
	c := Circle{Center: geo.NewPoint(0, 0), Radius: 100}
	w := Wave{Amplitude: 0, Baseline: 200}

	crossings, err := Crossings(c, w)
	if err != nil {
		t.Fatal(err)
	}
	if len(crossings) != 0 {
		t.Fatalf("expected no crossings, got %d", len(crossings))
	}
}

func TestTangentialTouchIgnored(t *testing.T) {
	c := Circle{Center: geo.NewPoint(0, 0), Radius: 100}
	// the line grazes the bottom of the rim without entering
	w := Wave{Amplitude: 0, Baseline: 100}

	crossings, err := Crossings(c, w)
	if err != nil {
		t.Fatal(err)
	}
	if len(crossings) != 0 {
		t.Fatalf("tangential touch should not count, got %d crossings", len(crossings))
	}
}

func TestCrossingsDeterministic(t *testing.T) {
	c := Circle{Center: geo.NewPoint(0, 0), Radius: 300}
	w := Wave{Amplitude: 72, Omega: 2 * math.Pi / 420, Phase: 1.1, Baseline: -8}

	first, err := Crossings(c, w)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Crossings(c, w)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same parameters must yield bit-identical crossings")
	}
}

func TestFinerGridRecoversNarrowDip(t *testing.T) {
	// the dip sits between two coarse samples, hiding a crossing pair;
	// doubling the grid lands a sample inside it, which is why Crossings
	// resamples before reporting a fault
	c := Circle{Center: geo.NewPoint(0, 0), Radius: 100}
	curve := func(x float64) float64 {
		if -26 < x && x < -13 {
			return 150
		}
		return 50
	}

	coarse := FindCrossings(c, curve, 16)
	if len(coarse) != 2 {
		t.Fatalf("expected the coarse grid to see 2 crossings, got %d", len(coarse))
	}
	fine := FindCrossings(c, curve, 32)
	if len(fine) != 4 {
		t.Fatalf("expected the doubled grid to find 4 crossings, got %d", len(fine))
	}
}
