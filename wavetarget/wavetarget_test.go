package wavetarget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oceanbiometrics/wavemark/lib/geo"
)

func TestPathValidate(t *testing.T) {
	square := Path{
		MoveTo(geo.NewPoint(0, 0)),
		LineTo(geo.NewPoint(10, 0)),
		LineTo(geo.NewPoint(10, 10)),
		LineTo(geo.NewPoint(0, 10)),
		Close(),
	}
	assert.NoError(t, square.Validate(true))
	assert.Error(t, square.Validate(false), "closed path used as a stroke")

	open := Path{
		MoveTo(geo.NewPoint(0, 0)),
		ArcTo(geo.NewPoint(10, 0), 5, false, true),
	}
	assert.NoError(t, open.Validate(false))
	assert.Error(t, open.Validate(true), "unclosed fill path")

	assert.Error(t, Path{}.Validate(false))
	assert.Error(t, Path{LineTo(geo.NewPoint(1, 1))}.Validate(false), "missing initial move")
	assert.Error(t, Path{
		MoveTo(geo.NewPoint(0, 0)),
		MoveTo(geo.NewPoint(1, 1)),
	}.Validate(false), "consecutive moves")
	assert.Error(t, Path{
		MoveTo(geo.NewPoint(0, 0)),
		LineTo(geo.NewPoint(10, 0)),
		MoveTo(geo.NewPoint(20, 0)),
		LineTo(geo.NewPoint(30, 0)),
	}.Validate(false), "second subpath")
	assert.Error(t, Path{
		MoveTo(geo.NewPoint(0, 0)),
		LineTo(geo.NewPoint(10, 0)),
		Close(),
		LineTo(geo.NewPoint(20, 0)),
	}.Validate(false), "draw after close")
	assert.Error(t, Path{
		MoveTo(geo.NewPoint(0, 0)),
		ArcTo(geo.NewPoint(10, 0), 0, false, false),
	}.Validate(false), "zero arc radius")
}

func TestPathTranslate(t *testing.T) {
	p := Path{
		MoveTo(geo.NewPoint(1, 2)),
		ArcTo(geo.NewPoint(3, 4), 7, true, false),
		Close(),
	}
	got := p.Translate(10, -20)

	assert.Equal(t, Path{
		{Op: MoveOp, X: 11, Y: -18},
		{Op: ArcOp, X: 13, Y: -16, R: 7, LargeArc: true},
		{Op: CloseOp},
	}, got)
	// the original is untouched
	assert.Equal(t, 1.0, p[0].X)
}

func TestLogoValidate(t *testing.T) {
	disk := Path{
		MoveTo(geo.NewPoint(0, 50)),
		ArcTo(geo.NewPoint(100, 50), 50, false, true),
		ArcTo(geo.NewPoint(0, 50), 50, false, true),
		Close(),
	}
	logo := &Logo{
		Bounds:     geo.NewBox(geo.NewPoint(0, 0), 100, 100),
		Background: "#FFFFFF",
		Regions: []Region{
			{Label: "upper", Fill: "#63C5DA", Paths: []Path{disk}},
		},
		Strokes: []Stroke{
			{Color: "#27374D", Width: 3, Linecap: LinecapRound, Path: Path{
				MoveTo(geo.NewPoint(0, 50)),
				LineTo(geo.NewPoint(100, 50)),
			}},
		},
	}
	assert.NoError(t, logo.Validate())

	logo.Background = "none"
	assert.NoError(t, logo.Validate(), "transparent background")

	logo.Regions[0].Fill = "definitely-not-a-color"
	assert.Error(t, logo.Validate())
	logo.Regions[0].Fill = "#63C5DA"

	logo.Strokes[0].Width = 0
	assert.Error(t, logo.Validate())
	logo.Strokes[0].Width = 3

	logo.Strokes[0].Path[1].X = 120
	assert.Error(t, logo.Validate(), "endpoint off canvas")
	logo.Strokes[0].Path[1].X = 100

	logo.Bounds = nil
	assert.Error(t, logo.Validate())
}
