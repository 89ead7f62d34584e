package wavemark

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oceanbiometrics/wavemark/lib/log"
)

func testCtx(t *testing.T) context.Context {
	return log.WithTB(context.Background(), t, nil)
}

func TestRenderDefaults(t *testing.T) {
	logo, err := Render(testCtx(t), Defaults())
	assert.NoError(t, err)
	assert.NoError(t, logo.Validate())

	assert.Len(t, logo.Regions, 2)
	assert.Equal(t, "upper", logo.Regions[0].Label)
	assert.Equal(t, "lower", logo.Regions[1].Label)
	for _, r := range logo.Regions {
		assert.NotEmpty(t, r.Paths)
	}
	// default boundary stroke is a darkened fg1
	assert.NotEmpty(t, logo.Strokes)
	assert.NotEqual(t, Defaults().FG1, logo.Strokes[0].Color)

	// 600px disk, 5% pad, half the boundary stroke on each side
	assert.GreaterOrEqual(t, logo.Bounds.Width, 600.0)
	assert.GreaterOrEqual(t, logo.Bounds.Height, 600.0)
}

func TestRenderDeterministic(t *testing.T) {
	p := Defaults()
	p.Phase = 0.7
	p.Baseline = 0.05

	ctx := testCtx(t)
	a, err := Render(ctx, p)
	assert.NoError(t, err)
	b, err := Render(ctx, p)
	assert.NoError(t, err)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same parameters must yield an identical logo")
	}
}

func TestRenderDegenerateWave(t *testing.T) {
	p := Defaults()
	p.Amplitude = 0
	p.Baseline = 2 // wave line far below the disk

	logo, err := Render(testCtx(t), p)
	assert.NoError(t, err)
	assert.NoError(t, logo.Validate())

	assert.Len(t, logo.Regions[0].Paths, 1, "upper region covers the whole disk")
	assert.Empty(t, logo.Regions[1].Paths, "lower region is empty")
	assert.Empty(t, logo.Strokes, "no boundary inside the disk to stroke")
}

func TestRenderStrokeNone(t *testing.T) {
	p := Defaults()
	p.Stroke = "none"

	logo, err := Render(testCtx(t), p)
	assert.NoError(t, err)
	assert.Empty(t, logo.Strokes)
}

func TestRenderOutline(t *testing.T) {
	p := Defaults()
	p.Outline = true
	p.Projection = 0.1
	p.Shift1 = 0.02

	logo, err := Render(testCtx(t), p)
	assert.NoError(t, err)
	assert.NoError(t, logo.Validate())

	assert.Empty(t, logo.Regions)
	assert.Len(t, logo.Strokes, 4)
	// arcs draw with butt caps, waves with round caps
	assert.Equal(t, "butt", string(logo.Strokes[0].Linecap))
	assert.Equal(t, "round", string(logo.Strokes[2].Linecap))
	assert.GreaterOrEqual(t, logo.Bounds.Width, 600.0)
}

func TestValidate(t *testing.T) {
	valid := func(mutate func(*Params)) error {
		p := Defaults()
		mutate(&p)
		return p.Validate()
	}

	assert.NoError(t, valid(func(p *Params) {}))
	assert.Error(t, valid(func(p *Params) { p.Diameter = 0 }))
	assert.Error(t, valid(func(p *Params) { p.Wavelength = -0.5 }))
	assert.Error(t, valid(func(p *Params) { p.Amplitude = -1 }))
	assert.Error(t, valid(func(p *Params) { p.LineWidth = -1 }))
	assert.Error(t, valid(func(p *Params) { p.Projection = -1 }))
	assert.Error(t, valid(func(p *Params) { p.FG1 = "nope" }))
	assert.Error(t, valid(func(p *Params) { p.FG2 = "none" }))
	assert.Error(t, valid(func(p *Params) { p.BG = "##badhex" }))
	assert.NoError(t, valid(func(p *Params) { p.BG = "none" }))
	assert.Error(t, valid(func(p *Params) {
		p.Outline = true
		p.LineWidth = p.Diameter
	}))

	err := valid(func(p *Params) { p.Diameter = -5 })
	var perr *ParamError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, "diameter", perr.Param)
}
