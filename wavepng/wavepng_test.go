package wavepng

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oceanbiometrics/wavemark/lib/geo"
	"github.com/oceanbiometrics/wavemark/wavetarget"
)

func diskLogo(bg string) *wavetarget.Logo {
	disk := wavetarget.Path{
		wavetarget.MoveTo(geo.NewPoint(10, 60)),
		wavetarget.ArcTo(geo.NewPoint(110, 60), 50, false, true),
		wavetarget.ArcTo(geo.NewPoint(10, 60), 50, false, true),
		wavetarget.Close(),
	}
	return &wavetarget.Logo{
		Bounds:     geo.NewBox(geo.NewPoint(0, 0), 120, 120),
		Background: bg,
		Regions: []wavetarget.Region{
			{Label: "disk", Fill: "#FF0000", Paths: []wavetarget.Path{disk}},
		},
	}
}

func TestRenderEncodesPNG(t *testing.T) {
	out, err := Render(diskLogo("#FFFFFF"), 1)
	assert.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
}

func TestRasterizeFillsInterior(t *testing.T) {
	img, err := Rasterize(diskLogo("#FFFFFF"), 1)
	assert.NoError(t, err)

	// disk center is solid red, canvas corner is the white background
	r, g, b, a := img.At(60, 60).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})

	r, g, b, a = img.At(2, 2).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})
}

func TestRasterizeTransparentBackground(t *testing.T) {
	img, err := Rasterize(diskLogo("none"), 1)
	assert.NoError(t, err)

	_, _, _, a := img.At(2, 2).RGBA()
	assert.Equal(t, uint32(0), a)

	_, _, _, a = img.At(60, 60).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestRasterizeScale(t *testing.T) {
	img, err := Rasterize(diskLogo("#FFFFFF"), 2.5)
	assert.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())

	// the disk scales with the canvas
	r, _, _, _ := img.At(150, 150).RGBA()
	assert.Equal(t, uint32(0xffff), r)

	_, err = Rasterize(diskLogo("#FFFFFF"), 0)
	assert.Error(t, err)
}

func TestRasterizeStroke(t *testing.T) {
	logo := diskLogo("#FFFFFF")
	logo.Strokes = []wavetarget.Stroke{
		{Color: "#0000FF", Width: 6, Linecap: wavetarget.LinecapRound, Path: wavetarget.Path{
			wavetarget.MoveTo(geo.NewPoint(10, 60)),
			wavetarget.LineTo(geo.NewPoint(110, 60)),
		}},
	}
	img, err := Rasterize(logo, 1)
	assert.NoError(t, err)

	// the stroke paints over the fill along the midline
	_, _, b, _ := img.At(60, 60).RGBA()
	assert.Equal(t, uint32(0xffff), b)

	// round caps extend past the endpoints
	_, _, b, _ = img.At(8, 60).RGBA()
	assert.Equal(t, uint32(0xffff), b)
}

func TestRenderDeterministic(t *testing.T) {
	a, err := Render(diskLogo("#123456"), 1)
	assert.NoError(t, err)
	b, err := Render(diskLogo("#123456"), 1)
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}
