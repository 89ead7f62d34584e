package wavemarkcli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFormat(t *testing.T) {
	type testCase struct {
		outputPath        string
		extension         exportExtension
		requiresRasterize bool
	}
	testCases := []testCase{
		{
			outputPath:        "/out.svg",
			extension:         ".svg",
			requiresRasterize: false,
		},
		{
			// assumes SVG by default
			outputPath:        "/out",
			extension:         ".svg",
			requiresRasterize: false,
		},
		{
			outputPath:        "-",
			extension:         ".svg",
			requiresRasterize: false,
		},
		{
			outputPath:        "/out.png",
			extension:         ".png",
			requiresRasterize: true,
		},
		{
			// unknown extensions fall back to SVG
			outputPath:        "/out.jpg",
			extension:         ".svg",
			requiresRasterize: false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.outputPath, func(t *testing.T) {
			extension := getExportExtension(tc.outputPath)
			assert.Equal(t, tc.extension, extension)
			assert.Equal(t, tc.requiresRasterize, extension.requiresRasterizer())
		})
	}
}

func TestStdoutFormat(t *testing.T) {
	svgFlag := "svg"
	pngFlag := "PNG"
	badFlag := "jpg"
	empty := ""

	ext, err := getOutputFormat(&svgFlag, "-")
	assert.NoError(t, err)
	assert.Equal(t, SVG, ext)

	// case insensitive
	ext, err = getOutputFormat(&pngFlag, "-")
	assert.NoError(t, err)
	assert.Equal(t, PNG, ext)

	_, err = getOutputFormat(&badFlag, "-")
	assert.Error(t, err)

	// empty flag falls through to the extension
	ext, err = getOutputFormat(&empty, "/out.png")
	assert.NoError(t, err)
	assert.Equal(t, PNG, ext)
}
