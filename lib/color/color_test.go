package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	for _, s := range []string{"#63C5DA", "#fff", "rgb(39, 55, 77)", "steelblue", "none", "transparent", ""} {
		assert.NoError(t, Validate(s), s)
	}
	for _, s := range []string{"#12", "notacolor", "rgb(300"} {
		assert.Error(t, Validate(s), s)
	}
}

func TestIsTransparent(t *testing.T) {
	assert.True(t, IsTransparent("none"))
	assert.True(t, IsTransparent(" Transparent "))
	assert.True(t, IsTransparent(""))
	assert.False(t, IsTransparent("#27374D"))
}

func TestDarken(t *testing.T) {
	darkened, err := Darken("#FFFFFF")
	assert.NoError(t, err)
	assert.Equal(t, "#e6e6e6", darkened)

	_, err = Darken("nope")
	assert.Error(t, err)
}

func TestLuminanceCategory(t *testing.T) {
	for _, tc := range []struct {
		color    string
		category string
	}{
		{"#ffffff", "bright"},
		{"#aaaaaa", "normal"},
		{"#666666", "dark"},
		{"#000000", "darker"},
	} {
		category, err := LuminanceCategory(tc.color)
		assert.NoError(t, err)
		assert.Equal(t, tc.category, category)
	}
}
