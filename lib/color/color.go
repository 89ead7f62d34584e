// Package color validates and manipulates the CSS color values accepted on
// the command line.
package color

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

const None = "none"

// IsTransparent reports whether colorString disables painting entirely.
func IsTransparent(colorString string) bool {
	s := strings.ToLower(strings.TrimSpace(colorString))
	return s == "" || s == None || s == "transparent"
}

// Validate returns an error if colorString is neither a CSS color nor "none".
func Validate(colorString string) error {
	if IsTransparent(colorString) {
		return nil
	}
	_, err := csscolorparser.Parse(colorString)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", colorString, err)
	}
	return nil
}

// Darken decreases the color's luminance by 10% and returns it as hex.
func Darken(colorString string) (string, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", err
	}
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	return colorful.Hsl(h, s, l-.1).Clamped().Hex(), nil
}

func Luminance(colorString string) (float64, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return 0, err
	}

	l := 0.299*c.R + 0.587*c.G + 0.114*c.B
	return l, nil
}

// LuminanceCategory buckets a color the way humans describe it.
func LuminanceCategory(colorString string) (string, error) {
	l, err := Luminance(colorString)
	if err != nil {
		return "", err
	}

	switch {
	case l >= .88:
		return "bright", nil
	case l >= .55:
		return "normal", nil
	case l >= .30:
		return "dark", nil
	default:
		return "darker", nil
	}
}
