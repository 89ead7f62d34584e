// Package svg holds small helpers shared by SVG-emitting code.
package svg

import (
	"bytes"
	"encoding/xml"
	"math"
	"strconv"
	"strings"
)

func EscapeText(text string) string {
	buf := new(bytes.Buffer)
	_ = xml.EscapeText(buf, []byte(text))
	return buf.String()
}

// Coord formats a coordinate with 4 decimals of precision, trimming trailing
// zeros so output stays stable across machines.
func Coord(f float64) string {
	f = math.Round(f*10000) / 10000
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func Flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
