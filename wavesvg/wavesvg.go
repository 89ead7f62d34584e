// Package wavesvg renders a wavetarget.Logo to SVG.
package wavesvg

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/oceanbiometrics/wavemark/lib/color"
	"github.com/oceanbiometrics/wavemark/lib/svg"
	"github.com/oceanbiometrics/wavemark/wavetarget"
)

// Render serializes the logo as a standalone SVG document. The canvas
// occupies viewBox "0 0 w h" with the logo's own coordinates shifted so its
// bounds' top left corner lands on the origin.
func Render(logo *wavetarget.Logo) ([]byte, error) {
	if err := logo.Validate(); err != nil {
		return nil, err
	}

	tl := logo.Bounds.TopLeft
	w := int(logo.Bounds.Width)
	h := int(logo.Bounds.Height)

	buf := &bytes.Buffer{}
	fmt.Fprint(buf, `<?xml version="1.0" encoding="utf-8"?>`+"\n")
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", w, h, w, h)

	if logo.Background != "" && !color.IsTransparent(logo.Background) {
		fmt.Fprintf(buf, `<rect width="%d" height="%d" fill="%s" />`+"\n", w, h, svg.EscapeText(logo.Background))
	}

	for _, r := range logo.Regions {
		fmt.Fprintf(buf, `<g aria-label="%s" fill="%s">`+"\n", svg.EscapeText(r.Label), svg.EscapeText(r.Fill))
		for _, p := range r.Paths {
			fmt.Fprintf(buf, `<path d="%s" />`+"\n", pathData(p.Translate(-tl.X, -tl.Y)))
		}
		fmt.Fprint(buf, "</g>\n")
	}

	for _, s := range logo.Strokes {
		linecap := s.Linecap
		if linecap == "" {
			linecap = wavetarget.LinecapButt
		}
		fmt.Fprintf(buf, `<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="%s" stroke-linejoin="round" />`+"\n",
			pathData(s.Path.Translate(-tl.X, -tl.Y)),
			svg.EscapeText(s.Color),
			svg.Coord(s.Width),
			linecap,
		)
	}

	fmt.Fprint(buf, "</svg>\n")
	return buf.Bytes(), nil
}

func pathData(p wavetarget.Path) string {
	var sb strings.Builder
	for i, cmd := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch cmd.Op {
		case wavetarget.MoveOp:
			fmt.Fprintf(&sb, "M %s %s", svg.Coord(cmd.X), svg.Coord(cmd.Y))
		case wavetarget.LineOp:
			fmt.Fprintf(&sb, "L %s %s", svg.Coord(cmd.X), svg.Coord(cmd.Y))
		case wavetarget.ArcOp:
			fmt.Fprintf(&sb, "A %s %s 0 %s %s %s %s",
				svg.Coord(cmd.R), svg.Coord(cmd.R),
				svg.Flag(cmd.LargeArc), svg.Flag(cmd.Sweep),
				svg.Coord(cmd.X), svg.Coord(cmd.Y))
		case wavetarget.CloseOp:
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}
