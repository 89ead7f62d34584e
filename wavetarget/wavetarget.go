// Package wavetarget defines the renderer-independent form of a finished
// logo. The geometry pipeline produces a Logo and the SVG and PNG renderers
// consume it, so neither side needs to know about the other.
package wavetarget

import (
	"errors"
	"fmt"

	"github.com/oceanbiometrics/wavemark/lib/color"
	"github.com/oceanbiometrics/wavemark/lib/geo"
)

// Logo is a complete drawing: filled regions underneath, stroked lines on
// top, all in canvas coordinates relative to Bounds.TopLeft.
type Logo struct {
	Bounds *geo.Box `json:"bounds"`

	// Background is a CSS color, or color.None for a transparent canvas.
	Background string `json:"background"`

	Regions []Region `json:"regions,omitempty"`
	Strokes []Stroke `json:"strokes,omitempty"`
}

// Region is one filled side of the partition. A region may consist of
// several disjoint closed paths sharing the same fill.
type Region struct {
	Label string `json:"label"`
	Fill  string `json:"fill"`
	Paths []Path `json:"paths,omitempty"`
}

// Stroke is a line drawn over the regions.
type Stroke struct {
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Linecap Linecap `json:"linecap"`
	Path    Path    `json:"path"`
}

type Linecap string

const (
	LinecapButt  Linecap = "butt"
	LinecapRound Linecap = "round"
)

// Path is a sequence of drawing commands forming a single subpath: one
// MoveTo up front, then draws. Filled paths end with a Close; stroked paths
// omit it. A region needing disjoint pieces holds several Paths.
type Path []Command

type Op int8

const (
	MoveOp Op = iota
	LineOp
	ArcOp
	CloseOp
)

// Command is a single path step. X and Y are the endpoint for MoveOp,
// LineOp and ArcOp. R, LargeArc and Sweep carry the circular arc parameters
// for ArcOp and are zero otherwise.
type Command struct {
	Op       Op      `json:"op"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	R        float64 `json:"r,omitempty"`
	LargeArc bool    `json:"largeArc,omitempty"`
	Sweep    bool    `json:"sweep,omitempty"`
}

func MoveTo(p *geo.Point) Command {
	return Command{Op: MoveOp, X: p.X, Y: p.Y}
}

func LineTo(p *geo.Point) Command {
	return Command{Op: LineOp, X: p.X, Y: p.Y}
}

// ArcTo draws the circular arc of radius r from the current point to p.
// LargeArc selects the long way around and Sweep the clockwise direction,
// with y growing downward.
func ArcTo(p *geo.Point, r float64, largeArc, sweep bool) Command {
	return Command{Op: ArcOp, X: p.X, Y: p.Y, R: r, LargeArc: largeArc, Sweep: sweep}
}

func Close() Command {
	return Command{Op: CloseOp}
}

// Translate returns a copy of p shifted by (dx, dy).
func (p Path) Translate(dx, dy float64) Path {
	out := make(Path, len(p))
	for i, cmd := range p {
		if cmd.Op != CloseOp {
			cmd.X += dx
			cmd.Y += dy
		}
		out[i] = cmd
	}
	return out
}

// Validate checks that p is a well formed single subpath: it must begin
// with its only MoveTo, and if closed is set it must end with a Close.
func (p Path) Validate(closed bool) error {
	if len(p) == 0 {
		return errors.New("empty path")
	}
	if p[0].Op != MoveOp {
		return errors.New("path must start with a move")
	}
	prev := MoveOp
	for i, cmd := range p[1:] {
		switch cmd.Op {
		case MoveOp:
			return fmt.Errorf("command %d: a path holds one subpath, only the first command may move", i+1)
		case CloseOp:
			if prev == MoveOp {
				return fmt.Errorf("command %d closes without drawing anything", i+1)
			}
			if i+1 != len(p)-1 {
				return fmt.Errorf("command %d: close must be the last command", i+1)
			}
		case ArcOp:
			if cmd.R <= 0 {
				return fmt.Errorf("command %d: arc radius must be positive, got %v", i+1, cmd.R)
			}
		}
		prev = cmd.Op
	}
	if closed && prev != CloseOp {
		return errors.New("filled path must end with a close")
	}
	if !closed && prev == CloseOp {
		return errors.New("stroked path must not close")
	}
	return nil
}

func (o Op) String() string {
	switch o {
	case MoveOp:
		return "move"
	case LineOp:
		return "line"
	case ArcOp:
		return "arc"
	case CloseOp:
		return "close"
	}
	return fmt.Sprintf("op(%d)", int8(o))
}

func (l *Logo) validatePath(p Path, closed bool) error {
	if err := p.Validate(closed); err != nil {
		return err
	}
	for i, cmd := range p {
		if cmd.Op == CloseOp {
			continue
		}
		if !l.Bounds.Contains(geo.NewPoint(cmd.X, cmd.Y), 1e-6) {
			return fmt.Errorf("command %d endpoint (%v, %v) falls outside the canvas", i, cmd.X, cmd.Y)
		}
	}
	return nil
}

// Validate checks the whole logo for renderability, including that every
// path stays on the canvas.
func (l *Logo) Validate() error {
	if l.Bounds == nil || l.Bounds.Width <= 0 || l.Bounds.Height <= 0 {
		return errors.New("logo has no canvas")
	}
	if l.Background != "" && !color.IsTransparent(l.Background) {
		if err := color.Validate(l.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	for _, r := range l.Regions {
		if err := color.Validate(r.Fill); err != nil {
			return fmt.Errorf("region %q fill: %w", r.Label, err)
		}
		for i, p := range r.Paths {
			if err := l.validatePath(p, true); err != nil {
				return fmt.Errorf("region %q path %d: %w", r.Label, i, err)
			}
		}
	}
	for i, s := range l.Strokes {
		if err := color.Validate(s.Color); err != nil {
			return fmt.Errorf("stroke %d color: %w", i, err)
		}
		if s.Width <= 0 {
			return fmt.Errorf("stroke %d: width must be positive, got %v", i, s.Width)
		}
		if err := l.validatePath(s.Path, false); err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
	}
	return nil
}
