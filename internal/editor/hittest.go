package editor

import (
	"math"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

// Handle identifies a resize or rotate grip of the selected element.
type Handle string

const (
	HandleNone        Handle = ""
	HandleTopLeft     Handle = "top-left"
	HandleTopRight    Handle = "top-right"
	HandleBottomLeft  Handle = "bottom-left"
	HandleBottomRight Handle = "bottom-right"
	HandleTop         Handle = "top"
	HandleBottom      Handle = "bottom"
	HandleLeft        Handle = "left"
	HandleRight       Handle = "right"
	HandleRotate      Handle = "rotate"
	HandleStart       Handle = "start"
	HandleEnd         Handle = "end"
)

// rectHandles lists the rectangle grips in hit-test order.
var rectHandles = []Handle{
	HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight,
	HandleTop, HandleBottom, HandleLeft, HandleRight,
}

func (h Handle) movesLeft() bool {
	return h == HandleTopLeft || h == HandleBottomLeft || h == HandleLeft
}

func (h Handle) movesRight() bool {
	return h == HandleTopRight || h == HandleBottomRight || h == HandleRight
}

func (h Handle) movesTop() bool {
	return h == HandleTopLeft || h == HandleTopRight || h == HandleTop
}

func (h Handle) movesBottom() bool {
	return h == HandleBottomLeft || h == HandleBottomRight || h == HandleBottom
}

// handleAnchor returns the centre of grip h on rectangle r.
func handleAnchor(h Handle, r geom.Rect) geom.Point {
	x := r.X + r.Width/2
	y := r.Y + r.Height/2
	if h.movesLeft() {
		x = r.X
	}
	if h.movesRight() {
		x = r.X + r.Width
	}
	if h.movesTop() {
		y = r.Y
	}
	if h.movesBottom() {
		y = r.Y + r.Height
	}
	return geom.Point{X: x, Y: y}
}

// RotationHandle returns the rotate grip position below r.
func (e *Editor) RotationHandle(r geom.Rect) geom.Point {
	return geom.Point{X: r.X + r.Width/2, Y: r.Y + r.Height + e.opts.RotationHandleDistance/e.zoom()}
}

// rectHandleAt returns the grip of r under the local point p.
func (e *Editor) rectHandleAt(p geom.Point, r geom.Rect) Handle {
	size := e.opts.HandleSize / e.zoom()
	for _, h := range rectHandles {
		if inHandleBox(p, handleAnchor(h, r), size) {
			return h
		}
	}
	rot := e.RotationHandle(r)
	if math.Hypot(p.X-rot.X, p.Y-rot.Y) < size {
		return HandleRotate
	}
	return HandleNone
}

// lineHandleAt returns the endpoint grip of l under p.
func (e *Editor) lineHandleAt(p geom.Point, l geom.Line) Handle {
	size := e.opts.HandleSize / e.zoom()
	if inHandleBox(p, l.Start(), size) {
		return HandleStart
	}
	if inHandleBox(p, l.End(), size) {
		return HandleEnd
	}
	return HandleNone
}

func inHandleBox(p, anchor geom.Point, size float64) bool {
	half := size / 2
	return p.X >= anchor.X-half && p.X <= anchor.X+half && p.Y >= anchor.Y-half && p.Y <= anchor.Y+half
}

// selectedHandleAt hit-tests the grips of the current selection.
func (e *Editor) selectedHandleAt(s *models.Scene, world geom.Point) (models.Element, Handle) {
	if e.selected.IsZero() {
		return nil, HandleNone
	}
	el := s.Find(e.selected)
	switch v := el.(type) {
	case *models.Frame:
		local := geom.Unrotate(world, v.Center(), v.Rotation)
		return v, e.rectHandleAt(local, v.Rect())
	case *models.TextBox:
		r := v.Rect()
		local := geom.Unrotate(world, r.Center(), v.Rotation)
		return v, e.rectHandleAt(local, r)
	case *models.Mullion:
		return v, e.lineHandleAt(world, v.Line())
	case *models.Dimension:
		return v, e.lineHandleAt(world, v.Line())
	}
	return nil, HandleNone
}

// HitTest returns the element under the world point in priority order:
// dimensions, mullions, frames, text boxes. Within each kind the most
// recently drawn element wins.
func (e *Editor) HitTest(s *models.Scene, world geom.Point) models.Element {
	zoom := e.zoom()

	for i := len(s.Dimensions) - 1; i >= 0; i-- {
		d := &s.Dimensions[i]
		p := world
		if d.Rotation != 0 {
			p = geom.Unrotate(world, d.RotationCenter(), d.Rotation)
		}
		if d.Line().Near(p, e.opts.SnapThreshold/zoom) {
			return d
		}
	}

	for i := len(s.Mullions) - 1; i >= 0; i-- {
		m := &s.Mullions[i]
		if m.Line().Near(world, m.WallThickness()/2) {
			return m
		}
	}

	for i := len(s.Frames) - 1; i >= 0; i-- {
		if s.Frames[i].Contains(world) {
			return &s.Frames[i]
		}
	}

	for i := len(s.TextBoxes) - 1; i >= 0; i-- {
		if s.TextBoxes[i].Contains(world) {
			return &s.TextBoxes[i]
		}
	}

	return nil
}

func refOf(el models.Element) models.ElementRef {
	return models.ElementRef{Kind: el.Kind(), ID: el.ElementID()}
}
