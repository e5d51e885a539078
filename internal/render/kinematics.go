package render

import (
	"math"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

const (
	// sweep2D is the apparent opening angle of a fully open panel in the
	// flat view.
	sweep2D = 45
	// perspective is how much the far side of an opening panel shrinks.
	perspective = 0.1
)

// HingeOnLeft reports whether casement panel index is hinged on its left
// side. Pairs alternate starting with a left hinge.
func HingeOnLeft(opening models.CasementOpening, index int) bool {
	switch opening {
	case models.CasementLeft:
		return true
	case models.CasementRight:
		return false
	default:
		return index%2 == 0
	}
}

// OperableIn2D reports whether panels of the system open by clicking in
// the flat view. Sliding panels are dragged instead.
func OperableIn2D(system models.SystemType) bool {
	switch system {
	case models.SystemAwning, models.SystemTiltTurn, models.SystemCasement, models.SystemFoldable:
		return true
	}
	return false
}

// PanelTransform2D returns the flat-view transform of panel index. Sliding
// panels translate by their offset; operable panels fake an opening by
// scaling about their hinge.
func PanelTransform2D(p models.DesignParameters, g *models.Geometry, index int, state models.OpenState, offset float64) geom.Matrix {
	m := geom.Identity()
	if g == nil || index < 0 || index >= len(g.Panels) {
		return m
	}
	if p.System.IsSliding() {
		m = geom.Translate(offset, 0)
	}
	if state == models.Closed {
		return m
	}

	rect := g.Panels[index].PanelRect
	angle := geom.Radians(sweep2D * state.Ratio())
	along := math.Cos(angle)
	across := 1 - math.Sin(angle)*perspective

	switch p.System {
	case models.SystemAwning, models.SystemTiltTurn:
		hinge := geom.Point{X: rect.X + rect.Width/2, Y: rect.Y}
		m = m.Multiply(geom.ScaleAbout(hinge, across, along))
	case models.SystemCasement:
		hinge := geom.Point{X: rect.X, Y: rect.Y + rect.Height/2}
		if !HingeOnLeft(p.CasementOpening, index) {
			hinge.X = rect.X + rect.Width
		}
		m = m.Multiply(geom.ScaleAbout(hinge, along, across))
	case models.SystemFoldable:
		first := g.Panels[index/2*2].PanelRect
		hinge := geom.Point{X: first.X + first.Width, Y: first.Y + first.Height/2}
		m = m.Multiply(geom.ScaleAbout(hinge, along, across))
	}
	return m
}

// ClampSlideOffset limits a sliding panel's offset so the panel stays
// inside the outer frame.
func ClampSlideOffset(g *models.Geometry, index int, offset float64) float64 {
	if g == nil || index < 0 || index >= len(g.Panels) {
		return 0
	}
	rect := g.Panels[index].PanelRect
	return geom.Clamp(offset, -rect.X, g.Frame.Outer.Width-rect.X-rect.Width)
}
