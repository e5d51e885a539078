package editor

import (
	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

const (
	minZoom        = 0.1
	maxZoom        = 10.0
	zoomButtonStep = 1.2
	zoomWheelStep  = 1.1
)

// ZoomIn zooms by one step keeping the viewport centre fixed.
func (e *Editor) ZoomIn() {
	e.zoomAbout(e.viewportCenter(), e.zoom()*zoomButtonStep)
}

// ZoomOut zooms out by one step keeping the viewport centre fixed.
func (e *Editor) ZoomOut() {
	e.zoomAbout(e.viewportCenter(), e.zoom()/zoomButtonStep)
}

// Wheel zooms about the cursor: negative deltaY zooms in.
func (e *Editor) Wheel(canvas geom.Point, deltaY float64) {
	z := e.zoom()
	if deltaY < 0 {
		z *= zoomWheelStep
	} else {
		z /= zoomWheelStep
	}
	e.zoomAbout(canvas, z)
}

// zoomAbout sets the zoom, clamped, so the world point under the canvas
// point anchor stays put.
func (e *Editor) zoomAbout(anchor geom.Point, zoom float64) {
	v := e.doc.View()
	old := e.zoom()
	zoom = geom.Clamp(zoom, minZoom, maxZoom)
	if zoom == old {
		return
	}
	v.PanOffset = geom.Point{
		X: anchor.X - (anchor.X-v.PanOffset.X)*zoom/old,
		Y: anchor.Y - (anchor.Y-v.PanOffset.Y)*zoom/old,
	}
	v.Zoom = zoom
	e.doc.SetView(v)
}

func (e *Editor) viewportCenter() geom.Point {
	return geom.Point{X: e.opts.Viewport.X / 2, Y: e.opts.Viewport.Y / 2}
}

// ViewportCenterWorld returns the world point at the middle of the canvas.
func (e *Editor) ViewportCenterWorld() geom.Point {
	return e.doc.View().ToWorld(e.viewportCenter())
}

// SetViewport records the canvas size in pixels.
func (e *Editor) SetViewport(size geom.Point) {
	if size.X > 0 && size.Y > 0 {
		e.opts.Viewport = size
	}
}

// Viewport returns the canvas size in pixels.
func (e *Editor) Viewport() geom.Point {
	return e.opts.Viewport
}

// ResetView restores the identity pan and zoom.
func (e *Editor) ResetView() {
	e.doc.SetView(models.DefaultCanvasView())
}
