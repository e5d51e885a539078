// Package render draws designs: an SVG elevation of parametric and custom
// designs, and a JSON scene graph for the 3D viewer.
package render

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

// ErrNoGeometry is returned when a parametric design has nothing to draw.
var ErrNoGeometry = errors.New("design has no geometry")

// Padding is the margin around the outer frame in the elevation view.
const Padding = 100

// Palette used where the browser view relies on theme variables.
const (
	colorBorder     = "#E2E8F0"
	colorForeground = "#0F172A"
	colorSecondary  = "#F1F5F9"
	colorMuted      = "#E5E7EB"
	colorSelected   = "#2563EB"
	colorDimension  = "#DC2626"
)

// num formats a coordinate for an SVG attribute.
func num(v float64) string { return geom.FormatFloat(v) }

// PanelState is the open state and slide offset of one parametric panel.
type PanelState struct {
	Open   models.OpenState
	Offset float64
}

// PanelStates zips the per-panel state arrays of a design. Missing entries
// are closed with zero offset.
func PanelStates(d *models.Design) []PanelState {
	n := 0
	if d.Geometry != nil {
		n = len(d.Geometry.Panels)
	}
	out := make([]PanelState, n)
	for i := range out {
		if i < len(d.PanelOpenStates) {
			out[i].Open = d.PanelOpenStates[i]
		}
		if i < len(d.PanelOffsets) {
			out[i].Offset = d.PanelOffsets[i]
		}
	}
	return out
}

// DesignSVG renders the elevation of a parametric design with its panels
// in their current positions and overall dimensions.
func DesignSVG(p models.DesignParameters, g *models.Geometry, states []PanelState) (string, error) {
	if g == nil {
		return "", ErrNoGeometry
	}

	outer := g.Frame.Outer
	frameColor := p.Color.Hex()
	viewW := outer.Width + Padding*2
	viewH := outer.Height + Padding*2

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" preserveAspectRatio="xMidYMid meet">`,
		num(viewW), num(viewH))
	b.WriteString("\n")
	b.WriteString(`  <defs><marker id="arrow" viewBox="0 0 10 10" refX="5" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse">`)
	fmt.Fprintf(&b, `<path d="M 0 0 L 10 5 L 0 10 z" fill="%s" opacity="0.7"/></marker></defs>`, colorForeground)
	b.WriteString("\n")
	fmt.Fprintf(&b, `  <g transform="translate(%d, %d)">`, Padding, Padding)
	b.WriteString("\n")

	fmt.Fprintf(&b, `    <rect %s fill="%s" stroke="%s" stroke-width="2"/>`, rectAttrs(outer), frameColor, colorBorder)
	b.WriteString("\n")

	label := html.EscapeString(strings.ToUpper(strings.Replace(string(p.Glass), "-", " ", 1)))
	for i, panel := range g.Panels {
		var st PanelState
		if i < len(states) {
			st = states[i]
		}
		m := PanelTransform2D(p, g, i, st.Open, st.Offset)

		fmt.Fprintf(&b, `    <g class="panel" data-index="%d"`, i)
		if !m.IsIdentity() {
			fmt.Fprintf(&b, ` transform="%s"`, m.SVG())
		}
		b.WriteString(">\n")
		fmt.Fprintf(&b, `      <rect %s fill="%s" stroke="%s" stroke-width="1"/>`, rectAttrs(panel.PanelRect), frameColor, colorForeground)
		b.WriteString("\n")
		fmt.Fprintf(&b, `      <rect %s fill="%s" opacity="0.5"/>`, rectAttrs(panel.GlassRect), colorSecondary)
		b.WriteString("\n")
		c := panel.GlassRect.Center()
		fmt.Fprintf(&b, `      <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" fill="%s" opacity="0.2" font-size="40" font-weight="bold">%s</text>`,
			num(c.X), num(c.Y), colorForeground, label)
		b.WriteString("\n    </g>\n")
	}

	for _, t := range g.Tracks {
		fmt.Fprintf(&b, `    <line %s stroke="%s" stroke-width="1" stroke-dasharray="4 2"/>`, lineAttrs(t), colorBorder)
		b.WriteString("\n")
	}

	writeOverallDimensions(&b, outer)

	b.WriteString("  </g>\n</svg>")
	return b.String(), nil
}

func writeOverallDimensions(b *strings.Builder, outer geom.Rect) {
	w, h := outer.Width, outer.Height
	stroke := fmt.Sprintf(`stroke="%s" stroke-width="1" opacity="0.7"`, colorForeground)

	b.WriteString(`    <g class="dimensions">` + "\n")
	fmt.Fprintf(b, `      <path d="M 0 -45 L %s -45" %s marker-start="url(#arrow)" marker-end="url(#arrow)"/>`+"\n", num(w), stroke)
	fmt.Fprintf(b, `      <line x1="0" y1="-50" x2="0" y2="0" %s/>`+"\n", stroke)
	fmt.Fprintf(b, `      <line x1="%s" y1="-50" x2="%s" y2="0" %s/>`+"\n", num(w), num(w), stroke)
	fmt.Fprintf(b, `      <text x="%s" y="-60" text-anchor="middle" fill="%s" font-size="40">%s mm</text>`+"\n",
		num(w/2), colorForeground, num(w))

	fmt.Fprintf(b, `      <path d="M %s 0 L %s %s" %s marker-start="url(#arrow)" marker-end="url(#arrow)"/>`+"\n",
		num(w+45), num(w+45), num(h), stroke)
	fmt.Fprintf(b, `      <line x1="%s" y1="0" x2="%s" y2="0" %s/>`+"\n", num(w), num(w+50), stroke)
	fmt.Fprintf(b, `      <line x1="%s" y1="%s" x2="%s" y2="%s" %s/>`+"\n", num(w), num(h), num(w+50), num(h), stroke)
	fmt.Fprintf(b, `      <text x="%s" y="%s" text-anchor="middle" fill="%s" font-size="40" transform="rotate(-90 %s,%s)">%s mm</text>`+"\n",
		num(w+60), num(h/2), colorForeground, num(w+60), num(h/2), num(h))
	b.WriteString("    </g>\n")
}

func rectAttrs(r geom.Rect) string {
	return fmt.Sprintf(`x="%s" y="%s" width="%s" height="%s"`, num(r.X), num(r.Y), num(r.Width), num(r.Height))
}

func lineAttrs(l geom.Line) string {
	return fmt.Sprintf(`x1="%s" y1="%s" x2="%s" y2="%s"`, num(l.X1), num(l.Y1), num(l.X2), num(l.Y2))
}
