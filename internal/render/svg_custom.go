package render

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

const (
	defaultStroke          = "#343434"
	selectionOutline       = 3
	handleSize             = 8
	rotationHandleDistance = 30
	louverPitch2D          = 20
	dimensionLabelOffset   = 12
	dimensionFontSize      = 14
)

var hexColor = regexp.MustCompile(`(?i)#([0-9a-f]{6}|[0-9a-f]{3})`)

// SceneOptions controls how a custom scene is drawn.
type SceneOptions struct {
	View     models.CanvasView
	Selected models.ElementRef
	Width    float64
	Height   float64
}

// gradientStops returns the first and last colour of a CSS linear-gradient
// value, or false when the colour is not a usable gradient.
func gradientStops(color string) (string, string, bool) {
	if !strings.HasPrefix(color, "linear-gradient") {
		return "", "", false
	}
	stops := hexColor.FindAllString(color, -1)
	if len(stops) < 2 {
		return "", "", false
	}
	return stops[0], stops[len(stops)-1], true
}

// paint resolves an element colour to an SVG paint value.
func paint(id, color string) string {
	if _, _, ok := gradientStops(color); ok {
		return "url(#grad-" + id + ")"
	}
	if color == "" || strings.HasPrefix(color, "linear-gradient") {
		return defaultStroke
	}
	return color
}

// SceneSVG renders a custom canvas scene under the given pan and zoom,
// outlining the selected element and drawing its grips.
func SceneSVG(s models.Scene, opts SceneOptions) string {
	c := &sceneWriter{zoom: opts.View.Scale(), selected: opts.Selected}

	c.printf(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	if opts.Width > 0 && opts.Height > 0 {
		c.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
			num(opts.Width), num(opts.Height), num(opts.Width), num(opts.Height))
	} else {
		c.printf(`<svg xmlns="http://www.w3.org/2000/svg">` + "\n")
	}

	c.defs(s)
	c.printf(`  <g transform="translate(%s %s) scale(%s)">`+"\n",
		num(opts.View.PanOffset.X), num(opts.View.PanOffset.Y), num(c.zoom))
	for i := range s.Frames {
		c.frame(&s.Frames[i])
	}
	for i := range s.Mullions {
		c.mullion(&s.Mullions[i])
	}
	for i := range s.Dimensions {
		c.dimension(&s.Dimensions[i])
	}
	for i := range s.TextBoxes {
		c.textBox(&s.TextBoxes[i])
	}
	c.printf("  </g>\n</svg>")
	return c.b.String()
}

type sceneWriter struct {
	b        strings.Builder
	zoom     float64
	selected models.ElementRef
}

func (c *sceneWriter) printf(format string, args ...any) {
	fmt.Fprintf(&c.b, format, args...)
}

// px converts a screen pixel size to world units.
func (c *sceneWriter) px(v float64) string {
	return num(v / c.zoom)
}

func (c *sceneWriter) isSelected(kind models.ElementKind, id string) bool {
	return c.selected.Kind == kind && c.selected.ID == id
}

func (c *sceneWriter) defs(s models.Scene) {
	c.printf("  <defs>\n")
	c.printf(`    <marker id="dim-arrow" viewBox="0 0 10 10" refX="1" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse">`)
	c.printf(`<path d="M 0 0 L 10 5 L 0 10" fill="none" stroke="%s" stroke-width="%s"/></marker>`+"\n", colorDimension, c.px(1.5))

	w, h := c.px(80), c.px(40)
	c.printf(`    <pattern id="brick-pattern" width="%s" height="%s" patternUnits="userSpaceOnUse">`, w, h)
	c.printf(`<rect width="%s" height="%s" fill="%s"/>`, w, h, colorMuted)
	c.printf(`<path d="M 0 %[1]s H %[3]s M 0 %[2]s H %[3]s M %[4]s 0 V %[1]s M 0 %[1]s V %[5]s M %[4]s %[5]s V %[2]s M 0 %[2]s V %[6]s" stroke="%[7]s" stroke-width="%[8]s"/>`,
		c.px(10), c.px(30), c.px(80), c.px(40), c.px(20), c.px(40), colorBorder, c.px(1))
	c.printf("</pattern>\n")

	for _, fr := range s.Frames {
		if from, to, ok := gradientStops(fr.Color); ok {
			c.printf(`    <linearGradient id="grad-%s" x1="0%%" y1="0%%" x2="100%%" y2="0%%">`, fr.ID)
			c.stops(from, to)
		}
	}
	for _, m := range s.Mullions {
		if from, to, ok := gradientStops(m.Color); ok {
			c.printf(`    <linearGradient id="grad-%s" gradientUnits="userSpaceOnUse" %s>`, m.ID, lineAttrs(m.Line()))
			c.stops(from, to)
		}
	}
	c.printf("  </defs>\n")
}

func (c *sceneWriter) stops(from, to string) {
	c.printf(`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></linearGradient>`+"\n", from, to)
}

func (c *sceneWriter) frame(fr *models.Frame) {
	center := fr.Center()
	c.printf(`    <g id="%s" transform="rotate(%s %s %s)">`+"\n", fr.ID, num(fr.Rotation), num(center.X), num(center.Y))
	c.printf(`      <rect %s fill="%s" stroke-linecap="round"/>`+"\n", rectAttrs(fr.Rect()), paint(fr.ID, fr.Color))

	glass := fr.GlassRect()
	if glass.Width > 0 && glass.Height > 0 {
		c.infill(fr, glass)
	}

	if c.isSelected(models.KindFrame, fr.ID) {
		c.selection(fr.Rect())
	}
	c.printf("    </g>\n")
}

func (c *sceneWriter) infill(fr *models.Frame, glass geom.Rect) {
	switch fr.EffectiveInfill() {
	case models.InfillGlass:
		fill := fr.GlassColor
		if fill == "" {
			fill = colorSecondary
		}
		c.printf(`      <rect %s fill="%s" fill-opacity="0.5" stroke="%s" stroke-width="%s" stroke-opacity="0.2"/>`+"\n",
			rectAttrs(glass), fill, colorForeground, c.px(1))
		center := glass.Center()
		label := html.EscapeString(strings.ToUpper(strings.Replace(string(fr.Glass), "-", " ", 1)))
		c.printf(`      <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" fill="%s" opacity="0.2" font-size="%s" font-weight="bold">%s</text>`+"\n",
			num(center.X), num(center.Y), colorForeground, c.px(40), label)
	case models.InfillPanel:
		c.printf(`      <rect %s fill="%s" stroke="%s" stroke-width="%s"/>`+"\n", rectAttrs(glass), colorMuted, colorBorder, c.px(1.5))
	case models.InfillLouver:
		c.printf(`      <clipPath id="clip-%s"><rect %s/></clipPath>`+"\n", fr.ID, rectAttrs(glass))
		c.printf(`      <g clip-path="url(#clip-%s)">`+"\n", fr.ID)
		c.printf(`        <rect %s fill="%s"/>`+"\n", rectAttrs(glass), colorMuted)
		blades := int(math.Floor(glass.Height / louverPitch2D))
		for i := 0; i < blades; i++ {
			y := glass.Y + (float64(i)+0.5)*louverPitch2D
			l := geom.Line{X1: glass.X, Y1: y, X2: glass.X + glass.Width, Y2: y}
			c.printf(`        <line %s stroke="%s" stroke-width="%s"/>`+"\n", lineAttrs(l), colorBorder, c.px(2))
		}
		c.printf("      </g>\n")
	case models.InfillBrickwork:
		c.printf(`      <rect %s fill="url(#brick-pattern)"/>`+"\n", rectAttrs(glass))
	}
}

// selection draws the outline, resize grips and rotate grip of r.
func (c *sceneWriter) selection(r geom.Rect) {
	c.printf(`      <rect %s fill="none" stroke="%s" stroke-width="%s"/>`+"\n", rectAttrs(r), colorSelected, c.px(selectionOutline))

	size := handleSize / c.zoom
	for _, p := range []geom.Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X, Y: r.Y + r.Height},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X + r.Width/2, Y: r.Y},
		{X: r.X + r.Width/2, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height/2},
		{X: r.X + r.Width, Y: r.Y + r.Height/2},
	} {
		h := geom.Rect{X: p.X - size/2, Y: p.Y - size/2, Width: size, Height: size}
		c.printf(`      <rect class="handle" %s fill="%s" stroke="white" stroke-width="%s"/>`+"\n", rectAttrs(h), colorSelected, c.px(1.5))
	}

	bottom := geom.Point{X: r.X + r.Width/2, Y: r.Y + r.Height}
	rot := geom.Point{X: bottom.X, Y: bottom.Y + rotationHandleDistance/c.zoom}
	c.printf(`      <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		num(bottom.X), num(bottom.Y), num(rot.X), num(rot.Y), colorSelected, c.px(1.5))
	c.printf(`      <circle class="handle" cx="%s" cy="%s" r="%s" fill="white" stroke="%s" stroke-width="%s"/>`+"\n",
		num(rot.X), num(rot.Y), num(size), colorSelected, c.px(1.5))
}

func (c *sceneWriter) mullion(m *models.Mullion) {
	line := lineAttrs(m.Line())
	c.printf(`    <g id="%s">`+"\n", m.ID)
	c.printf(`      <line %s stroke="%s" stroke-width="%s" stroke-linecap="round"/>`+"\n", line, paint(m.ID, m.Color), num(m.WallThickness()))
	if c.isSelected(models.KindMullion, m.ID) {
		c.printf(`      <line %s stroke="%s" stroke-width="%s" stroke-linecap="round"/>`+"\n", line, colorSelected, c.px(selectionOutline))
	}
	c.printf("    </g>\n")
}

func (c *sceneWriter) dimension(d *models.Dimension) {
	selected := c.isSelected(models.KindDimension, d.ID)
	color, width := colorDimension, 1.5
	if selected {
		color, width = colorSelected, selectionOutline
	}

	mid := d.Line().Midpoint()
	angle := geom.Degrees(math.Atan2(d.Y2-d.Y1, d.X2-d.X1))
	flipped := angle > 90 || angle < -90
	perp := angle + 90
	textAngle := angle
	if flipped {
		perp = angle - 90
		textAngle = angle + 180
	}
	offset := dimensionLabelOffset / c.zoom
	tx := mid.X + math.Cos(geom.Radians(perp))*offset
	ty := mid.Y + math.Sin(geom.Radians(perp))*offset

	c.printf(`    <g id="%s" transform="rotate(%s, %s, %s)">`+"\n", d.ID, num(d.Rotation), num(d.RotationCenterX), num(d.RotationCenterY))
	c.printf(`      <line %s stroke="%s" stroke-width="%s" marker-start="url(#dim-arrow)" marker-end="url(#dim-arrow)"/>`+"\n",
		lineAttrs(d.Line()), color, c.px(width))
	c.printf(`      <text x="%s" y="%s" fill="%s" font-size="%s" text-anchor="middle" dominant-baseline="middle" transform="rotate(%s %s %s)">%s</text>`+"\n",
		num(tx), num(ty), color, c.px(dimensionFontSize), num(textAngle), num(tx), num(ty), html.EscapeString(d.Text))
	c.printf("    </g>\n")
}

func (c *sceneWriter) textBox(t *models.TextBox) {
	r := t.Rect()
	center := r.Center()
	c.printf(`    <g id="%s" transform="rotate(%s %s %s)">`+"\n", t.ID, num(t.Rotation), num(center.X), num(center.Y))
	c.printf(`      <text x="%s" y="%s" fill="%s" font-size="%s" font-family="Inter, sans-serif" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		num(center.X), num(center.Y), t.Color, c.px(t.FontSize), html.EscapeString(t.Text))
	if c.isSelected(models.KindTextBox, t.ID) {
		c.selection(r)
	}
	c.printf("    </g>\n")
}
