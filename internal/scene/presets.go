package scene

import (
	"fmt"
	"math"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

// Shape is a preset that can be dropped onto the canvas.
type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeTriangle  Shape = "triangle"
	ShapePentagon  Shape = "pentagon"
	ShapeHexagon   Shape = "hexagon"
	ShapeOctagon   Shape = "octagon"
	ShapeCircle    Shape = "circle"
	ShapeArch      Shape = "arch"
)

// Defaults applied to newly created elements.
const (
	DefaultStrokeColor = "#343434"
	DefaultMaterial    = models.MaterialAluminum
	DefaultGlass       = models.GlassStandard
	DefaultInfill      = models.InfillGlass

	// PresetSize is the bounding size of a preset shape.
	PresetSize = 300

	// DimensionOffset is the gap between a frame edge and its dimension.
	DimensionOffset = 20

	circleSegments = 24
	archSegments   = 12
)

// NewFrame returns a frame with the default material, infill and colour.
func NewFrame(r geom.Rect) models.Frame {
	return models.Frame{
		ID:        NewID("frame"),
		Type:      models.KindFrame,
		X:         r.X,
		Y:         r.Y,
		Width:     r.Width,
		Height:    r.Height,
		Thickness: models.DefaultThickness,
		Color:     DefaultStrokeColor,
		Material:  DefaultMaterial,
		Infill:    DefaultInfill,
		Glass:     DefaultGlass,
		Opening:   models.OpeningFixed,
	}
}

// NewMullion returns a mullion with the default material and colour.
func NewMullion(l geom.Line, groupID string) models.Mullion {
	return models.Mullion{
		ID:        NewID("mullion"),
		Type:      models.KindMullion,
		X1:        l.X1,
		Y1:        l.Y1,
		X2:        l.X2,
		Y2:        l.Y2,
		Thickness: models.DefaultThickness,
		Color:     DefaultStrokeColor,
		Material:  DefaultMaterial,
		GroupID:   groupID,
	}
}

// LengthLabel formats a measured length for a dimension label.
func LengthLabel(length float64) string {
	return fmt.Sprintf("%dmm", int(math.Round(length)))
}

// FrameDimensions returns the width dimension above the frame and the
// height dimension left of it, both parented to the frame.
func FrameDimensions(f models.Frame) (models.Dimension, models.Dimension) {
	width := models.Dimension{
		ID:       NewID("dim"),
		Type:     models.KindDimension,
		X1:       f.X,
		Y1:       f.Y - DimensionOffset,
		X2:       f.X + f.Width,
		Y2:       f.Y - DimensionOffset,
		Text:     LengthLabel(f.Width),
		ParentID: f.ID,
	}
	height := models.Dimension{
		ID:       NewID("dim"),
		Type:     models.KindDimension,
		X1:       f.X - DimensionOffset,
		Y1:       f.Y,
		X2:       f.X - DimensionOffset,
		Y2:       f.Y + f.Height,
		Text:     LengthLabel(f.Height),
		ParentID: f.ID,
	}
	if f.Rotation != 0 {
		c := f.Center()
		for _, d := range []*models.Dimension{&width, &height} {
			d.Rotation = f.Rotation
			d.RotationCenterX, d.RotationCenterY = c.X, c.Y
		}
	}
	return width, height
}

// AddShape appends a preset centred on center and returns the references
// of the created elements. A rectangle becomes a frame with its two
// dimensions; every other preset is a closed chain of mullions sharing a
// fresh group id.
func AddShape(s *models.Scene, shape Shape, center geom.Point) ([]models.ElementRef, error) {
	if shape == ShapeRectangle {
		f := NewFrame(geom.Rect{
			X:      center.X - PresetSize/2,
			Y:      center.Y - PresetSize/2,
			Width:  PresetSize,
			Height: PresetSize,
		})
		w, h := FrameDimensions(f)
		s.Frames = append(s.Frames, f)
		s.Dimensions = append(s.Dimensions, w, h)
		return []models.ElementRef{
			{Kind: models.KindFrame, ID: f.ID},
			{Kind: models.KindDimension, ID: w.ID},
			{Kind: models.KindDimension, ID: h.ID},
		}, nil
	}

	segments, err := shapeSegments(shape, center)
	if err != nil {
		return nil, err
	}

	groupID := NewID("group")
	refs := make([]models.ElementRef, 0, len(segments))
	for _, seg := range segments {
		m := NewMullion(seg, groupID)
		s.Mullions = append(s.Mullions, m)
		refs = append(refs, models.ElementRef{Kind: models.KindMullion, ID: m.ID})
	}
	return refs, nil
}

func shapeSegments(shape Shape, c geom.Point) ([]geom.Line, error) {
	radius := PresetSize / 2.0

	switch shape {
	case ShapeTriangle:
		h := PresetSize * math.Sqrt(3) / 4
		return closedChain([]geom.Point{
			{X: c.X, Y: c.Y - h},
			{X: c.X - radius, Y: c.Y + h},
			{X: c.X + radius, Y: c.Y + h},
		}), nil
	case ShapePentagon:
		return closedChain(geom.RegularPolygon(c, radius, 5, -90)), nil
	case ShapeHexagon:
		return closedChain(geom.RegularPolygon(c, radius, 6, -90)), nil
	case ShapeOctagon:
		return closedChain(geom.RegularPolygon(c, radius, 8, -90)), nil
	case ShapeCircle:
		return closedChain(geom.RegularPolygon(c, radius, circleSegments, 0)), nil
	case ShapeArch:
		return archSegmentsAt(c), nil
	default:
		return nil, fmt.Errorf("unknown shape %q", shape)
	}
}

func closedChain(points []geom.Point) []geom.Line {
	lines := make([]geom.Line, 0, len(points))
	for i, p1 := range points {
		p2 := points[(i+1)%len(points)]
		lines = append(lines, geom.Line{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y})
	}
	return lines
}

// archSegmentsAt builds two verticals, a bottom rail and a half circle
// spanning the top, the whole outline centred on c.
func archSegmentsAt(c geom.Point) []geom.Line {
	width := float64(PresetSize)
	rectHeight := width / 1.5
	radius := width / 2
	total := rectHeight + radius
	left := c.X - radius
	top := c.Y - total/2
	springY := top + radius
	bottom := top + total

	lines := []geom.Line{
		{X1: left, Y1: springY, X2: left, Y2: bottom},
		{X1: left + width, Y1: springY, X2: left + width, Y2: bottom},
		{X1: left, Y1: bottom, X2: left + width, Y2: bottom},
	}

	center := geom.Point{X: left + radius, Y: springY}
	prev := geom.Point{X: left, Y: springY}
	for i := 1; i <= archSegments; i++ {
		angle := math.Pi + float64(i)*math.Pi/archSegments
		next := geom.Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
		lines = append(lines, geom.Line{X1: prev.X, Y1: prev.Y, X2: next.X, Y2: next.Y})
		prev = next
	}
	return lines
}
