package models

import (
	"math"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
)

// ElementKind is the discriminant of a canvas element.
type ElementKind string

const (
	KindFrame     ElementKind = "frame"
	KindMullion   ElementKind = "mullion"
	KindDimension ElementKind = "dimension"
	KindTextBox   ElementKind = "textbox"
)

// Element is implemented by the four canvas element variants. Callers
// dispatch with a type switch over *Frame, *Mullion, *Dimension and *TextBox.
type Element interface {
	ElementID() string
	Kind() ElementKind
	element()
}

// ElementRef identifies an element without holding it.
type ElementRef struct {
	Kind ElementKind `json:"type"`
	ID   string      `json:"id"`
}

// IsZero reports whether the reference is empty.
func (r ElementRef) IsZero() bool {
	return r.ID == ""
}

// OpeningType is how a custom frame opens.
type OpeningType string

const (
	OpeningCasementLeft  OpeningType = "casement-left"
	OpeningCasementRight OpeningType = "casement-right"
	OpeningAwning        OpeningType = "awning"
	OpeningTilt          OpeningType = "tilt"
	OpeningFixed         OpeningType = "fixed"
	OpeningDoorLeft      OpeningType = "door-left"
	OpeningDoorRight     OpeningType = "door-right"
)

// IsOperable reports whether a frame with this opening can be opened.
func (o OpeningType) IsOperable() bool {
	return o != "" && o != OpeningFixed
}

// InfillType is what fills the clear opening of a custom frame.
type InfillType string

const (
	InfillGlass     InfillType = "glass"
	InfillLouver    InfillType = "louver"
	InfillPanel     InfillType = "panel"
	InfillBrickwork InfillType = "brickwork"
)

// DefaultThickness is the frame and mullion wall thickness when unset.
const DefaultThickness = 40

// Frame is a rectangular custom frame. Rotation is in degrees about the
// frame's own centre.
type Frame struct {
	ID         string       `json:"id"`
	Type       ElementKind  `json:"type"`
	X          float64      `json:"x"`
	Y          float64      `json:"y"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Thickness  float64      `json:"thickness,omitempty"`
	Color      string       `json:"color,omitempty"`
	Material   MaterialType `json:"material,omitempty"`
	Infill     InfillType   `json:"infill,omitempty"`
	Glass      GlassType    `json:"glass,omitempty"`
	GlassColor string       `json:"glassColor,omitempty"`
	Rotation   float64      `json:"rotation,omitempty"`
	Opening    OpeningType  `json:"opening,omitempty"`
	OpenState  OpenState    `json:"openState,omitempty"`
	ParentID   string       `json:"parentId,omitempty"`
}

func (f *Frame) ElementID() string { return f.ID }
func (f *Frame) Kind() ElementKind { return KindFrame }
func (*Frame) element()            {}

// Rect returns the unrotated bounds of the frame.
func (f *Frame) Rect() geom.Rect {
	return geom.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// SetRect moves and resizes the frame.
func (f *Frame) SetRect(r geom.Rect) {
	f.X, f.Y, f.Width, f.Height = r.X, r.Y, r.Width, r.Height
}

// Center returns the rotation pivot of the frame.
func (f *Frame) Center() geom.Point {
	return f.Rect().Center()
}

// WallThickness returns the thickness or DefaultThickness when unset.
func (f *Frame) WallThickness() float64 {
	if f.Thickness > 0 {
		return f.Thickness
	}
	return DefaultThickness
}

// GlassRect returns the clear opening inside the frame walls.
func (f *Frame) GlassRect() geom.Rect {
	return f.Rect().Inset(f.WallThickness())
}

// EffectiveInfill defaults an unset infill to glass.
func (f *Frame) EffectiveInfill() InfillType {
	if f.Infill == "" {
		return InfillGlass
	}
	return f.Infill
}

// EffectiveMaterial defaults an unset material to aluminum.
func (f *Frame) EffectiveMaterial() MaterialType {
	if f.Material == "" {
		return MaterialAluminum
	}
	return f.Material
}

// EffectiveOpening defaults an unset opening to fixed.
func (f *Frame) EffectiveOpening() OpeningType {
	if f.Opening == "" {
		return OpeningFixed
	}
	return f.Opening
}

// Contains reports whether p lies inside the rotated frame.
func (f *Frame) Contains(p geom.Point) bool {
	return geom.InRotatedRect(p, f.Rect(), f.Rotation)
}

// Mullion is a straight profile segment.
type Mullion struct {
	ID        string       `json:"id"`
	Type      ElementKind  `json:"type"`
	X1        float64      `json:"x1"`
	Y1        float64      `json:"y1"`
	X2        float64      `json:"x2"`
	Y2        float64      `json:"y2"`
	Thickness float64      `json:"thickness,omitempty"`
	Color     string       `json:"color,omitempty"`
	Material  MaterialType `json:"material,omitempty"`
	GroupID   string       `json:"groupId,omitempty"`
	ParentID  string       `json:"parentId,omitempty"`
}

func (m *Mullion) ElementID() string { return m.ID }
func (m *Mullion) Kind() ElementKind { return KindMullion }
func (*Mullion) element()            {}

// Line returns the mullion centreline.
func (m *Mullion) Line() geom.Line {
	return geom.Line{X1: m.X1, Y1: m.Y1, X2: m.X2, Y2: m.Y2}
}

// SetLine replaces the mullion centreline.
func (m *Mullion) SetLine(l geom.Line) {
	m.X1, m.Y1, m.X2, m.Y2 = l.X1, l.Y1, l.X2, l.Y2
}

// WallThickness returns the thickness or DefaultThickness when unset.
func (m *Mullion) WallThickness() float64 {
	if m.Thickness > 0 {
		return m.Thickness
	}
	return DefaultThickness
}

// EffectiveMaterial defaults an unset material to aluminum.
func (m *Mullion) EffectiveMaterial() MaterialType {
	if m.Material == "" {
		return MaterialAluminum
	}
	return m.Material
}

// Dimension is an annotated measurement line. Dimensions generated for a
// frame carry its id in ParentID and follow its rotation.
type Dimension struct {
	ID              string      `json:"id"`
	Type            ElementKind `json:"type"`
	X1              float64     `json:"x1"`
	Y1              float64     `json:"y1"`
	X2              float64     `json:"x2"`
	Y2              float64     `json:"y2"`
	Text            string      `json:"text"`
	ParentID        string      `json:"parentId,omitempty"`
	Rotation        float64     `json:"rotation,omitempty"`
	RotationCenterX float64     `json:"rotationCenterX,omitempty"`
	RotationCenterY float64     `json:"rotationCenterY,omitempty"`
}

func (d *Dimension) ElementID() string { return d.ID }
func (d *Dimension) Kind() ElementKind { return KindDimension }
func (*Dimension) element()            {}

// Line returns the measured segment.
func (d *Dimension) Line() geom.Line {
	return geom.Line{X1: d.X1, Y1: d.Y1, X2: d.X2, Y2: d.Y2}
}

// SetLine replaces the measured segment.
func (d *Dimension) SetLine(l geom.Line) {
	d.X1, d.Y1, d.X2, d.Y2 = l.X1, l.Y1, l.X2, l.Y2
}

// RotationCenter returns the pivot the dimension is rotated about.
func (d *Dimension) RotationCenter() geom.Point {
	return geom.Point{X: d.RotationCenterX, Y: d.RotationCenterY}
}

// TextBox is a free text annotation.
type TextBox struct {
	ID       string      `json:"id"`
	Type     ElementKind `json:"type"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Text     string      `json:"text"`
	FontSize float64     `json:"fontSize"`
	Color    string      `json:"color"`
	Rotation float64     `json:"rotation,omitempty"`
}

func (t *TextBox) ElementID() string { return t.ID }
func (t *TextBox) Kind() ElementKind { return KindTextBox }
func (*TextBox) element()            {}

// Rect returns the unrotated bounds of the text box.
func (t *TextBox) Rect() geom.Rect {
	return geom.Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// SetRect moves and resizes the text box.
func (t *TextBox) SetRect(r geom.Rect) {
	t.X, t.Y, t.Width, t.Height = r.X, r.Y, r.Width, r.Height
}

// Contains reports whether p lies inside the rotated text box.
func (t *TextBox) Contains(p geom.Point) bool {
	return geom.InRotatedRect(p, t.Rect(), t.Rotation)
}

// Scene is the custom canvas content of a design.
type Scene struct {
	Frames     []Frame     `json:"frames,omitempty"`
	Mullions   []Mullion   `json:"mullions,omitempty"`
	Dimensions []Dimension `json:"dimensions,omitempty"`
	TextBoxes  []TextBox   `json:"textBoxes,omitempty"`
}

// IsEmpty reports whether the scene holds no elements.
func (s *Scene) IsEmpty() bool {
	return len(s.Frames) == 0 && len(s.Mullions) == 0 && len(s.Dimensions) == 0 && len(s.TextBoxes) == 0
}

// Find returns a pointer to the referenced element inside s, or nil.
func (s *Scene) Find(ref ElementRef) Element {
	switch ref.Kind {
	case KindFrame:
		for i := range s.Frames {
			if s.Frames[i].ID == ref.ID {
				return &s.Frames[i]
			}
		}
	case KindMullion:
		for i := range s.Mullions {
			if s.Mullions[i].ID == ref.ID {
				return &s.Mullions[i]
			}
		}
	case KindDimension:
		for i := range s.Dimensions {
			if s.Dimensions[i].ID == ref.ID {
				return &s.Dimensions[i]
			}
		}
	case KindTextBox:
		for i := range s.TextBoxes {
			if s.TextBoxes[i].ID == ref.ID {
				return &s.TextBoxes[i]
			}
		}
	}
	return nil
}

// Frame returns the frame with the given id, or nil.
func (s *Scene) Frame(id string) *Frame {
	if e, ok := s.Find(ElementRef{Kind: KindFrame, ID: id}).(*Frame); ok {
		return e
	}
	return nil
}

// Mullion returns the mullion with the given id, or nil.
func (s *Scene) Mullion(id string) *Mullion {
	if e, ok := s.Find(ElementRef{Kind: KindMullion, ID: id}).(*Mullion); ok {
		return e
	}
	return nil
}

// CanvasView is the pan and zoom of the custom canvas. World coordinates
// map to canvas pixels as canvas = world*Zoom + PanOffset.
type CanvasView struct {
	PanOffset geom.Point `json:"panOffset"`
	Zoom      float64    `json:"zoom"`
}

// DefaultCanvasView returns the identity view.
func DefaultCanvasView() CanvasView {
	return CanvasView{Zoom: 1}
}

// Scale returns the zoom factor, treating a non-positive or non-finite
// zoom as 1.
func (v CanvasView) Scale() float64 {
	if v.Zoom > 0 && !math.IsInf(v.Zoom, 1) {
		return v.Zoom
	}
	return 1
}

// ToWorld converts a canvas point to world coordinates.
func (v CanvasView) ToWorld(p geom.Point) geom.Point {
	zoom := v.Scale()
	return geom.Point{X: (p.X - v.PanOffset.X) / zoom, Y: (p.Y - v.PanOffset.Y) / zoom}
}

// ToCanvas converts a world point to canvas coordinates.
func (v CanvasView) ToCanvas(p geom.Point) geom.Point {
	zoom := v.Scale()
	return geom.Point{X: p.X*zoom + v.PanOffset.X, Y: p.Y*zoom + v.PanOffset.Y}
}
