// Package models contains the data models for the application.
package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// SystemType identifies the window/door system family.
type SystemType string

const (
	System2Track   SystemType = "2-track"
	System3Track   SystemType = "3-track"
	System4Track   SystemType = "4-track"
	System5Track   SystemType = "5-track"
	SystemCasement SystemType = "casement"
	SystemAwning   SystemType = "awning"
	SystemTiltTurn SystemType = "tilt-and-turn"
	SystemFixed    SystemType = "fixed"
	SystemFoldable SystemType = "foldable"
	SystemCustom   SystemType = "custom"
)

// SystemTypes lists every recognised system in display order.
var SystemTypes = []SystemType{
	System2Track, System3Track, System4Track, System5Track,
	SystemCasement, SystemAwning, SystemTiltTurn, SystemFixed, SystemFoldable, SystemCustom,
}

// IsSliding reports whether s is a multi-track sliding system.
func (s SystemType) IsSliding() bool {
	return strings.HasSuffix(string(s), "-track")
}

// IsHinged reports whether panels of s swing on hinges.
func (s SystemType) IsHinged() bool {
	return s == SystemCasement || s == SystemAwning || s == SystemTiltTurn
}

// TrackCount parses the leading digit of a sliding system label.
// Non-sliding systems report zero.
func (s SystemType) TrackCount() int {
	if !s.IsSliding() {
		return 0
	}
	n := int(s[0] - '0')
	if n < 1 || n > 9 {
		return 0
	}
	return n
}

// PanelRange returns the inclusive panel count bounds for s.
func (s SystemType) PanelRange() (int, int) {
	switch {
	case s == SystemFixed:
		return 1, 1
	case s.IsHinged():
		return 1, 4
	case s.IsSliding() || s == SystemFoldable:
		return 2, 8
	default:
		return 1, math.MaxInt32
	}
}

// Valid reports whether s is a recognised system.
func (s SystemType) Valid() bool {
	for _, v := range SystemTypes {
		if v == s {
			return true
		}
	}
	return false
}

// ProfileType is the profile weight.
type ProfileType string

const (
	ProfileSlim      ProfileType = "slim"
	ProfileStandard  ProfileType = "standard"
	ProfileHeavyDuty ProfileType = "heavy-duty"
)

// Valid reports whether p is a recognised profile.
func (p ProfileType) Valid() bool {
	return p == ProfileSlim || p == ProfileStandard || p == ProfileHeavyDuty
}

// MaterialType is the frame material.
type MaterialType string

const (
	MaterialUPVC     MaterialType = "upvc"
	MaterialAluminum MaterialType = "aluminum"
	MaterialWood     MaterialType = "wood"
)

// Valid reports whether m is a recognised material.
func (m MaterialType) Valid() bool {
	return m == MaterialUPVC || m == MaterialAluminum || m == MaterialWood
}

// DisplayName capitalises the material for BOM descriptions.
func (m MaterialType) DisplayName() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// FrameColor is a named parametric frame finish.
type FrameColor string

const (
	ColorWhite      FrameColor = "white"
	ColorCharcoal   FrameColor = "charcoal"
	ColorBronze     FrameColor = "bronze"
	ColorSilver     FrameColor = "silver"
	ColorWoodEffect FrameColor = "wood-effect"
)

var frameColorHex = map[FrameColor]string{
	ColorWhite:      "#EBEBEB",
	ColorCharcoal:   "#343434",
	ColorBronze:     "#5C4033",
	ColorSilver:     "#C0C0C0",
	ColorWoodEffect: "#8B4513",
}

// Hex returns the render colour for c, charcoal for unknown values.
func (c FrameColor) Hex() string {
	if hex, ok := frameColorHex[c]; ok {
		return hex
	}
	return frameColorHex[ColorCharcoal]
}

// Valid reports whether c is a recognised colour.
func (c FrameColor) Valid() bool {
	_, ok := frameColorHex[c]
	return ok
}

// GlassType is the glazing kind.
type GlassType string

const (
	GlassStandard     GlassType = "standard"
	GlassToughened    GlassType = "toughened"
	GlassLaminated    GlassType = "laminated"
	GlassMesh         GlassType = "mesh"
	GlassDoubleGlazed GlassType = "double-glazed"
)

// Valid reports whether g is a recognised glass type.
func (g GlassType) Valid() bool {
	switch g {
	case GlassStandard, GlassToughened, GlassLaminated, GlassMesh, GlassDoubleGlazed:
		return true
	}
	return false
}

// HardwareStyle is the hardware finish family.
type HardwareStyle string

const (
	HardwareModern     HardwareStyle = "modern"
	HardwareClassic    HardwareStyle = "classic"
	HardwareMinimalist HardwareStyle = "minimalist"
)

// Valid reports whether h is a recognised hardware style.
func (h HardwareStyle) Valid() bool {
	return h == HardwareModern || h == HardwareClassic || h == HardwareMinimalist
}

// CasementOpening is the preferred hinge side of casement panels.
type CasementOpening string

const (
	CasementLeft  CasementOpening = "left"
	CasementRight CasementOpening = "right"
	CasementPair  CasementOpening = "pair"
)

// DesignParameters is the parametric input of the design engine.
type DesignParameters struct {
	System          SystemType      `json:"system"`
	Profile         ProfileType     `json:"profile"`
	Material        MaterialType    `json:"material"`
	Color           FrameColor      `json:"color"`
	Glass           GlassType       `json:"glass"`
	Hardware        HardwareStyle   `json:"hardware"`
	Width           float64         `json:"width"`
	Height          float64         `json:"height"`
	Panels          int             `json:"panels"`
	CasementOpening CasementOpening `json:"casementOpening,omitempty"`
}

// DefaultParameters returns the parameters of a freshly created design.
func DefaultParameters() DesignParameters {
	return DesignParameters{
		System:          System3Track,
		Profile:         ProfileStandard,
		Material:        MaterialAluminum,
		Color:           ColorCharcoal,
		Glass:           GlassStandard,
		Hardware:        HardwareModern,
		Width:           3000,
		Height:          2400,
		Panels:          3,
		CasementOpening: CasementPair,
	}
}

// ClampedPanels returns the panel count limited to the system's range.
func (p DesignParameters) ClampedPanels() int {
	lo, hi := p.System.PanelRange()
	if p.Panels < lo {
		return lo
	}
	if p.Panels > hi {
		return hi
	}
	return p.Panels
}

// Validate checks that every enumerated field holds a known value.
// Numeric ranges are not validated here; the engine clamps or warns.
func (p DesignParameters) Validate() error {
	switch {
	case !p.System.Valid():
		return fmt.Errorf("%w: unknown system %q", ErrInvalidParameters, p.System)
	case !p.Profile.Valid():
		return fmt.Errorf("%w: unknown profile %q", ErrInvalidParameters, p.Profile)
	case !p.Material.Valid():
		return fmt.Errorf("%w: unknown material %q", ErrInvalidParameters, p.Material)
	case !p.Color.Valid():
		return fmt.Errorf("%w: unknown color %q", ErrInvalidParameters, p.Color)
	case !p.Glass.Valid():
		return fmt.Errorf("%w: unknown glass %q", ErrInvalidParameters, p.Glass)
	case !p.Hardware.Valid():
		return fmt.Errorf("%w: unknown hardware %q", ErrInvalidParameters, p.Hardware)
	}
	switch p.CasementOpening {
	case "", CasementLeft, CasementRight, CasementPair:
	default:
		return fmt.Errorf("%w: unknown casement opening %q", ErrInvalidParameters, p.CasementOpening)
	}
	if math.IsNaN(p.Width) || math.IsNaN(p.Height) || math.IsInf(p.Width, 0) || math.IsInf(p.Height, 0) {
		return fmt.Errorf("%w: dimensions must be finite", ErrInvalidParameters)
	}
	return nil
}

// ParametersPatch is a partial update of DesignParameters. Nil fields are
// left untouched.
type ParametersPatch struct {
	System          *SystemType      `json:"system,omitempty"`
	Profile         *ProfileType     `json:"profile,omitempty"`
	Material        *MaterialType    `json:"material,omitempty"`
	Color           *FrameColor      `json:"color,omitempty"`
	Glass           *GlassType       `json:"glass,omitempty"`
	Hardware        *HardwareStyle   `json:"hardware,omitempty"`
	Width           *float64         `json:"width,omitempty"`
	Height          *float64         `json:"height,omitempty"`
	Panels          *int             `json:"panels,omitempty"`
	CasementOpening *CasementOpening `json:"casementOpening,omitempty"`
}

// Apply returns p with every non-nil patch field applied.
func (patch ParametersPatch) Apply(p DesignParameters) DesignParameters {
	if patch.System != nil {
		p.System = *patch.System
	}
	if patch.Profile != nil {
		p.Profile = *patch.Profile
	}
	if patch.Material != nil {
		p.Material = *patch.Material
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.Glass != nil {
		p.Glass = *patch.Glass
	}
	if patch.Hardware != nil {
		p.Hardware = *patch.Hardware
	}
	if patch.Width != nil {
		p.Width = *patch.Width
	}
	if patch.Height != nil {
		p.Height = *patch.Height
	}
	if patch.Panels != nil {
		p.Panels = *patch.Panels
	}
	if patch.CasementOpening != nil {
		p.CasementOpening = *patch.CasementOpening
	}
	return p
}

// DefaultRate is the per-square-foot rate of a new design.
const DefaultRate = 360

// Design is the aggregate root: parametric inputs, derived outputs and the
// custom canvas scene. Only one of the two representations is populated at
// a time, selected by Parameters.System.
type Design struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Parameters      DesignParameters `json:"parameters"`
	Geometry        *Geometry        `json:"geometry"`
	Warnings        []string         `json:"warnings"`
	Outputs         *ProjectOutput   `json:"outputs"`
	PanelOpenStates []OpenState      `json:"panelOpenStates,omitempty"`
	PanelOffsets    []float64        `json:"panelOffsets,omitempty"`
	Rate            float64          `json:"rate,omitempty"`
	Scene
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsCustom reports whether the design is driven by the canvas scene.
func (d *Design) IsCustom() bool {
	return d.Parameters.System == SystemCustom
}

// EffectiveRate returns the design's rate or DefaultRate when unset.
func (d *Design) EffectiveRate() float64 {
	if d.Rate > 0 {
		return d.Rate
	}
	return DefaultRate
}

// OpenState is the open position of an operable panel.
type OpenState int

const (
	Closed OpenState = iota
	PartiallyOpen
	FullyOpen
)

// Next cycles closed -> partial -> full -> closed.
func (s OpenState) Next() OpenState {
	return (s + 1) % 3
}

// Ratio maps the state to the fraction of the full opening sweep.
func (s OpenState) Ratio() float64 {
	switch s {
	case PartiallyOpen:
		return 0.5
	case FullyOpen:
		return 1
	default:
		return 0
	}
}
