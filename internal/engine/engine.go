// Package engine turns DesignParameters into frame/panel geometry, advisory
// warnings and fabrication outputs. Compute is pure and deterministic.
package engine

import (
	"fmt"
	"math"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

// SlidingOverlap is how far adjacent sliding panels overlap, in mm.
const SlidingOverlap = 50

// MitreAngle is the cut label used for every frame and sash member.
const MitreAngle = "45° Mitre"

// Warning texts.
const (
	WarnTallHeight      = "Height over 3200mm may require special engineering review."
	WarnWidePanel       = "Panel width is very large. Consider adding more panels for stability."
	WarnCrowdedTrack    = "More than 6 panels on a 3-track system is not recommended."
	WarnHingedMulti     = "Multi-panel hinged systems require specialized hardware. Please verify support."
	WarnSlimLarge       = "Slim profiles are not recommended for very large dimensions."
	WarnFoldableOdd     = "Foldable systems typically look best with an even number of panels."
	WarnFixedPanels     = "Fixed systems must have exactly one panel."
	WarnCustomMode      = "Custom design mode is active. Use the canvas to create your design."
	WarnEmptyDimensions = "Width and height must be greater than zero."
)

var frameThickness = map[models.ProfileType]float64{
	models.ProfileSlim:      30,
	models.ProfileStandard:  40,
	models.ProfileHeavyDuty: 60,
}

var sashSize = map[models.ProfileType]float64{
	models.ProfileSlim:      35,
	models.ProfileStandard:  45,
	models.ProfileHeavyDuty: 55,
}

// FrameThickness returns the outer frame wall for a profile weight.
// Unknown profiles use the standard weight.
func FrameThickness(p models.ProfileType) float64 {
	if t, ok := frameThickness[p]; ok {
		return t
	}
	return frameThickness[models.ProfileStandard]
}

// SashSize returns the sash width that insets glass from its panel.
func SashSize(p models.ProfileType) float64 {
	if s, ok := sashSize[p]; ok {
		return s
	}
	return sashSize[models.ProfileStandard]
}

// Result is the output of one engine run. Geometry and Outputs are nil when
// nothing can be derived from the parameters.
type Result struct {
	Parameters models.DesignParameters
	Geometry   *models.Geometry
	Warnings   []string
	Outputs    *models.ProjectOutput
}

// Compute derives geometry, warnings and outputs from params. It never
// fails: out-of-range values are clamped or reported as warnings. The
// corrected parameters are returned in Result.Parameters.
func Compute(params models.DesignParameters) Result {
	if params.System == models.SystemCustom {
		return Result{Parameters: params, Warnings: []string{WarnCustomMode}}
	}
	if params.Width <= 0 || params.Height <= 0 {
		return Result{Parameters: params, Warnings: []string{WarnEmptyDimensions}}
	}

	warnings := validate(params)
	params.Panels = params.ClampedPanels()

	b := newBuilder(params)
	b.frame()
	b.tracks()
	switch {
	case params.System == models.SystemFixed:
		b.fixedPanel()
	case params.System.IsSliding():
		b.slidingPanels()
	default:
		b.evenPanels()
	}

	return Result{
		Parameters: params,
		Geometry:   &b.geometry,
		Warnings:   warnings,
		Outputs:    b.outputs(),
	}
}

// validate collects the advisory warnings for params. Checks run against
// the requested panel count so that a corrected count is still reported.
func validate(p models.DesignParameters) []string {
	warnings := []string{}
	panels := p.Panels

	if p.Height > 3200 {
		warnings = append(warnings, WarnTallHeight)
	}
	if panels > 0 && p.Width/float64(panels) > 1800 {
		warnings = append(warnings, WarnWidePanel)
	}
	if panels > 6 && p.System == models.System3Track {
		warnings = append(warnings, WarnCrowdedTrack)
	}
	if p.System.IsHinged() && panels > 2 {
		warnings = append(warnings, WarnHingedMulti)
	}
	if p.Profile == models.ProfileSlim && (p.Height > 2800 || p.Width > 5000) {
		warnings = append(warnings, WarnSlimLarge)
	}
	if p.System == models.SystemFoldable && panels%2 != 0 {
		warnings = append(warnings, WarnFoldableOdd)
	}
	if p.System == models.SystemFixed && panels != 1 {
		warnings = append(warnings, WarnFixedPanels)
	}
	return warnings
}

// builder accumulates geometry and running totals. Totals stay unrounded
// until outputs are formatted.
type builder struct {
	params    models.DesignParameters
	thickness float64
	sash      float64
	geometry  models.Geometry
	cutList   []models.CutListItem

	frameLength   float64
	glassArea     float64
	sealingLength float64
}

func newBuilder(p models.DesignParameters) *builder {
	return &builder{
		params:    p,
		thickness: FrameThickness(p.Profile),
		sash:      SashSize(p.Profile),
	}
}

func (b *builder) frame() {
	outer := geom.Rect{X: 0, Y: 0, Width: b.params.Width, Height: b.params.Height}
	b.geometry.Frame = models.FrameGeometry{Outer: outer, Inner: outer.Inset(b.thickness)}

	b.cut("Outer Frame (Top/Bottom)", b.params.Width)
	b.cut("Outer Frame (Left/Right)", b.params.Height)
	b.frameLength += outer.Perimeter()
}

func (b *builder) tracks() {
	b.geometry.Tracks = []geom.Line{}
	n := b.params.System.TrackCount()
	if n < 2 {
		return
	}
	spacing := b.geometry.Frame.Inner.Width / float64(n)
	for i := 1; i < n; i++ {
		x := b.thickness + float64(i)*spacing
		b.geometry.Tracks = append(b.geometry.Tracks, geom.Line{
			X1: x, Y1: b.thickness,
			X2: x, Y2: b.params.Height - b.thickness,
		})
	}
}

func (b *builder) fixedPanel() {
	inner := b.geometry.Frame.Inner
	glass := inner.Inset(b.sash)
	b.geometry.Panels = []models.PanelGeometry{{PanelRect: inner, GlassRect: glass}}

	b.addGlass(glass)
	b.sealingLength += glass.Perimeter()
}

func (b *builder) slidingPanels() {
	inner := b.geometry.Frame.Inner
	n := b.params.Panels
	available := inner.Width + float64(n-1)*SlidingOverlap
	width := math.Round(available / float64(n))
	b.layoutPanels(width, width-SlidingOverlap)
}

func (b *builder) evenPanels() {
	width := math.Round(b.geometry.Frame.Inner.Width / float64(b.params.Panels))
	b.layoutPanels(width, width)
}

// layoutPanels places panels left to right, each step apart.
func (b *builder) layoutPanels(width, step float64) {
	inner := b.geometry.Frame.Inner
	height := inner.Height
	b.geometry.Panels = make([]models.PanelGeometry, 0, b.params.Panels)

	for i := 0; i < b.params.Panels; i++ {
		panel := geom.Rect{X: b.thickness + float64(i)*step, Y: b.thickness, Width: width, Height: height}
		glass := panel.Inset(b.sash)
		b.geometry.Panels = append(b.geometry.Panels, models.PanelGeometry{PanelRect: panel, GlassRect: glass})

		b.cut(fmt.Sprintf("Panel %d Sash (Top/Bottom)", i+1), width)
		b.cut(fmt.Sprintf("Panel %d Sash (Left/Right)", i+1), height)
		b.frameLength += panel.Perimeter()
		b.sealingLength += panel.Perimeter()
		b.addGlass(glass)
	}
}

func (b *builder) cut(part string, length float64) {
	b.cutList = append(b.cutList, models.CutListItem{
		Part:     part,
		Length:   length,
		Angle:    MitreAngle,
		Quantity: 2,
		Profile:  b.params.Profile,
		Material: b.params.Material,
	})
}

func (b *builder) addGlass(r geom.Rect) {
	if r.Width > 0 && r.Height > 0 {
		b.glassArea += r.Area() / 1_000_000
	}
}

func (b *builder) outputs() *models.ProjectOutput {
	p := b.params
	bom := []models.BillOfMaterialsItem{
		{
			Item:        "Frame Profile",
			Description: fmt.Sprintf("%s Profile (%s)", p.Material.DisplayName(), p.Profile),
			Quantity:    geom.Round2(b.frameLength / 1000),
			Unit:        models.UnitMeters,
		},
		{
			Item:        "Glass Panel",
			Description: string(p.Glass),
			Quantity:    geom.Round2(b.glassArea),
			Unit:        models.UnitSquareMeters,
		},
	}

	if p.System != models.SystemFixed {
		bom = append(bom, models.BillOfMaterialsItem{
			Item:        "Hardware Kit",
			Description: HardwareDescription(p),
			Quantity:    float64(p.Panels),
			Unit:        models.UnitSets,
		})
	}

	bom = append(bom, models.BillOfMaterialsItem{
		Item:        "Weather Stripping",
		Description: "EPDM Seal",
		Quantity:    geom.Round2(b.sealingLength / 1000),
		Unit:        models.UnitMeters,
	})

	return &models.ProjectOutput{BOM: bom, CutList: b.cutList}
}

// HardwareDescription names the hardware kit for a system family.
func HardwareDescription(p models.DesignParameters) string {
	switch {
	case p.System == models.SystemFoldable:
		return "Foldable System Kit"
	case p.System.IsSliding():
		return "Sliding System Kit"
	case p.System == models.SystemTiltTurn:
		return fmt.Sprintf("Tilt & Turn Kit (%s)", p.Hardware)
	case p.System.IsHinged():
		return fmt.Sprintf("Hinge Kit (%s)", p.Hardware)
	default:
		return fmt.Sprintf("%s style", p.Hardware)
	}
}
