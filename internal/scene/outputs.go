package scene

import (
	"fmt"
	"math"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

const (
	customProfile = models.ProfileStandard
	mullionAngle  = "90°"
	frameAngle    = "45° Mitre"
	louverPitch   = 20
)

// ComputeOutputs derives the BOM and cut list of a custom scene. It
// returns nil when there are no frames and no mullions, meaning there is
// nothing to fabricate yet.
func ComputeOutputs(s models.Scene) *models.ProjectOutput {
	if len(s.Frames) == 0 && len(s.Mullions) == 0 {
		return nil
	}

	var (
		bom     []models.BillOfMaterialsItem
		cutList = []models.CutListItem{}
		sealing float64
	)

	for i := range s.Frames {
		f := &s.Frames[i]
		material := f.EffectiveMaterial()

		bom = append(bom, models.BillOfMaterialsItem{
			Item:        "Frame Profile",
			Description: profileDescription(material),
			Quantity:    f.Rect().Perimeter() / 1000,
			Unit:        models.UnitMeters,
		})
		cutList = append(cutList,
			frameCut(fmt.Sprintf("Frame: %s (Top/Bottom)", f.ID), f.Width, material),
			frameCut(fmt.Sprintf("Frame: %s (Left/Right)", f.ID), f.Height, material),
		)

		glass := f.GlassRect()
		if glass.Width <= 0 || glass.Height <= 0 {
			continue
		}
		switch f.EffectiveInfill() {
		case models.InfillGlass:
			glassType := f.Glass
			if glassType == "" {
				glassType = models.GlassStandard
			}
			bom = append(bom, models.BillOfMaterialsItem{
				Item:        "Glass Panel",
				Description: string(glassType),
				Quantity:    glass.Area() / 1_000_000,
				Unit:        models.UnitSquareMeters,
			})
			sealing += glass.Perimeter()
		case models.InfillPanel:
			bom = append(bom, models.BillOfMaterialsItem{
				Item:        "Solid Panel",
				Description: "Insulated Panel",
				Quantity:    glass.Area() / 1_000_000,
				Unit:        models.UnitSquareMeters,
			})
			sealing += glass.Perimeter()
		case models.InfillLouver:
			blades := math.Floor(glass.Height / louverPitch)
			bom = append(bom, models.BillOfMaterialsItem{
				Item:        "Louver Blades",
				Description: "Aluminum Louver",
				Quantity:    blades * glass.Width / 1000,
				Unit:        models.UnitMeters,
			})
		}
	}

	for i := range s.Mullions {
		m := &s.Mullions[i]
		material := m.EffectiveMaterial()
		length := m.Line().Length()

		bom = append(bom, models.BillOfMaterialsItem{
			Item:        "Mullion Profile",
			Description: profileDescription(material),
			Quantity:    length / 1000,
			Unit:        models.UnitMeters,
		})
		cutList = append(cutList, models.CutListItem{
			Part:     fmt.Sprintf("Mullion: %s", m.ID),
			Length:   geom.Round1(length),
			Angle:    mullionAngle,
			Quantity: 1,
			Profile:  customProfile,
			Material: material,
		})
		sealing += 2 * length
	}

	bom = models.Consolidate(bom)
	for i := range bom {
		bom[i].Quantity = geom.Round2(bom[i].Quantity)
	}
	if sealing > 0 {
		bom = append(bom, models.BillOfMaterialsItem{
			Item:        "Weather Stripping",
			Description: "EPDM Seal",
			Quantity:    geom.Round2(sealing / 1000),
			Unit:        models.UnitMeters,
		})
	}

	return &models.ProjectOutput{BOM: bom, CutList: cutList}
}

func profileDescription(m models.MaterialType) string {
	return fmt.Sprintf("%s Profile (%s)", m.DisplayName(), customProfile)
}

func frameCut(part string, length float64, material models.MaterialType) models.CutListItem {
	return models.CutListItem{
		Part:     part,
		Length:   length,
		Angle:    frameAngle,
		Quantity: 2,
		Profile:  customProfile,
		Material: material,
	}
}
