package models

import "github.com/YashGhavghave/Glass-Billing-Software/internal/geom"

// FrameGeometry holds the outer frame rectangle and the clear opening
// inside it.
type FrameGeometry struct {
	Outer geom.Rect `json:"outer"`
	Inner geom.Rect `json:"inner"`
}

// PanelGeometry is one sash and the glass visible inside it.
type PanelGeometry struct {
	PanelRect geom.Rect `json:"panelRect"`
	GlassRect geom.Rect `json:"glassRect"`
}

// Geometry is the derived layout of a parametric design. It is rebuilt
// from DesignParameters on every recompute and never edited by hand.
type Geometry struct {
	Frame  FrameGeometry   `json:"frame"`
	Tracks []geom.Line     `json:"tracks"`
	Panels []PanelGeometry `json:"panels"`
}

// Unit labels used by BOM rows.
const (
	UnitMeters       = "m"
	UnitSquareMeters = "m²"
	UnitSets         = "sets"
)

// BillOfMaterialsItem is one consolidated BOM row.
type BillOfMaterialsItem struct {
	Item        string  `json:"item"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
}

// CutListItem is one cut instruction.
type CutListItem struct {
	Part     string       `json:"part"`
	Length   float64      `json:"length"`
	Angle    string       `json:"angle"`
	Quantity int          `json:"quantity"`
	Profile  ProfileType  `json:"profile"`
	Material MaterialType `json:"material"`
}

// ProjectOutput is the fabrication output of a design.
type ProjectOutput struct {
	BOM     []BillOfMaterialsItem `json:"bom"`
	CutList []CutListItem         `json:"cutList"`
}

// Consolidate merges BOM rows sharing (item, description), summing their
// quantities. The first occurrence fixes the row order.
func Consolidate(rows []BillOfMaterialsItem) []BillOfMaterialsItem {
	type key struct{ item, description string }
	index := make(map[key]int, len(rows))
	out := make([]BillOfMaterialsItem, 0, len(rows))
	for _, row := range rows {
		k := key{row.Item, row.Description}
		if i, ok := index[k]; ok {
			out[i].Quantity += row.Quantity
			continue
		}
		index[k] = len(out)
		out = append(out, row)
	}
	return out
}
