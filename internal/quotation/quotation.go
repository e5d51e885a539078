// Package quotation prices designs by billable area.
package quotation

import (
	"errors"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

// ErrNoDesigns is returned when a quotation is requested for nothing.
var ErrNoDesigns = errors.New("no designs to create a quote for")

const (
	mmPerInch         = 25.4
	sqInchesPerSqFoot = 144
)

// Line is one priced design.
type Line struct {
	Number   int     `json:"srNo"`
	DesignID string  `json:"designId"`
	Name     string  `json:"particular"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Quantity int     `json:"qty"`
	Area     float64 `json:"area"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// Quotation is the priced list of designs with its totals.
type Quotation struct {
	Lines         []Line  `json:"lines"`
	TotalQuantity int     `json:"totalQty"`
	TotalArea     float64 `json:"totalArea"`
	TotalAmount   float64 `json:"totalAmount"`
}

// Area converts millimetre dimensions to square feet.
func Area(width, height float64) float64 {
	return (width / mmPerInch) * (height / mmPerInch) / sqInchesPerSqFoot
}

// Build prices every design at its own rate, or the default rate when the
// design has none.
func Build(designs []models.Design) (Quotation, error) {
	if len(designs) == 0 {
		return Quotation{}, ErrNoDesigns
	}

	q := Quotation{Lines: make([]Line, 0, len(designs))}
	for i := range designs {
		d := &designs[i]
		area := Area(d.Parameters.Width, d.Parameters.Height)
		rate := d.EffectiveRate()
		line := Line{
			Number:   i + 1,
			DesignID: d.ID,
			Name:     d.Name,
			Width:    d.Parameters.Width,
			Height:   d.Parameters.Height,
			Quantity: 1,
			Area:     area,
			Rate:     rate,
			Amount:   area * rate,
		}
		q.Lines = append(q.Lines, line)
		q.TotalQuantity += line.Quantity
		q.TotalArea += line.Area
		q.TotalAmount += line.Amount
	}
	return q, nil
}
