// Package scene operates on the custom canvas content of a design: deep
// copies, structural comparison, cascade deletion, derived fabrication
// outputs and preset shapes.
package scene

import (
	"slices"

	"github.com/google/uuid"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

// NewID returns a fresh element identifier with the given prefix.
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// Clone returns a deep copy of s. Elements hold no references, so copying
// the four slices is enough.
func Clone(s models.Scene) models.Scene {
	return models.Scene{
		Frames:     slices.Clone(s.Frames),
		Mullions:   slices.Clone(s.Mullions),
		Dimensions: slices.Clone(s.Dimensions),
		TextBoxes:  slices.Clone(s.TextBoxes),
	}
}

// Equal reports whether a and b hold the same elements in the same order.
// Nil and empty collections compare equal.
func Equal(a, b models.Scene) bool {
	return slices.Equal(a.Frames, b.Frames) &&
		slices.Equal(a.Mullions, b.Mullions) &&
		slices.Equal(a.Dimensions, b.Dimensions) &&
		slices.Equal(a.TextBoxes, b.TextBoxes)
}

// Delete removes the referenced element and everything that depends on it:
// a frame takes its parented mullions and dimensions, a grouped mullion
// takes its whole group, and dimensions parented to removed mullions go
// too. Frames nested in a removed frame move up to its parent. It reports
// whether anything was removed.
func Delete(s *models.Scene, ref models.ElementRef) bool {
	before := len(s.Frames) + len(s.Mullions) + len(s.Dimensions) + len(s.TextBoxes)

	switch ref.Kind {
	case models.KindFrame:
		target := s.Frame(ref.ID)
		if target == nil {
			return false
		}
		grandparent := target.ParentID
		s.Frames = slices.DeleteFunc(s.Frames, func(f models.Frame) bool { return f.ID == ref.ID })
		removed := removeMullions(s, func(m models.Mullion) bool { return m.ParentID == ref.ID })
		removed[ref.ID] = true
		s.Dimensions = slices.DeleteFunc(s.Dimensions, func(d models.Dimension) bool { return removed[d.ParentID] })
		for i := range s.Frames {
			if s.Frames[i].ParentID == ref.ID {
				s.Frames[i].ParentID = grandparent
			}
		}
	case models.KindMullion:
		target := s.Mullion(ref.ID)
		if target == nil {
			return false
		}
		id, group := target.ID, target.GroupID
		removed := removeMullions(s, func(m models.Mullion) bool {
			return m.ID == id || (group != "" && m.GroupID == group)
		})
		s.Dimensions = slices.DeleteFunc(s.Dimensions, func(d models.Dimension) bool { return removed[d.ParentID] })
	case models.KindDimension:
		s.Dimensions = slices.DeleteFunc(s.Dimensions, func(d models.Dimension) bool { return d.ID == ref.ID })
	case models.KindTextBox:
		s.TextBoxes = slices.DeleteFunc(s.TextBoxes, func(t models.TextBox) bool { return t.ID == ref.ID })
	}

	after := len(s.Frames) + len(s.Mullions) + len(s.Dimensions) + len(s.TextBoxes)
	return after < before
}

func removeMullions(s *models.Scene, match func(models.Mullion) bool) map[string]bool {
	removed := map[string]bool{}
	s.Mullions = slices.DeleteFunc(s.Mullions, func(m models.Mullion) bool {
		if match(m) {
			removed[m.ID] = true
			return true
		}
		return false
	})
	return removed
}

// Group returns the ids of every mullion sharing groupID.
func Group(s models.Scene, groupID string) []string {
	if groupID == "" {
		return nil
	}
	var ids []string
	for _, m := range s.Mullions {
		if m.GroupID == groupID {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// ContainingFrame returns the id of the topmost frame whose rotated
// bounds contain p, or "" when none does.
func ContainingFrame(s models.Scene, p geom.Point) string {
	for i := len(s.Frames) - 1; i >= 0; i-- {
		if s.Frames[i].Contains(p) {
			return s.Frames[i].ID
		}
	}
	return ""
}
