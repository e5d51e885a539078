package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/engine"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/render"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/scene"
)

// UpdateParameters applies a partial parameter change to the active
// design. The panel count is clamped to the system's range. Switching into
// custom mode drops the parametric results; switching out of it drops the
// canvas scene along with its outputs and advisory.
func (s *Store) UpdateParameters(patch models.ParametersPatch) error {
	return s.mutateActive(func(d *models.Design) error {
		prev := d.Parameters
		next := patch.Apply(prev)
		next.Panels = next.ClampedPanels()
		if err := next.Validate(); err != nil {
			return err
		}

		switch {
		case prev.System != models.SystemCustom && next.System == models.SystemCustom:
			d.Geometry = nil
			d.Outputs = nil
			d.PanelOpenStates = nil
			d.PanelOffsets = nil
		case prev.System == models.SystemCustom && next.System != models.SystemCustom:
			d.Scene = models.Scene{}
			d.Outputs = nil
			d.Warnings = []string{}
		}

		d.Parameters = next
		s.logger.Debug("Updated parameters",
			zap.String("id", d.ID),
			zap.String("system", string(next.System)),
			zap.Int("panels", next.Panels),
		)
		s.refreshActive()
		return nil
	})
}

// TogglePanelOpenState cycles a parametric panel through closed, partly
// open and fully open. Foldable panels move with their pair partner.
func (s *Store) TogglePanelOpenState(index int) error {
	return s.mutateActive(func(d *models.Design) error {
		if !render.OperableIn2D(d.Parameters.System) {
			return fmt.Errorf("%w: %s panels do not swing", ErrNotOperable, d.Parameters.System)
		}

		n := panelCount(d)
		if index < 0 || index >= n {
			return fmt.Errorf("%w: %d", ErrPanelOutOfRange, index)
		}
		states := make([]models.OpenState, n)
		copy(states, d.PanelOpenStates)

		next := states[index].Next()
		if d.Parameters.System == models.SystemFoldable {
			first := index / 2 * 2
			states[first] = next
			if first+1 < n {
				states[first+1] = next
			}
		} else {
			states[index] = next
		}
		d.PanelOpenStates = states
		return nil
	})
}

// UpdatePanelOffsets replaces the sliding offsets of the active design,
// clamping each to its panel's travel.
func (s *Store) UpdatePanelOffsets(offsets []float64) error {
	return s.mutateActive(func(d *models.Design) error {
		if d.Geometry != nil {
			offsets = clampOffsets(d.Geometry, offsets)
		}
		d.PanelOffsets = offsets
		return nil
	})
}

// SetPanelOffset slides one panel of a sliding system and returns the
// clamped offset that was stored.
func (s *Store) SetPanelOffset(index int, offset float64) (float64, error) {
	var stored float64
	err := s.mutateActive(func(d *models.Design) error {
		if !d.Parameters.System.IsSliding() {
			return fmt.Errorf("%w: %s panels do not slide", ErrNotOperable, d.Parameters.System)
		}
		if d.Geometry == nil || index < 0 || index >= len(d.Geometry.Panels) {
			return fmt.Errorf("%w: %d", ErrPanelOutOfRange, index)
		}

		offsets := make([]float64, len(d.Geometry.Panels))
		copy(offsets, d.PanelOffsets)
		stored = render.ClampSlideOffset(d.Geometry, index, offset)
		offsets[index] = stored
		d.PanelOffsets = offsets
		return nil
	})
	return stored, err
}

// ToggleCustomFrameOpenState cycles the open state of a canvas frame.
// Fixed frames and frames without an opening do not move.
func (s *Store) ToggleCustomFrameOpenState(frameID string) error {
	return s.mutateActive(func(d *models.Design) error {
		f := d.Scene.Frame(frameID)
		if f == nil {
			return fmt.Errorf("frame %s: %w", frameID, models.ErrNotFound)
		}
		if !f.Opening.IsOperable() {
			return fmt.Errorf("%w: frame %s is fixed", ErrNotOperable, frameID)
		}
		f.OpenState = f.OpenState.Next()
		return nil
	})
}

// Flush runs any pending recompute of the active design immediately.
func (s *Store) Flush() error {
	s.mu.Lock()
	s.debouncer.Cancel()
	s.processing = false
	d := s.active()
	if d == nil {
		s.mu.Unlock()
		return ErrNoActiveDesign
	}
	changed, ok := s.recompute(d)
	s.mu.Unlock()

	if ok {
		s.notify(changed)
	}
	return nil
}

// Close cancels any pending recompute.
func (s *Store) Close() {
	s.debouncer.Cancel()
}

// refreshActive brings the derived fields of the active design up to date:
// custom designs switch to the advisory immediately, parametric designs get
// a debounced recompute. The caller holds the lock.
func (s *Store) refreshActive() {
	d := s.active()
	if d == nil {
		s.processing = false
		return
	}
	if d.IsCustom() {
		s.debouncer.Cancel()
		s.processing = false
		applyCustomMode(d)
		return
	}

	s.processing = true
	id := d.ID
	s.debouncer.Schedule(func(gen uint64) {
		s.runRecompute(id, gen)
	})
}

func (s *Store) runRecompute(id string, gen uint64) {
	s.mu.Lock()
	if !s.debouncer.IsCurrent(gen) {
		s.mu.Unlock()
		s.logger.Debug("Dropped superseded recompute", zap.String("id", id), zap.Uint64("generation", gen))
		return
	}
	s.processing = false
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	changed, ok := s.recompute(&s.designs[i])
	s.mu.Unlock()

	if ok {
		s.notify(changed)
	}
}

// recompute derives geometry, warnings and outputs for d. Designs without
// a positive size keep their previous results. The caller holds the lock.
func (s *Store) recompute(d *models.Design) (models.Design, bool) {
	if d.IsCustom() {
		applyCustomMode(d)
		return cloneDesign(*d), true
	}
	if d.Parameters.Width <= 0 || d.Parameters.Height <= 0 {
		s.logger.Debug("Skipped recompute of empty design", zap.String("id", d.ID))
		return models.Design{}, false
	}

	res := engine.Compute(d.Parameters)
	d.Geometry = res.Geometry
	d.Warnings = res.Warnings
	if d.Warnings == nil {
		d.Warnings = []string{}
	}
	d.Outputs = res.Outputs

	n := len(res.Geometry.Panels)
	if len(d.PanelOpenStates) != n {
		d.PanelOpenStates = make([]models.OpenState, n)
	}
	if len(d.PanelOffsets) != n {
		d.PanelOffsets = make([]float64, n)
	}
	d.UpdatedAt = s.now().UTC()

	s.logger.Debug("Recomputed design",
		zap.String("id", d.ID),
		zap.Int("panels", n),
		zap.Int("warnings", len(d.Warnings)),
	)
	return cloneDesign(*d), true
}

func applyCustomMode(d *models.Design) {
	d.Geometry = nil
	d.Warnings = []string{engine.WarnCustomMode}
}

func panelCount(d *models.Design) int {
	if d.Geometry != nil {
		return len(d.Geometry.Panels)
	}
	return d.Parameters.Panels
}

// Scene returns a copy of the active design's canvas scene.
func (s *Store) Scene() models.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d := s.active(); d != nil {
		return scene.Clone(d.Scene)
	}
	return models.Scene{}
}

// SetScene replaces the active design's canvas scene and, in custom mode,
// recomputes its bill of materials and cut list.
func (s *Store) SetScene(sc models.Scene) {
	err := s.mutateActive(func(d *models.Design) error {
		d.Scene = scene.Clone(sc)
		if d.IsCustom() {
			d.Outputs = scene.ComputeOutputs(d.Scene)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Dropped scene update", zap.Error(err))
	}
}

// View returns the custom canvas pan and zoom.
func (s *Store) View() models.CanvasView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetView replaces the custom canvas pan and zoom. A non-positive zoom is
// stored as 1.
func (s *Store) SetView(v models.CanvasView) {
	v.Zoom = v.Scale()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}
