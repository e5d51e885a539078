// Package store holds the application state of the designer: the list of
// designs, the active design and the custom canvas view. Every mutation
// goes through a command method; parametric geometry is recomputed by a
// debounced task so only the latest parameters are ever published.
package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/engine"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/render"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/scene"
)

var (
	// ErrNoActiveDesign is returned by commands that act on the active
	// design when there is none.
	ErrNoActiveDesign = errors.New("no active design")
	// ErrNotOperable is returned when toggling something that cannot open.
	ErrNotOperable = errors.New("element cannot be opened")
	// ErrPanelOutOfRange is returned for a panel index the design lacks.
	ErrPanelOutOfRange = errors.New("panel index out of range")
)

// DefaultDebounce is the delay between the last parameter change and the
// recompute.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Store.
type Options struct {
	Debounce    time.Duration
	DefaultRate float64
	// OnChange is called with a copy of every design a command modified,
	// outside the store lock.
	OnChange func(models.Design)
}

// Store is the single source of truth for the designer state. It is safe
// for concurrent use.
type Store struct {
	mu         sync.Mutex
	designs    []models.Design
	activeID   string
	view       models.CanvasView
	processing bool

	opts      Options
	logger    *zap.Logger
	debouncer *engine.Debouncer
	now       func() time.Time
}

// New creates an empty store.
func New(opts Options, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.DefaultRate <= 0 {
		opts.DefaultRate = models.DefaultRate
	}
	return &Store{
		view:      models.DefaultCanvasView(),
		opts:      opts,
		logger:    logger,
		debouncer: engine.NewDebouncer(opts.Debounce),
		now:       time.Now,
	}
}

// Load replaces the store content with designs and activates activeID, or
// the first design when activeID is empty or unknown.
func (s *Store) Load(designs []models.Design, activeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.designs = make([]models.Design, len(designs))
	for i := range designs {
		s.designs[i] = cloneDesign(designs[i])
	}
	s.activeID = ""
	if s.index(activeID) >= 0 {
		s.activeID = activeID
	} else if len(s.designs) > 0 {
		s.activeID = s.designs[0].ID
	}
	s.refreshActive()
}

// NewDesign returns a design with the default parameters.
func (s *Store) NewDesign() models.Design {
	id := scene.NewID("design")
	params := models.DefaultParameters()
	now := s.now().UTC()
	return models.Design{
		ID:              id,
		Name:            "Window " + id[len(id)-4:],
		Parameters:      params,
		Warnings:        []string{},
		PanelOpenStates: make([]models.OpenState, params.Panels),
		PanelOffsets:    make([]float64, params.Panels),
		Rate:            s.opts.DefaultRate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Initialize creates and activates a default design when the store is
// empty.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.designs) > 0 {
		return
	}
	d := s.NewDesign()
	s.designs = append(s.designs, d)
	s.activeID = d.ID
	s.logger.Info("Initialized with default design", zap.String("id", d.ID))
	s.refreshActive()
}

// Add appends a default design and makes it active.
func (s *Store) Add() models.Design {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.NewDesign()
	s.designs = append(s.designs, d)
	s.activeID = d.ID
	s.logger.Info("Added design", zap.String("id", d.ID))
	s.refreshActive()
	return cloneDesign(d)
}

// Remove deletes a design. Removing the active design activates the first
// remaining one.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("remove design %s: %w", id, models.ErrNotFound)
	}
	s.designs = slices.Delete(s.designs, i, i+1)
	if s.activeID == id {
		s.activeID = ""
		if len(s.designs) > 0 {
			s.activeID = s.designs[0].ID
		}
		s.refreshActive()
	}
	s.logger.Info("Removed design", zap.String("id", id))
	return nil
}

// Select activates a design.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(id) < 0 {
		return fmt.Errorf("select design %s: %w", id, models.ErrNotFound)
	}
	s.activeID = id
	s.refreshActive()
	return nil
}

// Rename changes the name of a design.
func (s *Store) Rename(id, name string) error {
	return s.mutate(id, func(d *models.Design) error {
		d.Name = name
		return nil
	})
}

// SetRate changes the quotation rate of a design.
func (s *Store) SetRate(id string, rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("%w: rate must be positive", models.ErrInvalidParameters)
	}
	return s.mutate(id, func(d *models.Design) error {
		d.Rate = rate
		return nil
	})
}

// Designs returns a copy of every design in order.
func (s *Store) Designs() []models.Design {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Design, len(s.designs))
	for i := range s.designs {
		out[i] = cloneDesign(s.designs[i])
	}
	return out
}

// Design returns a copy of one design.
func (s *Store) Design(id string) (models.Design, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Design{}, fmt.Errorf("design %s: %w", id, models.ErrNotFound)
	}
	return cloneDesign(s.designs[i]), nil
}

// ActiveID returns the active design id, empty when there is none.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Active returns a copy of the active design.
func (s *Store) Active() (models.Design, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.active()
	if d == nil {
		return models.Design{}, ErrNoActiveDesign
	}
	return cloneDesign(*d), nil
}

// IsProcessing reports whether a parametric recompute is pending.
func (s *Store) IsProcessing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

func (s *Store) index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.designs, func(d models.Design) bool { return d.ID == id })
}

func (s *Store) active() *models.Design {
	if i := s.index(s.activeID); i >= 0 {
		return &s.designs[i]
	}
	return nil
}

// mutate applies fn to the design with the given id and notifies the
// change listener.
func (s *Store) mutate(id string, fn func(d *models.Design) error) error {
	return s.apply(func() (int, error) {
		if i := s.index(id); i >= 0 {
			return i, nil
		}
		return -1, fmt.Errorf("design %s: %w", id, models.ErrNotFound)
	}, fn)
}

// mutateActive applies fn to the active design.
func (s *Store) mutateActive(fn func(d *models.Design) error) error {
	return s.apply(func() (int, error) {
		if i := s.index(s.activeID); i >= 0 {
			return i, nil
		}
		return -1, ErrNoActiveDesign
	}, fn)
}

func (s *Store) apply(resolve func() (int, error), fn func(d *models.Design) error) error {
	s.mu.Lock()
	i, err := resolve()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	d := &s.designs[i]
	if err := fn(d); err != nil {
		s.mu.Unlock()
		return err
	}
	d.UpdatedAt = s.now().UTC()
	changed := cloneDesign(*d)
	s.mu.Unlock()

	s.notify(changed)
	return nil
}

func (s *Store) notify(d models.Design) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(d)
	}
}

func cloneDesign(d models.Design) models.Design {
	out := d
	out.Warnings = slices.Clone(d.Warnings)
	out.PanelOpenStates = slices.Clone(d.PanelOpenStates)
	out.PanelOffsets = slices.Clone(d.PanelOffsets)
	out.Scene = scene.Clone(d.Scene)
	if d.Geometry != nil {
		g := *d.Geometry
		g.Tracks = slices.Clone(g.Tracks)
		g.Panels = slices.Clone(g.Panels)
		out.Geometry = &g
	}
	if d.Outputs != nil {
		o := models.ProjectOutput{
			BOM:     slices.Clone(d.Outputs.BOM),
			CutList: slices.Clone(d.Outputs.CutList),
		}
		out.Outputs = &o
	}
	return out
}

// clampOffsets limits every offset to its panel's travel.
func clampOffsets(g *models.Geometry, offsets []float64) []float64 {
	out := slices.Clone(offsets)
	for i := range out {
		out[i] = render.ClampSlideOffset(g, i, out[i])
	}
	return out
}
