// Package handler provides the HTTP handlers for design operations.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/cache"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/config"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/database"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/editor"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/store"
)

var (
	errNotCustom    = errors.New("design is not in custom mode")
	errBadIndex     = errors.New("invalid panel index")
	errInvalidEvent = errors.New("invalid editor event")
)

// Options tunes design processing and request limits.
type Options struct {
	Debounce       time.Duration
	DefaultRate    float64
	Editor         editor.Options
	RateLimitRPS   float64
	RateLimitBurst int
}

// OptionsFromConfig derives handler options from the service config.
func OptionsFromConfig(cfg *config.Config) Options {
	ed := editor.DefaultOptions()
	ed.GridSize = cfg.EditorGridSize
	ed.SnapThreshold = cfg.EditorSnapThreshold
	return Options{
		Debounce:       cfg.RecomputeDebounce(),
		DefaultRate:    cfg.DefaultRate,
		Editor:         ed,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}
}

// Handler provides HTTP handlers for design operations.
type Handler struct {
	repo     database.Repository
	cache    cache.Cache
	opts     Options
	limiter  *clientLimiter
	sessions *sessionRegistry
	logger   *zap.Logger
}

// NewHandler creates a new design handler.
func NewHandler(repo database.Repository, cache cache.Cache, opts Options, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		repo:     repo,
		cache:    cache,
		opts:     opts,
		limiter:  newClientLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		sessions: newSessionRegistry(),
		logger:   logger,
	}
}

// RegisterRoutes registers the handler routes on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/designs", h.Create)
	rg.GET("/designs", h.GetAll)
	rg.GET("/designs/:id", h.GetByID)
	rg.PUT("/designs/:id", h.Update)
	rg.PATCH("/designs/:id", h.Update)
	rg.DELETE("/designs/:id", h.Delete)

	rg.PUT("/designs/:id/scene", h.ReplaceScene)
	rg.GET("/designs/:id/svg", h.RenderSVG)
	rg.GET("/designs/:id/scene3d", h.RenderScene3D)
	rg.POST("/designs/:id/panels/:index/toggle", h.TogglePanel)
	rg.PUT("/designs/:id/panels/:index/offset", h.SetPanelOffset)
	rg.POST("/designs/:id/frames/:frameId/toggle", h.ToggleFrame)

	rg.POST("/compute", h.rateLimit, h.Compute)
	rg.POST("/quotation", h.Quotation)

	rg.POST("/designs/:id/editor", h.rateLimit, h.OpenEditor)
	rg.GET("/editor/:session", h.EditorState)
	rg.POST("/editor/:session/events", h.rateLimit, h.ApplyEvents)
	rg.GET("/editor/:session/svg", h.EditorSVG)
	rg.DELETE("/editor/:session", h.CloseEditor)
}

// Close drops every open editor session.
func (h *Handler) Close() {
	for _, s := range h.sessions.drain() {
		s.store.Close()
	}
}

func (h *Handler) newStore() *store.Store {
	return store.New(store.Options{
		Debounce:    h.opts.Debounce,
		DefaultRate: h.opts.DefaultRate,
	}, h.logger)
}

// load reads a design through the cache.
func (h *Handler) load(ctx context.Context, id string) (*models.Design, error) {
	design, err := h.cache.Get(ctx, id)
	if err == nil && design != nil {
		h.logger.Debug("Returning cached design", zap.String("id", id))
		return design, nil
	}

	design, err = h.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if design == nil {
		return nil, fmt.Errorf("design %s: %w", id, models.ErrNotFound)
	}

	_ = h.cache.Set(ctx, design)
	return design, nil
}

// commit recomputes the active design of s and persists it.
func (h *Handler) commit(ctx context.Context, s *store.Store) (models.Design, error) {
	if err := s.Flush(); err != nil {
		return models.Design{}, err
	}
	design, err := s.Active()
	if err != nil {
		return models.Design{}, err
	}
	if err := h.repo.Update(ctx, &design); err != nil {
		return models.Design{}, err
	}
	_ = h.cache.Set(ctx, &design)
	return design, nil
}

// mutateDesign loads the design named by the id path parameter into a
// store, runs fn against it and persists the result.
func (h *Handler) mutateDesign(c *gin.Context, fn func(s *store.Store) error) {
	ctx := c.Request.Context()
	design, err := h.load(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to retrieve design")
		return
	}

	s := h.newStore()
	defer s.Close()
	s.Load([]models.Design{*design}, design.ID)

	if err := fn(s); err != nil {
		h.respondError(c, err, "failed to update design")
		return
	}

	updated, err := h.commit(ctx, s)
	if err != nil {
		h.respondError(c, err, "failed to update design")
		return
	}
	c.JSON(http.StatusOK, models.DesignResponse{Data: updated})
}

// Create handles the creation of a new design.
// @Summary Create design
// @Description Create a design from optional parameters; omitted values use the defaults
// @Tags designs
// @Accept json
// @Produce json
// @Param design body models.CreateDesignRequest true "Design data"
// @Success 201 {object} models.DesignResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/designs [post]
func (h *Handler) Create(c *gin.Context) {
	var req models.CreateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidRequest(c, "Invalid create request", err)
		return
	}

	s := h.newStore()
	defer s.Close()

	design := s.NewDesign()
	if req.Name != "" {
		design.Name = req.Name
	}
	if req.Rate != nil {
		design.Rate = *req.Rate
	}
	if req.Parameters != nil {
		params := *req.Parameters
		params.Panels = params.ClampedPanels()
		if err := params.Validate(); err != nil {
			h.respondError(c, err, "failed to create design")
			return
		}
		design.Parameters = params
	}

	s.Load([]models.Design{design}, design.ID)
	if err := s.Flush(); err != nil {
		h.respondError(c, err, "failed to create design")
		return
	}
	created, err := s.Active()
	if err != nil {
		h.respondError(c, err, "failed to create design")
		return
	}

	ctx := c.Request.Context()
	if err := h.repo.Create(ctx, &created); err != nil {
		h.respondError(c, err, "failed to create design")
		return
	}

	_ = h.cache.Set(ctx, &created)

	c.JSON(http.StatusCreated, models.DesignResponse{Data: created})
}

// GetAll handles retrieving all designs.
// @Summary Get all designs
// @Tags designs
// @Produce json
// @Success 200 {object} models.DesignsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/designs [get]
func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	designs, found, err := h.cache.GetAll(ctx)
	if err == nil && found {
		h.logger.Debug("Returning cached designs")
		c.JSON(http.StatusOK, models.DesignsResponse{Data: designs})
		return
	}

	designs, err = h.repo.GetAll(ctx)
	if err != nil {
		h.respondError(c, err, "failed to retrieve designs")
		return
	}

	_ = h.cache.SetAll(ctx, designs)

	c.JSON(http.StatusOK, models.DesignsResponse{Data: designs})
}

// GetByID handles retrieving a single design by ID.
// @Summary Get design by ID
// @Tags designs
// @Produce json
// @Param id path string true "Design ID"
// @Success 200 {object} models.DesignResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/designs/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	design, err := h.load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to retrieve design")
		return
	}
	c.JSON(http.StatusOK, models.DesignResponse{Data: *design})
}

// Update handles renaming, repricing and parameter edits of a design.
// @Summary Update design
// @Tags designs
// @Accept json
// @Produce json
// @Param id path string true "Design ID"
// @Param design body models.UpdateDesignRequest true "Changes"
// @Success 200 {object} models.DesignResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/designs/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req models.UpdateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidRequest(c, "Invalid update request", err)
		return
	}

	h.mutateDesign(c, func(s *store.Store) error {
		id := s.ActiveID()
		if req.Name != nil {
			if err := s.Rename(id, *req.Name); err != nil {
				return err
			}
		}
		if req.Rate != nil {
			if err := s.SetRate(id, *req.Rate); err != nil {
				return err
			}
		}
		if req.Parameters != nil {
			return s.UpdateParameters(*req.Parameters)
		}
		return nil
	})
}

// Delete handles deleting a design and any editor sessions open on it.
// @Summary Delete design
// @Tags designs
// @Param id path string true "Design ID"
// @Success 204 "No Content"
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/designs/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if err := h.repo.Delete(ctx, id); err != nil {
		h.respondError(c, err, "failed to delete design")
		return
	}

	_ = h.cache.Delete(ctx, id)
	for _, s := range h.sessions.removeDesign(id) {
		s.store.Close()
	}

	c.Status(http.StatusNoContent)
}

// ReplaceScene handles replacing the canvas content of a custom design.
// @Summary Replace custom scene
// @Tags designs
// @Accept json
// @Produce json
// @Param id path string true "Design ID"
// @Param scene body models.SceneRequest true "Canvas elements"
// @Success 200 {object} models.DesignResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/designs/{id}/scene [put]
func (h *Handler) ReplaceScene(c *gin.Context) {
	var req models.SceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidRequest(c, "Invalid scene request", err)
		return
	}

	h.mutateDesign(c, func(s *store.Store) error {
		design, err := s.Active()
		if err != nil {
			return err
		}
		if !design.IsCustom() {
			return errNotCustom
		}
		s.SetScene(req.Scene)
		return nil
	})
}
