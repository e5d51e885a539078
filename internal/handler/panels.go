package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/store"
)

func panelIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadIndex, c.Param("index"))
	}
	return index, nil
}

// TogglePanel handles cycling the open state of a parametric panel.
// @Summary Toggle panel
// @Tags panels
// @Produce json
// @Param id path string true "Design ID"
// @Param index path int true "Panel index"
// @Success 200 {object} models.DesignResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/designs/{id}/panels/{index}/toggle [post]
func (h *Handler) TogglePanel(c *gin.Context) {
	index, err := panelIndex(c)
	if err != nil {
		h.respondError(c, err, "failed to toggle panel")
		return
	}
	h.mutateDesign(c, func(s *store.Store) error {
		return s.TogglePanelOpenState(index)
	})
}

// SetPanelOffset handles sliding a panel of a track system.
// @Summary Slide panel
// @Tags panels
// @Accept json
// @Produce json
// @Param id path string true "Design ID"
// @Param index path int true "Panel index"
// @Param offset body models.PanelOffsetRequest true "Requested offset in mm"
// @Success 200 {object} models.DesignResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/designs/{id}/panels/{index}/offset [put]
func (h *Handler) SetPanelOffset(c *gin.Context) {
	index, err := panelIndex(c)
	if err != nil {
		h.respondError(c, err, "failed to slide panel")
		return
	}
	var req models.PanelOffsetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidRequest(c, "Invalid offset request", err)
		return
	}
	h.mutateDesign(c, func(s *store.Store) error {
		_, err := s.SetPanelOffset(index, req.Offset)
		return err
	})
}

// ToggleFrame handles cycling the open state of a custom canvas frame.
// @Summary Toggle custom frame
// @Tags panels
// @Produce json
// @Param id path string true "Design ID"
// @Param frameId path string true "Frame ID"
// @Success 200 {object} models.DesignResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/designs/{id}/frames/{frameId}/toggle [post]
func (h *Handler) ToggleFrame(c *gin.Context) {
	frameID := c.Param("frameId")
	h.mutateDesign(c, func(s *store.Store) error {
		return s.ToggleCustomFrameOpenState(frameID)
	})
}
