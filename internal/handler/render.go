package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/cache"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/engine"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/quotation"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/render"
)

const svgContentType = "image/svg+xml"

// QuotationResponse wraps a priced design list in the API response.
type QuotationResponse struct {
	Data quotation.Quotation `json:"data"`
}

// Scene3DResponse wraps a 3D scene graph in the API response.
type Scene3DResponse struct {
	Data render.Scene3D `json:"data"`
}

// RenderSVG handles drawing a design as SVG.
// @Summary Render design drawing
// @Tags render
// @Produce image/svg+xml
// @Param id path string true "Design ID"
// @Success 200 {string} string "SVG document"
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/designs/{id}/svg [get]
func (h *Handler) RenderSVG(c *gin.Context) {
	ctx := c.Request.Context()
	design, err := h.load(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to retrieve design")
		return
	}

	key := cache.SVGKey(design)
	if svg, found, err := h.cache.GetSVG(ctx, key); err == nil && found {
		c.Data(http.StatusOK, svgContentType, []byte(svg))
		return
	}

	var svg string
	if design.IsCustom() {
		svg = render.SceneSVG(design.Scene, render.SceneOptions{View: models.DefaultCanvasView()})
	} else {
		svg, err = render.DesignSVG(design.Parameters, design.Geometry, render.PanelStates(design))
		if err != nil {
			h.respondError(c, err, "failed to render design")
			return
		}
	}

	_ = h.cache.SetSVG(ctx, key, svg)
	h.logger.Debug("Rendered design", zap.String("id", design.ID), zap.Int("bytes", len(svg)))

	c.Data(http.StatusOK, svgContentType, []byte(svg))
}

// RenderScene3D handles building the 3D scene graph of a design.
// @Summary Render design in 3D
// @Tags render
// @Produce json
// @Param id path string true "Design ID"
// @Success 200 {object} Scene3DResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/designs/{id}/scene3d [get]
func (h *Handler) RenderScene3D(c *gin.Context) {
	design, err := h.load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to retrieve design")
		return
	}

	var scene render.Scene3D
	if design.IsCustom() {
		scene = render.SceneGraph(design.Scene)
	} else {
		scene = render.DesignScene(design.Parameters, design.Geometry, render.PanelStates(design))
	}
	c.JSON(http.StatusOK, Scene3DResponse{Data: scene})
}

// Compute handles a stateless engine run.
// @Summary Compute design
// @Description Run the parametric engine without storing anything
// @Tags render
// @Accept json
// @Produce json
// @Param parameters body models.DesignParameters true "Design parameters"
// @Success 200 {object} models.ComputeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /api/v1/compute [post]
func (h *Handler) Compute(c *gin.Context) {
	var params models.DesignParameters
	if err := c.ShouldBindJSON(&params); err != nil {
		h.invalidRequest(c, "Invalid compute request", err)
		return
	}

	params.Panels = params.ClampedPanels()
	if err := params.Validate(); err != nil {
		h.respondError(c, err, "failed to compute design")
		return
	}

	res := engine.Compute(params)
	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	c.JSON(http.StatusOK, models.ComputeResponse{
		Geometry: res.Geometry,
		Warnings: warnings,
		Outputs:  res.Outputs,
	})
}

// Quotation handles pricing designs by area.
// @Summary Price designs
// @Tags quotation
// @Accept json
// @Produce json
// @Param request body models.QuotationRequest false "Designs to price"
// @Success 200 {object} QuotationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/quotation [post]
func (h *Handler) Quotation(c *gin.Context) {
	var req models.QuotationRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.invalidRequest(c, "Invalid quotation request", err)
			return
		}
	}

	ctx := c.Request.Context()
	var designs []models.Design
	if len(req.DesignIDs) == 0 {
		all, err := h.repo.GetAll(ctx)
		if err != nil {
			h.respondError(c, err, "failed to retrieve designs")
			return
		}
		designs = all
	} else {
		for _, id := range req.DesignIDs {
			design, err := h.load(ctx, id)
			if err != nil {
				h.respondError(c, err, "failed to retrieve design")
				return
			}
			designs = append(designs, *design)
		}
	}

	q, err := quotation.Build(designs)
	if err != nil {
		h.respondError(c, err, "failed to build quotation")
		return
	}
	c.JSON(http.StatusOK, QuotationResponse{Data: q})
}
