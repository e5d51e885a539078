package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/editor"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/quotation"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/render"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/store"
)

// clientErrors are failures caused by the request rather than the service.
var clientErrors = []error{
	models.ErrInvalidParameters,
	store.ErrNotOperable,
	store.ErrPanelOutOfRange,
	render.ErrNoGeometry,
	quotation.ErrNoDesigns,
	editor.ErrNoSelection,
	editor.ErrToolDisabled,
	editor.ErrUnknownTool,
	errNotCustom,
	errBadIndex,
	errInvalidEvent,
}

func isClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError maps err to a status code. Unexpected errors are logged and
// reported with message only.
func (h *Handler) respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case isClientError(err):
		h.logger.Warn("Rejected request", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	default:
		h.logger.Error(message, zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: message,
		})
	}
}

func (h *Handler) invalidRequest(c *gin.Context, msg string, err error) {
	h.logger.Warn(msg, zap.Error(err))
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: err.Error(),
	})
}
