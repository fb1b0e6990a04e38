package reports

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/eventful-api/eventful-backend/middleware"
	"github.com/eventful-api/eventful-backend/utils"
	"github.com/gin-gonic/gin"
)

const requestTimeout = 10 * time.Second

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📊 Analytics - GET /organizers/:id/analytics
func (h *Handler) GetOrganizerAnalytics(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.Unauthorized("unauthenticated"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	analytics, err := h.Service.GetOrganizerAnalytics(ctx, caller, c.Param("id"))
	if err != nil {
		apiErr := utils.AsAPIError(err)
		c.JSON(apiErr.StatusCode, apiErr)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// ===========================
// 📥 Export - GET /organizers/:id/analytics/export?format=csv|pdf|excel
func (h *Handler) ExportOrganizerAnalytics(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.Unauthorized("unauthenticated"))
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	data, filename, contentType, err := h.Service.ExportOrganizerAnalytics(ctx, caller, c.Param("id"), format)
	if err != nil {
		apiErr := utils.AsAPIError(err)
		c.JSON(apiErr.StatusCode, apiErr)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
