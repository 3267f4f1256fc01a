package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
	"github.com/noah-isme/lesson-board-api/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context, scope models.AccessScope, query dto.DashboardQuery) (*dto.DashboardResponse, bool, error)
}

// DashboardHandler wires the dashboard service to HTTP.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary godoc
// @Summary Home dashboard for the caller's students
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year, defaults to the current year"
// @Param month query int false "Month 1-12, defaults to the current month"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var query dto.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err, "invalid dashboard query"))
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.Summary(c.Request.Context(), scope, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"cache_hit":          cacheHit,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
	response.JSON(c, http.StatusOK, summary, nil, meta)
}
