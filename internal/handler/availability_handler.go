package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	"github.com/noah-isme/lesson-board-api/pkg/response"
)

type availabilityService interface {
	List(ctx context.Context, scope models.AccessScope, query dto.AvailabilityQuery) ([]models.TeacherAvailability, error)
	Set(ctx context.Context, scope models.AccessScope, req dto.SetAvailabilityRequest) (*models.TeacherAvailability, error)
	Replace(ctx context.Context, scope models.AccessScope, req dto.ReplaceAvailabilityRequest) (int, error)
}

// AvailabilityHandler serves date-specific teacher availability.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(svc availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc}
}

// List godoc
// @Summary List availability
// @Tags Teacher Availability
// @Produce json
// @Security BearerAuth
// @Param teacherId query string false "Teacher ID (admins)"
// @Param start query string true "Start date YYYY-MM-DD"
// @Param end query string true "End date YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /teacher-weekly-availability [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var query dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err, "invalid availability query"))
		return
	}
	rows, err := h.service.List(c.Request.Context(), scope, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Set godoc
// @Summary Upsert or clear one window
// @Tags Teacher Availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SetAvailabilityRequest true "Window"
// @Success 200 {object} response.Envelope
// @Router /teacher-weekly-availability [post]
func (h *AvailabilityHandler) Set(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var req dto.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid availability payload"))
		return
	}
	window, err := h.service.Set(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if window == nil {
		response.JSON(c, http.StatusOK, gin.H{"deleted": true}, nil)
		return
	}
	response.JSON(c, http.StatusOK, window, nil)
}

// Replace godoc
// @Summary Replace windows in a range
// @Tags Teacher Availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ReplaceAvailabilityRequest true "Windows"
// @Success 200 {object} response.Envelope
// @Router /teacher-weekly-availability [put]
func (h *AvailabilityHandler) Replace(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var req dto.ReplaceAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid availability payload"))
		return
	}
	count, err := h.service.Replace(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"count": count}, nil)
}
