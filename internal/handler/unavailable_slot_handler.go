package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	"github.com/noah-isme/lesson-board-api/pkg/response"
)

type unavailableSlotService interface {
	List(ctx context.Context, scope models.AccessScope, teacherID string) ([]models.TeacherUnavailableSlot, error)
	Create(ctx context.Context, scope models.AccessScope, req dto.CreateUnavailableSlotRequest) (*models.TeacherUnavailableSlot, error)
	Delete(ctx context.Context, scope models.AccessScope, id string) error
}

// UnavailableSlotHandler serves recurring weekly blocks.
type UnavailableSlotHandler struct {
	service unavailableSlotService
}

// NewUnavailableSlotHandler constructs the handler.
func NewUnavailableSlotHandler(svc unavailableSlotService) *UnavailableSlotHandler {
	return &UnavailableSlotHandler{service: svc}
}

// List godoc
// @Summary List recurring blocks
// @Tags Teacher Availability
// @Produce json
// @Security BearerAuth
// @Param teacherId query string false "Teacher ID (admins)"
// @Success 200 {object} response.Envelope
// @Router /teacher-unavailable [get]
func (h *UnavailableSlotHandler) List(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	slots, err := h.service.List(c.Request.Context(), scope, c.Query("teacherId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// Create godoc
// @Summary Create recurring block
// @Tags Teacher Availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateUnavailableSlotRequest true "Block"
// @Success 201 {object} response.Envelope
// @Router /teacher-unavailable [post]
func (h *UnavailableSlotHandler) Create(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var req dto.CreateUnavailableSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid unavailable slot payload"))
		return
	}
	slot, err := h.service.Create(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// Delete godoc
// @Summary Delete recurring block
// @Tags Teacher Availability
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Success 204
// @Router /teacher-unavailable/{id} [delete]
func (h *UnavailableSlotHandler) Delete(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), scope, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
