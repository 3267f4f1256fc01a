package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	"github.com/noah-isme/lesson-board-api/pkg/response"
)

type scheduleSettingService interface {
	Get(ctx context.Context) (*models.ScheduleSetting, error)
	Update(ctx context.Context, req dto.UpdateScheduleSettingRequest) (*models.ScheduleSetting, error)
	Slots(ctx context.Context, scope models.AccessScope, teacherID string) (*dto.SlotGridResponse, error)
}

// ScheduleSettingHandler exposes the operating hours configuration.
type ScheduleSettingHandler struct {
	service scheduleSettingService
}

// NewScheduleSettingHandler constructs the handler.
func NewScheduleSettingHandler(svc scheduleSettingService) *ScheduleSettingHandler {
	return &ScheduleSettingHandler{service: svc}
}

// Get godoc
// @Summary Get schedule setting
// @Tags Schedule Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /schedule-settings [get]
func (h *ScheduleSettingHandler) Get(c *gin.Context) {
	setting, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setting, nil)
}

// Update godoc
// @Summary Update schedule setting
// @Tags Schedule Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateScheduleSettingRequest true "Setting payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule-settings [put]
func (h *ScheduleSettingHandler) Update(c *gin.Context) {
	var req dto.UpdateScheduleSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid schedule setting payload"))
		return
	}
	setting, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setting, nil)
}

// Slots godoc
// @Summary Weekly slot grid
// @Description Lists generated slots per weekday. Recurring blocks of the resolved teacher are flagged.
// @Tags Schedule Settings
// @Produce json
// @Security BearerAuth
// @Param teacherId query string false "Teacher ID (admins)"
// @Success 200 {object} response.Envelope
// @Router /schedule-settings/slots [get]
func (h *ScheduleSettingHandler) Slots(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	grid, err := h.service.Slots(c.Request.Context(), scope, c.Query("teacherId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}
