package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	"github.com/noah-isme/lesson-board-api/internal/service"
	"github.com/noah-isme/lesson-board-api/pkg/response"
)

type lessonScheduleService interface {
	AutoSchedule(ctx context.Context, scope models.AccessScope, req dto.WeekRangeRequest) (dto.WeekActionResponse, error)
	ConfirmWeek(ctx context.Context, scope models.AccessScope, req dto.WeekRangeRequest) (dto.WeekActionResponse, error)
	List(ctx context.Context, scope models.AccessScope, query dto.LessonScheduleQuery) ([]models.LessonScheduleView, error)
	Update(ctx context.Context, scope models.AccessScope, id string, req dto.UpdateLessonScheduleRequest) (*models.LessonSchedule, error)
	Delete(ctx context.Context, scope models.AccessScope, id string) error
	Export(ctx context.Context, scope models.AccessScope, query dto.LessonScheduleQuery) (*service.ExportFile, error)
}

// LessonScheduleHandler serves the lesson board.
type LessonScheduleHandler struct {
	service lessonScheduleService
}

// NewLessonScheduleHandler constructs the handler.
func NewLessonScheduleHandler(svc lessonScheduleService) *LessonScheduleHandler {
	return &LessonScheduleHandler{service: svc}
}

// List godoc
// @Summary Lesson board
// @Description Teachers only receive their own lessons.
// @Tags Lesson Schedules
// @Produce json
// @Security BearerAuth
// @Param start query string true "Start date YYYY-MM-DD"
// @Param end query string true "End date YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /lesson-schedules [get]
func (h *LessonScheduleHandler) List(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var query dto.LessonScheduleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err, "invalid lesson query"))
		return
	}
	rows, err := h.service.List(c.Request.Context(), scope, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Export godoc
// @Summary Export lesson board
// @Tags Lesson Schedules
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param start query string true "Start date YYYY-MM-DD"
// @Param end query string true "End date YYYY-MM-DD"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /lesson-schedules/export [get]
func (h *LessonScheduleHandler) Export(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var query dto.LessonScheduleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err, "invalid export query"))
		return
	}
	file, err := h.service.Export(c.Request.Context(), scope, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// AutoSchedule godoc
// @Summary Generate draft lessons for a week
// @Description Replaces the week's DRAFT lessons with a fresh greedy assignment.
// @Tags Lesson Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.WeekRangeRequest true "Week"
// @Success 200 {object} dto.WeekActionResponse
// @Failure 400 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /lesson-schedules/auto-schedule [post]
func (h *LessonScheduleHandler) AutoSchedule(c *gin.Context) {
	h.weekAction(c, h.service.AutoSchedule)
}

// Confirm godoc
// @Summary Confirm a week
// @Tags Lesson Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.WeekRangeRequest true "Week"
// @Success 200 {object} dto.WeekActionResponse
// @Router /lesson-schedules/confirm [post]
func (h *LessonScheduleHandler) Confirm(c *gin.Context) {
	h.weekAction(c, h.service.ConfirmWeek)
}

// weekAction writes the bare {success, count} body without the envelope.
func (h *LessonScheduleHandler) weekAction(c *gin.Context, run func(context.Context, models.AccessScope, dto.WeekRangeRequest) (dto.WeekActionResponse, error)) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var req dto.WeekRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "weekStart and weekEnd are required"))
		return
	}
	result, err := run(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Update godoc
// @Summary Edit a draft lesson
// @Tags Lesson Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lesson ID"
// @Param payload body dto.UpdateLessonScheduleRequest true "Lesson"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /lesson-schedules/{id} [put]
func (h *LessonScheduleHandler) Update(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateLessonScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid lesson payload"))
		return
	}
	lesson, err := h.service.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lesson, nil)
}

// Delete godoc
// @Summary Delete a draft lesson
// @Tags Lesson Schedules
// @Security BearerAuth
// @Param id path string true "Lesson ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /lesson-schedules/{id} [delete]
func (h *LessonScheduleHandler) Delete(c *gin.Context) {
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
