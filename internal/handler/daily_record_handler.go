package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	"github.com/noah-isme/lesson-board-api/pkg/response"
)

type lessonDayService interface {
	EnsureMonth(ctx context.Context, scope models.AccessScope, req dto.EnsureLessonDaysRequest) ([]models.LessonDay, error)
	List(ctx context.Context, start, end string) ([]models.LessonDay, error)
}

type dailyRecordService interface {
	Upsert(ctx context.Context, scope models.AccessScope, req dto.UpsertDailyRecordRequest) (*models.DailyRecord, error)
	List(ctx context.Context, scope models.AccessScope, query dto.DailyRecordQuery) ([]models.DailyRecordView, error)
}

// DailyRecordHandler serves lesson days and the attendance/homework records attached to them.
type DailyRecordHandler struct {
	lessonDays lessonDayService
	records    dailyRecordService
}

// NewDailyRecordHandler constructs the handler.
func NewDailyRecordHandler(lessonDays lessonDayService, records dailyRecordService) *DailyRecordHandler {
	return &DailyRecordHandler{lessonDays: lessonDays, records: records}
}

// ListLessonDays godoc
// @Summary List lesson days
// @Tags Daily Records
// @Produce json
// @Security BearerAuth
// @Param start query string false "Start date YYYY-MM-DD"
// @Param end query string false "End date YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /lesson-days [get]
func (h *DailyRecordHandler) ListLessonDays(c *gin.Context) {
	days, err := h.lessonDays.List(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days, nil)
}

// EnsureLessonDays godoc
// @Summary Create the lesson days of a month
// @Tags Daily Records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.EnsureLessonDaysRequest true "Month"
// @Success 200 {object} response.Envelope
// @Router /lesson-days [post]
func (h *DailyRecordHandler) EnsureLessonDays(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var req dto.EnsureLessonDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "year, month are required"))
		return
	}
	days, err := h.lessonDays.EnsureMonth(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days, nil)
}

// ListRecords godoc
// @Summary List daily records
// @Tags Daily Records
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Student ID"
// @Param lessonDayId query string false "Lesson day ID"
// @Param start query string false "Start date YYYY-MM-DD"
// @Param end query string false "End date YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /daily-records [get]
func (h *DailyRecordHandler) ListRecords(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var query dto.DailyRecordQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err, "invalid daily record query"))
		return
	}
	rows, err := h.records.List(c.Request.Context(), scope, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// UpsertRecord godoc
// @Summary Record attendance and homework
// @Tags Daily Records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpsertDailyRecordRequest true "Record"
// @Success 200 {object} response.Envelope
// @Router /daily-records [post]
func (h *DailyRecordHandler) UpsertRecord(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var req dto.UpsertDailyRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid daily record payload"))
		return
	}
	record, err := h.records.Upsert(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}
