package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/middleware"
	"github.com/noah-isme/lesson-board-api/internal/models"
	"github.com/noah-isme/lesson-board-api/internal/service"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
)

type lessonScheduleServiceMock struct {
	lastScope models.AccessScope
	lastWeek  dto.WeekRangeRequest
	result    dto.WeekActionResponse
	rows      []models.LessonScheduleView
	file      *service.ExportFile
	err       error
}

func (m *lessonScheduleServiceMock) AutoSchedule(ctx context.Context, scope models.AccessScope, req dto.WeekRangeRequest) (dto.WeekActionResponse, error) {
	m.lastScope, m.lastWeek = scope, req
	return m.result, m.err
}

func (m *lessonScheduleServiceMock) ConfirmWeek(ctx context.Context, scope models.AccessScope, req dto.WeekRangeRequest) (dto.WeekActionResponse, error) {
	m.lastScope, m.lastWeek = scope, req
	return m.result, m.err
}

func (m *lessonScheduleServiceMock) List(ctx context.Context, scope models.AccessScope, query dto.LessonScheduleQuery) ([]models.LessonScheduleView, error) {
	m.lastScope = scope
	return m.rows, m.err
}

func (m *lessonScheduleServiceMock) Update(ctx context.Context, scope models.AccessScope, id string, req dto.UpdateLessonScheduleRequest) (*models.LessonSchedule, error) {
	return &models.LessonSchedule{ID: id}, m.err
}

func (m *lessonScheduleServiceMock) Delete(ctx context.Context, scope models.AccessScope, id string) error {
	return m.err
}

func (m *lessonScheduleServiceMock) Export(ctx context.Context, scope models.AccessScope, query dto.LessonScheduleQuery) (*service.ExportFile, error) {
	return m.file, m.err
}

func newAuthedContext(method, target string, body []byte, claims *models.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, w
}

var adminClaims = &models.JWTClaims{UserID: "a1", Role: models.RoleAdmin}

func TestLessonScheduleHandlerAutoScheduleReturnsBareBody(t *testing.T) {
	svc := &lessonScheduleServiceMock{result: dto.WeekActionResponse{Success: true, Count: 3}}
	h := NewLessonScheduleHandler(svc)
	c, w := newAuthedContext(http.MethodPost, "/lesson-schedules/auto-schedule", []byte(`{"weekStart":"2025-03-03","weekEnd":"2025-03-09"}`), adminClaims)

	h.AutoSchedule(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["count"])
	assert.Equal(t, "2025-03-03", svc.lastWeek.WeekStart)
	assert.Equal(t, models.RoleAdmin, svc.lastScope.Role)
}

func TestLessonScheduleHandlerAutoScheduleRejectsMalformedBody(t *testing.T) {
	h := NewLessonScheduleHandler(&lessonScheduleServiceMock{})
	c, w := newAuthedContext(http.MethodPost, "/lesson-schedules/auto-schedule", []byte(`{"weekStart":`), adminClaims)

	h.AutoSchedule(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLessonScheduleHandlerMapsServiceErrors(t *testing.T) {
	svc := &lessonScheduleServiceMock{err: appErrors.Clone(appErrors.ErrPreconditionFailed, "schedule setting not configured")}
	h := NewLessonScheduleHandler(svc)
	c, w := newAuthedContext(http.MethodPost, "/lesson-schedules/confirm", []byte(`{"weekStart":"2025-03-03","weekEnd":"2025-03-09"}`), adminClaims)

	h.Confirm(c)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	svc.err = appErrors.Clone(appErrors.ErrImmutable, "")
	c, w = newAuthedContext(http.MethodDelete, "/lesson-schedules/"+lessonID, nil, adminClaims)
	c.Params = gin.Params{{Key: "id", Value: lessonID}}
	h.Delete(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

const lessonID = "3f2c8a1e-6b7d-4c1a-9e2f-0a1b2c3d4e5f"

func TestLessonScheduleHandlerRejectsMalformedID(t *testing.T) {
	h := NewLessonScheduleHandler(&lessonScheduleServiceMock{})

	c, w := newAuthedContext(http.MethodDelete, "/lesson-schedules/x", nil, adminClaims)
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	h.Delete(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newAuthedContext(http.MethodPut, "/lesson-schedules/x", []byte(`{}`), adminClaims)
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	h.Update(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLessonScheduleHandlerListRequiresClaims(t *testing.T) {
	h := NewLessonScheduleHandler(&lessonScheduleServiceMock{})
	c, w := newAuthedContext(http.MethodGet, "/lesson-schedules?start=2025-03-03&end=2025-03-09", nil, nil)

	h.List(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLessonScheduleHandlerExportAttachment(t *testing.T) {
	svc := &lessonScheduleServiceMock{file: &service.ExportFile{Filename: "lessons.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("a,b\n")}}
	h := NewLessonScheduleHandler(svc)
	c, w := newAuthedContext(http.MethodGet, "/lesson-schedules/export?start=2025-03-03&end=2025-03-09&format=csv", nil, adminClaims)

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "lessons.csv")
	assert.Equal(t, "a,b\n", w.Body.String())
}
