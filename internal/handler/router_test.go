package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
)

type tokenStub map[string]*models.JWTClaims

func (s tokenStub) ValidateToken(token string) (*models.JWTClaims, error) {
	claims, ok := s[token]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return claims, nil
}

type authServiceMock struct{}

func (authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if req.Password != "secret123" {
		return nil, appErrors.ErrInvalidCredentials
	}
	return &models.LoginResponse{AccessToken: "token"}, nil
}

func (authServiceMock) Me(ctx context.Context, userID string) (*models.UserInfo, error) {
	return &models.UserInfo{ID: userID, Role: models.RoleTeacher}, nil
}

func newTestRouter(lessons *lessonScheduleServiceMock, checks map[string]ReadinessCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, "/api/v1", Handlers{
		Auth:            NewAuthHandler(authServiceMock{}),
		ScheduleSetting: NewScheduleSettingHandler(nil),
		Availability:    NewAvailabilityHandler(nil),
		Unavailable:     NewUnavailableSlotHandler(nil),
		LessonSchedule:  NewLessonScheduleHandler(lessons),
		Teacher:         NewTeacherHandler(nil),
		Student:         NewStudentHandler(nil),
		DailyRecord:     NewDailyRecordHandler(nil, nil),
		Dashboard:       NewDashboardHandler(nil),
		Metrics:         NewMetricsHandler(nil, checks),
	}, tokenStub{
		"admin":   {UserID: "a1", Role: models.RoleAdmin},
		"teacher": {UserID: "t1", Role: models.RoleTeacher},
	})
	return r
}

func do(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterGuardsLessonMutations(t *testing.T) {
	lessons := &lessonScheduleServiceMock{}
	r := newTestRouter(lessons, nil)
	week := `{"weekStart":"2025-03-03","weekEnd":"2025-03-09"}`

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/v1/lesson-schedules/auto-schedule", "", week).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/api/v1/lesson-schedules/auto-schedule", "teacher", week).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/lesson-schedules/auto-schedule", "admin", week).Code)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/lesson-schedules?start=2025-03-03&end=2025-03-09", "teacher", "").Code)
	assert.Equal(t, "t1", lessons.lastScope.UserID)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/v1/teachers", "teacher", "").Code)
}

func TestRouterRejectsMalformedIDs(t *testing.T) {
	r := newTestRouter(&lessonScheduleServiceMock{}, nil)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/teachers/not-a-uuid", "admin", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodDelete, "/api/v1/teachers/not-a-uuid", "admin", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/students/not-a-uuid", "teacher", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, "/api/v1/students/not-a-uuid", "admin", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodDelete, "/api/v1/teacher-unavailable/not-a-uuid", "teacher", "").Code)
}

func TestRouterLogin(t *testing.T) {
	r := newTestRouter(&lessonScheduleServiceMock{}, nil)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/auth/login", "", `{"email":"a@b.c","password":"secret123"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/v1/auth/login", "", `{"email":"a@b.c","password":"nope"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/v1/auth/login", "", `{`).Code)

	w := do(r, http.MethodGet, "/api/v1/auth/me", "teacher", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"t1"`)
}

func TestRouterReadiness(t *testing.T) {
	healthy := newTestRouter(&lessonScheduleServiceMock{}, map[string]ReadinessCheck{
		"database": func(ctx context.Context) error { return nil },
	})
	assert.Equal(t, http.StatusOK, do(healthy, http.MethodGet, "/ready", "", "").Code)
	assert.Equal(t, http.StatusOK, do(healthy, http.MethodGet, "/health", "", "").Code)

	failing := newTestRouter(&lessonScheduleServiceMock{}, map[string]ReadinessCheck{
		"database": func(ctx context.Context) error { return nil },
		"cache":    func(ctx context.Context) error { return errors.New("connection refused") },
	})
	w := do(failing, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
	assert.Equal(t, http.StatusServiceUnavailable, do(failing, http.MethodGet, "/metrics", "", "").Code)
}
