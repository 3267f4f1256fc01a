package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	"github.com/noah-isme/lesson-board-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context, scope models.AccessScope, query dto.StudentQuery) ([]models.StudentView, *models.Pagination, error)
	Get(ctx context.Context, scope models.AccessScope, id string) (*dto.StudentDetail, error)
	Create(ctx context.Context, scope models.AccessScope, req dto.CreateStudentRequest) (*models.StudentView, error)
	Update(ctx context.Context, scope models.AccessScope, id string, req dto.UpdateStudentRequest) (*models.StudentView, error)
	Link(ctx context.Context, scope models.AccessScope, req dto.TeacherStudentRequest) error
	Unlink(ctx context.Context, scope models.AccessScope, req dto.TeacherStudentRequest) error
}

// StudentHandler exposes student roster endpoints.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(svc studentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// List godoc
// @Summary List students
// @Description Teachers only see students linked to them.
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by name or school"
// @Param grade query string false "Grade number, elementary-band, middle-band, high-band or all"
// @Param active query bool false "Filter by active flag"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var query dto.StudentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err, "invalid student query"))
		return
	}
	students, pagination, err := h.service.List(c.Request.Context(), scope, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Get godoc
// @Summary Get student with linked teachers and record timeline
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	student, err := h.service.Get(c.Request.Context(), scope, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid student payload"))
		return
	}
	student, err := h.service.Create(c.Request.Context(), scope, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Partially update student
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param payload body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [patch]
func (h *StudentHandler) Update(c *gin.Context) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid student payload"))
		return
	}
	student, err := h.service.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Link godoc
// @Summary Link teacher and student
// @Tags Students
// @Accept json
// @Security BearerAuth
// @Param payload body dto.TeacherStudentRequest true "Link"
// @Success 204
// @Router /teacher-students [post]
func (h *StudentHandler) Link(c *gin.Context) {
	h.linkAction(c, h.service.Link)
}

// Unlink godoc
// @Summary Unlink teacher and student
// @Tags Students
// @Accept json
// @Security BearerAuth
// @Param payload body dto.TeacherStudentRequest true "Link"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /teacher-students [delete]
func (h *StudentHandler) Unlink(c *gin.Context) {
	h.linkAction(c, h.service.Unlink)
}

func (h *StudentHandler) linkAction(c *gin.Context, run func(context.Context, models.AccessScope, dto.TeacherStudentRequest) error) {
	scope, ok := requireScope(c)
	if !ok {
		return
	}
	var req dto.TeacherStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid link payload"))
		return
	}
	if err := run(c.Request.Context(), scope, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
