package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, scope models.AccessScope, filter models.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, scope models.AccessScope, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
}

type teacherStudentRepository interface {
	Link(ctx context.Context, teacherID, studentID string) error
	Unlink(ctx context.Context, teacherID, studentID string) (bool, error)
	ListTeachers(ctx context.Context, studentID string) ([]models.LinkedTeacher, error)
}

type studentRecordReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.StudentRecordEntry, error)
}

var gradeBands = map[string][2]int{
	"elementary":      {1, 6},
	"elementary-band": {1, 6},
	"middle":          {7, 9},
	"middle-band":     {7, 9},
	"high":            {10, 12},
	"high-band":       {10, 12},
}

// StudentService handles roster reads and admin edits of students.
type StudentService struct {
	repo      studentRepository
	links     teacherStudentRepository
	teachers  teacherFinder
	records   studentRecordReader
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService builds a StudentService. Roster changes drop cached dashboards through cache.
func NewStudentService(repo studentRepository, links teacherStudentRepository, teachers teacherFinder, records studentRecordReader, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, links: links, teachers: teachers, records: records, cache: cache, validator: validate, logger: logger}
}

// ParseGradeFilter converts "3", "middle-band" or "all" into an inclusive range.
// Zero bounds mean unfiltered.
func ParseGradeFilter(value string) (int, int, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == "all" {
		return 0, 0, nil
	}
	if band, ok := gradeBands[value]; ok {
		return band[0], band[1], nil
	}
	grade, err := strconv.Atoi(value)
	if err != nil || grade < 1 || grade > 12 {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "invalid grade filter")
	}
	return grade, grade, nil
}

// List returns students visible to the scope with grade labels.
func (s *StudentService) List(ctx context.Context, scope models.AccessScope, query dto.StudentQuery) ([]models.StudentView, *models.Pagination, error) {
	minGrade, maxGrade, err := ParseGradeFilter(query.Grade)
	if err != nil {
		return nil, nil, err
	}
	filter := models.StudentFilter{
		Search:   strings.TrimSpace(query.Search),
		GradeMin: minGrade,
		GradeMax: maxGrade,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Active != "" {
		active, err := strconv.ParseBool(query.Active)
		if err != nil {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "invalid active filter")
		}
		filter.Active = &active
	}

	students, total, err := s.repo.List(ctx, scope, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	views := make([]models.StudentView, 0, len(students))
	for _, student := range students {
		views = append(views, toStudentView(student))
	}

	return views, paginate(filter.Page, filter.PageSize, total), nil
}

// Get fetches a student visible to the scope with its teachers and records.
func (s *StudentService) Get(ctx context.Context, scope models.AccessScope, id string) (*dto.StudentDetail, error) {
	student, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	detail := &dto.StudentDetail{
		StudentView: toStudentView(*student),
		Teachers:    []models.LinkedTeacher{},
		Records:     []models.StudentRecordEntry{},
	}
	teachers, err := s.links.ListTeachers(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student teachers")
	}
	if teachers != nil {
		detail.Teachers = teachers
	}
	if s.records != nil {
		records, err := s.records.ListByStudent(ctx, student.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student records")
		}
		if records != nil {
			detail.Records = records
		}
	}
	return detail, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, scope models.AccessScope, req dto.CreateStudentRequest) (*models.StudentView, error) {
	if err := requireAdmin(scope); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if req.TeacherID != nil {
		if err := s.requireTeacher(ctx, *req.TeacherID); err != nil {
			return nil, err
		}
	}
	student := &models.Student{
		Name:        req.Name,
		GradeNumber: req.GradeNumber,
		School:      req.School,
		Active:      true,
		IsOnline:    req.IsOnline,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	if req.TeacherID != nil {
		if err := s.links.Link(ctx, *req.TeacherID, student.ID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to link student")
		}
	}
	invalidateDashboards(ctx, s.cache)
	view := toStudentView(*student)
	return &view, nil
}

// Update applies the supplied fields only.
func (s *StudentService) Update(ctx context.Context, scope models.AccessScope, id string, req dto.UpdateStudentRequest) (*models.StudentView, error) {
	if err := requireAdmin(scope); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "name cannot be blank")
		}
		student.Name = name
	}
	if req.GradeNumber != nil {
		student.GradeNumber = *req.GradeNumber
	}
	if req.School != nil {
		student.School = req.School
	}
	if req.Active != nil {
		student.Active = *req.Active
	}
	if req.IsOnline != nil {
		student.IsOnline = *req.IsOnline
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	invalidateDashboards(ctx, s.cache)
	view := toStudentView(*student)
	return &view, nil
}

// Link assigns a student to a teacher. Repeated links are no-ops.
func (s *StudentService) Link(ctx context.Context, scope models.AccessScope, req dto.TeacherStudentRequest) error {
	if err := requireAdmin(scope); err != nil {
		return err
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid link payload")
	}
	if err := s.requireTeacher(ctx, req.TeacherID); err != nil {
		return err
	}
	if _, err := s.find(ctx, scope, req.StudentID); err != nil {
		return err
	}
	if err := s.links.Link(ctx, req.TeacherID, req.StudentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to link student")
	}
	invalidateDashboards(ctx, s.cache)
	return nil
}

// Unlink removes a teacher and student association.
func (s *StudentService) Unlink(ctx context.Context, scope models.AccessScope, req dto.TeacherStudentRequest) error {
	if err := requireAdmin(scope); err != nil {
		return err
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid link payload")
	}
	removed, err := s.links.Unlink(ctx, req.TeacherID, req.StudentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unlink student")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "link not found")
	}
	invalidateDashboards(ctx, s.cache)
	return nil
}

func (s *StudentService) requireTeacher(ctx context.Context, teacherID string) error {
	if s.teachers == nil {
		return nil
	}
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return nil
}

func (s *StudentService) find(ctx context.Context, scope models.AccessScope, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

func toStudentView(student models.Student) models.StudentView {
	return models.StudentView{Student: student, GradeLabel: models.GradeLabel(student.GradeNumber)}
}
