package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
)

type dailyRecordRepository interface {
	Upsert(ctx context.Context, record *models.DailyRecord) error
	List(ctx context.Context, scope models.AccessScope, filter models.DailyRecordFilter) ([]models.DailyRecordView, error)
}

type scopedStudentFinder interface {
	FindByID(ctx context.Context, scope models.AccessScope, id string) (*models.Student, error)
}

type lessonDayFinder interface {
	FindByID(ctx context.Context, id string) (*models.LessonDay, error)
}

// DailyRecordService records attendance and homework per lesson day.
type DailyRecordService struct {
	repo       dailyRecordRepository
	students   scopedStudentFinder
	lessonDays lessonDayFinder
	cache      cacheInvalidator
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewDailyRecordService constructs the service. Saved records drop cached dashboards through cache.
func NewDailyRecordService(repo dailyRecordRepository, students scopedStudentFinder, lessonDays lessonDayFinder, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *DailyRecordService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyRecordService{repo: repo, students: students, lessonDays: lessonDays, cache: cache, validator: validate, logger: logger}
}

// Upsert writes the record for (student, lesson day). The actor becomes the recording teacher.
func (s *DailyRecordService) Upsert(ctx context.Context, scope models.AccessScope, req dto.UpsertDailyRecordRequest) (*models.DailyRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid daily record payload")
	}
	if _, err := s.students.FindByID(ctx, scope, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if scope.IsAdmin() {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
			}
			return nil, appErrors.Clone(appErrors.ErrForbidden, "student is not assigned to you")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if _, err := s.lessonDays.FindByID(ctx, req.LessonDayID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson day not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lesson day")
	}

	record := &models.DailyRecord{
		StudentID:        req.StudentID,
		LessonDayID:      req.LessonDayID,
		AttendanceStatus: models.AttendanceNone,
		HomeworkStatus:   models.HomeworkNone,
		Memo:             req.Memo,
	}
	if scope.UserID != "" {
		actor := scope.UserID
		record.TeacherID = &actor
	}
	if req.AttendanceStatus != "" {
		record.AttendanceStatus = models.AttendanceStatus(req.AttendanceStatus)
	}
	if req.HomeworkStatus != "" {
		record.HomeworkStatus = models.HomeworkStatus(req.HomeworkStatus)
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save daily record")
	}
	invalidateDashboards(ctx, s.cache)
	return record, nil
}

// List returns records visible to the scope.
func (s *DailyRecordService) List(ctx context.Context, scope models.AccessScope, query dto.DailyRecordQuery) ([]models.DailyRecordView, error) {
	filter := models.DailyRecordFilter{StudentID: query.StudentID, LessonDayID: query.LessonDayID}
	if query.Start != "" {
		start, err := ParseDate(query.Start)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start date")
		}
		filter.Start = &start
	}
	if query.End != "" {
		end, err := ParseDate(query.End)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end date")
		}
		filter.End = &end
	}
	rows, err := s.repo.List(ctx, scope, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list daily records")
	}
	return rows, nil
}
