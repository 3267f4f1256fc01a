package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
)

type availabilityRepository interface {
	List(ctx context.Context, teacherID string, start, end time.Time) ([]models.TeacherAvailability, error)
	Upsert(ctx context.Context, window *models.TeacherAvailability) error
	DeleteWindow(ctx context.Context, teacherID string, date time.Time, start, end int) (int64, error)
	ReplaceRange(ctx context.Context, teacherID string, start, end time.Time, windows []models.TeacherAvailability) (int, error)
}

type teacherFinder interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

// AvailabilityService manages date-specific teacher availability.
type AvailabilityService struct {
	repo      availabilityRepository
	teachers  teacherFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService constructs the service.
func NewAvailabilityService(repo availabilityRepository, teachers teacherFinder, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, teachers: teachers, validator: validate, logger: logger}
}

// List returns windows in the requested range visible to the scope.
func (s *AvailabilityService) List(ctx context.Context, scope models.AccessScope, query dto.AvailabilityQuery) ([]models.TeacherAvailability, error) {
	teacherID, err := resolveTeacherID(scope, query.TeacherID, true)
	if err != nil {
		return nil, err
	}
	start, end, err := parseDateRange(query.Start, query.End)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, teacherID, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}
	return rows, nil
}

// Set stores one window. A window flagged unavailable removes the exact
// matching row instead; the returned window is then nil.
func (s *AvailabilityService) Set(ctx context.Context, scope models.AccessScope, req dto.SetAvailabilityRequest) (*models.TeacherAvailability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	teacherID, err := s.resolveTeacher(ctx, scope, req.TeacherID)
	if err != nil {
		return nil, err
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}

	if !req.Available() {
		if _, err := s.repo.DeleteWindow(ctx, teacherID, date, req.StartMinutes, req.EndMinutes); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear availability")
		}
		return nil, nil
	}

	window := &models.TeacherAvailability{
		TeacherID:    teacherID,
		Date:         date,
		StartMinutes: req.StartMinutes,
		EndMinutes:   req.EndMinutes,
		IsAvailable:  true,
		Memo:         req.Memo,
	}
	if err := s.repo.Upsert(ctx, window); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save availability")
	}
	return window, nil
}

// Replace swaps every window of the teacher in the range for the submitted
// available ones and returns how many were stored.
func (s *AvailabilityService) Replace(ctx context.Context, scope models.AccessScope, req dto.ReplaceAvailabilityRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	teacherID, err := s.resolveTeacher(ctx, scope, req.TeacherID)
	if err != nil {
		return 0, err
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return 0, err
	}

	windows := make([]models.TeacherAvailability, 0, len(req.Windows))
	for _, w := range req.Windows {
		date, err := ParseDate(w.Date)
		if err != nil {
			return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid window date")
		}
		if date.Before(start) || date.After(end) {
			return 0, appErrors.Clone(appErrors.ErrValidation, "window "+w.Date+" is outside the submitted range")
		}
		if !w.Available() {
			continue
		}
		windows = append(windows, models.TeacherAvailability{
			Date:         date,
			StartMinutes: w.StartMinutes,
			EndMinutes:   w.EndMinutes,
			IsAvailable:  true,
			Memo:         w.Memo,
		})
	}

	inserted, err := s.repo.ReplaceRange(ctx, teacherID, start, end, windows)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace availability")
	}
	s.logger.Info("availability replaced",
		zap.String("teacher_id", teacherID),
		zap.String("start", DateKey(start)),
		zap.String("end", DateKey(end)),
		zap.Int("windows", inserted),
	)
	return inserted, nil
}

func (s *AvailabilityService) resolveTeacher(ctx context.Context, scope models.AccessScope, requested string) (string, error) {
	teacherID, err := resolveTeacherID(scope, requested, false)
	if err != nil {
		return "", err
	}
	if s.teachers == nil || !scope.IsAdmin() {
		return teacherID, nil
	}
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacherID, nil
}
