package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
)

type lessonDayRepository interface {
	ListRange(ctx context.Context, start, end time.Time) ([]models.LessonDay, error)
	ListMonth(ctx context.Context, year, month int) ([]models.LessonDay, error)
	FindByID(ctx context.Context, id string) (*models.LessonDay, error)
	InsertMissing(ctx context.Context, days []models.LessonDay) error
}

// LessonDayService maintains the weekly anchors used by daily records.
type LessonDayService struct {
	repo      lessonDayRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLessonDayService constructs the service.
func NewLessonDayService(repo lessonDayRepository, validate *validator.Validate, logger *zap.Logger) *LessonDayService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonDayService{repo: repo, validator: validate, logger: logger}
}

// BuildMonthLessonDays returns one lesson day per Sunday-start week that
// overlaps the month. Each row carries the year and month of its Sunday.
func BuildMonthLessonDays(year, month int) []models.LessonDay {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	cursor := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))

	var days []models.LessonDay
	for !cursor.After(monthEnd) {
		label := fmt.Sprintf("%d.%d~", int(cursor.Month()), cursor.Day())
		days = append(days, models.LessonDay{
			Date:        cursor,
			Year:        cursor.Year(),
			Month:       int(cursor.Month()),
			WeekOfMonth: (cursor.Day()-1+6)/7 + 1,
			WeekLabel:   &label,
			HasHomework: true,
		})
		cursor = cursor.AddDate(0, 0, 7)
	}
	return days
}

// EnsureMonth inserts the missing lesson days of a month and returns the
// stored rows of that month.
func (s *LessonDayService) EnsureMonth(ctx context.Context, scope models.AccessScope, req dto.EnsureLessonDaysRequest) ([]models.LessonDay, error) {
	if err := requireAdmin(scope); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson day payload")
	}
	days := BuildMonthLessonDays(req.Year, req.Month)
	if err := s.repo.InsertMissing(ctx, days); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lesson days")
	}
	stored, err := s.repo.ListMonth(ctx, req.Year, req.Month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lesson days")
	}
	s.logger.Info("lesson days ensured", zap.Int("year", req.Year), zap.Int("month", req.Month), zap.Int("count", len(stored)))
	return stored, nil
}

// List returns lesson days in the optional range. Missing bounds are open.
func (s *LessonDayService) List(ctx context.Context, start, end string) ([]models.LessonDay, error) {
	from := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	var err error
	if start != "" {
		if from, err = ParseDate(start); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start date")
		}
	}
	if end != "" {
		if to, err = ParseDate(end); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end date")
		}
	}
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date is before start date")
	}
	days, err := s.repo.ListRange(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lesson days")
	}
	return days, nil
}

// Get fetches a lesson day by ID.
func (s *LessonDayService) Get(ctx context.Context, id string) (*models.LessonDay, error) {
	day, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson day not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lesson day")
	}
	return day, nil
}
