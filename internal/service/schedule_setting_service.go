package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
)

type scheduleSettingRepository interface {
	Find(ctx context.Context) (*models.ScheduleSetting, error)
	Create(ctx context.Context, setting *models.ScheduleSetting) error
	Update(ctx context.Context, setting *models.ScheduleSetting) error
}

type unavailableSlotLister interface {
	List(ctx context.Context, teacherID string) ([]models.TeacherUnavailableSlot, error)
}

// DefaultScheduleSetting returns the configuration created on first read.
func DefaultScheduleSetting(timezone string) models.ScheduleSetting {
	if timezone == "" {
		timezone = "Asia/Seoul"
	}
	return models.ScheduleSetting{
		Weekdays:              pq.Int64Array{0, 1, 2, 3, 4, 5, 6},
		StartTimeMinutes:      17 * 60,
		EndTimeMinutes:        22 * 60,
		LessonDurationMinutes: 50,
		BreakDurationMinutes:  10,
		Timezone:              timezone,
	}
}

// ScheduleSettingService manages the operating configuration and its slot grid.
type ScheduleSettingService struct {
	repo            scheduleSettingRepository
	blocks          unavailableSlotLister
	validator       *validator.Validate
	logger          *zap.Logger
	defaultTimezone string
}

// NewScheduleSettingService constructs the service.
func NewScheduleSettingService(repo scheduleSettingRepository, blocks unavailableSlotLister, validate *validator.Validate, logger *zap.Logger, defaultTimezone string) *ScheduleSettingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleSettingService{repo: repo, blocks: blocks, validator: validate, logger: logger, defaultTimezone: defaultTimezone}
}

// Get returns the stored setting, creating the default one when none exists.
func (s *ScheduleSettingService) Get(ctx context.Context) (*models.ScheduleSetting, error) {
	setting, err := s.repo.Find(ctx)
	if err == nil {
		return setting, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule setting")
	}
	created := DefaultScheduleSetting(s.defaultTimezone)
	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule setting")
	}
	s.logger.Info("schedule setting initialised with defaults", zap.String("id", created.ID))
	return &created, nil
}

// Require returns the stored setting without creating one. A missing setting
// is a precondition failure for the scheduler.
func (s *ScheduleSettingService) Require(ctx context.Context) (*models.ScheduleSetting, error) {
	setting, err := s.repo.Find(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "schedule setting not configured")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule setting")
	}
	return setting, nil
}

// Update validates and stores a new configuration.
func (s *ScheduleSettingService) Update(ctx context.Context, req dto.UpdateScheduleSettingRequest) (*models.ScheduleSetting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule setting payload")
	}
	if req.EndTimeMinutes-req.StartTimeMinutes < req.LessonDurationMinutes {
		return nil, appErrors.Clone(appErrors.ErrValidation, "operating window must fit at least one lesson")
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown timezone")
		}
	}

	setting, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	setting.Weekdays = dedupeWeekdays(req.Weekdays)
	setting.StartTimeMinutes = req.StartTimeMinutes
	setting.EndTimeMinutes = req.EndTimeMinutes
	setting.LessonDurationMinutes = req.LessonDurationMinutes
	setting.BreakDurationMinutes = req.BreakDurationMinutes
	if req.Timezone != "" {
		setting.Timezone = req.Timezone
	}
	if err := s.repo.Update(ctx, setting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule setting")
	}
	return setting, nil
}

// Slots renders the weekly slot grid. When a teacher is resolved their
// recurring blocks are flagged on the matching slots.
func (s *ScheduleSettingService) Slots(ctx context.Context, scope models.AccessScope, teacherID string) (*dto.SlotGridResponse, error) {
	setting, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	teacherID, err = resolveTeacherID(scope, teacherID, true)
	if err != nil {
		return nil, err
	}
	var blocks []models.TeacherUnavailableSlot
	if teacherID != "" && s.blocks != nil {
		blocks, err = s.blocks.List(ctx, teacherID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load unavailable slots")
		}
	}

	slots := GenerateWeeklySlots(*setting)
	views := make([]dto.SlotView, 0, len(slots))
	for _, slot := range slots {
		slot.Label = SlotLabel(slot)
		views = append(views, dto.SlotView{TimeSlot: slot, Blocked: IsSlotBlocked(slot, blocks)})
	}
	return &dto.SlotGridResponse{Setting: setting, Slots: views}, nil
}

func dedupeWeekdays(days []int) pq.Int64Array {
	seen := make(map[int]bool, len(days))
	out := make(pq.Int64Array, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, int64(d))
	}
	return out
}
