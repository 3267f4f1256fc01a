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

type unavailableSlotRepository interface {
	List(ctx context.Context, teacherID string) ([]models.TeacherUnavailableSlot, error)
	FindByID(ctx context.Context, id string) (*models.TeacherUnavailableSlot, error)
	Create(ctx context.Context, slot *models.TeacherUnavailableSlot) error
	Delete(ctx context.Context, id string) error
}

// UnavailableSlotService manages recurring weekly blocks.
type UnavailableSlotService struct {
	repo      unavailableSlotRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUnavailableSlotService constructs the service.
func NewUnavailableSlotService(repo unavailableSlotRepository, validate *validator.Validate, logger *zap.Logger) *UnavailableSlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnavailableSlotService{repo: repo, validator: validate, logger: logger}
}

// List returns blocks visible to the scope.
func (s *UnavailableSlotService) List(ctx context.Context, scope models.AccessScope, teacherID string) ([]models.TeacherUnavailableSlot, error) {
	resolved, err := resolveTeacherID(scope, teacherID, true)
	if err != nil {
		return nil, err
	}
	slots, err := s.repo.List(ctx, resolved)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unavailable slots")
	}
	return slots, nil
}

// Create registers a block.
func (s *UnavailableSlotService) Create(ctx context.Context, scope models.AccessScope, req dto.CreateUnavailableSlotRequest) (*models.TeacherUnavailableSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unavailable slot payload")
	}
	teacherID, err := resolveTeacherID(scope, req.TeacherID, false)
	if err != nil {
		return nil, err
	}
	slot := &models.TeacherUnavailableSlot{
		TeacherID:    teacherID,
		Weekday:      req.Weekday,
		StartMinutes: req.StartMinutes,
		EndMinutes:   req.EndMinutes,
		Memo:         req.Memo,
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create unavailable slot")
	}
	return slot, nil
}

// Delete removes a block owned by the caller, or any block for admins.
func (s *UnavailableSlotService) Delete(ctx context.Context, scope models.AccessScope, id string) error {
	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "unavailable slot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load unavailable slot")
	}
	if !scope.CanAccessTeacher(slot.TeacherID) {
		return appErrors.Clone(appErrors.ErrForbidden, "cannot delete another teacher's block")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete unavailable slot")
	}
	return nil
}
