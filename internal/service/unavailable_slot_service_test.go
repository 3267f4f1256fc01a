package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-board-api/internal/dto"
	"github.com/noah-isme/lesson-board-api/internal/models"
	appErrors "github.com/noah-isme/lesson-board-api/pkg/errors"
)

type mockUnavailableRepo struct {
	slots   map[string]models.TeacherUnavailableSlot
	deleted []string
}

func newMockUnavailableRepo() *mockUnavailableRepo {
	return &mockUnavailableRepo{slots: map[string]models.TeacherUnavailableSlot{}}
}

func (m *mockUnavailableRepo) List(ctx context.Context, teacherID string) ([]models.TeacherUnavailableSlot, error) {
	var out []models.TeacherUnavailableSlot
	for _, slot := range m.slots {
		if teacherID == "" || slot.TeacherID == teacherID {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (m *mockUnavailableRepo) FindByID(ctx context.Context, id string) (*models.TeacherUnavailableSlot, error) {
	slot, ok := m.slots[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &slot, nil
}

func (m *mockUnavailableRepo) Create(ctx context.Context, slot *models.TeacherUnavailableSlot) error {
	slot.ID = "u" + slot.TeacherID
	m.slots[slot.ID] = *slot
	return nil
}

func (m *mockUnavailableRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.slots, id)
	return nil
}

func TestUnavailableSlotServiceCreateForSelf(t *testing.T) {
	repo := newMockUnavailableRepo()
	svc := NewUnavailableSlotService(repo, nil, nil)

	slot, err := svc.Create(context.Background(), teacherScope, dto.CreateUnavailableSlotRequest{Weekday: 1, StartMinutes: 1020, EndMinutes: 1070})
	require.NoError(t, err)
	assert.Equal(t, "t1", slot.TeacherID)

	listed, err := svc.List(context.Background(), teacherScope, "")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestUnavailableSlotServiceRejectsInvalidWeekday(t *testing.T) {
	svc := NewUnavailableSlotService(newMockUnavailableRepo(), nil, nil)

	_, err := svc.Create(context.Background(), teacherScope, dto.CreateUnavailableSlotRequest{Weekday: 7, StartMinutes: 1020, EndMinutes: 1070})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestUnavailableSlotServiceDeleteOwnership(t *testing.T) {
	repo := newMockUnavailableRepo()
	repo.slots["u2"] = models.TeacherUnavailableSlot{ID: "u2", TeacherID: "t2", Weekday: 2, StartMinutes: 1020, EndMinutes: 1070}
	svc := NewUnavailableSlotService(repo, nil, nil)

	err := svc.Delete(context.Background(), teacherScope, "u2")
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
	assert.Empty(t, repo.deleted)

	require.NoError(t, svc.Delete(context.Background(), adminScope, "u2"))
	assert.Equal(t, []string{"u2"}, repo.deleted)

	err = svc.Delete(context.Background(), adminScope, "u2")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
