package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

// UnavailableSlotRepository stores recurring weekly blocks.
type UnavailableSlotRepository struct {
	db *sqlx.DB
}

// NewUnavailableSlotRepository constructs the repository.
func NewUnavailableSlotRepository(db *sqlx.DB) *UnavailableSlotRepository {
	return &UnavailableSlotRepository{db: db}
}

// List returns blocks for a teacher, or for everyone when teacherID is empty.
func (r *UnavailableSlotRepository) List(ctx context.Context, teacherID string) ([]models.TeacherUnavailableSlot, error) {
	query := `SELECT id, teacher_id, weekday, start_minutes, end_minutes, memo, created_at FROM teacher_unavailable_slots`
	var args []interface{}
	if teacherID != "" {
		query += " WHERE teacher_id = $1"
		args = append(args, teacherID)
	}
	query += " ORDER BY weekday ASC, start_minutes ASC"
	var slots []models.TeacherUnavailableSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("list unavailable slots: %w", err)
	}
	return slots, nil
}

// FindByID fetches a block by ID.
func (r *UnavailableSlotRepository) FindByID(ctx context.Context, id string) (*models.TeacherUnavailableSlot, error) {
	const query = `SELECT id, teacher_id, weekday, start_minutes, end_minutes, memo, created_at FROM teacher_unavailable_slots WHERE id = $1`
	var slot models.TeacherUnavailableSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create inserts a block.
func (r *UnavailableSlotRepository) Create(ctx context.Context, slot *models.TeacherUnavailableSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	slot.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO teacher_unavailable_slots (id, teacher_id, weekday, start_minutes, end_minutes, memo, created_at)
        VALUES (:id, :teacher_id, :weekday, :start_minutes, :end_minutes, :memo, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create unavailable slot: %w", err)
	}
	return nil
}

// Delete removes a block.
func (r *UnavailableSlotRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teacher_unavailable_slots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete unavailable slot: %w", err)
	}
	return nil
}
