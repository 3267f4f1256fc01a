package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

// ScheduleSettingRepository persists the singleton schedule configuration.
type ScheduleSettingRepository struct {
	db *sqlx.DB
}

// NewScheduleSettingRepository constructs the repository.
func NewScheduleSettingRepository(db *sqlx.DB) *ScheduleSettingRepository {
	return &ScheduleSettingRepository{db: db}
}

// Find returns the oldest setting row, or sql.ErrNoRows when none is stored.
func (r *ScheduleSettingRepository) Find(ctx context.Context) (*models.ScheduleSetting, error) {
	const query = `SELECT id, weekdays, start_time_minutes, end_time_minutes, lesson_duration_minutes, break_duration_minutes, timezone, created_at, updated_at
        FROM schedule_settings ORDER BY created_at ASC LIMIT 1`
	var setting models.ScheduleSetting
	if err := r.db.GetContext(ctx, &setting, query); err != nil {
		return nil, err
	}
	return &setting, nil
}

// Create stores a new setting row.
func (r *ScheduleSettingRepository) Create(ctx context.Context, setting *models.ScheduleSetting) error {
	if setting.ID == "" {
		setting.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	setting.CreatedAt = now
	setting.UpdatedAt = now
	const query = `INSERT INTO schedule_settings (id, weekdays, start_time_minutes, end_time_minutes, lesson_duration_minutes, break_duration_minutes, timezone, created_at, updated_at)
        VALUES (:id, :weekdays, :start_time_minutes, :end_time_minutes, :lesson_duration_minutes, :break_duration_minutes, :timezone, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, setting); err != nil {
		return fmt.Errorf("create schedule setting: %w", err)
	}
	return nil
}

// Update overwrites the stored setting identified by ID.
func (r *ScheduleSettingRepository) Update(ctx context.Context, setting *models.ScheduleSetting) error {
	setting.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schedule_settings SET weekdays = :weekdays, start_time_minutes = :start_time_minutes, end_time_minutes = :end_time_minutes,
        lesson_duration_minutes = :lesson_duration_minutes, break_duration_minutes = :break_duration_minutes, timezone = :timezone, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, setting); err != nil {
		return fmt.Errorf("update schedule setting: %w", err)
	}
	return nil
}
