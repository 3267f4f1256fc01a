package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

const availabilityColumns = `id, teacher_id, date, start_minutes, end_minutes, is_available, memo, created_at, updated_at`

// TeacherAvailabilityRepository stores date-specific teacher windows.
type TeacherAvailabilityRepository struct {
	db *sqlx.DB
}

// NewTeacherAvailabilityRepository constructs the repository.
func NewTeacherAvailabilityRepository(db *sqlx.DB) *TeacherAvailabilityRepository {
	return &TeacherAvailabilityRepository{db: db}
}

// List returns windows between start and end inclusive. An empty teacherID lists every teacher.
func (r *TeacherAvailabilityRepository) List(ctx context.Context, teacherID string, start, end time.Time) ([]models.TeacherAvailability, error) {
	query := `SELECT ` + availabilityColumns + ` FROM teacher_weekly_availabilities WHERE date BETWEEN $1 AND $2`
	args := []interface{}{start, end}
	if teacherID != "" {
		query += " AND teacher_id = $3"
		args = append(args, teacherID)
	}
	query += " ORDER BY date ASC, start_minutes ASC"
	var rows []models.TeacherAvailability
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teacher availability: %w", err)
	}
	return rows, nil
}

// ListAvailable returns only bookable windows in the range, as read by the scheduler.
func (r *TeacherAvailabilityRepository) ListAvailable(ctx context.Context, start, end time.Time) ([]models.TeacherAvailability, error) {
	query := `SELECT ` + availabilityColumns + ` FROM teacher_weekly_availabilities
        WHERE date BETWEEN $1 AND $2 AND is_available = TRUE ORDER BY teacher_id ASC, date ASC, start_minutes ASC`
	var rows []models.TeacherAvailability
	if err := r.db.SelectContext(ctx, &rows, query, start, end); err != nil {
		return nil, fmt.Errorf("list available windows: %w", err)
	}
	return rows, nil
}

// Upsert inserts the window or refreshes its flag and memo when it already exists.
func (r *TeacherAvailabilityRepository) Upsert(ctx context.Context, window *models.TeacherAvailability) error {
	if window.ID == "" {
		window.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	window.CreatedAt = now
	window.UpdatedAt = now
	const query = `INSERT INTO teacher_weekly_availabilities (id, teacher_id, date, start_minutes, end_minutes, is_available, memo, created_at, updated_at)
        VALUES (:id, :teacher_id, :date, :start_minutes, :end_minutes, :is_available, :memo, :created_at, :updated_at)
        ON CONFLICT (teacher_id, date, start_minutes, end_minutes) DO UPDATE
        SET is_available = EXCLUDED.is_available, memo = EXCLUDED.memo, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, window); err != nil {
		return fmt.Errorf("upsert teacher availability: %w", err)
	}
	return nil
}

// DeleteWindow removes one exact window and reports how many rows went away.
func (r *TeacherAvailabilityRepository) DeleteWindow(ctx context.Context, teacherID string, date time.Time, start, end int) (int64, error) {
	const query = `DELETE FROM teacher_weekly_availabilities WHERE teacher_id = $1 AND date = $2 AND start_minutes = $3 AND end_minutes = $4`
	res, err := r.db.ExecContext(ctx, query, teacherID, date, start, end)
	if err != nil {
		return 0, fmt.Errorf("delete teacher availability: %w", err)
	}
	return res.RowsAffected()
}

// ReplaceRange drops every window of the teacher in the range and inserts the
// given ones, skipping duplicates. It returns the number of rows inserted.
func (r *TeacherAvailabilityRepository) ReplaceRange(ctx context.Context, teacherID string, start, end time.Time, windows []models.TeacherAvailability) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin availability tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const deleteQuery = `DELETE FROM teacher_weekly_availabilities WHERE teacher_id = $1 AND date BETWEEN $2 AND $3`
	if _, err := tx.ExecContext(ctx, deleteQuery, teacherID, start, end); err != nil {
		return 0, fmt.Errorf("clear teacher availability: %w", err)
	}

	const insertQuery = `INSERT INTO teacher_weekly_availabilities (id, teacher_id, date, start_minutes, end_minutes, is_available, memo, created_at, updated_at)
        VALUES (:id, :teacher_id, :date, :start_minutes, :end_minutes, :is_available, :memo, :created_at, :updated_at)
        ON CONFLICT (teacher_id, date, start_minutes, end_minutes) DO NOTHING`
	now := time.Now().UTC()
	inserted := 0
	for i := range windows {
		w := &windows[i]
		if w.ID == "" {
			w.ID = uuid.NewString()
		}
		w.TeacherID = teacherID
		w.CreatedAt = now
		w.UpdatedAt = now
		res, err := tx.NamedExecContext(ctx, insertQuery, w)
		if err != nil {
			return 0, fmt.Errorf("insert teacher availability: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit availability tx: %w", err)
	}
	return inserted, nil
}
