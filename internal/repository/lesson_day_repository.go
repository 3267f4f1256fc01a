package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

// LessonDayRepository stores the weekly anchors used by daily records.
type LessonDayRepository struct {
	db *sqlx.DB
}

// NewLessonDayRepository constructs the repository.
func NewLessonDayRepository(db *sqlx.DB) *LessonDayRepository {
	return &LessonDayRepository{db: db}
}

// ListRange returns lesson days between start and end inclusive.
func (r *LessonDayRepository) ListRange(ctx context.Context, start, end time.Time) ([]models.LessonDay, error) {
	const query = `SELECT id, date, year, month, week_of_month, week_label, has_homework, created_at
        FROM lesson_days WHERE date BETWEEN $1 AND $2 ORDER BY date ASC`
	var days []models.LessonDay
	if err := r.db.SelectContext(ctx, &days, query, start, end); err != nil {
		return nil, fmt.Errorf("list lesson days: %w", err)
	}
	return days, nil
}

// ListMonth returns lesson days of a month ordered by date.
func (r *LessonDayRepository) ListMonth(ctx context.Context, year, month int) ([]models.LessonDay, error) {
	const query = `SELECT id, date, year, month, week_of_month, week_label, has_homework, created_at
        FROM lesson_days WHERE year = $1 AND month = $2 ORDER BY date ASC`
	var days []models.LessonDay
	if err := r.db.SelectContext(ctx, &days, query, year, month); err != nil {
		return nil, fmt.Errorf("list month lesson days: %w", err)
	}
	return days, nil
}

// FindByID fetches a lesson day.
func (r *LessonDayRepository) FindByID(ctx context.Context, id string) (*models.LessonDay, error) {
	const query = `SELECT id, date, year, month, week_of_month, week_label, has_homework, created_at FROM lesson_days WHERE id = $1`
	var day models.LessonDay
	if err := r.db.GetContext(ctx, &day, query, id); err != nil {
		return nil, err
	}
	return &day, nil
}

// InsertMissing inserts the given days, skipping dates that already exist.
func (r *LessonDayRepository) InsertMissing(ctx context.Context, days []models.LessonDay) error {
	if len(days) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range days {
		if days[i].ID == "" {
			days[i].ID = uuid.NewString()
		}
		days[i].CreatedAt = now
	}
	const query = `INSERT INTO lesson_days (id, date, year, month, week_of_month, week_label, has_homework, created_at)
        VALUES (:id, :date, :year, :month, :week_of_month, :week_label, :has_homework, :created_at)
        ON CONFLICT (date) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, days); err != nil {
		return fmt.Errorf("insert lesson days: %w", err)
	}
	return nil
}
