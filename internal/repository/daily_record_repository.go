package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

// DailyRecordRepository stores attendance and homework per lesson day.
type DailyRecordRepository struct {
	db *sqlx.DB
}

// NewDailyRecordRepository constructs the repository.
func NewDailyRecordRepository(db *sqlx.DB) *DailyRecordRepository {
	return &DailyRecordRepository{db: db}
}

// Upsert writes the record keyed by (student, lesson day) and refreshes the
// stored identifiers from the database.
func (r *DailyRecordRepository) Upsert(ctx context.Context, record *models.DailyRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	const query = `INSERT INTO daily_records (id, student_id, lesson_day_id, teacher_id, attendance_status, homework_status, memo, created_at, updated_at)
        VALUES (:id, :student_id, :lesson_day_id, :teacher_id, :attendance_status, :homework_status, :memo, :created_at, :updated_at)
        ON CONFLICT ON CONSTRAINT uq_daily_record_student_day DO UPDATE
        SET teacher_id = EXCLUDED.teacher_id, attendance_status = EXCLUDED.attendance_status,
            homework_status = EXCLUDED.homework_status, memo = EXCLUDED.memo, updated_at = EXCLUDED.updated_at
        RETURNING id, created_at`
	rows, err := r.db.NamedQueryContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("upsert daily record: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&record.ID, &record.CreatedAt); err != nil {
			return fmt.Errorf("scan daily record: %w", err)
		}
	}
	return rows.Err()
}

// List returns records visible to the scope, newest lesson day first.
func (r *DailyRecordRepository) List(ctx context.Context, scope models.AccessScope, filter models.DailyRecordFilter) ([]models.DailyRecordView, error) {
	conditions := []string{"1=1"}
	var args []interface{}
	if !scope.IsAdmin() {
		args = append(args, scope.UserID)
		conditions = append(conditions, fmt.Sprintf("EXISTS (SELECT 1 FROM teacher_students ts WHERE ts.student_id = d.student_id AND ts.teacher_id = $%d)", len(args)))
	}
	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		conditions = append(conditions, fmt.Sprintf("d.student_id = $%d", len(args)))
	}
	if filter.LessonDayID != "" {
		args = append(args, filter.LessonDayID)
		conditions = append(conditions, fmt.Sprintf("d.lesson_day_id = $%d", len(args)))
	}
	if filter.Start != nil {
		args = append(args, *filter.Start)
		conditions = append(conditions, fmt.Sprintf("ld.date >= $%d", len(args)))
	}
	if filter.End != nil {
		args = append(args, *filter.End)
		conditions = append(conditions, fmt.Sprintf("ld.date <= $%d", len(args)))
	}
	query := `SELECT d.id, d.student_id, d.lesson_day_id, d.teacher_id, d.attendance_status, d.homework_status, d.memo, d.created_at, d.updated_at,
        s.name AS student_name, ld.date AS lesson_date
        FROM daily_records d
        JOIN students s ON s.id = d.student_id
        JOIN lesson_days ld ON ld.id = d.lesson_day_id
        WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY ld.date DESC, s.name ASC`
	var rows []models.DailyRecordView
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list daily records: %w", err)
	}
	return rows, nil
}

// ListByStudent returns every record of a student with the recording teacher, newest lesson day first.
func (r *DailyRecordRepository) ListByStudent(ctx context.Context, studentID string) ([]models.StudentRecordEntry, error) {
	const query = `SELECT d.id, d.student_id, d.lesson_day_id, d.teacher_id, d.attendance_status, d.homework_status, d.memo, d.created_at, d.updated_at,
        ld.date AS lesson_date, ld.week_label, u.name AS teacher_name
        FROM daily_records d
        JOIN lesson_days ld ON ld.id = d.lesson_day_id
        LEFT JOIN users u ON u.id = d.teacher_id
        WHERE d.student_id = $1 ORDER BY ld.date DESC`
	var rows []models.StudentRecordEntry
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student records: %w", err)
	}
	return rows, nil
}
