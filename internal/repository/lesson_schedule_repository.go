package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

const lessonColumns = `l.id, l.teacher_id, l.student_id, l.date, l.start_minutes, l.end_minutes, l.status, l.memo, l.created_at, l.updated_at`

// LessonScheduleRepository persists lesson placements.
type LessonScheduleRepository struct {
	db *sqlx.DB
}

// NewLessonScheduleRepository constructs the repository.
func NewLessonScheduleRepository(db *sqlx.DB) *LessonScheduleRepository {
	return &LessonScheduleRepository{db: db}
}

func (r *LessonScheduleRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// List returns placements in the range joined with names. Non-admin scopes
// only see their own lessons.
func (r *LessonScheduleRepository) List(ctx context.Context, scope models.AccessScope, filter models.LessonScheduleFilter) ([]models.LessonScheduleView, error) {
	query := `SELECT ` + lessonColumns + `, u.name AS teacher_name, s.name AS student_name, s.grade_number AS student_grade
        FROM lesson_schedules l
        JOIN users u ON u.id = l.teacher_id
        JOIN students s ON s.id = l.student_id
        WHERE l.date BETWEEN $1 AND $2`
	args := []interface{}{filter.Start, filter.End}
	teacherID := filter.TeacherID
	if !scope.IsAdmin() {
		teacherID = scope.UserID
	}
	if teacherID != "" {
		args = append(args, teacherID)
		query += fmt.Sprintf(" AND l.teacher_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND l.status = $%d", len(args))
	}
	query += " ORDER BY l.date ASC, l.start_minutes ASC, u.name ASC"

	var rows []models.LessonScheduleView
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lesson schedules: %w", err)
	}
	return rows, nil
}

// ListByStatus returns raw placements with the given status in the range.
func (r *LessonScheduleRepository) ListByStatus(ctx context.Context, start, end time.Time, status models.LessonStatus) ([]models.LessonSchedule, error) {
	query := `SELECT ` + lessonColumns + ` FROM lesson_schedules l WHERE l.date BETWEEN $1 AND $2 AND l.status = $3
        ORDER BY l.date ASC, l.start_minutes ASC`
	var rows []models.LessonSchedule
	if err := r.db.SelectContext(ctx, &rows, query, start, end, status); err != nil {
		return nil, fmt.Errorf("list lesson schedules by status: %w", err)
	}
	return rows, nil
}

// LockWeek takes a transaction scoped advisory lock keyed by the week start.
// Concurrent regenerations of the same week serialise on it.
func (r *LessonScheduleRepository) LockWeek(ctx context.Context, exec sqlx.ExtContext, weekStart time.Time) error {
	key := "lesson_schedules:" + weekStart.Format("2006-01-02")
	if _, err := r.exec(exec).ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("lock lesson week: %w", err)
	}
	return nil
}

// DeleteDrafts removes every DRAFT placement in the range.
func (r *LessonScheduleRepository) DeleteDrafts(ctx context.Context, exec sqlx.ExtContext, start, end time.Time) (int64, error) {
	const query = `DELETE FROM lesson_schedules WHERE date BETWEEN $1 AND $2 AND status = $3`
	res, err := r.exec(exec).ExecContext(ctx, query, start, end, models.LessonStatusDraft)
	if err != nil {
		return 0, fmt.Errorf("delete draft lessons: %w", err)
	}
	return res.RowsAffected()
}

// InsertDrafts bulk inserts placements as DRAFT, skipping exact duplicates.
// It returns the number of rows actually written.
func (r *LessonScheduleRepository) InsertDrafts(ctx context.Context, exec sqlx.ExtContext, lessons []models.LessonSchedule) (int64, error) {
	if len(lessons) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	for i := range lessons {
		lesson := &lessons[i]
		if lesson.ID == "" {
			lesson.ID = uuid.NewString()
		}
		lesson.Status = models.LessonStatusDraft
		lesson.CreatedAt = now
		lesson.UpdatedAt = now
	}
	const query = `INSERT INTO lesson_schedules (id, teacher_id, student_id, date, start_minutes, end_minutes, status, memo, created_at, updated_at)
        VALUES (:id, :teacher_id, :student_id, :date, :start_minutes, :end_minutes, :status, :memo, :created_at, :updated_at)
        ON CONFLICT ON CONSTRAINT uq_lesson_schedule_slot DO NOTHING`
	res, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, lessons)
	if err != nil {
		return 0, fmt.Errorf("insert draft lessons: %w", err)
	}
	return res.RowsAffected()
}

// ConfirmRange promotes every DRAFT placement in the range to CONFIRMED.
func (r *LessonScheduleRepository) ConfirmRange(ctx context.Context, start, end time.Time) (int64, error) {
	const query = `UPDATE lesson_schedules SET status = $3, updated_at = $4 WHERE date BETWEEN $1 AND $2 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, start, end, models.LessonStatusConfirmed, time.Now().UTC(), models.LessonStatusDraft)
	if err != nil {
		return 0, fmt.Errorf("confirm lessons: %w", err)
	}
	return res.RowsAffected()
}

// FindByID fetches a placement.
func (r *LessonScheduleRepository) FindByID(ctx context.Context, id string) (*models.LessonSchedule, error) {
	query := `SELECT ` + lessonColumns + ` FROM lesson_schedules l WHERE l.id = $1`
	var lesson models.LessonSchedule
	if err := r.db.GetContext(ctx, &lesson, query, id); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// FindDraftConflicts returns other DRAFT placements on the same date that
// overlap the candidate for its teacher or its student.
func (r *LessonScheduleRepository) FindDraftConflicts(ctx context.Context, candidate models.LessonSchedule) ([]models.LessonSchedule, error) {
	query := `SELECT ` + lessonColumns + ` FROM lesson_schedules l
        WHERE l.id <> $1 AND l.status = $2 AND l.date = $3
        AND (l.teacher_id = $4 OR l.student_id = $5)
        AND l.start_minutes < $7 AND l.end_minutes > $6`
	var rows []models.LessonSchedule
	if err := r.db.SelectContext(ctx, &rows, query,
		candidate.ID, models.LessonStatusDraft, candidate.Date,
		candidate.TeacherID, candidate.StudentID,
		candidate.StartMinutes, candidate.EndMinutes,
	); err != nil {
		return nil, fmt.Errorf("find lesson conflicts: %w", err)
	}
	return rows, nil
}

// Update rewrites a DRAFT placement. Confirmed rows are left untouched and
// reported as zero rows affected.
func (r *LessonScheduleRepository) Update(ctx context.Context, lesson *models.LessonSchedule) (int64, error) {
	lesson.UpdatedAt = time.Now().UTC()
	const query = `UPDATE lesson_schedules SET teacher_id = :teacher_id, student_id = :student_id, date = :date,
        start_minutes = :start_minutes, end_minutes = :end_minutes, memo = :memo, updated_at = :updated_at
        WHERE id = :id AND status = 'DRAFT'`
	res, err := r.db.NamedExecContext(ctx, query, lesson)
	if err != nil {
		return 0, fmt.Errorf("update lesson schedule: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes a DRAFT placement and reports the rows affected.
func (r *LessonScheduleRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM lesson_schedules WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, models.LessonStatusDraft)
	if err != nil {
		return 0, fmt.Errorf("delete lesson schedule: %w", err)
	}
	return res.RowsAffected()
}
