package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

// DashboardRepository exposes read-only aggregates over students and daily records.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository instantiates the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// recordScopeCondition restricts non-admin scopes to records of linked students.
func recordScopeCondition(scope models.AccessScope, args []interface{}) (string, []interface{}) {
	if scope.IsAdmin() {
		return "", args
	}
	args = append(args, scope.UserID)
	return fmt.Sprintf("EXISTS (SELECT 1 FROM teacher_students ts WHERE ts.student_id = d.student_id AND ts.teacher_id = $%d)", len(args)), args
}

// StudentCounts counts the students visible to the scope and how many are inactive.
func (r *DashboardRepository) StudentCounts(ctx context.Context, scope models.AccessScope) (models.DashboardStudentCounts, error) {
	query := `SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE NOT s.active) AS inactive FROM students s`
	cond, args := studentScopeCondition(scope, nil)
	if cond != "" {
		query += " WHERE " + cond
	}
	var counts models.DashboardStudentCounts
	if err := r.db.GetContext(ctx, &counts, query, args...); err != nil {
		return counts, fmt.Errorf("count dashboard students: %w", err)
	}
	return counts, nil
}

// RecordTotals counts every record visible to the scope with present and submitted subtotals.
func (r *DashboardRepository) RecordTotals(ctx context.Context, scope models.AccessScope) (models.DashboardRecordTotals, error) {
	query := `SELECT COUNT(*) AS total,
        COUNT(*) FILTER (WHERE d.attendance_status = 'PRESENT') AS present,
        COUNT(*) FILTER (WHERE d.homework_status = 'SUBMITTED') AS homework_submitted
        FROM daily_records d`
	cond, args := recordScopeCondition(scope, nil)
	if cond != "" {
		query += " WHERE " + cond
	}
	var totals models.DashboardRecordTotals
	if err := r.db.GetContext(ctx, &totals, query, args...); err != nil {
		return totals, fmt.Errorf("count dashboard records: %w", err)
	}
	return totals, nil
}

// WeeklySummaries aggregates the scope's records per lesson day of the month, oldest first.
// Lesson days without records are still returned.
func (r *DashboardRepository) WeeklySummaries(ctx context.Context, scope models.AccessScope, year, month int) ([]models.DashboardWeek, error) {
	join := "d.lesson_day_id = ld.id"
	cond, args := recordScopeCondition(scope, nil)
	if cond != "" {
		join += " AND " + cond
	}
	args = append(args, year, month)
	query := fmt.Sprintf(`SELECT ld.id, ld.date, ld.week_label,
        COUNT(d.id) AS record_count,
        COUNT(d.id) FILTER (WHERE d.attendance_status = 'PRESENT') AS present_count,
        COUNT(d.id) FILTER (WHERE d.attendance_status = 'LATE') AS late_count,
        COUNT(d.id) FILTER (WHERE d.attendance_status = 'ABSENT') AS absent_count,
        COUNT(d.id) FILTER (WHERE d.homework_status = 'SUBMITTED') AS homework_submitted
        FROM lesson_days ld
        LEFT JOIN daily_records d ON %s
        WHERE ld.year = $%d AND ld.month = $%d
        GROUP BY ld.id, ld.date, ld.week_label
        ORDER BY ld.date ASC`, join, len(args)-1, len(args))

	var weeks []models.DashboardWeek
	if err := r.db.SelectContext(ctx, &weeks, query, args...); err != nil {
		return nil, fmt.Errorf("query dashboard weeks: %w", err)
	}
	return weeks, nil
}

// RecentRecords returns the most recently updated records visible to the scope.
func (r *DashboardRepository) RecentRecords(ctx context.Context, scope models.AccessScope, limit int) ([]models.DashboardRecentRecord, error) {
	where := ""
	cond, args := recordScopeCondition(scope, nil)
	if cond != "" {
		where = "WHERE " + cond
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT d.id, d.student_id, s.name AS student_name, s.grade_number, d.lesson_day_id,
        ld.date AS lesson_date, ld.week_label, d.attendance_status, d.homework_status, d.memo, d.updated_at
        FROM daily_records d
        JOIN students s ON s.id = d.student_id
        JOIN lesson_days ld ON ld.id = d.lesson_day_id
        %s
        ORDER BY d.updated_at DESC
        LIMIT $%d`, where, len(args))

	var rows []models.DashboardRecentRecord
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query dashboard recent records: %w", err)
	}
	return rows, nil
}

// AbsentStudents returns students with at least one ABSENT record, latest absence first.
func (r *DashboardRepository) AbsentStudents(ctx context.Context, scope models.AccessScope, limit int) ([]models.DashboardAttentionStudent, error) {
	where := "WHERE a.last_absent_date IS NOT NULL"
	cond, args := studentScopeCondition(scope, nil)
	if cond != "" {
		where += " AND " + cond
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT s.id, s.name, s.grade_number, a.last_absent_date
        FROM students s
        JOIN LATERAL (
            SELECT MAX(ld.date) AS last_absent_date
            FROM daily_records d
            JOIN lesson_days ld ON ld.id = d.lesson_day_id
            WHERE d.student_id = s.id AND d.attendance_status = 'ABSENT'
        ) a ON TRUE
        %s
        ORDER BY a.last_absent_date DESC, s.name ASC
        LIMIT $%d`, where, len(args))

	var rows []models.DashboardAttentionStudent
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query dashboard absent students: %w", err)
	}
	return rows, nil
}
