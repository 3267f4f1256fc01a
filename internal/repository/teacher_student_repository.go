package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lesson-board-api/internal/models"
)

// TeacherStudentRepository manages teacher to student links.
type TeacherStudentRepository struct {
	db *sqlx.DB
}

// NewTeacherStudentRepository constructs the repository.
func NewTeacherStudentRepository(db *sqlx.DB) *TeacherStudentRepository {
	return &TeacherStudentRepository{db: db}
}

// Link associates a teacher and student. Existing links are left untouched.
func (r *TeacherStudentRepository) Link(ctx context.Context, teacherID, studentID string) error {
	const query = `INSERT INTO teacher_students (teacher_id, student_id, created_at) VALUES ($1, $2, $3)
        ON CONFLICT (teacher_id, student_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, teacherID, studentID, time.Now().UTC()); err != nil {
		return fmt.Errorf("link teacher student: %w", err)
	}
	return nil
}

// Unlink removes the association and reports whether a row existed.
func (r *TeacherStudentRepository) Unlink(ctx context.Context, teacherID, studentID string) (bool, error) {
	const query = `DELETE FROM teacher_students WHERE teacher_id = $1 AND student_id = $2`
	res, err := r.db.ExecContext(ctx, query, teacherID, studentID)
	if err != nil {
		return false, fmt.Errorf("unlink teacher student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unlink teacher student rows: %w", err)
	}
	return affected > 0, nil
}

// ListTeachers returns the teachers linked to a student ordered by name.
func (r *TeacherStudentRepository) ListTeachers(ctx context.Context, studentID string) ([]models.LinkedTeacher, error) {
	const query = `SELECT u.id, u.email, u.name FROM teacher_students ts
        JOIN users u ON u.id = ts.teacher_id
        WHERE ts.student_id = $1 ORDER BY u.name ASC`
	var teachers []models.LinkedTeacher
	if err := r.db.SelectContext(ctx, &teachers, query, studentID); err != nil {
		return nil, fmt.Errorf("list student teachers: %w", err)
	}
	return teachers, nil
}
