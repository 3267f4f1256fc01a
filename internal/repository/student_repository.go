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

const studentColumns = `s.id, s.name, s.grade_number, s.school, s.active, s.is_online, s.created_at, s.updated_at`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// studentScopeCondition restricts non-admin scopes to students linked to the teacher.
func studentScopeCondition(scope models.AccessScope, args []interface{}) (string, []interface{}) {
	if scope.IsAdmin() {
		return "", args
	}
	args = append(args, scope.UserID)
	return fmt.Sprintf("EXISTS (SELECT 1 FROM teacher_students ts WHERE ts.student_id = s.id AND ts.teacher_id = $%d)", len(args)), args
}

// List returns students visible to the scope ordered by grade and name.
func (r *StudentRepository) List(ctx context.Context, scope models.AccessScope, filter models.StudentFilter) ([]models.Student, int, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if cond, next := studentScopeCondition(scope, args); cond != "" {
		conditions = append(conditions, cond)
		args = next
	}
	if filter.GradeMin > 0 {
		conditions = append(conditions, fmt.Sprintf("s.grade_number >= $%d", len(args)+1))
		args = append(args, filter.GradeMin)
	}
	if filter.GradeMax > 0 {
		conditions = append(conditions, fmt.Sprintf("s.grade_number <= $%d", len(args)+1))
		args = append(args, filter.GradeMax)
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("s.active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(s.name) LIKE $%d OR LOWER(COALESCE(s.school, '')) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	page, size := normalizePage(filter.Page, filter.PageSize)
	query := fmt.Sprintf("SELECT %s FROM students s %s ORDER BY s.grade_number ASC, s.name ASC LIMIT %d OFFSET %d", studentColumns, where, size, (page-1)*size)

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM students s "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// ListActive returns every active student ordered by name for the scheduler.
func (r *StudentRepository) ListActive(ctx context.Context) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s WHERE s.active = TRUE ORDER BY s.name ASC, s.id ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list active students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student visible to the scope.
func (r *StudentRepository) FindByID(ctx context.Context, scope models.AccessScope, id string) (*models.Student, error) {
	args := []interface{}{id}
	query := `SELECT ` + studentColumns + ` FROM students s WHERE s.id = $1`
	if cond, next := studentScopeCondition(scope, args); cond != "" {
		query += " AND " + cond
		args = next
	}
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, args...); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, name, grade_number, school, active, is_online, created_at, updated_at)
        VALUES (:id, :name, :grade_number, :school, :active, :is_online, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET name = :name, grade_number = :grade_number, school = :school, active = :active, is_online = :is_online, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}
