package dto

import "github.com/noah-isme/lesson-board-api/internal/models"

// CreateTeacherRequest registers a teacher account.
type CreateTeacherRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     string  `json:"name" validate:"required"`
	Phone    *string `json:"phone"`
	Age      *int    `json:"age" validate:"omitempty,min=0,max=120"`
	Memo     *string `json:"memo"`
}

// UpdateTeacherRequest edits a teacher account. Password is changed only when set.
type UpdateTeacherRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Phone    *string `json:"phone"`
	Age      *int    `json:"age" validate:"omitempty,min=0,max=120"`
	Memo     *string `json:"memo"`
	Active   *bool   `json:"active"`
}

// CreateStudentRequest registers a student. TeacherID, when set, links the new student to that teacher.
type CreateStudentRequest struct {
	Name        string  `json:"name" validate:"required"`
	GradeNumber int     `json:"gradeNumber" validate:"required,min=1,max=12"`
	School      *string `json:"school"`
	IsOnline    bool    `json:"isOnline"`
	TeacherID   *string `json:"teacherId" validate:"omitempty,uuid"`
}

// UpdateStudentRequest partially edits a student.
type UpdateStudentRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	GradeNumber *int    `json:"gradeNumber" validate:"omitempty,min=1,max=12"`
	School      *string `json:"school"`
	Active      *bool   `json:"isActive"`
	IsOnline    *bool   `json:"isOnline"`
}

// StudentQuery filters the student roster.
type StudentQuery struct {
	Search   string `form:"search"`
	Grade    string `form:"grade"`
	Active   string `form:"active"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// TeacherStudentRequest links or unlinks a teacher and a student.
type TeacherStudentRequest struct {
	TeacherID string `json:"teacherId" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
}

// StudentDetail is a student with the linked teachers and the record timeline.
type StudentDetail struct {
	models.StudentView
	Teachers []models.LinkedTeacher      `json:"teachers"`
	Records  []models.StudentRecordEntry `json:"records"`
}
