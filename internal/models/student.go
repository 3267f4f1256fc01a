package models

import (
	"fmt"
	"time"
)

// Student represents a learner on the academy roster.
type Student struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	GradeNumber int       `db:"grade_number" json:"grade_number"`
	School      *string   `db:"school" json:"school,omitempty"`
	Active      bool      `db:"active" json:"active"`
	IsOnline    bool      `db:"is_online" json:"is_online"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// GradeLabel renders the grade as E1..E6, M1..M3 or H1..H3.
func GradeLabel(grade int) string {
	switch {
	case grade >= 1 && grade <= 6:
		return fmt.Sprintf("E%d", grade)
	case grade >= 7 && grade <= 9:
		return fmt.Sprintf("M%d", grade-6)
	case grade >= 10 && grade <= 12:
		return fmt.Sprintf("H%d", grade-9)
	default:
		return "-"
	}
}

// StudentView adds derived presentation fields to a student.
type StudentView struct {
	Student
	GradeLabel string `json:"grade_label"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
// GradeMin and GradeMax are inclusive; zero means unbounded.
type StudentFilter struct {
	Search   string
	GradeMin int
	GradeMax int
	Active   *bool
	Page     int
	PageSize int
}
