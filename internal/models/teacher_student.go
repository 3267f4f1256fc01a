package models

import "time"

// TeacherStudent links a teacher to a student they are responsible for.
type TeacherStudent struct {
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	StudentID string    `db:"student_id" json:"student_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LinkedTeacher is a teacher assigned to a student.
type LinkedTeacher struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
}
