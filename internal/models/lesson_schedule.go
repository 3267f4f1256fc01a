package models

import "time"

// LessonStatus is the lifecycle state of a placement.
type LessonStatus string

const (
	LessonStatusDraft     LessonStatus = "DRAFT"
	LessonStatusConfirmed LessonStatus = "CONFIRMED"
)

// LessonSchedule is one persisted (teacher, student, date, slot) placement.
type LessonSchedule struct {
	ID           string       `db:"id" json:"id"`
	TeacherID    string       `db:"teacher_id" json:"teacher_id"`
	StudentID    string       `db:"student_id" json:"student_id"`
	Date         time.Time    `db:"date" json:"date"`
	StartMinutes int          `db:"start_minutes" json:"start_minutes"`
	EndMinutes   int          `db:"end_minutes" json:"end_minutes"`
	Status       LessonStatus `db:"status" json:"status"`
	Memo         *string      `db:"memo" json:"memo,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// Overlaps reports whether the placement intersects [start, end) on date.
func (l LessonSchedule) Overlaps(date time.Time, start, end int) bool {
	return l.Date.Equal(date) && l.StartMinutes < end && l.EndMinutes > start
}

// LessonScheduleView joins a placement with display names.
type LessonScheduleView struct {
	LessonSchedule
	TeacherName  string `db:"teacher_name" json:"teacher_name"`
	StudentName  string `db:"student_name" json:"student_name"`
	StudentGrade int    `db:"student_grade" json:"student_grade"`
}

// LessonScheduleFilter narrows placement listings to a date range.
type LessonScheduleFilter struct {
	Start     time.Time
	End       time.Time
	TeacherID string
	Status    LessonStatus
}
