package models

import "time"

// TeacherUnavailableSlot is a recurring weekly block a teacher cannot teach in.
type TeacherUnavailableSlot struct {
	ID           string    `db:"id" json:"id"`
	TeacherID    string    `db:"teacher_id" json:"teacher_id"`
	Weekday      int       `db:"weekday" json:"weekday"`
	StartMinutes int       `db:"start_minutes" json:"start_minutes"`
	EndMinutes   int       `db:"end_minutes" json:"end_minutes"`
	Memo         *string   `db:"memo" json:"memo,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
