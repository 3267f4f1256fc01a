package models

import "time"

// TeacherAvailability marks a teacher bookable in one window on one calendar date.
type TeacherAvailability struct {
	ID           string    `db:"id" json:"id"`
	TeacherID    string    `db:"teacher_id" json:"teacher_id"`
	Date         time.Time `db:"date" json:"date"`
	StartMinutes int       `db:"start_minutes" json:"start_minutes"`
	EndMinutes   int       `db:"end_minutes" json:"end_minutes"`
	IsAvailable  bool      `db:"is_available" json:"is_available"`
	Memo         *string   `db:"memo" json:"memo,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Contains reports whether the window fully covers [start, end).
func (a TeacherAvailability) Contains(start, end int) bool {
	return a.StartMinutes <= start && a.EndMinutes >= end
}
