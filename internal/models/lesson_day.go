package models

import "time"

// LessonDay anchors one Sunday-start week of a month for daily records.
type LessonDay struct {
	ID          string    `db:"id" json:"id"`
	Date        time.Time `db:"date" json:"date"`
	Year        int       `db:"year" json:"year"`
	Month       int       `db:"month" json:"month"`
	WeekOfMonth int       `db:"week_of_month" json:"week_of_month"`
	WeekLabel   *string   `db:"week_label" json:"week_label,omitempty"`
	HasHomework bool      `db:"has_homework" json:"has_homework"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
