package models

import (
	"time"

	"github.com/lib/pq"
)

// ScheduleSetting is the singleton configuration the slot grid is derived from.
type ScheduleSetting struct {
	ID                    string        `db:"id" json:"id"`
	Weekdays              pq.Int64Array `db:"weekdays" json:"weekdays"`
	StartTimeMinutes      int           `db:"start_time_minutes" json:"start_time_minutes"`
	EndTimeMinutes        int           `db:"end_time_minutes" json:"end_time_minutes"`
	LessonDurationMinutes int           `db:"lesson_duration_minutes" json:"lesson_duration_minutes"`
	BreakDurationMinutes  int           `db:"break_duration_minutes" json:"break_duration_minutes"`
	Timezone              string        `db:"timezone" json:"timezone"`
	CreatedAt             time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time     `db:"updated_at" json:"updated_at"`
}

// OperatesOn reports whether the weekday (Sunday=0) is an operating day.
func (s *ScheduleSetting) OperatesOn(weekday time.Weekday) bool {
	for _, d := range s.Weekdays {
		if time.Weekday(d) == weekday {
			return true
		}
	}
	return false
}

// TimeSlot is one bookable window of the weekly template. It is derived from
// the setting on every read and never stored.
type TimeSlot struct {
	Weekday      int    `json:"weekday"`
	StartMinutes int    `json:"start_minutes"`
	EndMinutes   int    `json:"end_minutes"`
	Label        string `json:"label,omitempty"`
}
