package models

import "time"

// AttendanceStatus records whether a student showed up for a lesson day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceNone    AttendanceStatus = "NONE"
)

// HomeworkStatus records homework submission for a lesson day.
type HomeworkStatus string

const (
	HomeworkSubmitted    HomeworkStatus = "SUBMITTED"
	HomeworkNotSubmitted HomeworkStatus = "NOT_SUBMITTED"
	HomeworkNone         HomeworkStatus = "NO_HOMEWORK"
)

// DailyRecord stores attendance and homework for one student on one lesson day.
type DailyRecord struct {
	ID               string           `db:"id" json:"id"`
	StudentID        string           `db:"student_id" json:"student_id"`
	LessonDayID      string           `db:"lesson_day_id" json:"lesson_day_id"`
	TeacherID        *string          `db:"teacher_id" json:"teacher_id,omitempty"`
	AttendanceStatus AttendanceStatus `db:"attendance_status" json:"attendance_status"`
	HomeworkStatus   HomeworkStatus   `db:"homework_status" json:"homework_status"`
	Memo             *string          `db:"memo" json:"memo,omitempty"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// DailyRecordView adds the student name and lesson date.
type DailyRecordView struct {
	DailyRecord
	StudentName string    `db:"student_name" json:"student_name"`
	LessonDate  time.Time `db:"lesson_date" json:"lesson_date"`
}

// DailyRecordFilter narrows daily record listings.
type DailyRecordFilter struct {
	StudentID   string
	LessonDayID string
	Start       *time.Time
	End         *time.Time
}

// StudentRecordEntry is one line of a student's record timeline.
type StudentRecordEntry struct {
	DailyRecord
	LessonDate  time.Time `db:"lesson_date" json:"lesson_date"`
	WeekLabel   *string   `db:"week_label" json:"week_label,omitempty"`
	TeacherName *string   `db:"teacher_name" json:"teacher_name,omitempty"`
}
