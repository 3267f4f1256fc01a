package models

import "time"

// DashboardStudentCounts holds roster totals for a scope.
type DashboardStudentCounts struct {
	Total    int `db:"total"`
	Inactive int `db:"inactive"`
}

// DashboardRecordTotals aggregates every daily record visible to a scope.
type DashboardRecordTotals struct {
	Total             int `db:"total"`
	Present           int `db:"present"`
	HomeworkSubmitted int `db:"homework_submitted"`
}

// DashboardWeek summarises the records of one lesson day.
type DashboardWeek struct {
	LessonDayID       string    `db:"id" json:"id"`
	Date              time.Time `db:"date" json:"date"`
	WeekLabel         *string   `db:"week_label" json:"week_label,omitempty"`
	RecordCount       int       `db:"record_count" json:"-"`
	PresentCount      int       `db:"present_count" json:"present_count"`
	LateCount         int       `db:"late_count" json:"late_count"`
	AbsentCount       int       `db:"absent_count" json:"absent_count"`
	HomeworkSubmitted int       `db:"homework_submitted" json:"homework_submitted"`
	TotalStudents     int       `db:"-" json:"total_students"`
}

// DashboardRecentRecord is a recently edited daily record with its student and lesson day.
type DashboardRecentRecord struct {
	ID               string           `db:"id" json:"id"`
	StudentID        string           `db:"student_id" json:"student_id"`
	StudentName      string           `db:"student_name" json:"student_name"`
	GradeNumber      int              `db:"grade_number" json:"grade_number"`
	GradeLabel       string           `db:"-" json:"grade_label"`
	LessonDayID      string           `db:"lesson_day_id" json:"lesson_day_id"`
	LessonDate       time.Time        `db:"lesson_date" json:"lesson_date"`
	WeekLabel        *string          `db:"week_label" json:"week_label,omitempty"`
	AttendanceStatus AttendanceStatus `db:"attendance_status" json:"attendance_status"`
	HomeworkStatus   HomeworkStatus   `db:"homework_status" json:"homework_status"`
	Memo             *string          `db:"memo" json:"memo,omitempty"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// DashboardAttentionStudent is a student with at least one absence.
type DashboardAttentionStudent struct {
	ID             string     `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	GradeNumber    int        `db:"grade_number" json:"grade_number"`
	GradeLabel     string     `db:"-" json:"grade_label"`
	LastAbsentDate *time.Time `db:"last_absent_date" json:"last_absent_date,omitempty"`
}
