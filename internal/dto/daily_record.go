package dto

// EnsureLessonDaysRequest creates the lesson days of a month.
type EnsureLessonDaysRequest struct {
	Year  int `json:"year" validate:"required,min=2000,max=2100"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

// UpsertDailyRecordRequest records attendance and homework for a student.
type UpsertDailyRecordRequest struct {
	StudentID        string  `json:"studentId" validate:"required"`
	LessonDayID      string  `json:"lessonDayId" validate:"required"`
	AttendanceStatus string  `json:"attendanceStatus" validate:"omitempty,oneof=PRESENT LATE ABSENT NONE"`
	HomeworkStatus   string  `json:"homeworkStatus" validate:"omitempty,oneof=SUBMITTED NOT_SUBMITTED NO_HOMEWORK"`
	Memo             *string `json:"memo"`
}

// DailyRecordQuery filters daily record listings.
type DailyRecordQuery struct {
	StudentID   string `form:"studentId"`
	LessonDayID string `form:"lessonDayId"`
	Start       string `form:"start"`
	End         string `form:"end"`
}
